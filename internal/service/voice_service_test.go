package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovivo/biocampo-api/internal/model"
)

type stubExtractor struct {
	result *model.VoiceParseResult
	err    error
}

func (s *stubExtractor) Extract(ctx context.Context, transcript string) (*model.VoiceParseResult, error) {
	return s.result, s.err
}

type stubProducts struct {
	products []model.Product
	err      error
}

func (s *stubProducts) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.products, s.err
}

func voiceCatalog() []model.Product {
	return []model.Product{
		{ID: uuid.New(), Name: "Trichoderma harzianum", Kind: model.ProductKindFungus},
		{ID: uuid.New(), Name: "Bacillus subtilis", Kind: model.ProductKindBacteria},
	}
}

func TestInterpretMergePreservesManualFields(t *testing.T) {
	svc := NewVoiceService(
		&stubExtractor{result: &model.VoiceParseResult{CycleDays: 15}},
		&stubProducts{products: voiceCatalog()},
		zerolog.Nop(),
	)

	draft := model.ScheduleRequest{AreaHectares: 20}
	merged, err := svc.Interpret(context.Background(), "cada quince días", draft)
	require.NoError(t, err)

	assert.Equal(t, 20.0, merged.AreaHectares)
	assert.Equal(t, 15, merged.CycleDays)
}

func TestInterpretUnmatchedProductIsDegradedNotFatal(t *testing.T) {
	svc := NewVoiceService(
		&stubExtractor{result: &model.VoiceParseResult{
			Microorganisms: []model.SpokenProduct{{Name: "abono mágico", Dose: 2}},
		}},
		&stubProducts{products: voiceCatalog()},
		zerolog.Nop(),
	)

	merged, err := svc.Interpret(context.Background(), "aplicar abono mágico", model.ScheduleRequest{})
	require.NoError(t, err)
	require.Len(t, merged.SelectedProducts, 1)

	sel := merged.SelectedProducts[0]
	assert.Equal(t, uuid.Nil, sel.ProductID)
	assert.Equal(t, "abono mágico", sel.ProductName)
	assert.Equal(t, 2.0, sel.DosePerHectare)
}

func TestInterpretResolvedProductUsesCanonicalName(t *testing.T) {
	products := voiceCatalog()
	svc := NewVoiceService(
		&stubExtractor{result: &model.VoiceParseResult{
			Microorganisms: []model.SpokenProduct{{Name: "tricodelma"}},
		}},
		&stubProducts{products: products},
		zerolog.Nop(),
	)

	merged, err := svc.Interpret(context.Background(), "aplicar tricodelma", model.ScheduleRequest{})
	require.NoError(t, err)
	require.Len(t, merged.SelectedProducts, 1)

	sel := merged.SelectedProducts[0]
	assert.Equal(t, products[0].ID, sel.ProductID)
	assert.Equal(t, "Trichoderma harzianum", sel.ProductName)
	assert.Equal(t, 1.0, sel.DosePerHectare, "omitted dose defaults to 1.0")
}

func TestInterpretAppendsAcrossSessions(t *testing.T) {
	svc := NewVoiceService(
		&stubExtractor{result: &model.VoiceParseResult{
			Microorganisms: []model.SpokenProduct{{Name: "bacillus subtilis", Dose: 0.5}},
		}},
		&stubProducts{products: voiceCatalog()},
		zerolog.Nop(),
	)

	draft := model.ScheduleRequest{
		SelectedProducts: []model.ProductSelection{
			{ProductName: "Trichoderma harzianum", DosePerHectare: 1.5},
		},
	}
	merged, err := svc.Interpret(context.Background(), "agregar bacilo", draft)
	require.NoError(t, err)

	require.Len(t, merged.SelectedProducts, 2)
	assert.Equal(t, "Trichoderma harzianum", merged.SelectedProducts[0].ProductName)
	assert.Equal(t, "Bacillus subtilis", merged.SelectedProducts[1].ProductName)
}

func TestInterpretExtractionFailure(t *testing.T) {
	svc := NewVoiceService(
		&stubExtractor{err: errors.New("timeout")},
		&stubProducts{products: voiceCatalog()},
		zerolog.Nop(),
	)

	_, err := svc.Interpret(context.Background(), "algo", model.ScheduleRequest{})
	assert.ErrorIs(t, err, ErrVoiceProcessing)
}

func TestInterpretEmptyTranscript(t *testing.T) {
	svc := NewVoiceService(&stubExtractor{}, &stubProducts{}, zerolog.Nop())

	_, err := svc.Interpret(context.Background(), "   ", model.ScheduleRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMergeVoiceResultStartDate(t *testing.T) {
	merged := MergeVoiceResult(model.ScheduleRequest{}, model.VoiceParseResult{StartDate: "2026-09-15"}, nil)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), merged.StartDate)

	// Garbage dates leave the draft untouched.
	prior := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	merged = MergeVoiceResult(model.ScheduleRequest{StartDate: prior}, model.VoiceParseResult{StartDate: "mañana"}, nil)
	assert.Equal(t, prior, merged.StartDate)
}
