package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrovivo/biocampo-api/internal/catalog"
	"github.com/agrovivo/biocampo-api/internal/model"
)

// defaultDose is used when the extraction heard a product but no dose.
const defaultDose = 1.0

// Extractor is the NLU collaborator contract.
type Extractor interface {
	Extract(ctx context.Context, transcript string) (*model.VoiceParseResult, error)
}

// ProductSource feeds the in-memory catalog snapshot the matcher runs
// against.
type ProductSource interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
}

// VoiceService turns a finished recording transcript into the same
// structured request the manual form produces. One transcript is one
// request-response; there is no cancellation once submitted.
type VoiceService struct {
	extractor Extractor
	products  ProductSource
	log       zerolog.Logger
}

func NewVoiceService(extractor Extractor, products ProductSource, log zerolog.Logger) *VoiceService {
	return &VoiceService{extractor: extractor, products: products, log: log}
}

// Interpret merges the extraction for one transcript into the caller's
// current draft. Only fields the user actually said overwrite the draft;
// product selections are appended so multi-session dictation accumulates.
// A product name that resolves against nothing is kept as a free-text
// label, never an error.
func (s *VoiceService) Interpret(ctx context.Context, transcript string, draft model.ScheduleRequest) (model.ScheduleRequest, error) {
	if strings.TrimSpace(transcript) == "" {
		return draft, fmt.Errorf("%w: empty transcript", ErrInvalidInput)
	}

	result, err := s.extractor.Extract(ctx, transcript)
	if err != nil {
		s.log.Warn().Err(err).Msg("nlu extraction failed")
		return draft, fmt.Errorf("%w: %v", ErrVoiceProcessing, err)
	}

	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return draft, err
	}

	merged := MergeVoiceResult(draft, *result, products)
	return merged, nil
}

// MergeVoiceResult applies one extraction to a draft request. Split out of
// Interpret so the merge rules are testable without collaborators.
func MergeVoiceResult(draft model.ScheduleRequest, result model.VoiceParseResult, products []model.Product) model.ScheduleRequest {
	if result.ApplicationTypeName != "" {
		draft.ApplicationTypeName = result.ApplicationTypeName
	}
	if result.ApplicationCount > 0 {
		draft.ApplicationCount = result.ApplicationCount
	}
	if result.CycleDays > 0 {
		draft.CycleDays = result.CycleDays
	}
	if result.AreaHectares > 0 {
		draft.AreaHectares = result.AreaHectares
	}
	if result.StartDate != "" {
		if parsed, err := time.Parse("2006-01-02", result.StartDate); err == nil {
			draft.StartDate = parsed
		}
	}

	for _, spoken := range result.Microorganisms {
		if strings.TrimSpace(spoken.Name) == "" {
			continue
		}
		dose := spoken.Dose
		if dose <= 0 {
			dose = defaultDose
		}

		selection := model.ProductSelection{
			ProductName:    spoken.Name,
			DosePerHectare: dose,
		}
		if product, ok := catalog.Match(spoken.Name, products); ok {
			selection.ProductID = product.ID
			selection.ProductName = product.Name
		}
		draft.SelectedProducts = append(draft.SelectedProducts, selection)
	}
	return draft
}
