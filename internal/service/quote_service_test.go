package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovivo/biocampo-api/internal/model"
)

type fakeQuoteStore struct {
	quotes  []model.Quote
	pdfKeys map[uuid.UUID]string
}

func newFakeQuoteStore() *fakeQuoteStore {
	return &fakeQuoteStore{pdfKeys: map[uuid.UUID]string{}}
}

func (f *fakeQuoteStore) CreateQuote(ctx context.Context, quote *model.Quote) error {
	f.quotes = append(f.quotes, *quote)
	return nil
}

func (f *fakeQuoteStore) SetPDFKey(ctx context.Context, quoteID uuid.UUID, key string) error {
	f.pdfKeys[quoteID] = key
	return nil
}

func (f *fakeQuoteStore) CountQuotes(ctx context.Context) (int64, error) {
	return int64(len(f.quotes)), nil
}

type fakePDF struct{}

func (fakePDF) Generate(doc model.QuoteDocument) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

type fakeObjects struct {
	keys []string
}

func (f *fakeObjects) Put(ctx context.Context, key, contentType string, data []byte) error {
	f.keys = append(f.keys, key)
	return nil
}

func TestCreateQuoteTotalsWithIVA(t *testing.T) {
	product := testProduct("100000.00")
	catalog := &fakeCatalog{products: map[uuid.UUID]model.Product{product.ID: product}}
	store := newFakeQuoteStore()
	objects := &fakeObjects{}
	svc := NewQuoteService(store, catalog, NewIdentityResolver(testIdentityStore()),
		fakePDF{}, objects, &failingNotifier{}, 19, zerolog.Nop())

	quote, err := svc.CreateQuote(context.Background(), model.Principal{UserID: adminOne}, []QuoteLineInput{
		{ProductID: product.ID, Quantity: decimal.NewFromInt(3)},
	})
	require.NoError(t, err)

	assert.Equal(t, "300000.00", quote.Subtotal.StringFixed(2))
	assert.Equal(t, "57000.00", quote.IVAAmount.StringFixed(2))
	assert.Equal(t, "357000.00", quote.Total.StringFixed(2))
	assert.Contains(t, quote.QuoteNumber, "COT-")

	require.Len(t, objects.keys, 1)
	assert.Equal(t, objects.keys[0], quote.PDFKey)
	assert.Equal(t, quote.PDFKey, store.pdfKeys[quote.ID])
}

func TestCreateQuoteUnknownProduct(t *testing.T) {
	catalog := &fakeCatalog{products: map[uuid.UUID]model.Product{}}
	svc := NewQuoteService(newFakeQuoteStore(), catalog, NewIdentityResolver(testIdentityStore()),
		fakePDF{}, &fakeObjects{}, &failingNotifier{}, 19, zerolog.Nop())

	_, err := svc.CreateQuote(context.Background(), model.Principal{UserID: adminOne}, []QuoteLineInput{
		{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1)},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
