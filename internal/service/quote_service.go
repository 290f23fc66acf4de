package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/agrovivo/biocampo-api/internal/model"
)

type QuoteStore interface {
	CreateQuote(ctx context.Context, quote *model.Quote) error
	SetPDFKey(ctx context.Context, quoteID uuid.UUID, key string) error
	CountQuotes(ctx context.Context) (int64, error)
}

// PDFGenerator renders a quote document.
type PDFGenerator interface {
	Generate(doc model.QuoteDocument) ([]byte, error)
}

// ObjectStore persists rendered documents.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}

// Notifier sends fire-and-forget chat messages.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

type QuoteService struct {
	store    QuoteStore
	catalog  CatalogReader
	identity *IdentityResolver
	pdf      PDFGenerator
	objects  ObjectStore
	notifier Notifier
	ivaRate  decimal.Decimal
	log      zerolog.Logger
}

func NewQuoteService(
	store QuoteStore,
	catalog CatalogReader,
	identity *IdentityResolver,
	pdf PDFGenerator,
	objects ObjectStore,
	notifier Notifier,
	ivaPercent float64,
	log zerolog.Logger,
) *QuoteService {
	return &QuoteService{
		store:    store,
		catalog:  catalog,
		identity: identity,
		pdf:      pdf,
		objects:  objects,
		notifier: notifier,
		ivaRate:  decimal.NewFromFloat(ivaPercent).Div(decimal.NewFromInt(100)),
		log:      log,
	}
}

type QuoteLineInput struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// CreateQuote prices the requested lines from the catalog, persists the
// quote, renders its PDF and uploads it to the object store. The PDF step
// runs after the quote is committed: a render or upload failure is
// surfaced while the priced quote stays behind.
func (s *QuoteService) CreateQuote(ctx context.Context, principal model.Principal, lines []QuoteLineInput) (*model.Quote, error) {
	acting, err := s.identity.Resolve(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: at least one line is required", ErrInvalidInput)
	}

	quote := &model.Quote{
		ID:        uuid.New(),
		EntityID:  acting.EntityID,
		IVARate:   s.ivaRate,
		CreatedAt: time.Now().UTC(),
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}
		product, err := s.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, line.ProductID)
		}

		lineTotal := product.UnitPrice.Mul(line.Quantity)
		subtotal = subtotal.Add(lineTotal)
		quote.Lines = append(quote.Lines, model.QuoteLine{
			ID:          uuid.New(),
			QuoteID:     quote.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Unit:        product.Unit,
			Quantity:    line.Quantity,
			UnitPrice:   product.UnitPrice,
			LineTotal:   lineTotal,
		})
	}

	quote.Subtotal = subtotal
	quote.IVAAmount = subtotal.Mul(s.ivaRate).Round(2)
	quote.Total = quote.Subtotal.Add(quote.IVAAmount)

	count, err := s.store.CountQuotes(ctx)
	if err != nil {
		return nil, err
	}
	quote.QuoteNumber = fmt.Sprintf("COT-%s-%05d", quote.CreatedAt.Format("2006"), count+1)

	if err := s.store.CreateQuote(ctx, quote); err != nil {
		return nil, err
	}

	content, err := s.pdf.Generate(model.QuoteDocument{Quote: *quote, EntityName: acting.DisplayName})
	if err != nil {
		return nil, fmt.Errorf("render quote pdf: %w", err)
	}

	key := fmt.Sprintf("quotes/%s/%s.pdf", quote.EntityID, quote.ID)
	if err := s.objects.Put(ctx, key, "application/pdf", content); err != nil {
		return nil, fmt.Errorf("upload quote pdf: %w", err)
	}
	if err := s.store.SetPDFKey(ctx, quote.ID, key); err != nil {
		return nil, err
	}
	quote.PDFKey = key

	// Notification failures never fail the quote.
	if err := s.notifier.Send(ctx, fmt.Sprintf("Nueva cotización %s de %s por $%s",
		quote.QuoteNumber, acting.DisplayName, quote.Total.StringFixed(2))); err != nil {
		s.log.Warn().Err(err).Str("quote_id", quote.ID.String()).Msg("quote notification failed")
	}

	return quote, nil
}
