package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrovivo/biocampo-api/internal/model"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) CreateQuote(ctx context.Context, quote *model.Quote) error {
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO quotes (id, entity_id, quote_number, subtotal, iva_rate, iva_amount, total, pdf_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, quote.ID, quote.EntityID, quote.QuoteNumber, quote.Subtotal, quote.IVARate,
		quote.IVAAmount, quote.Total, quote.PDFKey, quote.CreatedAt).Error
	if err != nil {
		return err
	}

	for start := 0; start < len(quote.Lines); start += instanceBatchSize {
		end := start + instanceBatchSize
		if end > len(quote.Lines) {
			end = len(quote.Lines)
		}
		if err := r.insertLineBatch(ctx, quote.Lines[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *QuoteRepository) insertLineBatch(ctx context.Context, lines []model.QuoteLine) error {
	if len(lines) == 0 {
		return nil
	}

	values := make([]string, 0, len(lines))
	args := make([]interface{}, 0, len(lines)*8)
	for _, line := range lines {
		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args, line.ID, line.QuoteID, line.ProductID, line.ProductName,
			line.Unit, line.Quantity, line.UnitPrice, line.LineTotal)
	}

	query := `
		INSERT INTO quote_lines (id, quote_id, product_id, product_name, unit, quantity, unit_price, line_total)
		VALUES ` + strings.Join(values, ", ")
	return r.db.WithContext(ctx).Exec(query, args...).Error
}

// SetPDFKey records the object-store key once the rendered PDF is uploaded.
func (r *QuoteRepository) SetPDFKey(ctx context.Context, quoteID uuid.UUID, key string) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE quotes SET pdf_key = ? WHERE id = ?
	`, key, quoteID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountQuotes backs quote-number generation.
func (r *QuoteRepository) CountQuotes(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM quotes`).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
