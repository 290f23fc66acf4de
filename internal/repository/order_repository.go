package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/agrovivo/biocampo-api/internal/model"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder writes the header and then the lines in batches of at most
// ten rows, matching the store's batch limit.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *model.Order) error {
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO orders (id, entity_id, order_number, total, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, order.ID, order.EntityID, order.OrderNumber, order.Total, order.CreatedAt).Error
	if err != nil {
		return err
	}

	for start := 0; start < len(order.Lines); start += instanceBatchSize {
		end := start + instanceBatchSize
		if end > len(order.Lines) {
			end = len(order.Lines)
		}
		if err := r.insertLineBatch(ctx, order.Lines[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepository) insertLineBatch(ctx context.Context, lines []model.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	values := make([]string, 0, len(lines))
	args := make([]interface{}, 0, len(lines)*7)
	for _, line := range lines {
		values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
		args = append(args, line.ID, line.OrderID, line.ProductID, line.ProductName,
			line.Quantity, line.UnitPrice, line.LineTotal)
	}

	query := `
		INSERT INTO order_lines (id, order_id, product_id, product_name, quantity, unit_price, line_total)
		VALUES ` + strings.Join(values, ", ")
	return r.db.WithContext(ctx).Exec(query, args...).Error
}

// CountOrders backs order-number generation.
func (r *OrderRepository) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM orders`).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
