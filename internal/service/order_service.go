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

type OrderStore interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	CountOrders(ctx context.Context) (int64, error)
}

type OrderService struct {
	store    OrderStore
	catalog  CatalogReader
	identity *IdentityResolver
	notifier Notifier
	log      zerolog.Logger
}

func NewOrderService(store OrderStore, catalog CatalogReader, identity *IdentityResolver, notifier Notifier, log zerolog.Logger) *OrderService {
	return &OrderService{
		store:    store,
		catalog:  catalog,
		identity: identity,
		notifier: notifier,
		log:      log,
	}
}

type OrderLineInput struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// CreateOrder persists a purchase order for the acting user's entity and
// tells the chat bot about it. The notification is fire-and-forget.
func (s *OrderService) CreateOrder(ctx context.Context, principal model.Principal, lines []OrderLineInput) (*model.Order, error) {
	acting, err := s.identity.Resolve(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: at least one line is required", ErrInvalidInput)
	}

	order := &model.Order{
		ID:        uuid.New(),
		EntityID:  acting.EntityID,
		CreatedAt: time.Now().UTC(),
	}

	total := decimal.Zero
	for _, line := range lines {
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}
		product, err := s.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, line.ProductID)
		}

		lineTotal := product.UnitPrice.Mul(line.Quantity)
		total = total.Add(lineTotal)
		order.Lines = append(order.Lines, model.OrderLine{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.UnitPrice,
			LineTotal:   lineTotal,
		})
	}
	order.Total = total

	count, err := s.store.CountOrders(ctx)
	if err != nil {
		return nil, err
	}
	order.OrderNumber = fmt.Sprintf("PED-%s-%05d", order.CreatedAt.Format("2006"), count+1)

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	if err := s.notifier.Send(ctx, fmt.Sprintf("Nuevo pedido %s de %s por $%s",
		order.OrderNumber, acting.DisplayName, order.Total.StringFixed(2))); err != nil {
		s.log.Warn().Err(err).Str("order_id", order.ID.String()).Msg("order notification failed")
	}

	s.log.Info().
		Str("order_id", order.ID.String()).
		Str("entity_id", order.EntityID.String()).
		Msg("order created")
	return order, nil
}
