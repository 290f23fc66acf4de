package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrovivo/biocampo-api/internal/model"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, abbreviation, kind, unit, unit_price
		FROM products
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&product).Error; err != nil {
		return nil, err
	}
	if product.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &product, nil
}

func (r *CatalogRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, abbreviation, kind, unit, unit_price
		FROM products
		ORDER BY name ASC
	`).Scan(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *CatalogRepository) ListProductsByKind(ctx context.Context, kind model.ProductKind) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, abbreviation, kind, unit, unit_price
		FROM products
		WHERE kind = ?
		ORDER BY name ASC
	`, string(kind)).Scan(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
