package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrovivo/biocampo-api/internal/model"
)

// CatalogReader is the read-only catalog surface.
type CatalogReader interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListProductsByKind(ctx context.Context, kind model.ProductKind) ([]model.Product, error)
}

type CatalogService struct {
	repo CatalogReader
}

func NewCatalogService(repo CatalogReader) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) Lookup(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) List(ctx context.Context, kind string) ([]model.Product, error) {
	if kind == "" {
		return s.repo.ListProducts(ctx)
	}

	switch model.ProductKind(kind) {
	case model.ProductKindFungus, model.ProductKindBacteria, model.ProductKindBiochar:
		return s.repo.ListProductsByKind(ctx, model.ProductKind(kind))
	default:
		return nil, fmt.Errorf("%w: unknown product kind %q", ErrInvalidInput, kind)
	}
}
