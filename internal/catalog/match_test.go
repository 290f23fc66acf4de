package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovivo/biocampo-api/internal/model"
)

func testCatalog() []model.Product {
	return []model.Product{
		{ID: uuid.New(), Name: "Trichoderma harzianum", Kind: model.ProductKindFungus},
		{ID: uuid.New(), Name: "Trichoderma viride", Kind: model.ProductKindFungus},
		{ID: uuid.New(), Name: "Bacillus subtilis", Kind: model.ProductKindBacteria},
		{ID: uuid.New(), Name: "Beauveria bassiana", Kind: model.ProductKindFungus},
		{ID: uuid.New(), Name: "Biochar Premium", Kind: model.ProductKindBiochar},
	}
}

func TestMatchExactOutranksOtherTiers(t *testing.T) {
	products := testCatalog()

	// "Trichoderma harzianum" also hits the substring and stem tiers, but
	// the exact tier must win and return that precise product.
	product, ok := Match("Trichoderma harzianum", products)
	require.True(t, ok)
	assert.Equal(t, "Trichoderma harzianum", product.Name)

	product, ok = Match("  trichoderma HARZIANUM  ", products)
	require.True(t, ok)
	assert.Equal(t, "Trichoderma harzianum", product.Name)
}

func TestMatchSubstring(t *testing.T) {
	products := testCatalog()

	product, ok := Match("bacillus", products)
	require.True(t, ok)
	assert.Equal(t, "Bacillus subtilis", product.Name)

	// Input longer than the canonical name also matches.
	product, ok = Match("quiero biochar premium para el lote", products)
	require.True(t, ok)
	assert.Equal(t, "Biochar Premium", product.Name)
}

func TestMatchKeywordStem(t *testing.T) {
	products := testCatalog()

	// "tricodelma" has no substring overlap with any canonical name, but
	// carries the "trico" stem.
	product, ok := Match("tricodelma", products)
	require.True(t, ok)
	assert.Contains(t, product.Name, "Trichoderma")

	product, ok = Match("boveria basiana", products)
	require.True(t, ok)
	assert.Equal(t, "Beauveria bassiana", product.Name)
}

func TestMatchNoHit(t *testing.T) {
	products := testCatalog()

	_, ok := Match("glifosato", products)
	assert.False(t, ok)
}

func TestMatchEmptyCatalogAndInput(t *testing.T) {
	_, ok := Match("Trichoderma harzianum", nil)
	assert.False(t, ok)

	_, ok = Match("   ", testCatalog())
	assert.False(t, ok)
}
