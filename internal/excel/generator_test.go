package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agrovivo/biocampo-api/internal/model"
)

func TestGenerateCronograma(t *testing.T) {
	productID := uuid.New()
	assigned := time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)
	schedule := model.Schedule{
		ID:                  uuid.New(),
		ApplicationTypeName: "Fertilización",
		ApplicationCount:    2,
		CycleDays:           15,
		AreaHectares:        10,
		StartDate:           time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:           time.Now(),
		Instances: []model.ApplicationInstance{
			{ID: uuid.New(), OccurrenceIndex: 1, ProductID: &productID, ProductName: "Trichoderma harzianum", DosePerHectare: 1.5, AreaHectares: 10, ScheduledDate: &assigned},
			{ID: uuid.New(), OccurrenceIndex: 2, ProductID: &productID, ProductName: "Trichoderma harzianum", DosePerHectare: 1.5, AreaHectares: 10},
		},
	}

	content, err := NewGenerator().Generate(schedule)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	value, err := file.GetCellValue("Cronograma", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Fertilización", value)

	// Per-occurrence volume is area x dose, one-decimal display.
	value, err = file.GetCellValue("Cronograma", "D8")
	require.NoError(t, err)
	assert.Equal(t, "15.0", value)

	value, err = file.GetCellValue("Cronograma", "E9")
	require.NoError(t, err)
	assert.Equal(t, "Sin asignar", value)
}
