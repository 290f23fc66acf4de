package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/agrovivo/biocampo-api/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders one cronograma: a summary block followed by a row per
// application instance. Advisory volumes are rounded here only, at one
// decimal, for parity with the portal UI.
func (g *Generator) Generate(schedule model.Schedule) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Cronograma"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Tipo de aplicación")
	set("B1", schedule.ApplicationTypeName)
	set("A2", "Aplicaciones")
	set("B2", schedule.ApplicationCount)
	set("A3", "Ciclo (días)")
	set("B3", schedule.CycleDays)
	set("A4", "Área (ha)")
	set("B4", model.FormatVolume(schedule.AreaHectares))
	set("A5", "Fecha de inicio")
	set("B5", formatDate(schedule.StartDate))

	tableRow := 7
	headers := []string{
		"Aplicación",
		"Producto",
		"Dosis (L/ha)",
		"Volumen (L)",
		"Fecha programada",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, instance := range schedule.Instances {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), instance.OccurrenceIndex)
		set(fmt.Sprintf("B%d", row), instance.ProductName)
		set(fmt.Sprintf("C%d", row), model.FormatVolume(instance.DosePerHectare))
		set(fmt.Sprintf("D%d", row), model.FormatVolume(instance.DosePerHectare*instance.AreaHectares))
		set(fmt.Sprintf("E%d", row), formatOptionalDate(instance.ScheduledDate))
	}

	_ = file.SetColWidth(sheet, "A", "A", 12)
	_ = file.SetColWidth(sheet, "B", "B", 40)
	_ = file.SetColWidth(sheet, "C", "D", 14)
	_ = file.SetColWidth(sheet, "E", "E", 18)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "Sin asignar"
	}
	return formatDate(*t)
}
