package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrovivo/biocampo-api/internal/model"
)

type productResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Kind         string `json:"kind"`
	Unit         string `json:"unit"`
	UnitPrice    string `json:"unit_price"`
}

func toProductResponses(products []model.Product) []productResponse {
	responses := make([]productResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, productResponse{
			ID:           p.ID.String(),
			Name:         p.Name,
			Abbreviation: p.Abbreviation,
			Kind:         string(p.Kind),
			Unit:         p.Unit,
			UnitPrice:    p.UnitPrice.StringFixed(2),
		})
	}
	return responses
}

type instanceResponse struct {
	ID              string  `json:"id"`
	OccurrenceIndex int     `json:"occurrence_index"`
	ProductID       string  `json:"product_id,omitempty"`
	ProductName     string  `json:"product_name"`
	DosePerHectare  float64 `json:"dose_per_hectare"`
	Volume          string  `json:"volume"`
	ScheduledDate   string  `json:"scheduled_date,omitempty"`
}

type scheduleResponse struct {
	ID                  string             `json:"id"`
	EntityID            string             `json:"entity_id"`
	ApplicationTypeName string             `json:"application_type_name"`
	ApplicationCount    int                `json:"application_count"`
	CycleDays           int                `json:"cycle_days"`
	AreaHectares        float64            `json:"area_hectares"`
	StartDate           string             `json:"start_date"`
	CreatedAt           time.Time          `json:"created_at"`
	Instances           []instanceResponse `json:"instances"`
}

func toScheduleResponse(schedule model.Schedule) scheduleResponse {
	response := scheduleResponse{
		ID:                  schedule.ID.String(),
		EntityID:            schedule.EntityID.String(),
		ApplicationTypeName: schedule.ApplicationTypeName,
		ApplicationCount:    schedule.ApplicationCount,
		CycleDays:           schedule.CycleDays,
		AreaHectares:        schedule.AreaHectares,
		StartDate:           schedule.StartDate.Format("2006-01-02"),
		CreatedAt:           schedule.CreatedAt,
		Instances:           make([]instanceResponse, 0, len(schedule.Instances)),
	}
	for _, instance := range schedule.Instances {
		item := instanceResponse{
			ID:              instance.ID.String(),
			OccurrenceIndex: instance.OccurrenceIndex,
			ProductName:     instance.ProductName,
			DosePerHectare:  instance.DosePerHectare,
			Volume:          model.FormatVolume(instance.DosePerHectare * instance.AreaHectares),
		}
		if instance.ProductID != nil {
			item.ProductID = instance.ProductID.String()
		}
		if instance.ScheduledDate != nil {
			item.ScheduledDate = instance.ScheduledDate.Format("2006-01-02")
		}
		response.Instances = append(response.Instances, item)
	}
	return response
}

type selectionResponse struct {
	ProductID      string  `json:"product_id,omitempty"`
	ProductName    string  `json:"product_name"`
	DosePerHectare float64 `json:"dose_per_hectare"`
	ExplicitDate   string  `json:"explicit_date,omitempty"`
}

type scheduleRequestResponse struct {
	ApplicationTypeName string              `json:"application_type_name"`
	CustomTypeName      string              `json:"custom_type_name,omitempty"`
	ApplicationCount    int                 `json:"application_count"`
	CycleDays           int                 `json:"cycle_days"`
	AreaHectares        float64             `json:"area_hectares"`
	StartDate           string              `json:"start_date,omitempty"`
	SelectedProducts    []selectionResponse `json:"selected_products"`
}

func toScheduleRequestResponse(request model.ScheduleRequest) scheduleRequestResponse {
	response := scheduleRequestResponse{
		ApplicationTypeName: request.ApplicationTypeName,
		CustomTypeName:      request.CustomTypeName,
		ApplicationCount:    request.ApplicationCount,
		CycleDays:           request.CycleDays,
		AreaHectares:        request.AreaHectares,
		SelectedProducts:    make([]selectionResponse, 0, len(request.SelectedProducts)),
	}
	if !request.StartDate.IsZero() {
		response.StartDate = request.StartDate.Format("2006-01-02")
	}
	for _, sel := range request.SelectedProducts {
		item := selectionResponse{
			ProductName:    sel.ProductName,
			DosePerHectare: sel.DosePerHectare,
		}
		if sel.ProductID != uuid.Nil {
			item.ProductID = sel.ProductID.String()
		}
		if sel.ExplicitDate != nil {
			item.ExplicitDate = sel.ExplicitDate.Format("2006-01-02")
		}
		response.SelectedProducts = append(response.SelectedProducts, item)
	}
	return response
}

type quoteLineResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Unit        string `json:"unit"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

type quoteResponse struct {
	ID          string              `json:"id"`
	QuoteNumber string              `json:"quote_number"`
	Lines       []quoteLineResponse `json:"lines"`
	Subtotal    string              `json:"subtotal"`
	IVAAmount   string              `json:"iva_amount"`
	Total       string              `json:"total"`
	PDFKey      string              `json:"pdf_key"`
	CreatedAt   time.Time           `json:"created_at"`
}

func toQuoteResponse(quote model.Quote) quoteResponse {
	response := quoteResponse{
		ID:          quote.ID.String(),
		QuoteNumber: quote.QuoteNumber,
		Lines:       make([]quoteLineResponse, 0, len(quote.Lines)),
		Subtotal:    quote.Subtotal.StringFixed(2),
		IVAAmount:   quote.IVAAmount.StringFixed(2),
		Total:       quote.Total.StringFixed(2),
		PDFKey:      quote.PDFKey,
		CreatedAt:   quote.CreatedAt,
	}
	for _, line := range quote.Lines {
		response.Lines = append(response.Lines, quoteLineResponse{
			ProductID:   line.ProductID.String(),
			ProductName: line.ProductName,
			Unit:        line.Unit,
			Quantity:    line.Quantity.StringFixed(1),
			UnitPrice:   line.UnitPrice.StringFixed(2),
			LineTotal:   line.LineTotal.StringFixed(2),
		})
	}
	return response
}

type orderLineResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

type orderResponse struct {
	ID          string              `json:"id"`
	OrderNumber string              `json:"order_number"`
	Lines       []orderLineResponse `json:"lines"`
	Total       string              `json:"total"`
	CreatedAt   time.Time           `json:"created_at"`
}

func toOrderResponse(order model.Order) orderResponse {
	response := orderResponse{
		ID:          order.ID.String(),
		OrderNumber: order.OrderNumber,
		Lines:       make([]orderLineResponse, 0, len(order.Lines)),
		Total:       order.Total.StringFixed(2),
		CreatedAt:   order.CreatedAt,
	}
	for _, line := range order.Lines {
		response.Lines = append(response.Lines, orderLineResponse{
			ProductID:   line.ProductID.String(),
			ProductName: line.ProductName,
			Quantity:    line.Quantity.StringFixed(1),
			UnitPrice:   line.UnitPrice.StringFixed(2),
			LineTotal:   line.LineTotal.StringFixed(2),
		})
	}
	return response
}
