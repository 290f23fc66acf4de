package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/agrovivo/biocampo-api/internal/http/middleware"
	"github.com/agrovivo/biocampo-api/internal/model"
	"github.com/agrovivo/biocampo-api/internal/service"
)

type Handler struct {
	catalog   *service.CatalogService
	schedules *service.ScheduleService
	voice     *service.VoiceService
	quotes    *service.QuoteService
	orders    *service.OrderService
	log       zerolog.Logger
}

func NewHandler(
	catalog *service.CatalogService,
	schedules *service.ScheduleService,
	voice *service.VoiceService,
	quotes *service.QuoteService,
	orders *service.OrderService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		catalog:   catalog,
		schedules: schedules,
		voice:     voice,
		quotes:    quotes,
		orders:    orders,
		log:       log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.GET("/products", h.listProducts)
	protected.POST("/voice/interpret", h.interpretVoice)
	protected.POST("/schedules", h.createSchedule)
	protected.GET("/schedules", h.listSchedules)
	protected.POST("/schedules/instances/:id/date", h.assignDate)
	protected.GET("/schedules/:id/export", h.exportSchedule)
	protected.POST("/quotes", h.createQuote)
	protected.POST("/orders", h.createOrder)
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context(), strings.ToUpper(strings.TrimSpace(c.Query("kind"))))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": toProductResponses(products)})
}

type productSelectionPayload struct {
	ProductID      string  `json:"product_id"`
	ProductName    string  `json:"product_name" binding:"required"`
	DosePerHectare float64 `json:"dose_per_hectare"`
	ExplicitDate   string  `json:"explicit_date"`
}

type scheduleRequestPayload struct {
	ApplicationTypeName string                    `json:"application_type_name"`
	CustomTypeName      string                    `json:"custom_type_name"`
	ApplicationCount    int                       `json:"application_count"`
	CycleDays           int                       `json:"cycle_days"`
	AreaHectares        float64                   `json:"area_hectares"`
	StartDate           string                    `json:"start_date"`
	SelectedProducts    []productSelectionPayload `json:"selected_products"`
}

type interpretVoiceRequest struct {
	Transcript string                 `json:"transcript" binding:"required"`
	Draft      scheduleRequestPayload `json:"draft"`
}

func (h *Handler) interpretVoice(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req interpretVoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := req.Draft.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	merged, err := h.voice.Interpret(c.Request.Context(), req.Transcript, draft)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toScheduleRequestResponse(merged))
}

func (h *Handler) createSchedule(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req scheduleRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule, err := h.schedules.CreateSchedule(c.Request.Context(), principal, request)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toScheduleResponse(*schedule))
}

func (h *Handler) listSchedules(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	schedules, err := h.schedules.ListSchedules(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	responses := make([]scheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		responses = append(responses, toScheduleResponse(schedule))
	}
	c.JSON(http.StatusOK, gin.H{"schedules": responses})
}

type assignDateRequest struct {
	Date string `json:"date" binding:"required"`
}

func (h *Handler) assignDate(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	instanceID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid instance id"})
		return
	}

	var req assignDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	if err := h.schedules.AssignDate(c.Request.Context(), principal, instanceID, date); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) exportSchedule(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	scheduleID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return
	}

	result, err := h.schedules.ExportSchedule(c.Request.Context(), principal, scheduleID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Content)
}

type lineItemPayload struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
}

type createLinesRequest struct {
	Lines []lineItemPayload `json:"lines" binding:"required"`
}

func (h *Handler) createQuote(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lines := make([]service.QuoteLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		productID, err := uuid.Parse(strings.TrimSpace(line.ProductID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id"})
			return
		}
		lines = append(lines, service.QuoteLineInput{
			ProductID: productID,
			Quantity:  decimal.NewFromFloat(line.Quantity),
		})
	}

	quote, err := h.quotes.CreateQuote(c.Request.Context(), principal, lines)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toQuoteResponse(*quote))
}

func (h *Handler) createOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lines := make([]service.OrderLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		productID, err := uuid.Parse(strings.TrimSpace(line.ProductID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id"})
			return
		}
		lines = append(lines, service.OrderLineInput{
			ProductID: productID,
			Quantity:  decimal.NewFromFloat(line.Quantity),
		})
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), principal, lines)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrIdentityResolution):
		c.JSON(http.StatusForbidden, gin.H{"error": "permission check failed"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInstanceNotFound), errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrVoiceProcessing):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

func (p scheduleRequestPayload) toModel() (model.ScheduleRequest, error) {
	request := model.ScheduleRequest{
		ApplicationTypeName: p.ApplicationTypeName,
		CustomTypeName:      p.CustomTypeName,
		ApplicationCount:    p.ApplicationCount,
		CycleDays:           p.CycleDays,
		AreaHectares:        p.AreaHectares,
	}

	if p.StartDate != "" {
		start, err := parseDate(p.StartDate)
		if err != nil {
			return model.ScheduleRequest{}, errors.New("invalid start_date")
		}
		request.StartDate = start
	}

	for _, sel := range p.SelectedProducts {
		selection := model.ProductSelection{
			ProductName:    sel.ProductName,
			DosePerHectare: sel.DosePerHectare,
		}
		if sel.ProductID != "" {
			productID, err := uuid.Parse(strings.TrimSpace(sel.ProductID))
			if err != nil {
				return model.ScheduleRequest{}, errors.New("invalid product_id")
			}
			selection.ProductID = productID
		}
		if sel.ExplicitDate != "" {
			explicit, err := parseDate(sel.ExplicitDate)
			if err != nil {
				return model.ScheduleRequest{}, errors.New("invalid explicit_date")
			}
			selection.ExplicitDate = &explicit
		}
		request.SelectedProducts = append(request.SelectedProducts, selection)
	}
	return request, nil
}
