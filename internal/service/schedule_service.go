package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/agrovivo/biocampo-api/internal/model"
	"github.com/agrovivo/biocampo-api/internal/repository"
)

// ScheduleStore is the persistence surface the engine needs.
type ScheduleStore interface {
	CreateSchedule(ctx context.Context, schedule *model.Schedule) error
	GetSchedule(ctx context.Context, id uuid.UUID) (*model.Schedule, error)
	ListSchedulesByEntity(ctx context.Context, entityID uuid.UUID) ([]model.Schedule, error)
	GetInstanceContext(ctx context.Context, instanceID uuid.UUID) (*repository.InstanceContext, error)
	UpdateInstanceDate(ctx context.Context, instanceID uuid.UUID, date time.Time) error
}

// ExcelGenerator renders a schedule to a spreadsheet for download.
type ExcelGenerator interface {
	Generate(schedule model.Schedule) ([]byte, error)
}

// ScheduleService is the cronograma engine: it expands a cadence request
// into dated application instances, assigns concrete dates to them, and
// lists an entity's schedules through the validity filter.
type ScheduleService struct {
	store    ScheduleStore
	identity *IdentityResolver
	excel    ExcelGenerator
	log      zerolog.Logger
}

func NewScheduleService(store ScheduleStore, identity *IdentityResolver, excel ExcelGenerator, log zerolog.Logger) *ScheduleService {
	return &ScheduleService{
		store:    store,
		identity: identity,
		excel:    excel,
		log:      log,
	}
}

// CreateSchedule validates the request, expands the occurrence × product
// cross-product into application instances and persists the result under
// the acting user's entity. Validation happens before any write; a write
// failure after the header is created is surfaced, not compensated.
func (s *ScheduleService) CreateSchedule(ctx context.Context, principal model.Principal, req model.ScheduleRequest) (*model.Schedule, error) {
	acting, err := s.identity.Resolve(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	if err := validateScheduleRequest(req); err != nil {
		return nil, err
	}

	schedule := &model.Schedule{
		ID:                  uuid.New(),
		EntityID:            acting.EntityID,
		ApplicationTypeName: req.EffectiveTypeName(),
		ApplicationCount:    req.ApplicationCount,
		CycleDays:           req.CycleDays,
		AreaHectares:        req.AreaHectares,
		StartDate:           dateOnly(req.StartDate),
		CreatedAt:           time.Now().UTC(),
	}

	for occurrence := 1; occurrence <= req.ApplicationCount; occurrence++ {
		for _, sel := range req.SelectedProducts {
			instance := model.ApplicationInstance{
				ID:              uuid.New(),
				ScheduleID:      schedule.ID,
				OccurrenceIndex: occurrence,
				ProductName:     sel.ProductName,
				DosePerHectare:  sel.DosePerHectare,
				AreaHectares:    req.AreaHectares,
			}
			if sel.ProductID != uuid.Nil {
				productID := sel.ProductID
				instance.ProductID = &productID
			}
			if occurrence == 1 && sel.ExplicitDate != nil {
				explicit := dateOnly(*sel.ExplicitDate)
				instance.ScheduledDate = &explicit
			}
			schedule.Instances = append(schedule.Instances, instance)
		}
	}

	if err := s.store.CreateSchedule(ctx, schedule); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("schedule_id", schedule.ID.String()).
		Str("entity_id", schedule.EntityID.String()).
		Int("instances", len(schedule.Instances)).
		Msg("schedule created")
	return schedule, nil
}

// AssignDate sets or overwrites one instance's concrete date. The date must
// not precede the owning schedule's start date (inclusive bound) when that
// start date is known. Re-assignment keeps no history.
func (s *ScheduleService) AssignDate(ctx context.Context, principal model.Principal, instanceID uuid.UUID, date time.Time) error {
	acting, err := s.identity.Resolve(ctx, principal.UserID)
	if err != nil {
		return err
	}

	instanceCtx, err := s.store.GetInstanceContext(ctx, instanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInstanceNotFound
		}
		return err
	}

	if instanceCtx.EntityID != acting.EntityID {
		return ErrPermissionDenied
	}

	day := dateOnly(date)
	if !instanceCtx.StartDate.IsZero() && day.Before(dateOnly(instanceCtx.StartDate)) {
		return fmt.Errorf("%w: date precedes schedule start %s", ErrInvalidInput,
			instanceCtx.StartDate.Format("2006-01-02"))
	}

	if err := s.store.UpdateInstanceDate(ctx, instanceID, day); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInstanceNotFound
		}
		return err
	}
	return nil
}

// ListSchedules returns the acting user's entity schedules, hiding rows the
// validity filter rejects. Invalid rows stay in the store.
func (s *ScheduleService) ListSchedules(ctx context.Context, principal model.Principal) ([]model.Schedule, error) {
	acting, err := s.identity.Resolve(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	schedules, err := s.store.ListSchedulesByEntity(ctx, acting.EntityID)
	if err != nil {
		return nil, err
	}

	visible := make([]model.Schedule, 0, len(schedules))
	for _, schedule := range schedules {
		if schedule.IsValid() {
			visible = append(visible, schedule)
		}
	}
	return visible, nil
}

// ExportResult is a downloadable rendering of one schedule.
type ExportResult struct {
	FileName string
	Content  []byte
}

func (s *ScheduleService) ExportSchedule(ctx context.Context, principal model.Principal, scheduleID uuid.UUID) (*ExportResult, error) {
	acting, err := s.identity.Resolve(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	schedule, err := s.store.GetSchedule(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if schedule.EntityID != acting.EntityID {
		return nil, ErrPermissionDenied
	}

	content, err := s.excel.Generate(*schedule)
	if err != nil {
		return nil, err
	}

	name := sanitizeFileName(schedule.ApplicationTypeName)
	if name == "" {
		name = schedule.ID.String()
	}
	fileName := fmt.Sprintf("cronograma-%s-%s.xlsx", name, schedule.StartDate.Format("20060102"))
	return &ExportResult{FileName: fileName, Content: content}, nil
}

func validateScheduleRequest(req model.ScheduleRequest) error {
	if req.EffectiveTypeName() == "" {
		if req.ApplicationTypeName == model.ApplicationTypeOther {
			return fmt.Errorf("%w: custom application type name is required", ErrInvalidInput)
		}
		return fmt.Errorf("%w: application type name is required", ErrInvalidInput)
	}
	if req.ApplicationCount <= 0 {
		return fmt.Errorf("%w: application count must be positive", ErrInvalidInput)
	}
	if req.CycleDays <= 0 {
		return fmt.Errorf("%w: cycle days must be positive", ErrInvalidInput)
	}
	if req.AreaHectares <= 0 {
		return fmt.Errorf("%w: area must be positive", ErrInvalidInput)
	}
	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalidInput)
	}
	if len(req.SelectedProducts) == 0 {
		return fmt.Errorf("%w: at least one product must be selected", ErrInvalidInput)
	}
	start := dateOnly(req.StartDate)
	for _, sel := range req.SelectedProducts {
		if strings.TrimSpace(sel.ProductName) == "" {
			return fmt.Errorf("%w: product name is required", ErrInvalidInput)
		}
		if sel.DosePerHectare <= 0 {
			return fmt.Errorf("%w: dose for %s must be positive", ErrInvalidInput, sel.ProductName)
		}
		if sel.ExplicitDate != nil && dateOnly(*sel.ExplicitDate).Before(start) {
			return fmt.Errorf("%w: date for %s precedes schedule start", ErrInvalidInput, sel.ProductName)
		}
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
