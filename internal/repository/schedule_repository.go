package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrovivo/biocampo-api/internal/model"
)

// instanceBatchSize caps multi-row inserts against the store; larger
// schedules are split into consecutive batches.
const instanceBatchSize = 10

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// CreateSchedule persists the header and then the instance rows in batches.
// There is intentionally no transaction: a failed instance batch surfaces
// as an error while the already-written header stays behind (legacy rows
// like that are quarantined by the validity filter, not rolled back).
func (r *ScheduleRepository) CreateSchedule(ctx context.Context, schedule *model.Schedule) error {
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO schedules (id, entity_id, application_type_name, application_count, cycle_days, area_hectares, start_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, schedule.ID, schedule.EntityID, schedule.ApplicationTypeName, schedule.ApplicationCount,
		schedule.CycleDays, schedule.AreaHectares, schedule.StartDate, schedule.CreatedAt).Error
	if err != nil {
		return err
	}

	for start := 0; start < len(schedule.Instances); start += instanceBatchSize {
		end := start + instanceBatchSize
		if end > len(schedule.Instances) {
			end = len(schedule.Instances)
		}
		if err := r.insertInstanceBatch(ctx, schedule.Instances[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *ScheduleRepository) insertInstanceBatch(ctx context.Context, instances []model.ApplicationInstance) error {
	if len(instances) == 0 {
		return nil
	}

	values := make([]string, 0, len(instances))
	args := make([]interface{}, 0, len(instances)*8)
	for _, instance := range instances {
		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			instance.ID, instance.ScheduleID, instance.OccurrenceIndex, instance.ProductID,
			instance.ProductName, instance.DosePerHectare, instance.AreaHectares, instance.ScheduledDate)
	}

	query := `
		INSERT INTO application_instances (id, schedule_id, occurrence_index, product_id, product_name, dose_per_hectare, area_hectares, scheduled_date)
		VALUES ` + strings.Join(values, ", ")
	return r.db.WithContext(ctx).Exec(query, args...).Error
}

func (r *ScheduleRepository) GetSchedule(ctx context.Context, id uuid.UUID) (*model.Schedule, error) {
	var schedule model.Schedule
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, entity_id, application_type_name, application_count, cycle_days, area_hectares, start_date, created_at
		FROM schedules
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&schedule).Error; err != nil {
		return nil, err
	}
	if schedule.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	instances, err := r.listInstances(ctx, []uuid.UUID{schedule.ID})
	if err != nil {
		return nil, err
	}
	schedule.Instances = instances
	return &schedule, nil
}

func (r *ScheduleRepository) ListSchedulesByEntity(ctx context.Context, entityID uuid.UUID) ([]model.Schedule, error) {
	var schedules []model.Schedule
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, entity_id, application_type_name, application_count, cycle_days, area_hectares, start_date, created_at
		FROM schedules
		WHERE entity_id = ?
		ORDER BY created_at DESC
	`, entityID).Scan(&schedules).Error; err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return schedules, nil
	}

	ids := make([]uuid.UUID, 0, len(schedules))
	for _, s := range schedules {
		ids = append(ids, s.ID)
	}
	instances, err := r.listInstances(ctx, ids)
	if err != nil {
		return nil, err
	}

	bySchedule := make(map[uuid.UUID][]model.ApplicationInstance, len(schedules))
	for _, instance := range instances {
		bySchedule[instance.ScheduleID] = append(bySchedule[instance.ScheduleID], instance)
	}
	for i := range schedules {
		schedules[i].Instances = bySchedule[schedules[i].ID]
	}
	return schedules, nil
}

func (r *ScheduleRepository) listInstances(ctx context.Context, scheduleIDs []uuid.UUID) ([]model.ApplicationInstance, error) {
	var instances []model.ApplicationInstance
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, schedule_id, occurrence_index, product_id, product_name, dose_per_hectare, area_hectares, scheduled_date
		FROM application_instances
		WHERE schedule_id = ANY(?)
		ORDER BY occurrence_index ASC, product_name ASC
	`, scheduleIDs).Scan(&instances).Error; err != nil {
		return nil, err
	}
	return instances, nil
}

// InstanceContext is an instance row joined with the owning schedule's
// scoping and date-bound fields.
type InstanceContext struct {
	Instance   model.ApplicationInstance
	EntityID   uuid.UUID
	StartDate  time.Time
	ScheduleID uuid.UUID
}

func (r *ScheduleRepository) GetInstanceContext(ctx context.Context, instanceID uuid.UUID) (*InstanceContext, error) {
	var row struct {
		ID              uuid.UUID
		ScheduleID      uuid.UUID
		OccurrenceIndex int
		ProductID       *uuid.UUID
		ProductName     string
		DosePerHectare  float64
		AreaHectares    float64
		ScheduledDate   *time.Time
		EntityID        uuid.UUID
		StartDate       time.Time
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT
			ai.id,
			ai.schedule_id,
			ai.occurrence_index,
			ai.product_id,
			ai.product_name,
			ai.dose_per_hectare,
			ai.area_hectares,
			ai.scheduled_date,
			s.entity_id,
			s.start_date
		FROM application_instances ai
		JOIN schedules s ON s.id = ai.schedule_id
		WHERE ai.id = ?
		LIMIT 1
	`, instanceID).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	return &InstanceContext{
		Instance: model.ApplicationInstance{
			ID:              row.ID,
			ScheduleID:      row.ScheduleID,
			OccurrenceIndex: row.OccurrenceIndex,
			ProductID:       row.ProductID,
			ProductName:     row.ProductName,
			DosePerHectare:  row.DosePerHectare,
			AreaHectares:    row.AreaHectares,
			ScheduledDate:   row.ScheduledDate,
		},
		EntityID:   row.EntityID,
		StartDate:  row.StartDate,
		ScheduleID: row.ScheduleID,
	}, nil
}

// UpdateInstanceDate overwrites the scheduled date. Last write wins; no
// history is kept.
func (r *ScheduleRepository) UpdateInstanceDate(ctx context.Context, instanceID uuid.UUID, date time.Time) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE application_instances
		SET scheduled_date = ?
		WHERE id = ?
	`, date, instanceID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
