package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ApplicationTypeOther marks a schedule whose application type was typed in
// by the user instead of picked from the fixed list.
const ApplicationTypeOther = "Otro"

// Schedule is a cronograma header: N applications every cycle_days days
// starting at start_date, for one client entity's crop area.
type Schedule struct {
	ID                  uuid.UUID
	EntityID            uuid.UUID
	ApplicationTypeName string
	ApplicationCount    int
	CycleDays           int
	AreaHectares        float64
	StartDate           time.Time
	CreatedAt           time.Time
	Instances           []ApplicationInstance `gorm:"-"`
}

// ApplicationInstance is one dated product application belonging to a
// schedule. One row exists per (occurrence index × selected product); the
// concrete date stays unset until the user assigns it.
type ApplicationInstance struct {
	ID              uuid.UUID
	ScheduleID      uuid.UUID
	OccurrenceIndex int
	ProductID       *uuid.UUID // nil when the product was a free-text voice label
	ProductName     string
	DosePerHectare  float64
	AreaHectares    float64
	ScheduledDate   *time.Time
}

// ScheduleRequest is the transient input assembled by the manual form and
// the voice interpreter before a schedule is created.
type ScheduleRequest struct {
	ApplicationTypeName string
	CustomTypeName      string // required when ApplicationTypeName is "Otro"
	ApplicationCount    int
	CycleDays           int
	AreaHectares        float64
	StartDate           time.Time
	SelectedProducts    []ProductSelection
}

// EffectiveTypeName is the label a schedule is stored and listed under.
func (s ScheduleRequest) EffectiveTypeName() string {
	if s.ApplicationTypeName == ApplicationTypeOther {
		return s.CustomTypeName
	}
	return s.ApplicationTypeName
}

// ProductSelection is one product the user picked for every occurrence of a
// schedule. ProductID is Nil when the name never resolved against the
// catalog; the raw name is kept as the display label.
type ProductSelection struct {
	ProductID      uuid.UUID
	ProductName    string
	DosePerHectare float64
	ExplicitDate   *time.Time
}

// IsValid reports whether a persisted schedule is complete enough to show.
// Legacy rows with zeroed numerics or an unparseable creation stamp are
// quarantined from listings, never deleted.
func (s Schedule) IsValid() bool {
	return s.ApplicationTypeName != "" &&
		s.ApplicationCount > 0 &&
		s.CycleDays > 0 &&
		s.AreaHectares > 0 &&
		!s.CreatedAt.IsZero()
}

// VolumePerOccurrence is the advisory liters (or unit mass) one occurrence
// of the given selection consumes.
func (s ScheduleRequest) VolumePerOccurrence(sel ProductSelection) float64 {
	return s.AreaHectares * sel.DosePerHectare
}

// TotalVolume is VolumePerOccurrence across every occurrence.
func (s ScheduleRequest) TotalVolume(sel ProductSelection) float64 {
	return s.VolumePerOccurrence(sel) * float64(s.ApplicationCount)
}

// FormatVolume renders an advisory volume the way the portal displays it:
// rounding happens here and nowhere earlier.
func FormatVolume(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
