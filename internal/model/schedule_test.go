package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVolumeArithmetic(t *testing.T) {
	req := ScheduleRequest{
		ApplicationCount: 3,
		AreaHectares:     10,
	}
	sel := ProductSelection{DosePerHectare: 1.5}

	perOccurrence := req.VolumePerOccurrence(sel)
	assert.Equal(t, 15.0, perOccurrence)
	assert.Equal(t, 45.0, req.TotalVolume(sel))

	// Rounding happens only at display formatting.
	assert.Equal(t, "15.0", FormatVolume(perOccurrence))
	assert.Equal(t, "45.0", FormatVolume(req.TotalVolume(sel)))
}

func TestFormatVolumeRoundsToOneDecimal(t *testing.T) {
	assert.Equal(t, "7.1", FormatVolume(7.06))
	assert.Equal(t, "0.3", FormatVolume(0.25000000001))
}

func TestScheduleValidity(t *testing.T) {
	base := Schedule{
		ApplicationTypeName: "Fertilización",
		ApplicationCount:    2,
		CycleDays:           10,
		AreaHectares:        5,
		CreatedAt:           time.Now(),
	}
	assert.True(t, base.IsValid())

	broken := base
	broken.CycleDays = 0
	assert.False(t, broken.IsValid())

	broken = base
	broken.ApplicationTypeName = ""
	assert.False(t, broken.IsValid())

	broken = base
	broken.AreaHectares = 0
	assert.False(t, broken.IsValid())

	broken = base
	broken.CreatedAt = time.Time{}
	assert.False(t, broken.IsValid())
}

func TestEffectiveTypeName(t *testing.T) {
	req := ScheduleRequest{ApplicationTypeName: "Fertilización"}
	assert.Equal(t, "Fertilización", req.EffectiveTypeName())

	req = ScheduleRequest{ApplicationTypeName: ApplicationTypeOther, CustomTypeName: "Control de plagas"}
	assert.Equal(t, "Control de plagas", req.EffectiveTypeName())

	req = ScheduleRequest{ApplicationTypeName: ApplicationTypeOther}
	assert.Equal(t, "", req.EffectiveTypeName())
}
