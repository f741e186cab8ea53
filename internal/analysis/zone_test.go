package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchflow/config"
	"pitchflow/internal/models"
)

func recWithBounds(top, bottom float64) models.PitchRecord {
	return models.PitchRecord{ZoneTop: fptr(top), ZoneBottom: fptr(bottom)}
}

func TestEstimateStrikeZoneAveragesBounds(t *testing.T) {
	records := []models.PitchRecord{
		recWithBounds(3.4, 1.6),
		recWithBounds(3.0, 1.4),
		{}, // no bounds, must be ignored
		recWithBounds(3.2, 1.5),
	}

	zone := EstimateStrikeZone(records, config.DefaultPlateHalfWidth)
	require.NotNil(t, zone)

	assert.InDelta(t, 3.2, zone.Top, 1e-9)
	assert.InDelta(t, 1.5, zone.Bottom, 1e-9)
	assert.Equal(t, -0.708333, zone.Left)
	assert.Equal(t, 0.708333, zone.Right)
}

func TestEstimateStrikeZoneUndefinedWithoutBounds(t *testing.T) {
	records := []models.PitchRecord{
		{X: 0.1, Z: 2.2},
		{X: -0.2, Z: 1.8, ZoneTop: fptr(3.4)}, // top only is not enough
	}
	assert.Nil(t, EstimateStrikeZone(records, config.DefaultPlateHalfWidth))
	assert.Nil(t, EstimateStrikeZone(nil, config.DefaultPlateHalfWidth))
}

func TestEstimateStrikeZoneUsesConfiguredHalfWidth(t *testing.T) {
	zone := EstimateStrikeZone([]models.PitchRecord{recWithBounds(3.0, 1.5)}, 0.75)
	require.NotNil(t, zone)
	assert.Equal(t, -0.75, zone.Left)
	assert.Equal(t, 0.75, zone.Right)
}
