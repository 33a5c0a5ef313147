package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"netshield/internal/models"
)

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, models.Summary{}, Summarize(nil))
}

func TestSummarize(t *testing.T) {
	devices := []models.DeviceStatus{
		{DeviceID: "d1", SignalPercent: 80, AvgPingMs: 20, ExperienceScore: 90},
		{DeviceID: "d2", SignalPercent: 45, AvgPingMs: 120, ExperienceScore: 30},
		{DeviceID: "d3", SignalPercent: 61, AvgPingMs: 41, ExperienceScore: 30},
	}

	got := Summarize(devices)

	assert.Equal(t, 3, got.Devices)
	assert.InDelta(t, 62, got.AvgSignalPercent, 0.001)
	assert.InDelta(t, 60.33, got.AvgPingMs, 0.001)
	assert.InDelta(t, 50, got.AvgExperienceScore, 0.001)
	assert.Equal(t, "d2", got.WeakestDeviceID)
}
