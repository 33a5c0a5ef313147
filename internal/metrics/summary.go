package metrics

import (
	"math"

	"netshield/internal/models"
)

// Summarize aggregates one device batch. The weakest device is the one with
// the lowest experience score; ties keep the earliest device in the batch.
func Summarize(devices []models.DeviceStatus) models.Summary {
	if len(devices) == 0 {
		return models.Summary{}
	}

	var signal, ping, score float64
	weakest := 0
	for i, d := range devices {
		signal += d.SignalPercent
		ping += d.AvgPingMs
		score += d.ExperienceScore
		if d.ExperienceScore < devices[weakest].ExperienceScore {
			weakest = i
		}
	}

	n := float64(len(devices))
	return models.Summary{
		Devices:            len(devices),
		AvgSignalPercent:   round2(signal / n),
		AvgPingMs:          round2(ping / n),
		AvgExperienceScore: round2(score / n),
		WeakestDeviceID:    devices[weakest].DeviceID,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
