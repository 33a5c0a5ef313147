package models

import "time"

// DeviceStatus is the per-device telemetry record reported by the backend.
// Values are computed upstream and treated as read-only once received.
type DeviceStatus struct {
	DeviceID        string  `json:"device_id"`
	UserID          string  `json:"user_id"`
	Domain          string  `json:"domain"`
	LastSeen        string  `json:"last_seen"`
	SSID            string  `json:"ssid"`
	InterfaceName   string  `json:"interface_name"`
	SignalPercent   float64 `json:"signal_percent"`
	AvgPingMs       float64 `json:"avg_ping_ms"`
	ExperienceScore float64 `json:"experience_score"`
}

// DevicesResponse is the payload of the admin device lookup.
type DevicesResponse struct {
	Devices []DeviceStatus `json:"devices"`
}

// ErrorResponse is written by the console for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Summary aggregates a single device batch for display.
type Summary struct {
	Devices            int     `json:"devices"`
	AvgSignalPercent   float64 `json:"avg_signal_percent"`
	AvgPingMs          float64 `json:"avg_ping_ms"`
	AvgExperienceScore float64 `json:"avg_experience_score"`
	WeakestDeviceID    string  `json:"weakest_device_id,omitempty"`
}

// StatusSnapshot is pushed over the status stream.
type StatusSnapshot struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Devices     []DeviceStatus `json:"devices"`
	Summary     Summary        `json:"summary"`
	Error       string         `json:"error,omitempty"`
}
