// Package filter derives the visible device list for the admin console.
package filter

import (
	"strings"

	"netshield/internal/models"
)

// AllDomains disables domain filtering.
const AllDomains = "all"

// Apply returns the devices matching domainFilter and query, in input order.
// The input slice is never modified.
//
// A domainFilter other than AllDomains keeps devices whose lowercased domain
// equals it exactly. A non-empty query keeps devices whose device id, user id
// or ssid contains it, ignoring case.
func Apply(devices []models.DeviceStatus, domainFilter, query string) []models.DeviceStatus {
	q := strings.ToLower(query)
	out := make([]models.DeviceStatus, 0, len(devices))
	for _, d := range devices {
		if !matchesDomain(d, domainFilter) {
			continue
		}
		if q != "" && !matchesQuery(d, q) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func matchesDomain(d models.DeviceStatus, domainFilter string) bool {
	if domainFilter == AllDomains {
		return true
	}
	return strings.ToLower(d.Domain) == domainFilter
}

func matchesQuery(d models.DeviceStatus, q string) bool {
	return strings.Contains(strings.ToLower(d.DeviceID), q) ||
		strings.Contains(strings.ToLower(d.UserID), q) ||
		strings.Contains(strings.ToLower(d.SSID), q)
}

// Domains lists the distinct lowercased domains of a batch in first-seen
// order, prefixed by AllDomains. Blank domains are skipped.
func Domains(devices []models.DeviceStatus, extra ...string) []string {
	seen := map[string]struct{}{AllDomains: {}}
	out := []string{AllDomains}
	add := func(domain string) {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain == "" {
			return
		}
		if _, ok := seen[domain]; ok {
			return
		}
		seen[domain] = struct{}{}
		out = append(out, domain)
	}
	for _, d := range extra {
		add(d)
	}
	for _, d := range devices {
		add(d.Domain)
	}
	return out
}
