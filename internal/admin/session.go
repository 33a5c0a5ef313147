// Package admin holds the operator console state and its transitions.
//
// State is an immutable value; Reduce returns the next state plus, at most,
// one fetch to perform. The visible device list is never stored: it is
// derived from the state on demand.
package admin

import (
	"context"
	"strings"

	"netshield/internal/filter"
	"netshield/internal/models"
)

//go:generate mockgen -destination=mock_fetcher.go -package=admin netshield/internal/admin DeviceFetcher

// DeviceFetcher loads the devices of one network.
type DeviceFetcher interface {
	FetchDevices(ctx context.Context, ssid string) ([]models.DeviceStatus, error)
}

// State is the minimal console state.
type State struct {
	Filter    string
	Query     string
	NetworkID string
	Devices   []models.DeviceStatus
	Loading   bool
	Err       error
}

// NewState returns the initial state: no network, all domains, empty query.
func NewState() State {
	return State{
		Filter:  filter.AllDomains,
		Devices: []models.DeviceStatus{},
	}
}

// Visible derives the filtered device list.
func (s State) Visible() []models.DeviceStatus {
	return filter.Apply(s.Devices, s.Filter, s.Query)
}

// Action is an input to Reduce.
type Action interface {
	isAction()
}

// SetFilter selects a domain, or filter.AllDomains. Domains match
// case-insensitively.
type SetFilter struct{ Filter string }

// SetQuery sets the free-text search.
type SetQuery struct{ Query string }

// SetNetwork selects the network whose devices are shown.
type SetNetwork struct{ NetworkID string }

// ClearNetwork drops the selected network and its devices.
type ClearNetwork struct{}

// DevicesLoaded carries a fetch result tagged with the network it was
// issued for.
type DevicesLoaded struct {
	NetworkID string
	Devices   []models.DeviceStatus
	Err       error
}

func (SetFilter) isAction()     {}
func (SetQuery) isAction()      {}
func (SetNetwork) isAction()    {}
func (ClearNetwork) isAction()  {}
func (DevicesLoaded) isAction() {}

// Fetch is the side effect Reduce asks the caller to run.
type Fetch struct {
	NetworkID string
}

// Reduce applies a to s. The returned Fetch is nil unless a device lookup
// must be issued.
func Reduce(s State, a Action) (State, *Fetch) {
	switch a := a.(type) {
	case SetFilter:
		f := strings.ToLower(strings.TrimSpace(a.Filter))
		if f == "" {
			f = filter.AllDomains
		}
		s.Filter = f
		return s, nil

	case SetQuery:
		s.Query = a.Query
		return s, nil

	case SetNetwork:
		id := strings.TrimSpace(a.NetworkID)
		if id == "" || id == s.NetworkID {
			return s, nil
		}
		s.NetworkID = id
		s.Loading = true
		s.Err = nil
		return s, &Fetch{NetworkID: id}

	case ClearNetwork:
		s.NetworkID = ""
		s.Devices = []models.DeviceStatus{}
		s.Loading = false
		s.Err = nil
		return s, nil

	case DevicesLoaded:
		if a.NetworkID != s.NetworkID {
			return s, nil
		}
		s.Loading = false
		s.Err = a.Err
		if a.Err != nil || a.Devices == nil {
			s.Devices = []models.DeviceStatus{}
		} else {
			s.Devices = a.Devices
		}
		return s, nil
	}
	return s, nil
}

// Run performs a fetch and converts the outcome into a DevicesLoaded.
func Run(ctx context.Context, f DeviceFetcher, fetch Fetch) DevicesLoaded {
	devices, err := f.FetchDevices(ctx, fetch.NetworkID)
	return DevicesLoaded{NetworkID: fetch.NetworkID, Devices: devices, Err: err}
}

// Dispatch reduces a and runs any resulting fetch synchronously.
func Dispatch(ctx context.Context, f DeviceFetcher, s State, a Action) State {
	next, fetch := Reduce(s, a)
	if fetch == nil {
		return next
	}
	next, _ = Reduce(next, Run(ctx, f, *fetch))
	return next
}
