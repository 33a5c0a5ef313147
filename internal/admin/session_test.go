package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"netshield/internal/filter"
	"netshield/internal/models"
)

func homeWork() []models.DeviceStatus {
	return []models.DeviceStatus{
		{DeviceID: "d1", Domain: "home", SSID: "esperance"},
		{DeviceID: "d2", Domain: "work", SSID: "esperance"},
	}
}

func TestSetNetworkFetchesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := NewMockDeviceFetcher(ctrl)
	fetcher.EXPECT().
		FetchDevices(gomock.Any(), "esperance").
		Return(homeWork(), nil).
		Times(1)

	s := Dispatch(context.Background(), fetcher, NewState(), SetNetwork{NetworkID: "esperance"})

	assert.Equal(t, "esperance", s.NetworkID)
	assert.False(t, s.Loading)
	require.NoError(t, s.Err)
	assert.Len(t, s.Devices, 2)
}

func TestSetSameNetworkDoesNotRefetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := NewMockDeviceFetcher(ctrl)
	fetcher.EXPECT().FetchDevices(gomock.Any(), "esperance").Return(homeWork(), nil).Times(1)

	s := Dispatch(context.Background(), fetcher, NewState(), SetNetwork{NetworkID: "esperance"})
	s = Dispatch(context.Background(), fetcher, s, SetNetwork{NetworkID: " esperance "})

	assert.Len(t, s.Devices, 2)
}

func TestChangeNetworkFetchesAgain(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := NewMockDeviceFetcher(ctrl)
	gomock.InOrder(
		fetcher.EXPECT().FetchDevices(gomock.Any(), "esperance").Return(homeWork(), nil),
		fetcher.EXPECT().FetchDevices(gomock.Any(), "KIIT-WIFI-DU").Return([]models.DeviceStatus{{DeviceID: "d9"}}, nil),
	)

	s := Dispatch(context.Background(), fetcher, NewState(), SetNetwork{NetworkID: "esperance"})
	s = Dispatch(context.Background(), fetcher, s, SetNetwork{NetworkID: "KIIT-WIFI-DU"})

	require.Len(t, s.Devices, 1)
	assert.Equal(t, "d9", s.Devices[0].DeviceID)
}

func TestClearNetworkEmptiesWithoutFetching(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := NewMockDeviceFetcher(ctrl)
	fetcher.EXPECT().FetchDevices(gomock.Any(), gomock.Any()).Times(0)

	s := NewState()
	s.NetworkID = "esperance"
	s.Devices = homeWork()

	s = Dispatch(context.Background(), fetcher, s, ClearNetwork{})

	assert.Empty(t, s.NetworkID)
	assert.NotNil(t, s.Devices)
	assert.Empty(t, s.Devices)
	assert.Empty(t, s.Visible())

	s = Dispatch(context.Background(), fetcher, s, ClearNetwork{})
	assert.Empty(t, s.Devices)
}

func TestBlankNetworkIgnored(t *testing.T) {
	s, fetch := Reduce(NewState(), SetNetwork{NetworkID: "   "})
	assert.Nil(t, fetch)
	assert.Empty(t, s.NetworkID)
}

func TestStaleResponseDiscarded(t *testing.T) {
	s, first := Reduce(NewState(), SetNetwork{NetworkID: "a"})
	require.NotNil(t, first)
	s, second := Reduce(s, SetNetwork{NetworkID: "b"})
	require.NotNil(t, second)

	s, _ = Reduce(s, DevicesLoaded{NetworkID: "b", Devices: []models.DeviceStatus{{DeviceID: "from-b"}}})
	s, _ = Reduce(s, DevicesLoaded{NetworkID: "a", Devices: []models.DeviceStatus{{DeviceID: "from-a"}}})

	require.Len(t, s.Devices, 1)
	assert.Equal(t, "from-b", s.Devices[0].DeviceID)
}

func TestResponseAfterClearDiscarded(t *testing.T) {
	s, fetch := Reduce(NewState(), SetNetwork{NetworkID: "a"})
	require.NotNil(t, fetch)
	s, _ = Reduce(s, ClearNetwork{})
	s, _ = Reduce(s, DevicesLoaded{NetworkID: "a", Devices: homeWork()})

	assert.Empty(t, s.Devices)
	assert.False(t, s.Loading)
}

func TestFailedLoadRecordsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := NewMockDeviceFetcher(ctrl)
	boom := errors.New("Device fetch failed: 503")
	fetcher.EXPECT().FetchDevices(gomock.Any(), "esperance").Return(nil, boom)

	s := NewState()
	s.Devices = homeWork()
	s = Dispatch(context.Background(), fetcher, s, SetNetwork{NetworkID: "esperance"})

	assert.ErrorIs(t, s.Err, boom)
	assert.NotNil(t, s.Devices)
	assert.Empty(t, s.Devices)
}

func TestVisibleRecomputedFromState(t *testing.T) {
	s := NewState()
	s.Devices = homeWork()

	s, _ = Reduce(s, SetFilter{Filter: "home"})
	assert.Equal(t, "d1", s.Visible()[0].DeviceID)
	assert.Len(t, s.Visible(), 1)

	s, _ = Reduce(s, SetFilter{Filter: filter.AllDomains})
	s, _ = Reduce(s, SetQuery{Query: "d2"})
	require.Len(t, s.Visible(), 1)
	assert.Equal(t, "d2", s.Visible()[0].DeviceID)

	s, _ = Reduce(s, SetFilter{Filter: ""})
	assert.Equal(t, filter.AllDomains, s.Filter)
}

func TestSetFilterIgnoresCase(t *testing.T) {
	s := NewState()
	s.Devices = homeWork()

	s, _ = Reduce(s, SetFilter{Filter: " Home "})

	assert.Equal(t, "home", s.Filter)
	require.Len(t, s.Visible(), 1)
	assert.Equal(t, "d1", s.Visible()[0].DeviceID)

	s, _ = Reduce(s, SetFilter{Filter: "ALL"})
	assert.Equal(t, filter.AllDomains, s.Filter)
	assert.Len(t, s.Visible(), 2)
}

func TestReduceDoesNotMutatePreviousState(t *testing.T) {
	before := NewState()
	before.Devices = homeWork()

	after, _ := Reduce(before, ClearNetwork{})

	assert.Len(t, before.Devices, 2)
	assert.Empty(t, after.Devices)
}
