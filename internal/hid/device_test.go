// SPDX-License-Identifier: GPL-3.0-only

package hid_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/osvr-tools/hdk-logger/internal/hid"
	"github.com/osvr-tools/hdk-logger/internal/hid/mocks"
)

// openTestDevice opens an ExclusiveDevice backed by the given raw handle
// through a scripted session.
func openTestDevice(t *testing.T, raw hid.RawDevice) *hid.ExclusiveDevice {
	t.Helper()

	backend := &fakeBackend{
		openPathFn: func(path string) (hid.RawDevice, error) {
			return raw, nil
		},
	}
	session := newTestSession(t, backend)

	dev, err := session.OpenPath("/dev/hidraw0")
	require.NoError(t, err)
	return dev
}

func TestExclusiveDevice_EmptyHandleIsInvalid(t *testing.T) {
	var nilDev *hid.ExclusiveDevice
	assert.False(t, nilDev.IsOpen())
	assert.Empty(t, nilDev.Path())

	_, err := nilDev.Read(hid.DefaultMaxLength)
	assert.ErrorIs(t, err, hid.ErrDeviceClosed)

	var zero hid.ExclusiveDevice
	assert.False(t, zero.IsOpen())

	_, err = zero.GetFeatureReport(0x01, 16)
	assert.ErrorIs(t, err, hid.ErrDeviceClosed)
	assert.ErrorIs(t, zero.SetNonblocking(true), hid.ErrDeviceClosed)
	assert.NoError(t, zero.Close())
}

func TestExclusiveDevice_Read(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(raw *mocks.MockRawDevice)
		maxLength int
		wantData  []byte
		wantErr   bool
	}{
		{
			name: "nothing available returns an empty result, not an error",
			setupMock: func(raw *mocks.MockRawDevice) {
				raw.EXPECT().Read(gomock.Any()).Return(0, nil)
			},
			maxLength: 64,
			wantData:  []byte{},
		},
		{
			name: "result is sliced to the byte count actually read",
			setupMock: func(raw *mocks.MockRawDevice) {
				raw.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
					p[0] = 0x03 // report type tag
					p[1] = 0x10
					p[2] = 0x42
					return 3, nil
				})
			},
			maxLength: 64,
			wantData:  []byte{0x03, 0x10, 0x42},
		},
		{
			name: "device error surfaces, never garbage data",
			setupMock: func(raw *mocks.MockRawDevice) {
				raw.EXPECT().Read(gomock.Any()).Return(-1, errors.New("device disconnected"))
			},
			maxLength: 64,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			raw := mocks.NewMockRawDevice(ctrl)
			tt.setupMock(raw)
			raw.EXPECT().Close().Return(nil).AnyTimes()

			dev := openTestDevice(t, raw)
			data, err := dev.Read(tt.maxLength)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, data)

				var devErr *hid.DeviceError
				require.ErrorAs(t, err, &devErr)
				assert.Equal(t, "read", devErr.Op)
				assert.Contains(t, err.Error(), "device disconnected")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantData, data)
		})
	}
}

func TestExclusiveDevice_Read_LastErrorPreferredWhenCallErrorMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	raw := mocks.NewMockRawDevice(ctrl)
	raw.EXPECT().Read(gomock.Any()).Return(-1, nil)
	raw.EXPECT().Error().Return(errors.New("transfer aborted"))
	raw.EXPECT().Close().Return(nil).AnyTimes()

	dev := openTestDevice(t, raw)
	data, err := dev.Read(32)
	assert.Nil(t, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transfer aborted")
}

func TestExclusiveDevice_Read_NoRetrievableMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	raw := mocks.NewMockRawDevice(ctrl)
	raw.EXPECT().Read(gomock.Any()).Return(-1, nil)
	raw.EXPECT().Error().Return(nil)
	raw.EXPECT().Close().Return(nil).AnyTimes()

	dev := openTestDevice(t, raw)
	_, err := dev.Read(32)

	// A failure the device cannot even describe is its own error kind.
	assert.ErrorIs(t, err, hid.ErrNoErrorMessage)
}

func TestExclusiveDevice_GetFeatureReport(t *testing.T) {
	const reportID byte = 0x05
	const maxLength = 15

	ctrl := gomock.NewController(t)
	raw := mocks.NewMockRawDevice(ctrl)
	raw.EXPECT().GetFeatureReport(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
		// hidapi convention: report ID pre-seeded in a maxLength+1 buffer.
		require.Len(t, p, maxLength+1)
		require.Equal(t, reportID, p[0])
		p[1] = 0xaa
		p[2] = 0xbb
		return 3, nil
	})
	raw.EXPECT().Close().Return(nil).AnyTimes()

	dev := openTestDevice(t, raw)
	data, err := dev.GetFeatureReport(reportID, maxLength)
	require.NoError(t, err)

	// The returned count includes the leading ID byte.
	assert.Equal(t, []byte{reportID, 0xaa, 0xbb}, data)
}

func TestExclusiveDevice_GetFeatureReport_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	raw := mocks.NewMockRawDevice(ctrl)
	raw.EXPECT().GetFeatureReport(gomock.Any()).Return(-1, errors.New("pipe stall"))
	raw.EXPECT().Close().Return(nil).AnyTimes()

	dev := openTestDevice(t, raw)
	data, err := dev.GetFeatureReport(0x01, 7)
	assert.Nil(t, data)

	var devErr *hid.DeviceError
	require.ErrorAs(t, err, &devErr)
	assert.Equal(t, "get feature report", devErr.Op)
}

func TestExclusiveDevice_SetNonblocking(t *testing.T) {
	ctrl := gomock.NewController(t)
	raw := mocks.NewMockRawDevice(ctrl)
	raw.EXPECT().SetNonblock(false).Return(nil)
	raw.EXPECT().SetNonblock(true).Return(nil)
	raw.EXPECT().Close().Return(nil).AnyTimes()

	dev := openTestDevice(t, raw)
	assert.NoError(t, dev.SetNonblocking(false))
	assert.NoError(t, dev.SetNonblocking(true))
}

func TestExclusiveDevice_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	raw := mocks.NewMockRawDevice(ctrl)
	raw.EXPECT().Close().Return(nil).Times(1)

	dev := openTestDevice(t, raw)
	assert.True(t, dev.IsOpen())

	require.NoError(t, dev.Close())
	assert.False(t, dev.IsOpen())

	// Double close is a no-op; operations on a closed handle fail cleanly.
	require.NoError(t, dev.Close())
	_, err := dev.Read(hid.DefaultMaxLength)
	assert.ErrorIs(t, err, hid.ErrDeviceClosed)
}

func TestExclusiveDevice_Share_TransfersOwnership(t *testing.T) {
	ctrl := gomock.NewController(t)
	raw := mocks.NewMockRawDevice(ctrl)
	raw.EXPECT().Read(gomock.Any()).Return(0, nil)
	raw.EXPECT().Close().Return(nil).Times(1)

	dev := openTestDevice(t, raw)

	shared, err := dev.Share()
	require.NoError(t, err)

	// Ownership moved: the source handle is invalid, the destination works.
	assert.False(t, dev.IsOpen())
	assert.True(t, shared.IsOpen())

	_, err = dev.Read(16)
	assert.ErrorIs(t, err, hid.ErrDeviceClosed)

	_, err = shared.Read(16)
	assert.NoError(t, err)

	require.NoError(t, shared.Close())

	// Sharing a moved-from handle fails.
	_, err = dev.Share()
	assert.ErrorIs(t, err, hid.ErrDeviceClosed)
}

func TestSharedDevice_LastOwnerCloses(t *testing.T) {
	ctrl := gomock.NewController(t)
	raw := mocks.NewMockRawDevice(ctrl)
	raw.EXPECT().Read(gomock.Any()).Return(0, nil)
	raw.EXPECT().Close().Return(nil).Times(1)

	dev := openTestDevice(t, raw)
	first, err := dev.Share()
	require.NoError(t, err)

	second := first.Clone()
	require.True(t, second.IsOpen())

	// Closing one owner leaves the device open for the other.
	require.NoError(t, first.Close())
	assert.False(t, first.IsOpen())
	assert.True(t, second.IsOpen())

	_, err = second.Read(16)
	require.NoError(t, err)

	// The native handle closes with the last owner (Close expectation
	// above is Times(1)).
	require.NoError(t, second.Close())
	assert.False(t, second.IsOpen())
}

func TestSharedDevice_DoubleCloseDropsOneOwnerOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	raw := mocks.NewMockRawDevice(ctrl)
	raw.EXPECT().Close().Return(nil).Times(1)

	dev := openTestDevice(t, raw)
	first, err := dev.Share()
	require.NoError(t, err)
	second := first.Clone()

	require.NoError(t, first.Close())
	require.NoError(t, first.Close())
	assert.True(t, second.IsOpen())

	require.NoError(t, second.Close())
}

func TestSharedDevice_CloneAfterCloseIsInvalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	raw := mocks.NewMockRawDevice(ctrl)
	raw.EXPECT().Close().Return(nil).Times(1)

	dev := openTestDevice(t, raw)
	shared, err := dev.Share()
	require.NoError(t, err)
	require.NoError(t, shared.Close())

	clone := shared.Clone()
	assert.False(t, clone.IsOpen())
	_, err = clone.Read(16)
	assert.ErrorIs(t, err, hid.ErrDeviceClosed)

	var nilShared *hid.SharedDevice
	assert.False(t, nilShared.IsOpen())
	assert.False(t, nilShared.Clone().IsOpen())
	assert.NoError(t, nilShared.Close())
}

func TestSession_OpenSharedPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	raw := mocks.NewMockRawDevice(ctrl)
	raw.EXPECT().Close().Return(nil).Times(1)

	backend := &fakeBackend{
		openPathFn: func(path string) (hid.RawDevice, error) {
			return raw, nil
		},
	}
	session := newTestSession(t, backend)

	shared, err := session.OpenSharedPath("/dev/hidraw0")
	require.NoError(t, err)
	assert.True(t, shared.IsOpen())
	assert.Equal(t, "/dev/hidraw0", shared.Path())
	require.NoError(t, shared.Close())
}
