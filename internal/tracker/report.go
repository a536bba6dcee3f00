// Package tracker knows the OSVR HDK head tracker's HID identity and the
// layout of its input report header.
package tracker

import (
	"errors"
	"fmt"

	"github.com/osvr-tools/hdk-logger/internal/hid"
)

const (
	// VendorID is the USB vendor ID of the HDK tracker (Razer).
	VendorID uint16 = 0x1532

	// ProductID is the USB product ID of the HDK tracker.
	ProductID uint16 = 0x0b00
)

// headerLen is the fixed report header: format version byte followed by a
// wrapping sequence counter byte. The IMU payload follows.
const headerLen = 2

// ErrReportTooShort is returned when a report does not even carry the
// two-byte header.
var ErrReportTooShort = errors.New("tracker report too short")

// Report is the decoded header of one tracker input report.
type Report struct {
	Version  byte
	Sequence byte
	Size     int
}

// ParseReport decodes the header of a raw tracker input report.
func ParseReport(data []byte) (Report, error) {
	if len(data) < headerLen {
		return Report{}, fmt.Errorf("%w: got %d bytes", ErrReportTooShort, len(data))
	}
	return Report{
		Version:  data[0],
		Sequence: data[1],
		Size:     len(data),
	}, nil
}

// IsTracker reports whether an enumerated device is an HDK tracker.
func IsTracker(info hid.DeviceInfo) bool {
	return info.VendorID == VendorID && info.ProductID == ProductID
}
