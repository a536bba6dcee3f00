// Package hid provides a safe, ownership-aware wrapper around the hidapi
// HID access library: a scoped Session for library init/shutdown, eager
// device enumeration, and exclusive- and shared-ownership device handles.
package hid

//go:generate mockgen -source=backend.go -destination=mocks/backend_mock.go -package=mocks

// RawDevice is the surface of one open hidapi device handle.
// This interface allows for mocking in tests.
type RawDevice interface {
	// Read reads an input report into p and returns the byte count.
	// On a multi-report-type device the first byte is the report ID.
	Read(p []byte) (int, error)

	// GetFeatureReport reads a feature report into p. The first byte of p
	// must be pre-seeded with the report ID.
	GetFeatureReport(p []byte) (int, error)

	// SetNonblock switches the handle between blocking and non-blocking
	// reads.
	SetNonblock(nonblock bool) error

	// Error returns the last error recorded for this handle, if any.
	Error() error

	// Close closes the device handle.
	Close() error
}

// Backend is the hidapi library surface a Session runs on. The production
// implementation lives in hidapi.go; tests substitute their own via
// WithBackend.
type Backend interface {
	Init() error
	Exit() error
	Enumerate(vendorID, productID uint16) ([]DeviceInfo, error)
	Open(vendorID, productID uint16, serial string) (RawDevice, error)
	OpenPath(path string) (RawDevice, error)
}
