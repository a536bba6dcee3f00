package hid

import "sync"

// DefaultMaxLength is a reasonable read buffer length for callers without
// better report-size information.
const DefaultMaxLength = 512

// Device is the capability surface shared by both ownership variants of an
// open device handle.
type Device interface {
	// Read reads up to maxLength bytes from the device. A zero-length
	// result means nothing is currently available and is not an error.
	// On a multi-report-type device the first byte is the report ID;
	// interpreting it is the caller's job.
	Read(maxLength int) ([]byte, error)

	// GetFeatureReport fetches the feature report with the given ID,
	// reading up to maxLength bytes of payload. On success the first byte
	// of the result is reportID.
	GetFeatureReport(reportID byte, maxLength int) ([]byte, error)

	// SetNonblocking switches the device between blocking and
	// non-blocking reads. The wrapper does not track the current mode.
	SetNonblocking(enable bool) error

	// IsOpen reports whether the handle refers to an open device.
	// Safe to call on a nil handle.
	IsOpen() bool

	// Path returns the platform path the device was opened from, when
	// known.
	Path() string

	// Close closes the handle. For a SharedDevice this drops one owner;
	// the native device closes when the last owner does.
	Close() error
}

var (
	_ Device = (*ExclusiveDevice)(nil)
	_ Device = (*SharedDevice)(nil)
)

// readDevice implements Read on a raw handle. The buffer is sliced to the
// byte count actually read; failures go through the error translator.
func readDevice(raw RawDevice, path string, maxLength int) ([]byte, error) {
	buf := make([]byte, maxLength)
	n, err := raw.Read(buf)
	if err != nil || n < 0 {
		return nil, translateError("read", path, raw, err)
	}
	return buf[:n], nil
}

// featureReport implements GetFeatureReport on a raw handle. hidapi expects
// the report ID pre-seeded in the first byte of a maxLength+1 buffer; the
// returned count includes that leading byte.
func featureReport(raw RawDevice, path string, reportID byte, maxLength int) ([]byte, error) {
	buf := make([]byte, maxLength+1)
	buf[0] = reportID
	n, err := raw.GetFeatureReport(buf)
	if err != nil || n < 0 {
		return nil, translateError("get feature report", path, raw, err)
	}
	return buf[:n], nil
}

// ExclusiveDevice is a single-owner handle to an open HID device. The zero
// value is an empty, invalid handle. Close closes the native device; Share
// transfers ownership to a reference-counted SharedDevice, leaving this
// handle invalid.
//
// A handle must not be used from multiple goroutines concurrently; the
// internal mutex only keeps Close and validity checks race-safe.
type ExclusiveDevice struct {
	mu   sync.Mutex
	raw  RawDevice
	path string
}

func (d *ExclusiveDevice) handle() (RawDevice, error) {
	if d == nil {
		return nil, ErrDeviceClosed
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.raw == nil {
		return nil, ErrDeviceClosed
	}
	return d.raw, nil
}

// IsOpen reports whether the handle refers to an open device.
func (d *ExclusiveDevice) IsOpen() bool {
	_, err := d.handle()
	return err == nil
}

// Path returns the platform path the device was opened from, when known.
func (d *ExclusiveDevice) Path() string {
	if d == nil {
		return ""
	}
	return d.path
}

// Read reads up to maxLength bytes from the device.
func (d *ExclusiveDevice) Read(maxLength int) ([]byte, error) {
	raw, err := d.handle()
	if err != nil {
		return nil, err
	}
	return readDevice(raw, d.path, maxLength)
}

// GetFeatureReport fetches the feature report with the given ID.
func (d *ExclusiveDevice) GetFeatureReport(reportID byte, maxLength int) ([]byte, error) {
	raw, err := d.handle()
	if err != nil {
		return nil, err
	}
	return featureReport(raw, d.path, reportID, maxLength)
}

// SetNonblocking switches the device between blocking and non-blocking
// reads.
func (d *ExclusiveDevice) SetNonblocking(enable bool) error {
	raw, err := d.handle()
	if err != nil {
		return err
	}
	if err := raw.SetNonblock(enable); err != nil {
		return translateError("set nonblocking", d.path, raw, err)
	}
	return nil
}

// Close closes the native device. Safe to call more than once.
func (d *ExclusiveDevice) Close() error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.raw == nil {
		return nil
	}
	raw := d.raw
	d.raw = nil
	return raw.Close()
}

// Share hands the open device to a new reference-counted owner. The
// exclusive handle is invalid afterwards; the returned SharedDevice is the
// sole owner until cloned.
func (d *ExclusiveDevice) Share() (*SharedDevice, error) {
	if d == nil {
		return nil, ErrDeviceClosed
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.raw == nil {
		return nil, ErrDeviceClosed
	}
	raw := d.raw
	d.raw = nil
	return &SharedDevice{state: &sharedState{raw: raw, path: d.path, refs: 1}}, nil
}

// sharedState is the single native handle behind all clones of a
// SharedDevice, guarded by its reference count.
type sharedState struct {
	mu   sync.Mutex
	raw  RawDevice
	path string
	refs int
}

// SharedDevice is a reference-counted handle to an open HID device. Clone
// adds an owner without opening the device a second time; the native
// device closes when the last owner closes. The zero value is an empty,
// invalid handle.
type SharedDevice struct {
	mu     sync.Mutex
	state  *sharedState
	closed bool
}

func (d *SharedDevice) handle() (RawDevice, string, error) {
	if d == nil {
		return nil, "", ErrDeviceClosed
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || d.state == nil {
		return nil, "", ErrDeviceClosed
	}

	d.state.mu.Lock()
	defer d.state.mu.Unlock()
	if d.state.raw == nil {
		return nil, "", ErrDeviceClosed
	}
	return d.state.raw, d.state.path, nil
}

// Clone adds an owner of the underlying device. Cloning a closed handle
// yields an empty, invalid handle.
func (d *SharedDevice) Clone() *SharedDevice {
	if d == nil {
		return &SharedDevice{}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || d.state == nil {
		return &SharedDevice{}
	}

	d.state.mu.Lock()
	d.state.refs++
	d.state.mu.Unlock()
	return &SharedDevice{state: d.state}
}

// IsOpen reports whether the handle refers to an open device.
func (d *SharedDevice) IsOpen() bool {
	_, _, err := d.handle()
	return err == nil
}

// Path returns the platform path the device was opened from, when known.
func (d *SharedDevice) Path() string {
	_, path, err := d.handle()
	if err != nil {
		return ""
	}
	return path
}

// Read reads up to maxLength bytes from the device.
func (d *SharedDevice) Read(maxLength int) ([]byte, error) {
	raw, path, err := d.handle()
	if err != nil {
		return nil, err
	}
	return readDevice(raw, path, maxLength)
}

// GetFeatureReport fetches the feature report with the given ID.
func (d *SharedDevice) GetFeatureReport(reportID byte, maxLength int) ([]byte, error) {
	raw, path, err := d.handle()
	if err != nil {
		return nil, err
	}
	return featureReport(raw, path, reportID, maxLength)
}

// SetNonblocking switches the device between blocking and non-blocking
// reads.
func (d *SharedDevice) SetNonblocking(enable bool) error {
	raw, path, err := d.handle()
	if err != nil {
		return err
	}
	if err := raw.SetNonblock(enable); err != nil {
		return translateError("set nonblocking", path, raw, err)
	}
	return nil
}

// Close drops this owner. The native device closes only when the last
// owner is closed. Safe to call more than once on the same handle.
func (d *SharedDevice) Close() error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || d.state == nil {
		d.closed = true
		return nil
	}
	d.closed = true

	st := d.state
	st.mu.Lock()
	defer st.mu.Unlock()

	st.refs--
	if st.refs > 0 || st.raw == nil {
		return nil
	}
	raw := st.raw
	st.raw = nil
	return raw.Close()
}
