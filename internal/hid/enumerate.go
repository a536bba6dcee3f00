package hid

// Wildcard values for Enumerate's vendor/product filter.
const (
	VendorAny  uint16 = 0
	ProductAny uint16 = 0
)

// DeviceInfo describes one enumerated HID device. It is a detached value
// copy of the native descriptor: every field remains valid after the
// Session that produced it is closed.
type DeviceInfo struct {
	Path         string
	VendorID     uint16
	ProductID    uint16
	Serial       string
	Manufacturer string
	Product      string
	Release      uint16
	UsagePage    uint16
	Usage        uint16
	Interface    int
}

// Enumerate lists currently connected HID devices matching the given
// vendor/product filter, in the order the subsystem reports them.
// VendorAny/ProductAny disable the respective filter. The list is fetched
// eagerly; constructing it again re-queries the subsystem.
func (s *Session) Enumerate(vendorID, productID uint16) ([]DeviceInfo, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	return s.backend.Enumerate(vendorID, productID)
}
