package hid

import (
	"fmt"

	hidapi "github.com/sstallion/go-hid"
)

// hidapiBackend is the production Backend, bound to the hidapi C library
// through sstallion/go-hid.
type hidapiBackend struct{}

// Verify hidapiBackend implements Backend.
var _ Backend = hidapiBackend{}

func (hidapiBackend) Init() error { return hidapi.Init() }

func (hidapiBackend) Exit() error { return hidapi.Exit() }

// Enumerate copies every matching native descriptor into an owned
// DeviceInfo value, so the result stays valid after hidapi frees its
// enumeration list.
func (hidapiBackend) Enumerate(vendorID, productID uint16) ([]DeviceInfo, error) {
	var infos []DeviceInfo

	err := hidapi.Enumerate(vendorID, productID, func(info *hidapi.DeviceInfo) error {
		infos = append(infos, DeviceInfo{
			Path:         info.Path,
			VendorID:     info.VendorID,
			ProductID:    info.ProductID,
			Serial:       info.SerialNbr,
			Manufacturer: info.MfrStr,
			Product:      info.ProductStr,
			Release:      info.ReleaseNbr,
			UsagePage:    info.UsagePage,
			Usage:        info.Usage,
			Interface:    info.InterfaceNbr,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate HID devices: %w", err)
	}

	return infos, nil
}

func (hidapiBackend) Open(vendorID, productID uint16, serial string) (RawDevice, error) {
	if serial == "" {
		return hidapi.OpenFirst(vendorID, productID)
	}
	return hidapi.Open(vendorID, productID, serial)
}

func (hidapiBackend) OpenPath(path string) (RawDevice, error) {
	return hidapi.OpenPath(path)
}
