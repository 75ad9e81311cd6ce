package ports

import (
	"errors"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// Device setup classes tried in order; the first one that yields a valid
// device-information set wins. Serial adapters normally register under
// Ports, modems and multiport cards under the other two.
var setupClassGUIDs = []windows.GUID{
	// Ports {4d36e978-e325-11ce-bfc1-08002be10318}
	{Data1: 0x4d36e978, Data2: 0xe325, Data3: 0x11ce, Data4: [8]byte{0xbf, 0xc1, 0x08, 0x00, 0x2b, 0xe1, 0x03, 0x18}},
	// Modem {4d36e96d-e325-11ce-bfc1-08002be10318}
	{Data1: 0x4d36e96d, Data2: 0xe325, Data3: 0x11ce, Data4: [8]byte{0xbf, 0xc1, 0x08, 0x00, 0x2b, 0xe1, 0x03, 0x18}},
	// MultiportSerial {50906cb8-ba12-11d1-bf5d-0000f805f530}
	{Data1: 0x50906cb8, Data2: 0xba12, Data3: 0x11d1, Data4: [8]byte{0xbf, 0x5d, 0x00, 0x00, 0xf8, 0x05, 0xf5, 0x30}},
}

// serialCommKey is the lightweight enumeration root: one registry value per
// active serial port.
const serialCommKey = `HARDWARE\DEVICEMAP\SERIALCOMM`

// enumState is the SetupAPI-backed enumeration strategy. The device
// information set stays open for the lifetime of the enumerator and is
// walked one index per next call.
type enumState struct {
	set   windows.DevInfo
	index int
}

func newEnumState() (*enumState, error) {
	var firstErr error
	for _, guid := range setupClassGUIDs {
		set, err := windows.SetupDiGetClassDevsEx(&guid, "", 0, windows.DIGCF_PRESENT, 0, "")
		if err == nil {
			return &enumState{set: set}, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, platformError("open device information set", "", firstErr)
}

func (s *enumState) close() error {
	if s.set == 0 {
		return nil
	}
	err := s.set.Close()
	s.set = 0
	return err
}

// next walks the device-information set by index. A node without a
// resolvable port name is not a serial port and is skipped; property
// failures on a node degrade to default values rather than aborting the
// scan.
func (s *enumState) next(info *PortInfo) (bool, error) {
	for {
		data, err := s.set.EnumDeviceInfo(s.index)
		if err != nil {
			if errors.Is(err, windows.ERROR_NO_MORE_ITEMS) {
				return false, nil
			}
			return false, platformError("enumerate device info", "", err)
		}
		s.index++

		portName, ok := devicePortName(s.set, data)
		if !ok {
			continue
		}

		info.reset(portName, systemLocation(portName))
		if v := deviceStringProperty(s.set, data, windows.SPDRP_DEVICEDESC); v != "" {
			info.Description = v
		}
		if v := deviceStringProperty(s.set, data, windows.SPDRP_FRIENDLYNAME); v != "" {
			info.FriendlyName = v
		}
		if v := deviceStringProperty(s.set, data, windows.SPDRP_MFG); v != "" {
			info.Manufacturer = v
		}

		if instanceID, err := s.set.DeviceInstanceID(data); err == nil {
			fillFromInstanceID(info, instanceID, uint32(data.DevInst))
		}
		return true, nil
	}
}

// fillFromInstanceID resolves USB identity from a device instance id. A
// composite interface node carries no serial number of its own, so the
// bounded parent walk recovers it from the ancestor holding the same
// vendor/product identity.
func fillFromInstanceID(info *PortInfo, instanceID string, devInst uint32) {
	info.HardwareID = instanceID

	id, ok := parseHardwareID(instanceID)
	if !ok {
		return
	}
	info.VendorID = id.VendorID
	info.ProductID = id.ProductID

	serial := id.Serial
	if serial == "" {
		serial = findParentSerial(devInst, id.VendorID, id.ProductID, devInstParent, devInstID)
	}
	if serial != "" {
		info.SerialNumber = serial
	}
}

// listPorts is the lightweight enumeration path: the SERIALCOMM device map
// holds one value per active port, keyed by the native device object name.
func listPorts() ([]PortDescriptor, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, serialCommKey, registry.QUERY_VALUE)
	if err != nil {
		return nil, platformError("open registry key", serialCommKey, err)
	}
	defer key.Close()

	names, err := key.ReadValueNames(0)
	if err != nil {
		return nil, platformError("read registry values", serialCommKey, err)
	}

	var descriptors []PortDescriptor
	for _, name := range names {
		portName, _, err := key.GetStringValue(name)
		if err != nil || portName == "" {
			continue
		}
		// Value names look like \Device\Serial0; the leaf names the
		// driver object.
		driver := name
		if i := strings.LastIndexByte(name, '\\'); i >= 0 {
			driver = name[i+1:]
		}
		descriptors = append(descriptors, PortDescriptor{
			Path:   systemLocation(portName),
			Name:   portName,
			Driver: driver,
		})
	}
	return descriptors, nil
}
