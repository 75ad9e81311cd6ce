package ports

// Sentinel values substituted when a device property cannot be resolved.
// Resolution failures are recovered, never fatal: callers see these defaults
// instead of an error and enumeration continues with the next entry.
const (
	// ValueNotAvailable marks an absent string property such as a missing
	// USB serial number or manufacturer.
	ValueNotAvailable = "N/A"

	// ValueUnknown marks a description that could not be derived at all.
	ValueUnknown = "Unknown"

	// ValueNotManaged marks descriptive fields of a tty whose bus subsystem
	// this package does not resolve (Linux subsystems other than usb and
	// usb-serial).
	ValueNotManaged = "Not Managed"
)

// PortDescriptor is the minimal identity produced by the lightweight
// enumeration path, sufficient to open the device.
type PortDescriptor struct {
	Path   string // device path used to open the port, e.g. /dev/ttyUSB0 or \\.\COM3
	Name   string // short port name, e.g. ttyUSB0 or COM3
	Driver string // driver or subsystem name when known, empty otherwise
}

// PortInfo is the full identity record produced by an Enumerator.
//
// VendorID and ProductID are 0 when they cannot be resolved; 0x0000 is
// assigned to no real vendor, so callers must treat 0 as "unknown" rather
// than as a valid id. HardwareID carries the raw platform identifier string
// the ids were derived from, or a synthesized USB-convention string on
// platforms without a native one. BusNumber and DeviceNumber are populated
// on Linux only and feed ResetUSBDevice.
type PortInfo struct {
	PortName       string
	SystemLocation string
	FriendlyName   string
	Description    string
	Manufacturer   string
	SerialNumber   string
	HardwareID     string
	VendorID       uint16
	ProductID      uint16
	BusNumber      string
	DeviceNumber   string
}

// Clone returns a copy of the record that remains valid after the enumerator
// advances or closes. Records returned by Enumerator.Port alias enumerator
// internals; callers needing the data beyond the next advance must clone it.
func (p *PortInfo) Clone() *PortInfo {
	c := *p
	return &c
}

// reset prepares a reused record for the next enumeration step. Identity
// fields start at their documented defaults and keep them unless a platform
// source resolves something better.
func (p *PortInfo) reset(portName, systemLocation string) {
	*p = PortInfo{
		PortName:       portName,
		SystemLocation: systemLocation,
		FriendlyName:   portName,
		Description:    ValueUnknown,
		Manufacturer:   ValueNotAvailable,
		SerialNumber:   ValueNotAvailable,
	}
}

// setUnmanaged marks the descriptive fields of a port on a bus this package
// does not resolve.
func (p *PortInfo) setUnmanaged() {
	p.Description = ValueNotManaged
	p.Manufacturer = ValueNotManaged
	p.SerialNumber = ValueNotManaged
}
