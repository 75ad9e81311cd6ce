package ports

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Default enumeration roots. The *At constructors exist so tests can point
// the walk at a fixture tree.
const (
	sysfsTTYRoot   = "/sys/class/tty"
	defaultDevRoot = "/dev"
)

// enumState is the sysfs-backed enumeration strategy. The class directory
// handle stays open for the lifetime of the enumerator and is advanced one
// entry per next call.
type enumState struct {
	sysfsRoot string
	devRoot   string
	dir       *os.File
}

func newEnumState() (*enumState, error) {
	return newEnumStateAt(sysfsTTYRoot, defaultDevRoot)
}

func newEnumStateAt(sysfsRoot, devRoot string) (*enumState, error) {
	dir, err := os.Open(sysfsRoot)
	if err != nil {
		return nil, platformError("open sysfs class directory", sysfsRoot, err)
	}
	return &enumState{sysfsRoot: sysfsRoot, devRoot: devRoot, dir: dir}, nil
}

func (s *enumState) close() error {
	if s.dir == nil {
		return nil
	}
	err := s.dir.Close()
	s.dir = nil
	return err
}

// next advances the class directory until an entry qualifies as a physical
// tty. An entry without a resolvable device link is a virtual tty (console,
// pty master) and is silently skipped, as is a class entry whose /dev node
// is missing.
func (s *enumState) next(info *PortInfo) (bool, error) {
	for {
		entries, err := s.dir.ReadDir(1)
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, platformError("read sysfs class directory", s.sysfsRoot, err)
		}

		name := entries[0].Name()
		devicePath, err := filepath.EvalSymlinks(filepath.Join(s.sysfsRoot, name, "device"))
		if err != nil {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.devRoot, name)); err != nil {
			continue
		}

		info.reset(name, filepath.Join(s.devRoot, name))
		fillFromSysfs(info, devicePath)
		return true, nil
	}
}

// fillFromSysfs resolves USB identity for ttys on the usb and usb-serial
// subsystems. Ttys on any other subsystem are reported with their
// descriptive fields marked unmanaged instead of guessed.
func fillFromSysfs(info *PortInfo, devicePath string) {
	switch readLinkBase(filepath.Join(devicePath, "subsystem")) {
	case "usb", "usb-serial":
	default:
		info.setUnmanaged()
		return
	}

	usbDir, ok := findUSBDeviceDir(devicePath)
	if !ok {
		return
	}

	info.VendorID = readSysfsHex(filepath.Join(usbDir, "idVendor"))
	info.ProductID = readSysfsHex(filepath.Join(usbDir, "idProduct"))
	if v := readSysfsFile(filepath.Join(usbDir, "manufacturer")); v != "" {
		info.Manufacturer = v
	}
	if v := readSysfsFile(filepath.Join(usbDir, "product")); v != "" {
		info.Description = v
		info.FriendlyName = v
	}
	serial := readSysfsFile(filepath.Join(usbDir, "serial"))
	if serial != "" {
		info.SerialNumber = serial
	}
	info.BusNumber = readSysfsFile(filepath.Join(usbDir, "busnum"))
	info.DeviceNumber = readSysfsFile(filepath.Join(usbDir, "devnum"))
	info.HardwareID = synthesizeHardwareID(info.VendorID, info.ProductID, serial)
}

// findUSBDeviceDir walks up from the resolved device path to the USB device
// node carrying the id attributes. A ttyUSB node sits two levels below it,
// a ttyACM interface one level; the walk is bounded so a stray sysfs layout
// cannot loop.
func findUSBDeviceDir(start string) (string, bool) {
	dir := start
	for range 10 {
		if _, err := os.Stat(filepath.Join(dir, "idVendor")); err == nil {
			if _, err := os.Stat(filepath.Join(dir, "idProduct")); err == nil {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}

// readLinkBase resolves a sysfs symlink and returns the base name of its
// target, or "" when the link is missing.
func readLinkBase(path string) string {
	target, err := os.Readlink(path)
	if err != nil {
		return ""
	}
	return filepath.Base(target)
}

// readSysfsFile returns the first line of a sysfs attribute file with
// surrounding whitespace stripped, or "" when the file is unreadable.
func readSysfsFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	s := string(data)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// readSysfsHex parses a fixed-width hexadecimal attribute (idVendor,
// idProduct) as a 16-bit id. Malformed text resolves to 0.
func readSysfsHex(path string) uint16 {
	v, err := strconv.ParseUint(readSysfsFile(path), 16, 16)
	if err != nil {
		return 0
	}
	return uint16(v)
}

// listPorts is the lightweight enumeration path: class entries that have a
// device link and a /dev node, described by driver name only.
func listPorts() ([]PortDescriptor, error) {
	return listPortsAt(sysfsTTYRoot, defaultDevRoot)
}

func listPortsAt(sysfsRoot, devRoot string) ([]PortDescriptor, error) {
	entries, err := os.ReadDir(sysfsRoot)
	if err != nil {
		return nil, platformError("open sysfs class directory", sysfsRoot, err)
	}

	var descriptors []PortDescriptor
	for _, entry := range entries {
		name := entry.Name()
		devicePath := filepath.Join(sysfsRoot, name, "device")
		if _, err := filepath.EvalSymlinks(devicePath); err != nil {
			continue
		}
		if _, err := os.Stat(filepath.Join(devRoot, name)); err != nil {
			continue
		}
		descriptors = append(descriptors, PortDescriptor{
			Path:   filepath.Join(devRoot, name),
			Name:   name,
			Driver: readLinkBase(filepath.Join(devicePath, "driver")),
		})
	}
	return descriptors, nil
}
