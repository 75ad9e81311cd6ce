package ports

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func mustSymlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", link, err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("Failed to create symlink %s: %v", link, err)
	}
}

// sysfsFixture builds a miniature sysfs/dev tree holding a mix of physical,
// virtual and broken tty entries:
//
//	ttyUSB0  - FTDI adapter on the usb-serial subsystem, full identity
//	ttyACM0  - CDC ACM device on the usb subsystem, no serial attribute
//	ttyS0    - 8250 UART on the platform subsystem (not managed)
//	tty0     - virtual console without a device link (skipped)
//	ttyBAD   - dangling device link (skipped)
//	ttyGHOST - device link but no /dev node (skipped)
func sysfsFixture(t *testing.T) (sysfsRoot, devRoot string) {
	t.Helper()
	root := t.TempDir()
	sysfsRoot = filepath.Join(root, "sys", "class", "tty")
	devRoot = filepath.Join(root, "dev")
	devices := filepath.Join(root, "devices")

	// FTDI adapter: usb device dir two levels above the tty node.
	usbDev := filepath.Join(devices, "pci0", "usb1", "1-2")
	for name, content := range map[string]string{
		"idVendor":     "0403",
		"idProduct":    "6001",
		"serial":       "A6008isP",
		"manufacturer": "FTDI",
		"product":      "FT232R USB UART",
		"busnum":       "1",
		"devnum":       "5",
	} {
		mustWriteFile(t, filepath.Join(usbDev, name), content+"\n")
	}
	ttyUSBNode := filepath.Join(usbDev, "1-2:1.0", "ttyUSB0")
	if err := os.MkdirAll(ttyUSBNode, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", ttyUSBNode, err)
	}
	mustSymlink(t, "../../../../../bus/usb-serial", filepath.Join(ttyUSBNode, "subsystem"))
	mustSymlink(t, "../../../../../bus/usb-serial/drivers/ftdi_sio", filepath.Join(ttyUSBNode, "driver"))
	mustSymlink(t, ttyUSBNode, filepath.Join(sysfsRoot, "ttyUSB0", "device"))

	// CDC ACM device: the tty's device link points at the interface dir,
	// ids one level up, no serial attribute.
	acmDev := filepath.Join(devices, "pci0", "usb3", "3-1")
	for name, content := range map[string]string{
		"idVendor":     "2341",
		"idProduct":    "0043",
		"manufacturer": "Arduino",
		"product":      "Uno",
		"busnum":       "3",
		"devnum":       "2",
	} {
		mustWriteFile(t, filepath.Join(acmDev, name), content+"\n")
	}
	acmIface := filepath.Join(acmDev, "3-1:1.0")
	if err := os.MkdirAll(acmIface, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", acmIface, err)
	}
	mustSymlink(t, "../../../../bus/usb", filepath.Join(acmIface, "subsystem"))
	mustSymlink(t, "../../../../bus/usb/drivers/cdc_acm", filepath.Join(acmIface, "driver"))
	mustSymlink(t, acmIface, filepath.Join(sysfsRoot, "ttyACM0", "device"))

	// Legacy UART on the platform bus.
	uartDev := filepath.Join(devices, "platform", "serial8250")
	if err := os.MkdirAll(uartDev, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", uartDev, err)
	}
	mustSymlink(t, "../../bus/platform", filepath.Join(uartDev, "subsystem"))
	mustSymlink(t, ttyUSBNode+"-dangling", filepath.Join(sysfsRoot, "ttyBAD", "device"))
	mustSymlink(t, uartDev, filepath.Join(sysfsRoot, "ttyS0", "device"))
	mustSymlink(t, uartDev, filepath.Join(sysfsRoot, "ttyGHOST", "device"))

	// Virtual console: class entry without a device link.
	if err := os.MkdirAll(filepath.Join(sysfsRoot, "tty0"), 0755); err != nil {
		t.Fatalf("Failed to create tty0 entry: %v", err)
	}

	for _, name := range []string{"ttyUSB0", "ttyACM0", "ttyS0"} {
		mustWriteFile(t, filepath.Join(devRoot, name), "")
	}
	return sysfsRoot, devRoot
}

func collectPorts(t *testing.T, sysfsRoot, devRoot string) []PortInfo {
	t.Helper()
	state, err := newEnumStateAt(sysfsRoot, devRoot)
	if err != nil {
		t.Fatalf("newEnumStateAt() error: %v", err)
	}
	e := &Enumerator{state: state}
	defer e.Close()

	var got []PortInfo
	for e.Next() {
		got = append(got, *e.Port().Clone())
	}
	if err := e.Err(); err != nil {
		t.Fatalf("enumeration error: %v", err)
	}
	return got
}

func TestEnumeratorSkipsUnresolvableEntries(t *testing.T) {
	sysfsRoot, devRoot := sysfsFixture(t)
	got := collectPorts(t, sysfsRoot, devRoot)

	if len(got) != 3 {
		t.Fatalf("enumerated %d ports, want 3: %+v", len(got), got)
	}
	byName := make(map[string]PortInfo, len(got))
	for _, p := range got {
		byName[p.PortName] = p
	}
	for _, name := range []string{"ttyUSB0", "ttyACM0", "ttyS0"} {
		if _, ok := byName[name]; !ok {
			t.Errorf("expected %s in enumeration, got %+v", name, got)
		}
	}
	for _, name := range []string{"tty0", "ttyBAD", "ttyGHOST"} {
		if _, ok := byName[name]; ok {
			t.Errorf("entry %s should have been skipped", name)
		}
	}
}

func TestEnumeratorStableOrder(t *testing.T) {
	sysfsRoot, devRoot := sysfsFixture(t)

	first := collectPorts(t, sysfsRoot, devRoot)
	second := collectPorts(t, sysfsRoot, devRoot)

	if len(first) != len(second) {
		t.Fatalf("enumeration sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].PortName != second[i].PortName {
			t.Errorf("position %d: %q vs %q", i, first[i].PortName, second[i].PortName)
		}
	}
}

func TestEnumeratorResolvesUSBIdentity(t *testing.T) {
	sysfsRoot, devRoot := sysfsFixture(t)
	got := collectPorts(t, sysfsRoot, devRoot)

	byName := make(map[string]PortInfo, len(got))
	for _, p := range got {
		byName[p.PortName] = p
	}

	usb, ok := byName["ttyUSB0"]
	if !ok {
		t.Fatal("ttyUSB0 missing from enumeration")
	}
	if usb.VendorID != 0x0403 || usb.ProductID != 0x6001 {
		t.Errorf("ttyUSB0 ids = 0x%04X/0x%04X, want 0x0403/0x6001", usb.VendorID, usb.ProductID)
	}
	if usb.SerialNumber != "A6008isP" {
		t.Errorf("ttyUSB0 SerialNumber = %q, want %q", usb.SerialNumber, "A6008isP")
	}
	if usb.Manufacturer != "FTDI" {
		t.Errorf("ttyUSB0 Manufacturer = %q, want %q", usb.Manufacturer, "FTDI")
	}
	if usb.Description != "FT232R USB UART" {
		t.Errorf("ttyUSB0 Description = %q", usb.Description)
	}
	if usb.HardwareID != `USB\VID_0403&PID_6001\A6008isP` {
		t.Errorf("ttyUSB0 HardwareID = %q", usb.HardwareID)
	}
	if usb.BusNumber != "1" || usb.DeviceNumber != "5" {
		t.Errorf("ttyUSB0 bus/dev = %q/%q, want 1/5", usb.BusNumber, usb.DeviceNumber)
	}
	if usb.SystemLocation != filepath.Join(devRoot, "ttyUSB0") {
		t.Errorf("ttyUSB0 SystemLocation = %q", usb.SystemLocation)
	}

	acm, ok := byName["ttyACM0"]
	if !ok {
		t.Fatal("ttyACM0 missing from enumeration")
	}
	if acm.VendorID != 0x2341 || acm.ProductID != 0x0043 {
		t.Errorf("ttyACM0 ids = 0x%04X/0x%04X, want 0x2341/0x0043", acm.VendorID, acm.ProductID)
	}
	if acm.SerialNumber != ValueNotAvailable {
		t.Errorf("ttyACM0 SerialNumber = %q, want %q", acm.SerialNumber, ValueNotAvailable)
	}
	if acm.HardwareID != `USB\VID_2341&PID_0043` {
		t.Errorf("ttyACM0 HardwareID = %q", acm.HardwareID)
	}

	uart, ok := byName["ttyS0"]
	if !ok {
		t.Fatal("ttyS0 missing from enumeration")
	}
	if uart.Description != ValueNotManaged || uart.Manufacturer != ValueNotManaged {
		t.Errorf("ttyS0 descriptive fields = %q/%q, want %q", uart.Description, uart.Manufacturer, ValueNotManaged)
	}
	if uart.VendorID != 0 || uart.ProductID != 0 {
		t.Errorf("ttyS0 ids = 0x%04X/0x%04X, want zeros", uart.VendorID, uart.ProductID)
	}
}

// TestEnumeratorRecordAliasing pins the lifetime contract: the record from
// Port is overwritten on advance, a Clone taken before the advance is not.
func TestEnumeratorRecordAliasing(t *testing.T) {
	sysfsRoot, devRoot := sysfsFixture(t)
	state, err := newEnumStateAt(sysfsRoot, devRoot)
	if err != nil {
		t.Fatalf("newEnumStateAt() error: %v", err)
	}
	e := &Enumerator{state: state}
	defer e.Close()

	if !e.Next() {
		t.Fatalf("expected at least one port, err: %v", e.Err())
	}
	alias := e.Port()
	clone := alias.Clone()
	firstName := alias.PortName

	if !e.Next() {
		t.Fatalf("expected a second port, err: %v", e.Err())
	}
	if alias != e.Port() {
		t.Error("Port() should return the same record across advances")
	}
	if alias.PortName == firstName {
		t.Errorf("aliased record not overwritten on advance: %q", alias.PortName)
	}
	if clone.PortName != firstName {
		t.Errorf("clone changed on advance: %q, want %q", clone.PortName, firstName)
	}
}

func TestEnumeratorClose(t *testing.T) {
	sysfsRoot, devRoot := sysfsFixture(t)
	state, err := newEnumStateAt(sysfsRoot, devRoot)
	if err != nil {
		t.Fatalf("newEnumStateAt() error: %v", err)
	}
	e := &Enumerator{state: state}

	if err := e.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
	if e.Next() {
		t.Error("Next() after Close should report false")
	}
	if !errors.Is(e.Err(), ErrEnumeratorClosed) {
		t.Errorf("Err() after Close = %v, want %v", e.Err(), ErrEnumeratorClosed)
	}
}

func TestEnumeratorMissingRoot(t *testing.T) {
	_, err := newEnumStateAt(filepath.Join(t.TempDir(), "missing"), t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing enumeration root")
	}
	var perr *PlatformError
	if !errors.As(err, &perr) {
		t.Errorf("error = %T, want *PlatformError", err)
	}
}

func TestListPortsAt(t *testing.T) {
	sysfsRoot, devRoot := sysfsFixture(t)

	descriptors, err := listPortsAt(sysfsRoot, devRoot)
	if err != nil {
		t.Fatalf("listPortsAt() error: %v", err)
	}
	if len(descriptors) != 3 {
		t.Fatalf("listPortsAt() returned %d descriptors, want 3: %+v", len(descriptors), descriptors)
	}

	byName := make(map[string]PortDescriptor, len(descriptors))
	for _, d := range descriptors {
		byName[d.Name] = d
	}
	if d, ok := byName["ttyUSB0"]; !ok {
		t.Error("ttyUSB0 missing from descriptors")
	} else {
		if d.Driver != "ftdi_sio" {
			t.Errorf("ttyUSB0 Driver = %q, want %q", d.Driver, "ftdi_sio")
		}
		if d.Path != filepath.Join(devRoot, "ttyUSB0") {
			t.Errorf("ttyUSB0 Path = %q", d.Path)
		}
	}
	if d, ok := byName["ttyACM0"]; !ok {
		t.Error("ttyACM0 missing from descriptors")
	} else if d.Driver != "cdc_acm" {
		t.Errorf("ttyACM0 Driver = %q, want %q", d.Driver, "cdc_acm")
	}
}

func TestReadSysfsFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		content  string
		expected string
		write    bool
	}{
		{name: "normal file", content: "1234\n", expected: "1234", write: true},
		{name: "file with spaces", content: "  test value  \n", expected: "test value", write: true},
		{name: "multi line keeps first", content: "first\nsecond\n", expected: "first", write: true},
		{name: "empty file", content: "", expected: "", write: true},
		{name: "nonexistent file", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if tt.write {
				if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
					t.Fatalf("Setup failed: %v", err)
				}
			}
			if got := readSysfsFile(path); got != tt.expected {
				t.Errorf("readSysfsFile() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestReadSysfsHex(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		content  string
		expected uint16
	}{
		{"lowercase hex", "0403\n", 0x0403},
		{"uppercase hex", "EA60\n", 0xEA60},
		{"malformed", "zz40\n", 0},
		{"too wide", "10403\n", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Setup failed: %v", err)
			}
			if got := readSysfsHex(path); got != tt.expected {
				t.Errorf("readSysfsHex() = 0x%04X, expected 0x%04X", got, tt.expected)
			}
		})
	}
}

// TestEnumeratorIntegration walks the real sysfs tree. It needs a Linux host
// and is skipped in short mode.
func TestEnumeratorIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if _, err := os.Stat(sysfsTTYRoot); err != nil {
		t.Skipf("sysfs not available: %v", err)
	}

	e, err := NewEnumerator()
	if err != nil {
		t.Fatalf("NewEnumerator() error: %v", err)
	}
	defer e.Close()

	count := 0
	for e.Next() {
		p := e.Port()
		if p.PortName == "" || p.SystemLocation == "" {
			t.Errorf("incomplete record: %+v", p)
		}
		count++
	}
	if err := e.Err(); err != nil {
		t.Fatalf("enumeration error: %v", err)
	}
	t.Logf("enumerated %d ports", count)
}

func BenchmarkEnumerate(b *testing.B) {
	if _, err := os.Stat(sysfsTTYRoot); err != nil {
		b.Skipf("sysfs not available: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e, err := NewEnumerator()
		if err != nil {
			b.Fatal(err)
		}
		for e.Next() {
		}
		e.Close()
	}
}
