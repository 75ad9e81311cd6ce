// Package ports provides cross-platform serial port discovery and line
// configuration for Go.
//
// The package enumerates the serial ports present on a system, resolves
// USB metadata (vendor/product IDs, serial number, manufacturer) for each
// port, and applies line settings (baud rate, framing, parity, flow
// control) through the native platform interface: sysfs and termios on
// Linux, SetupAPI and the DCB on Windows, IOKit's registry and termios on
// macOS.
//
// # Port Discovery
//
// List the available serial ports with their driver names:
//
//	descriptors, err := ports.ListPorts()
//	for _, d := range descriptors {
//	    fmt.Printf("%s (%s)\n", d.Path, d.Driver)
//	}
//
// Full metadata is available through the streaming enumerator:
//
//	e, err := ports.NewEnumerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer e.Close()
//
//	for e.Next() {
//	    info := e.Port()
//	    fmt.Printf("%s: %s (VID=%04x PID=%04x Serial=%s)\n",
//	        info.PortName, info.Description,
//	        info.VendorID, info.ProductID, info.SerialNumber)
//	}
//	if err := e.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// Or look up a single port:
//
//	info, err := ports.GetPortInfo("/dev/ttyUSB0")
//
// Fields that cannot be resolved carry the sentinels ValueNotAvailable,
// ValueUnknown or ValueNotManaged rather than failing the enumeration.
//
// # Opening and Configuring Ports
//
// Open a port with default configuration (115200 8N1, no flow control):
//
//	port, err := ports.Open("/dev/ttyUSB0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	n, err := port.Write([]byte("Hello"))
//	buffer := make([]byte, 256)
//	n, err = port.Read(buffer)
//
// Use functional options for custom line settings:
//
//	port, err := ports.Open("/dev/ttyUSB0",
//	    ports.WithBaudRate(9600),
//	    ports.WithParity(ports.ParityEven),
//	    ports.WithFlowControl(ports.FlowControlHardware),
//	    ports.WithInitialRTS(true),
//	)
//
// Reconfigure an open port at any time; settings are applied from a fresh
// control block, so repeated applications of the same configuration are
// idempotent:
//
//	err = port.ApplyConfig(ports.Config{BaudRate: 19200, DataBits: 8, StopBits: 1})
//
// # Modem Signals
//
// Read and drive the modem control lines:
//
//	signals, err := port.GetModemSignals()
//	fmt.Printf("CTS=%v DSR=%v DCD=%v RI=%v\n",
//	    signals.CTS, signals.DSR, signals.DCD, signals.RI)
//
//	err = port.SetRTS(true)
//	err = port.SetDTR(false)
//
// # USB Device Reset (Linux)
//
// Reset hung USB serial adapters programmatically:
//
//	err := ports.ResetUSBDevice("/dev/ttyUSB0")
//	err = ports.ResetUSBDeviceBySerial("FT123456")
//
// Requires the usbreset utility from the usbutils package and root/sudo
// permissions.
//
// # Error Handling
//
// Failures surface as sentinel errors checked with errors.Is:
//
//	var (
//	    ErrDeviceNotFound       // port path does not exist
//	    ErrPermissionDenied     // insufficient permissions
//	    ErrDeviceInUse          // port held exclusively by another process
//	    ErrInvalidBaudRate      // rate unsupported on this platform
//	    ErrInvalidConfig        // framing/parity combination unsupported
//	    ErrPortClosed           // operation on a closed port
//	    ErrUSBInfoNotAvailable  // USB metadata unavailable
//	    ErrUSBResetNotAvailable // usbreset utility not found
//	)
//
// Platform call failures are wrapped in a PlatformError carrying the
// operation and device path.
//
// # Default Configuration
//
//   - BaudRate: 115200
//   - DataBits: 8
//   - StopBits: 1
//   - Parity: None
//   - FlowControl: None
//
// For more details and advanced usage examples, see the README at:
// https://github.com/allbin/go-ports
package ports
