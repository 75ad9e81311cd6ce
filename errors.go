package ports

import "errors"

// Predefined error types for robust error handling
var (
	ErrDeviceNotFound   = errors.New("serial device not found")
	ErrPermissionDenied = errors.New("permission denied accessing serial device")
	ErrDeviceInUse      = errors.New("serial device already in use")
	ErrInvalidBaudRate  = errors.New("invalid baud rate")
	ErrInvalidConfig    = errors.New("invalid serial configuration")
	ErrPortClosed       = errors.New("serial port is closed")
	ErrEnumeratorClosed = errors.New("enumerator is closed")

	// USB-related errors
	ErrUSBInfoNotAvailable  = errors.New("USB device information not available")
	ErrUSBResetNotAvailable = errors.New("usbreset utility not available")
)

// PlatformError wraps a native OS failure (registry, SetupAPI, sysfs, ioctl,
// service query) raised while enumerating or configuring a port. It is fatal
// to the operation that raised it only; a failed property lookup on a single
// device never carries this type, it is recovered with default values instead.
type PlatformError struct {
	Op   string // operation that failed, e.g. "open registry key"
	Path string // port path or enumeration root involved, may be empty
	Err  error  // underlying OS error
}

func (e *PlatformError) Error() string {
	if e.Path == "" {
		return "ports: " + e.Op + ": " + e.Err.Error()
	}
	return "ports: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

func platformError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &PlatformError{Op: op, Path: path, Err: err}
}
