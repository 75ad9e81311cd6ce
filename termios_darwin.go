package ports

import (
	"golang.org/x/sys/unix"
)

// XON/XOFF characters written into the control character array when
// software flow control is enabled.
const (
	charXON  = 0x11 // DC1
	charXOFF = 0x13 // DC3
)

// IOSSIOSPEED from IOKit/serial/ioss.h requests an exact, non-standard line
// speed directly from the driver, bypassing the termios speed table.
const ioctlIOSSIOSPEED = 0x80045402

// getBaudRate converts an integer baud rate to the termios speed token.
// Unlike Linux the table here is not the last word: a rate outside it is
// still applied through the IOSSIOSPEED escape path.
func getBaudRate(rate int) (uint64, bool) {
	switch rate {
	case 50:
		return unix.B50, true
	case 75:
		return unix.B75, true
	case 110:
		return unix.B110, true
	case 134:
		return unix.B134, true
	case 150:
		return unix.B150, true
	case 200:
		return unix.B200, true
	case 300:
		return unix.B300, true
	case 600:
		return unix.B600, true
	case 1200:
		return unix.B1200, true
	case 1800:
		return unix.B1800, true
	case 2400:
		return unix.B2400, true
	case 4800:
		return unix.B4800, true
	case 7200:
		return unix.B7200, true
	case 9600:
		return unix.B9600, true
	case 14400:
		return unix.B14400, true
	case 19200:
		return unix.B19200, true
	case 28800:
		return unix.B28800, true
	case 38400:
		return unix.B38400, true
	case 57600:
		return unix.B57600, true
	case 76800:
		return unix.B76800, true
	case 115200:
		return unix.B115200, true
	case 230400:
		return unix.B230400, true
	default:
		return 0, false
	}
}

// buildTermios maps the abstract configuration onto a freshly zeroed termios
// control block. The second result reports whether the requested baud rate
// needs the IOSSIOSPEED escape: in that case only the standard placeholder
// B9600 is written into the speed fields and the direct speed call is solely
// responsible for the actual rate.
func buildTermios(config Config) (unix.Termios, bool, error) {
	var t unix.Termios

	baud, standard := getBaudRate(config.BaudRate)
	if !standard {
		baud = unix.B9600
	}

	t.Cflag = unix.CREAD | unix.CLOCAL

	switch config.DataBits {
	case 5:
		t.Cflag |= unix.CS5
	case 6:
		t.Cflag |= unix.CS6
	case 7:
		t.Cflag |= unix.CS7
	case 8:
		t.Cflag |= unix.CS8
	default:
		return t, false, ErrInvalidConfig
	}

	if config.StopBits == 2 {
		t.Cflag |= unix.CSTOPB
	}

	switch config.Parity {
	case ParityNone:
	case ParityEven:
		t.Cflag |= unix.PARENB
	case ParityOdd:
		t.Cflag |= unix.PARENB | unix.PARODD
	case ParityMark, ParitySpace:
		// No CMSPAR equivalent on this platform.
		return t, false, ErrInvalidConfig
	default:
		return t, false, ErrInvalidConfig
	}

	switch config.FlowControl {
	case FlowControlNone:
	case FlowControlHardware:
		t.Cflag |= unix.CRTSCTS
	case FlowControlSoftware:
		t.Iflag |= unix.IXON | unix.IXOFF
		t.Cc[unix.VSTART] = charXON
		t.Cc[unix.VSTOP] = charXOFF
	default:
		return t, false, ErrInvalidConfig
	}

	// Raw mode: no input, output or line processing.
	if config.ReadTimeoutTenths == 0 {
		t.Cc[unix.VMIN] = 1
		t.Cc[unix.VTIME] = 0
	} else {
		t.Cc[unix.VMIN] = 0
		t.Cc[unix.VTIME] = uint8(config.ReadTimeoutTenths)
	}

	t.Ispeed = baud
	t.Ospeed = baud

	return t, !standard, nil
}

// applyHandleConfig maps the configuration onto a fresh control block and
// writes it with TIOCSETA, then, for a non-standard rate, asks the driver
// for the exact speed. A failed IOSSIOSPEED leaves the standard placeholder
// configuration applied by the TIOCSETA write behind.
func (p *Port) applyHandleConfig(config Config) error {
	t, nonstandard, err := buildTermios(config)
	if err != nil {
		return err
	}
	if err := unix.IoctlSetTermios(p.handle, unix.TIOCSETA, &t); err != nil {
		return platformError("set termios", p.path, err)
	}

	if nonstandard {
		if err := unix.IoctlSetPointerInt(p.handle, ioctlIOSSIOSPEED, config.BaudRate); err != nil {
			return platformError("set non-standard baud rate", p.path, err)
		}
	}
	return nil
}

// TIOCFLUSH queue selectors from sys/file.h.
const (
	fread  = 0x1
	fwrite = 0x2
)

// flushHandle discards buffered data with TIOCFLUSH.
func flushHandle(fd portHandle, dir FlushDirection) error {
	selector := fread | fwrite
	switch dir {
	case FlushInput:
		selector = fread
	case FlushOutput:
		selector = fwrite
	}
	if err := unix.IoctlSetPointerInt(fd, unix.TIOCFLUSH, selector); err != nil {
		return platformError("flush", "", err)
	}
	return nil
}

// drainHandle waits for the output queue to empty.
func drainHandle(fd portHandle) error {
	if err := unix.IoctlSetInt(fd, unix.TIOCDRAIN, 0); err != nil {
		return platformError("drain", "", err)
	}
	return nil
}
