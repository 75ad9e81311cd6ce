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

// getBaudRate converts an integer baud rate to the termios speed token.
// Linux is table driven: a rate outside the standard set is an error.
func getBaudRate(rate int) (uint32, error) {
	switch rate {
	case 50:
		return unix.B50, nil
	case 75:
		return unix.B75, nil
	case 110:
		return unix.B110, nil
	case 134:
		return unix.B134, nil
	case 150:
		return unix.B150, nil
	case 200:
		return unix.B200, nil
	case 300:
		return unix.B300, nil
	case 600:
		return unix.B600, nil
	case 1200:
		return unix.B1200, nil
	case 1800:
		return unix.B1800, nil
	case 2400:
		return unix.B2400, nil
	case 4800:
		return unix.B4800, nil
	case 9600:
		return unix.B9600, nil
	case 19200:
		return unix.B19200, nil
	case 38400:
		return unix.B38400, nil
	case 57600:
		return unix.B57600, nil
	case 115200:
		return unix.B115200, nil
	case 230400:
		return unix.B230400, nil
	case 460800:
		return unix.B460800, nil
	case 500000:
		return unix.B500000, nil
	case 576000:
		return unix.B576000, nil
	case 921600:
		return unix.B921600, nil
	case 1000000:
		return unix.B1000000, nil
	case 1152000:
		return unix.B1152000, nil
	case 1500000:
		return unix.B1500000, nil
	case 2000000:
		return unix.B2000000, nil
	case 2500000:
		return unix.B2500000, nil
	case 3000000:
		return unix.B3000000, nil
	case 3500000:
		return unix.B3500000, nil
	case 4000000:
		return unix.B4000000, nil
	default:
		return 0, ErrInvalidBaudRate
	}
}

// buildTermios maps the abstract configuration onto a freshly zeroed termios
// control block. Building from zero instead of patching the current state is
// what makes ApplyConfig idempotent: the same Config always produces the
// same block.
func buildTermios(config Config) (unix.Termios, error) {
	var t unix.Termios

	baud, err := getBaudRate(config.BaudRate)
	if err != nil {
		return t, err
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
		return t, ErrInvalidConfig
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
	case ParityMark:
		// CMSPAR turns the parity generator into a stick-bit generator:
		// PARODD selects mark, its absence selects space.
		t.Cflag |= unix.PARENB | unix.PARODD | unix.CMSPAR
	case ParitySpace:
		t.Cflag |= unix.PARENB | unix.CMSPAR
	default:
		return t, ErrInvalidConfig
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
		return t, ErrInvalidConfig
	}

	// Raw mode: no input, output or line processing.
	if config.ReadTimeoutTenths == 0 {
		t.Cc[unix.VMIN] = 1
		t.Cc[unix.VTIME] = 0
	} else {
		t.Cc[unix.VMIN] = 0
		t.Cc[unix.VTIME] = uint8(config.ReadTimeoutTenths)
	}

	t.Cflag |= baud
	t.Ispeed = baud
	t.Ospeed = baud

	return t, nil
}

// applyHandleConfig writes the mapped control block with TCSETS.
func (p *Port) applyHandleConfig(config Config) error {
	t, err := buildTermios(config)
	if err != nil {
		return err
	}
	if err := unix.IoctlSetTermios(p.handle, unix.TCSETS, &t); err != nil {
		return platformError("set termios", p.path, err)
	}
	return nil
}

// flushHandle discards buffered data with TCFLSH.
func flushHandle(fd portHandle, dir FlushDirection) error {
	selector := unix.TCIOFLUSH
	switch dir {
	case FlushInput:
		selector = unix.TCIFLUSH
	case FlushOutput:
		selector = unix.TCOFLUSH
	}
	if err := unix.IoctlSetInt(fd, unix.TCFLSH, selector); err != nil {
		return platformError("flush", "", err)
	}
	return nil
}

// drainHandle waits for the output queue to empty.
func drainHandle(fd portHandle) error {
	if err := unix.IoctlSetInt(fd, unix.TCSBRK, 1); err != nil {
		return platformError("drain", "", err)
	}
	return nil
}
