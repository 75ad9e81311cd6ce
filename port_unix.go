//go:build linux || darwin

package ports

import (
	"errors"

	"golang.org/x/sys/unix"
)

type portHandle = int

// openHandle opens the device file without becoming its controlling
// terminal. Native open errors are mapped to the package sentinels so
// callers can branch with errors.Is.
func openHandle(device string) (portHandle, error) {
	fd, err := unix.Open(device, unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		switch {
		case errors.Is(err, unix.ENOENT):
			return -1, ErrDeviceNotFound
		case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
			return -1, ErrPermissionDenied
		case errors.Is(err, unix.EBUSY):
			return -1, ErrDeviceInUse
		default:
			return -1, platformError("open", device, err)
		}
	}
	return fd, nil
}

func closeHandle(fd portHandle) error {
	return unix.Close(fd)
}

func readHandle(fd portHandle, buf []byte) (int, error) {
	return unix.Read(fd, buf)
}

func writeHandle(fd portHandle, data []byte) (int, error) {
	return unix.Write(fd, data)
}

func handleFd(fd portHandle) uintptr {
	return uintptr(fd)
}

// setPin sets or clears a modem control bit with TIOCMBIS/TIOCMBIC.
func (p *Port) setPin(pin controlPin, state bool) error {
	bit := unix.TIOCM_RTS
	if pin == pinDTR {
		bit = unix.TIOCM_DTR
	}

	req := uint(unix.TIOCMBIC)
	if state {
		req = unix.TIOCMBIS
	}
	if err := unix.IoctlSetPointerInt(p.handle, req, bit); err != nil {
		return platformError("set control pin", p.path, err)
	}

	if pin == pinRTS {
		p.rts = state
	} else {
		p.dtr = state
	}
	return nil
}

// modemSignals reads the full modem status word with TIOCMGET.
func (p *Port) modemSignals() (ModemSignals, error) {
	status, err := unix.IoctlGetInt(p.handle, unix.TIOCMGET)
	if err != nil {
		return ModemSignals{}, platformError("get modem status", p.path, err)
	}
	return signalsFromStatus(status), nil
}

// signalsFromStatus unpacks a TIOCM status word. DCD arrives as the carrier
// bit TIOCM_CAR.
func signalsFromStatus(status int) ModemSignals {
	return ModemSignals{
		CTS: status&unix.TIOCM_CTS != 0,
		DSR: status&unix.TIOCM_DSR != 0,
		RI:  status&unix.TIOCM_RI != 0,
		DCD: status&unix.TIOCM_CAR != 0,
		RTS: status&unix.TIOCM_RTS != 0,
		DTR: status&unix.TIOCM_DTR != 0,
	}
}
