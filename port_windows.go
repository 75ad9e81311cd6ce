package ports

import (
	"errors"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

type portHandle = windows.Handle

// devicePathPrefix is required when opening a COM port above COM9 and is
// harmless for the rest, so every open goes through it.
// https://learn.microsoft.com/en-us/windows/win32/devio/communications-resource-handles
const devicePathPrefix = `\\.\`

func systemLocation(portName string) string {
	if strings.HasPrefix(portName, devicePathPrefix) {
		return portName
	}
	return devicePathPrefix + portName
}

func openHandle(device string) (portHandle, error) {
	path, err := windows.UTF16PtrFromString(systemLocation(device))
	if err != nil {
		return windows.InvalidHandle, platformError("open", device, err)
	}

	h, err := windows.CreateFile(
		path,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		0,   // exclusive access
		nil, // default security attributes
		windows.OPEN_EXISTING,
		0, // synchronous I/O
		0) // must be NULL for comm devices
	if err != nil {
		switch {
		case errors.Is(err, windows.ERROR_FILE_NOT_FOUND), errors.Is(err, windows.ERROR_PATH_NOT_FOUND):
			return windows.InvalidHandle, ErrDeviceNotFound
		case errors.Is(err, windows.ERROR_ACCESS_DENIED), errors.Is(err, windows.ERROR_SHARING_VIOLATION):
			// The serial driver reports a port held by another process as
			// access denied.
			return windows.InvalidHandle, ErrDeviceInUse
		default:
			return windows.InvalidHandle, platformError("open", device, err)
		}
	}
	return h, nil
}

func closeHandle(h portHandle) error {
	return windows.CloseHandle(h)
}

func readHandle(h portHandle, buf []byte) (int, error) {
	var done uint32
	if err := windows.ReadFile(h, buf, &done, nil); err != nil {
		return int(done), err
	}
	return int(done), nil
}

func writeHandle(h portHandle, data []byte) (int, error) {
	var done uint32
	if err := windows.WriteFile(h, data, &done, nil); err != nil {
		return int(done), err
	}
	return int(done), nil
}

func handleFd(h portHandle) uintptr {
	return uintptr(h)
}

// buildDCB maps the abstract configuration onto the serial control block.
// Every field the mapping owns is written unconditionally, so applying the
// same configuration twice produces an identical block.
func buildDCB(config Config) (dcb, error) {
	var d dcb

	if config.BaudRate <= 0 {
		return d, ErrInvalidBaudRate
	}
	// The driver accepts arbitrary numeric rates; no table needed here.
	d.BaudRate = uint32(config.BaudRate)

	d.Flags = dcbFlagBinary

	switch config.DataBits {
	case 5, 6, 7, 8:
		d.ByteSize = uint8(config.DataBits)
	default:
		return d, ErrInvalidConfig
	}

	switch config.StopBits {
	case 1:
		d.StopBits = oneStopBit
	case 2:
		d.StopBits = twoStopBits
	default:
		return d, ErrInvalidConfig
	}

	switch config.Parity {
	case ParityNone:
		d.Parity = noParity
	case ParityEven:
		d.Flags |= dcbFlagParity
		d.Parity = evenParity
	case ParityOdd:
		d.Flags |= dcbFlagParity
		d.Parity = oddParity
	case ParityMark:
		d.Flags |= dcbFlagParity
		d.Parity = markParity
	case ParitySpace:
		d.Flags |= dcbFlagParity
		d.Parity = spaceParity
	default:
		return d, ErrInvalidConfig
	}

	switch config.FlowControl {
	case FlowControlNone:
		d.Flags |= dcbFlagDtrControlEnable | dcbFlagRtsControlEnable
	case FlowControlHardware:
		d.Flags |= dcbFlagOutxCtsFlow | dcbFlagRtsControlHshake | dcbFlagDtrControlEnable
	case FlowControlSoftware:
		d.Flags |= dcbFlagOutX | dcbFlagInX | dcbFlagDtrControlEnable | dcbFlagRtsControlEnable
		d.XonChar = charXON
		d.XoffChar = charXOFF
		d.XonLim = 2048
		d.XoffLim = 512
	default:
		return d, ErrInvalidConfig
	}

	d.DCBlength = uint32(unsafe.Sizeof(d))
	return d, nil
}

// XON/XOFF characters written into the control block when software flow
// control is enabled.
const (
	charXON  = 0x11 // DC1
	charXOFF = 0x13 // DC3
)

// applyHandleConfig writes a freshly mapped control block, then derives the
// read timeouts from the configuration.
func (p *Port) applyHandleConfig(config Config) error {
	d, err := buildDCB(config)
	if err != nil {
		return err
	}
	if err := setCommState(p.handle, &d); err != nil {
		return platformError("set comm state", p.path, err)
	}

	var t commTimeouts
	if config.ReadTimeoutTenths == 0 {
		// Block until at least one byte arrives.
		t.ReadIntervalTimeout = 0xffffffff
		t.ReadTotalTimeoutMultiplier = 0xffffffff
		t.ReadTotalTimeoutConstant = 0xfffffffe
	} else {
		t.ReadTotalTimeoutConstant = uint32(config.ReadTimeoutTenths) * 100
	}
	if err := setCommTimeouts(p.handle, &t); err != nil {
		return platformError("set comm timeouts", p.path, err)
	}
	return nil
}

func flushHandle(h portHandle, dir FlushDirection) error {
	var flags uint32
	switch dir {
	case FlushInput:
		flags = purgeRxAbort | purgeRxClear
	case FlushOutput:
		flags = purgeTxAbort | purgeTxClear
	default:
		flags = purgeRxAbort | purgeRxClear | purgeTxAbort | purgeTxClear
	}
	if err := purgeComm(h, flags); err != nil {
		return platformError("flush", "", err)
	}
	return nil
}

func drainHandle(h portHandle) error {
	if err := windows.FlushFileBuffers(h); err != nil {
		return platformError("drain", "", err)
	}
	return nil
}

func (p *Port) setPin(pin controlPin, state bool) error {
	var function uint32
	switch {
	case pin == pinRTS && state:
		function = commFunctionSetRTS
	case pin == pinRTS:
		function = commFunctionClrRTS
	case pin == pinDTR && state:
		function = commFunctionSetDTR
	default:
		function = commFunctionClrDTR
	}
	if err := escapeCommFunction(p.handle, function); err != nil {
		return platformError("set control pin", p.path, err)
	}

	if pin == pinRTS {
		p.rts = state
	} else {
		p.dtr = state
	}
	return nil
}

// modemSignals reads the input signals from the driver. The driver exposes
// no way to read RTS/DTR back, so the last states written through this Port
// are reported for them.
func (p *Port) modemSignals() (ModemSignals, error) {
	status, err := getCommModemStatus(p.handle)
	if err != nil {
		return ModemSignals{}, platformError("get modem status", p.path, err)
	}
	return ModemSignals{
		CTS: status&msCtsOn != 0,
		DSR: status&msDsrOn != 0,
		RI:  status&msRingOn != 0,
		DCD: status&msRlsdOn != 0,
		RTS: p.rts,
		DTR: p.dtr,
	}, nil
}
