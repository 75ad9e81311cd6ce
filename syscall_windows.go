package ports

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Comm API entry points not covered by x/sys/windows.
var (
	modkernel32            = windows.NewLazySystemDLL("kernel32.dll")
	procSetCommState       = modkernel32.NewProc("SetCommState")
	procSetCommTimeouts    = modkernel32.NewProc("SetCommTimeouts")
	procPurgeComm          = modkernel32.NewProc("PurgeComm")
	procEscapeCommFunction = modkernel32.NewProc("EscapeCommFunction")
	procGetCommModemStatus = modkernel32.NewProc("GetCommModemStatus")
)

// dcb is the fixed-layout serial control block consumed by SetCommState.
// https://learn.microsoft.com/en-us/windows/win32/api/winbase/ns-winbase-dcb
type dcb struct {
	DCBlength uint32
	BaudRate  uint32

	// Flags is a bitfield
	//  fBinary            :1
	//  fParity            :1
	//  fOutxCtsFlow       :1
	//  fOutxDsrFlow       :1
	//  fDtrControl        :2
	//  fDsrSensitivity    :1
	//  fTXContinueOnXoff  :1
	//  fOutX              :1
	//  fInX               :1
	//  fErrorChar         :1
	//  fNull              :1
	//  fRtsControl        :2
	//  fAbortOnError      :1
	//  fDummy2            :17
	Flags uint32

	WReserved  uint16
	XonLim     uint16
	XoffLim    uint16
	ByteSize   uint8
	Parity     uint8
	StopBits   uint8
	XonChar    byte
	XoffChar   byte
	ErrorChar  byte
	EOFChar    byte
	EvtChar    byte
	WReserved1 uint16
}

const (
	dcbFlagBinary           = 0x00000001
	dcbFlagParity           = 0x00000002
	dcbFlagOutxCtsFlow      = 0x00000004
	dcbFlagOutxDsrFlow      = 0x00000008
	dcbFlagDtrControlEnable = 0x00000010
	dcbFlagOutX             = 0x00000100
	dcbFlagInX              = 0x00000200
	dcbFlagRtsControlEnable = 0x00001000
	dcbFlagRtsControlHshake = 0x00002000
)

// DCB parity codes.
const (
	noParity    = 0
	oddParity   = 1
	evenParity  = 2
	markParity  = 3
	spaceParity = 4
)

// DCB stop-bit codes.
const (
	oneStopBit  = 0
	twoStopBits = 2
)

// EscapeCommFunction request codes.
const (
	commFunctionSetRTS = 3
	commFunctionClrRTS = 4
	commFunctionSetDTR = 5
	commFunctionClrDTR = 6
)

// PurgeComm flags.
const (
	purgeTxAbort = 0x0001
	purgeRxAbort = 0x0002
	purgeTxClear = 0x0004
	purgeRxClear = 0x0008
)

// GetCommModemStatus bits.
const (
	msCtsOn  = 0x0010
	msDsrOn  = 0x0020
	msRingOn = 0x0040
	msRlsdOn = 0x0080
)

type commTimeouts struct {
	ReadIntervalTimeout         uint32
	ReadTotalTimeoutMultiplier  uint32
	ReadTotalTimeoutConstant    uint32
	WriteTotalTimeoutMultiplier uint32
	WriteTotalTimeoutConstant   uint32
}

func setCommState(handle windows.Handle, d *dcb) error {
	r1, _, err := procSetCommState.Call(uintptr(handle), uintptr(unsafe.Pointer(d)))
	if r1 == 0 {
		return err
	}
	return nil
}

func setCommTimeouts(handle windows.Handle, t *commTimeouts) error {
	r1, _, err := procSetCommTimeouts.Call(uintptr(handle), uintptr(unsafe.Pointer(t)))
	if r1 == 0 {
		return err
	}
	return nil
}

func purgeComm(handle windows.Handle, flags uint32) error {
	r1, _, err := procPurgeComm.Call(uintptr(handle), uintptr(flags))
	if r1 == 0 {
		return err
	}
	return nil
}

func escapeCommFunction(handle windows.Handle, function uint32) error {
	r1, _, err := procEscapeCommFunction.Call(uintptr(handle), uintptr(function))
	if r1 == 0 {
		return err
	}
	return nil
}

func getCommModemStatus(handle windows.Handle) (uint32, error) {
	var status uint32
	r1, _, err := procGetCommModemStatus.Call(uintptr(handle), uintptr(unsafe.Pointer(&status)))
	if r1 == 0 {
		return 0, err
	}
	return status, nil
}
