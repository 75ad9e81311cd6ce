package ports

import (
	"sync"
)

// ModemSignals represents modem control signal states
type ModemSignals struct {
	CTS bool // Clear To Send
	DSR bool // Data Set Ready
	RI  bool // Ring Indicator
	DCD bool // Data Carrier Detect
	RTS bool // Request To Send
	DTR bool // Data Terminal Ready
}

// Pins selects control pin states to apply. A nil field leaves the
// corresponding pin untouched.
type Pins struct {
	RTS *bool
	DTR *bool
}

// FlushDirection selects which buffered data a Flush call discards.
type FlushDirection int

const (
	FlushInput  FlushDirection = iota // discard unread input
	FlushOutput                       // discard unwritten output
	FlushBoth                         // discard both
)

func (d FlushDirection) String() string {
	switch d {
	case FlushInput:
		return "input"
	case FlushOutput:
		return "output"
	case FlushBoth:
		return "both"
	default:
		return "unknown"
	}
}

// Port is an open serial device handle. All operations are direct blocking
// calls into the OS; a Port must not be shared between goroutines without
// external locking.
type Port struct {
	mu     sync.RWMutex
	handle portHandle
	path   string
	config Config
	closed bool

	// Windows cannot read RTS/DTR back from the driver, so the last state
	// written through this Port is remembered here.
	rts bool
	dtr bool
}

// Open opens a serial port and applies the configuration assembled from opts
// on top of DefaultConfig. Initial RTS/DTR pin states are applied last when
// requested. On failure the handle is closed before returning; open errors
// map onto ErrDeviceNotFound, ErrPermissionDenied and ErrDeviceInUse where
// the OS reports an equivalent condition.
func Open(device string, opts ...Option) (*Port, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	h, err := openHandle(device)
	if err != nil {
		return nil, err
	}

	p := &Port{handle: h, path: device, config: config, rts: true, dtr: true}

	if err := p.applyHandleConfig(config); err != nil {
		closeHandle(h)
		return nil, err
	}

	if config.InitialRTS != nil {
		if err := p.setPin(pinRTS, *config.InitialRTS); err != nil {
			closeHandle(h)
			return nil, err
		}
	}
	if config.InitialDTR != nil {
		if err := p.setPin(pinDTR, *config.InitialDTR); err != nil {
			closeHandle(h)
			return nil, err
		}
	}

	return p, nil
}

// Close closes the serial port
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPortClosed
	}
	p.closed = true
	return closeHandle(p.handle)
}

// Path returns the device path the port was opened with.
func (p *Port) Path() string {
	return p.path
}

// Config returns the configuration currently applied to the port.
func (p *Port) Config() Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.config
}

// Fd exposes the underlying OS handle for collaborators that perform their
// own I/O on the open device.
func (p *Port) Fd() uintptr {
	return handleFd(p.handle)
}

// Read reads data from the serial port
func (p *Port) Read(buf []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}
	return readHandle(p.handle, buf)
}

// Write writes data to the serial port
func (p *Port) Write(data []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}
	return writeHandle(p.handle, data)
}

// ApplyConfig maps the abstract configuration onto the native control block
// and applies it to the open handle. The mapping is deterministic: applying
// the same configuration twice leaves the device in the same state as
// applying it once.
func (p *Port) ApplyConfig(config Config) error {
	if err := config.validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPortClosed
	}
	if err := p.applyHandleConfig(config); err != nil {
		return err
	}
	p.config = config
	return nil
}

// Flush discards buffered data in the selected direction.
func (p *Port) Flush(dir FlushDirection) error {
	if dir < FlushInput || dir > FlushBoth {
		return ErrInvalidConfig
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}
	return flushHandle(p.handle, dir)
}

// Drain blocks until all output written to the port has been transmitted.
func (p *Port) Drain() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}
	return drainHandle(p.handle)
}

// SetPins applies the requested control pin states, leaving a pin untouched
// when its field is nil.
func (p *Port) SetPins(pins Pins) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPortClosed
	}
	if pins.RTS != nil {
		if err := p.setPin(pinRTS, *pins.RTS); err != nil {
			return err
		}
	}
	if pins.DTR != nil {
		if err := p.setPin(pinDTR, *pins.DTR); err != nil {
			return err
		}
	}
	return nil
}

// SetRTS manually sets the RTS signal state
func (p *Port) SetRTS(state bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPortClosed
	}
	return p.setPin(pinRTS, state)
}

// SetDTR manually sets the DTR signal state
func (p *Port) SetDTR(state bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPortClosed
	}
	return p.setPin(pinDTR, state)
}

// GetRTS returns the current RTS signal state
func (p *Port) GetRTS() (bool, error) {
	signals, err := p.GetModemSignals()
	return signals.RTS, err
}

// GetDTR returns the current DTR signal state
func (p *Port) GetDTR() (bool, error) {
	signals, err := p.GetModemSignals()
	return signals.DTR, err
}

// GetModemSignals returns current state of all modem control signals
func (p *Port) GetModemSignals() (ModemSignals, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ModemSignals{}, ErrPortClosed
	}
	return p.modemSignals()
}

// controlPin identifies a writable modem control pin.
type controlPin int

const (
	pinRTS controlPin = iota
	pinDTR
)
