package ports

import (
	"fmt"
	"strconv"
	"strings"
)

// Parity represents the parity bit mode for a serial line
type Parity int

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
	ParityMark  // parity bit always 1
	ParitySpace // parity bit always 0
)

// Char returns the single-letter form used in the canonical config text
func (p Parity) Char() byte {
	switch p {
	case ParityEven:
		return 'E'
	case ParityOdd:
		return 'O'
	case ParityMark:
		return 'M'
	case ParitySpace:
		return 'S'
	default:
		return 'N'
	}
}

func (p Parity) String() string {
	switch p {
	case ParityNone:
		return "None"
	case ParityEven:
		return "Even"
	case ParityOdd:
		return "Odd"
	case ParityMark:
		return "Mark"
	case ParitySpace:
		return "Space"
	default:
		return "Unknown"
	}
}

// FlowControl represents the handshake mode for a serial line
type FlowControl int

const (
	FlowControlNone     FlowControl = iota
	FlowControlSoftware             // XON/XOFF in both directions
	FlowControlHardware             // RTS/CTS
)

func (f FlowControl) String() string {
	switch f {
	case FlowControlNone:
		return "None"
	case FlowControlSoftware:
		return "XON/XOFF"
	case FlowControlHardware:
		return "RTS/CTS"
	default:
		return "Unknown"
	}
}

// Config holds the abstract line configuration for a serial port. The value
// is platform independent; ApplyConfig maps it onto the native control block.
type Config struct {
	BaudRate          int
	DataBits          int
	StopBits          int
	Parity            Parity
	FlowControl       FlowControl
	ReadTimeoutTenths int // read timeout in tenths of seconds, 0 blocks until data

	// InitialRTS and InitialDTR set the control pins right after open.
	// A nil pointer leaves the pin at its platform default.
	InitialRTS *bool
	InitialDTR *bool
}

// Option is a functional option for configuring a serial port
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaudRate:    115200,
		DataBits:    8,
		StopBits:    1,
		Parity:      ParityNone,
		FlowControl: FlowControlNone,
	}
}

// WithBaudRate sets the baud rate. Whether a rate is actually supported is
// platform dependent and checked when the configuration is applied.
func WithBaudRate(rate int) Option {
	return func(c *Config) error {
		if rate <= 0 {
			return ErrInvalidBaudRate
		}
		c.BaudRate = rate
		return nil
	}
}

// WithDataBits sets the number of data bits (5, 6, 7, or 8)
func WithDataBits(bits int) Option {
	return func(c *Config) error {
		if bits < 5 || bits > 8 {
			return ErrInvalidConfig
		}
		c.DataBits = bits
		return nil
	}
}

// WithStopBits sets the number of stop bits (1 or 2)
func WithStopBits(bits int) Option {
	return func(c *Config) error {
		if bits != 1 && bits != 2 {
			return ErrInvalidConfig
		}
		c.StopBits = bits
		return nil
	}
}

// WithParity sets the parity mode
func WithParity(parity Parity) Option {
	return func(c *Config) error {
		if parity < ParityNone || parity > ParitySpace {
			return ErrInvalidConfig
		}
		c.Parity = parity
		return nil
	}
}

// WithFlowControl sets the flow control mode
func WithFlowControl(fc FlowControl) Option {
	return func(c *Config) error {
		if fc < FlowControlNone || fc > FlowControlHardware {
			return ErrInvalidConfig
		}
		c.FlowControl = fc
		return nil
	}
}

// WithReadTimeout sets the read timeout in tenths of seconds (0-255),
// 0 means block until at least one byte arrives
func WithReadTimeout(tenths int) Option {
	return func(c *Config) error {
		if tenths < 0 || tenths > 255 {
			return ErrInvalidConfig
		}
		c.ReadTimeoutTenths = tenths
		return nil
	}
}

// WithInitialRTS sets the RTS pin state to apply right after open
func WithInitialRTS(state bool) Option {
	return func(c *Config) error {
		c.InitialRTS = &state
		return nil
	}
}

// WithInitialDTR sets the DTR pin state to apply right after open
func WithInitialDTR(state bool) Option {
	return func(c *Config) error {
		c.InitialDTR = &state
		return nil
	}
}

// validate checks the configuration against the abstract model before it is
// mapped onto a platform control block.
func (c Config) validate() error {
	if c.BaudRate <= 0 {
		return ErrInvalidBaudRate
	}
	if c.DataBits < 5 || c.DataBits > 8 {
		return ErrInvalidConfig
	}
	if c.StopBits != 1 && c.StopBits != 2 {
		return ErrInvalidConfig
	}
	if c.Parity < ParityNone || c.Parity > ParitySpace {
		return ErrInvalidConfig
	}
	if c.FlowControl < FlowControlNone || c.FlowControl > FlowControlHardware {
		return ErrInvalidConfig
	}
	if c.ReadTimeoutTenths < 0 || c.ReadTimeoutTenths > 255 {
		return ErrInvalidConfig
	}
	return nil
}

// String renders the canonical text form "<baud>@<bits><parity><stop>",
// followed by " RTS/CTS" or " XON/XOFF" when hardware or software flow
// control is enabled. ParseConfig accepts the same form back, so the
// rendering is stable and round-trips.
func (c Config) String() string {
	s := fmt.Sprintf("%d@%d%c%d", c.BaudRate, c.DataBits, c.Parity.Char(), c.StopBits)
	switch c.FlowControl {
	case FlowControlHardware:
		s += " RTS/CTS"
	case FlowControlSoftware:
		s += " XON/XOFF"
	}
	return s
}

// ParseConfig parses the canonical text form produced by Config.String,
// e.g. "115200@8N1" or "9600@7E2 RTS/CTS".
func ParseConfig(s string) (Config, error) {
	cfg := DefaultConfig()

	line, suffix, hasSuffix := strings.Cut(s, " ")
	if hasSuffix {
		switch suffix {
		case "RTS/CTS":
			cfg.FlowControl = FlowControlHardware
		case "XON/XOFF":
			cfg.FlowControl = FlowControlSoftware
		default:
			return Config{}, ErrInvalidConfig
		}
	}

	baudStr, frame, ok := strings.Cut(line, "@")
	if !ok || len(frame) != 3 {
		return Config{}, ErrInvalidConfig
	}

	baud, err := strconv.Atoi(baudStr)
	if err != nil || baud <= 0 {
		return Config{}, ErrInvalidBaudRate
	}
	cfg.BaudRate = baud

	cfg.DataBits = int(frame[0] - '0')
	if cfg.DataBits < 5 || cfg.DataBits > 8 {
		return Config{}, ErrInvalidConfig
	}

	parity, ok := parityFromChar(frame[1])
	if !ok {
		return Config{}, ErrInvalidConfig
	}
	cfg.Parity = parity

	cfg.StopBits = int(frame[2] - '0')
	if cfg.StopBits != 1 && cfg.StopBits != 2 {
		return Config{}, ErrInvalidConfig
	}

	return cfg, nil
}

func parityFromChar(c byte) (Parity, bool) {
	switch c {
	case 'N':
		return ParityNone, true
	case 'E':
		return ParityEven, true
	case 'O':
		return ParityOdd, true
	case 'M':
		return ParityMark, true
	case 'S':
		return ParitySpace, true
	default:
		return ParityNone, false
	}
}
