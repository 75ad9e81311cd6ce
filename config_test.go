package ports

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.BaudRate != 115200 {
		t.Errorf("Expected BaudRate 115200, got %d", config.BaudRate)
	}
	if config.DataBits != 8 {
		t.Errorf("Expected DataBits 8, got %d", config.DataBits)
	}
	if config.StopBits != 1 {
		t.Errorf("Expected StopBits 1, got %d", config.StopBits)
	}
	if config.Parity != ParityNone {
		t.Errorf("Expected Parity None, got %v", config.Parity)
	}
	if config.FlowControl != FlowControlNone {
		t.Errorf("Expected FlowControl None, got %v", config.FlowControl)
	}
	if err := config.validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestFunctionalOptions(t *testing.T) {
	config := DefaultConfig()

	// Test WithBaudRate
	err := WithBaudRate(9600)(&config)
	if err != nil {
		t.Errorf("WithBaudRate failed: %v", err)
	}
	if config.BaudRate != 9600 {
		t.Errorf("Expected BaudRate 9600, got %d", config.BaudRate)
	}

	// Test WithDataBits
	err = WithDataBits(7)(&config)
	if err != nil {
		t.Errorf("WithDataBits failed: %v", err)
	}
	if config.DataBits != 7 {
		t.Errorf("Expected DataBits 7, got %d", config.DataBits)
	}

	// Test WithStopBits
	err = WithStopBits(2)(&config)
	if err != nil {
		t.Errorf("WithStopBits failed: %v", err)
	}
	if config.StopBits != 2 {
		t.Errorf("Expected StopBits 2, got %d", config.StopBits)
	}

	// Test WithParity
	err = WithParity(ParityEven)(&config)
	if err != nil {
		t.Errorf("WithParity failed: %v", err)
	}
	if config.Parity != ParityEven {
		t.Errorf("Expected Parity Even, got %v", config.Parity)
	}

	// Test WithFlowControl
	err = WithFlowControl(FlowControlHardware)(&config)
	if err != nil {
		t.Errorf("WithFlowControl failed: %v", err)
	}
	if config.FlowControl != FlowControlHardware {
		t.Errorf("Expected FlowControl RTS/CTS, got %v", config.FlowControl)
	}
}

func TestInvalidOptions(t *testing.T) {
	tests := []struct {
		name     string
		opt      Option
		expected error
	}{
		{"zero baud rate", WithBaudRate(0), ErrInvalidBaudRate},
		{"negative baud rate", WithBaudRate(-9600), ErrInvalidBaudRate},
		{"data bits too low", WithDataBits(4), ErrInvalidConfig},
		{"data bits too high", WithDataBits(9), ErrInvalidConfig},
		{"three stop bits", WithStopBits(3), ErrInvalidConfig},
		{"zero stop bits", WithStopBits(0), ErrInvalidConfig},
		{"parity out of range", WithParity(Parity(42)), ErrInvalidConfig},
		{"flow control out of range", WithFlowControl(FlowControl(-1)), ErrInvalidConfig},
		{"read timeout negative", WithReadTimeout(-1), ErrInvalidConfig},
		{"read timeout too large", WithReadTimeout(256), ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			err := tt.opt(&config)
			if !errors.Is(err, tt.expected) {
				t.Errorf("error = %v, want %v", err, tt.expected)
			}
		})
	}
}

func TestWithInitialRTS(t *testing.T) {
	for _, state := range []bool{true, false} {
		config := DefaultConfig()
		if err := WithInitialRTS(state)(&config); err != nil {
			t.Errorf("WithInitialRTS(%v) returned error: %v", state, err)
		}
		if config.InitialRTS == nil {
			t.Errorf("WithInitialRTS(%v) did not set InitialRTS", state)
		} else if *config.InitialRTS != state {
			t.Errorf("WithInitialRTS(%v) set InitialRTS to %v", state, *config.InitialRTS)
		}
	}
}

func TestWithInitialDTR(t *testing.T) {
	for _, state := range []bool{true, false} {
		config := DefaultConfig()
		if err := WithInitialDTR(state)(&config); err != nil {
			t.Errorf("WithInitialDTR(%v) returned error: %v", state, err)
		}
		if config.InitialDTR == nil {
			t.Errorf("WithInitialDTR(%v) did not set InitialDTR", state)
		} else if *config.InitialDTR != state {
			t.Errorf("WithInitialDTR(%v) set InitialDTR to %v", state, *config.InitialDTR)
		}
	}
}

func TestConfigString(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected string
	}{
		{
			name:     "software flow control",
			config:   Config{BaudRate: 115200, DataBits: 8, StopBits: 1, Parity: ParityNone, FlowControl: FlowControlSoftware},
			expected: "115200@8N1 XON/XOFF",
		},
		{
			name:     "hardware flow control",
			config:   Config{BaudRate: 115200, DataBits: 8, StopBits: 1, Parity: ParityNone, FlowControl: FlowControlHardware},
			expected: "115200@8N1 RTS/CTS",
		},
		{
			name:     "no flow control",
			config:   Config{BaudRate: 115200, DataBits: 8, StopBits: 1, Parity: ParityNone},
			expected: "115200@8N1",
		},
		{
			name:     "even parity",
			config:   Config{BaudRate: 115200, DataBits: 8, StopBits: 1, Parity: ParityEven},
			expected: "115200@8E1",
		},
		{
			name:     "odd parity",
			config:   Config{BaudRate: 115200, DataBits: 8, StopBits: 1, Parity: ParityOdd},
			expected: "115200@8O1",
		},
		{
			name:     "space parity",
			config:   Config{BaudRate: 115200, DataBits: 8, StopBits: 1, Parity: ParitySpace},
			expected: "115200@8S1",
		},
		{
			name:     "mark parity",
			config:   Config{BaudRate: 115200, DataBits: 8, StopBits: 1, Parity: ParityMark},
			expected: "115200@8M1",
		},
		{
			name:     "five data bits mark parity",
			config:   Config{BaudRate: 9600, DataBits: 5, StopBits: 1, Parity: ParityMark},
			expected: "9600@5M1",
		},
		{
			name:     "two stop bits",
			config:   Config{BaudRate: 19200, DataBits: 7, StopBits: 2, Parity: ParityEven},
			expected: "19200@7E2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		input    string
		expected Config
	}{
		{
			input:    "115200@8N1",
			expected: Config{BaudRate: 115200, DataBits: 8, StopBits: 1, Parity: ParityNone, FlowControl: FlowControlNone},
		},
		{
			input:    "115200@8N1 RTS/CTS",
			expected: Config{BaudRate: 115200, DataBits: 8, StopBits: 1, Parity: ParityNone, FlowControl: FlowControlHardware},
		},
		{
			input:    "115200@8N1 XON/XOFF",
			expected: Config{BaudRate: 115200, DataBits: 8, StopBits: 1, Parity: ParityNone, FlowControl: FlowControlSoftware},
		},
		{
			input:    "9600@5M1",
			expected: Config{BaudRate: 9600, DataBits: 5, StopBits: 1, Parity: ParityMark, FlowControl: FlowControlNone},
		},
		{
			input:    "19200@7E2",
			expected: Config{BaudRate: 19200, DataBits: 7, StopBits: 2, Parity: ParityEven, FlowControl: FlowControlNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseConfig(tt.input)
			if err != nil {
				t.Fatalf("ParseConfig(%q) error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseConfig(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"missing separator", "115200"},
		{"bad baud", "fast@8N1"},
		{"zero baud", "0@8N1"},
		{"bad data bits", "115200@9N1"},
		{"bad parity char", "115200@8X1"},
		{"lowercase parity char", "115200@8n1"},
		{"bad stop bits", "115200@8N3"},
		{"frame too long", "115200@8N15"},
		{"unknown suffix", "115200@8N1 DTR/DSR"},
		{"trailing space", "115200@8N1 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig(tt.input); err == nil {
				t.Errorf("ParseConfig(%q) expected error, got nil", tt.input)
			}
		})
	}
}

// TestConfigTextRoundTrip verifies String and ParseConfig are inverses for
// every parity, flow control and frame combination.
func TestConfigTextRoundTrip(t *testing.T) {
	for _, parity := range []Parity{ParityNone, ParityEven, ParityOdd, ParityMark, ParitySpace} {
		for _, flow := range []FlowControl{FlowControlNone, FlowControlSoftware, FlowControlHardware} {
			for _, bits := range []int{5, 6, 7, 8} {
				for _, stop := range []int{1, 2} {
					cfg := Config{
						BaudRate:    115200,
						DataBits:    bits,
						StopBits:    stop,
						Parity:      parity,
						FlowControl: flow,
					}
					parsed, err := ParseConfig(cfg.String())
					if err != nil {
						t.Fatalf("ParseConfig(%q) error: %v", cfg.String(), err)
					}
					if parsed != cfg {
						t.Errorf("round trip %q = %+v, want %+v", cfg.String(), parsed, cfg)
					}
				}
			}
		}
	}
}
