package ports

import (
	"errors"
	"reflect"
	"testing"

	"golang.org/x/sys/unix"
)

func TestGetBaudRate(t *testing.T) {
	tests := []struct {
		rate int
		want uint32
		ok   bool
	}{
		{9600, unix.B9600, true},
		{19200, unix.B19200, true},
		{115200, unix.B115200, true},
		{921600, unix.B921600, true},
		{4000000, unix.B4000000, true},
		{12345, 0, false},
		{0, 0, false},
		{-9600, 0, false},
	}

	for _, tt := range tests {
		got, err := getBaudRate(tt.rate)
		if tt.ok {
			if err != nil {
				t.Errorf("getBaudRate(%d) returned error: %v", tt.rate, err)
			}
			if got != tt.want {
				t.Errorf("getBaudRate(%d) = %#x, want %#x", tt.rate, got, tt.want)
			}
		} else if !errors.Is(err, ErrInvalidBaudRate) {
			t.Errorf("getBaudRate(%d): Expected ErrInvalidBaudRate, got %v", tt.rate, err)
		}
	}
}

func TestBuildTermiosDefault(t *testing.T) {
	tio, err := buildTermios(DefaultConfig())
	if err != nil {
		t.Fatalf("buildTermios failed: %v", err)
	}

	if tio.Cflag&unix.CREAD == 0 {
		t.Error("CREAD should be set")
	}
	if tio.Cflag&unix.CLOCAL == 0 {
		t.Error("CLOCAL should be set")
	}
	if tio.Cflag&unix.CSIZE != unix.CS8 {
		t.Errorf("Expected CS8, got %#x", tio.Cflag&unix.CSIZE)
	}
	if tio.Cflag&unix.CSTOPB != 0 {
		t.Error("CSTOPB should not be set for 1 stop bit")
	}
	if tio.Cflag&unix.PARENB != 0 {
		t.Error("PARENB should not be set for ParityNone")
	}
	if tio.Cflag&unix.CRTSCTS != 0 {
		t.Error("CRTSCTS should not be set without hardware flow control")
	}
	if tio.Iflag&(unix.IXON|unix.IXOFF) != 0 {
		t.Error("IXON/IXOFF should not be set without software flow control")
	}
	if tio.Ispeed != unix.B115200 || tio.Ospeed != unix.B115200 {
		t.Errorf("Expected speed fields B115200, got %#x/%#x", tio.Ispeed, tio.Ospeed)
	}
	if tio.Cc[unix.VMIN] != 1 || tio.Cc[unix.VTIME] != 0 {
		t.Errorf("Expected blocking VMIN=1 VTIME=0, got VMIN=%d VTIME=%d",
			tio.Cc[unix.VMIN], tio.Cc[unix.VTIME])
	}
}

func TestBuildTermiosParity(t *testing.T) {
	tests := []struct {
		parity Parity
		want   uint32
	}{
		{ParityNone, 0},
		{ParityEven, unix.PARENB},
		{ParityOdd, unix.PARENB | unix.PARODD},
		{ParityMark, unix.PARENB | unix.PARODD | unix.CMSPAR},
		{ParitySpace, unix.PARENB | unix.CMSPAR},
	}

	for _, tt := range tests {
		config := DefaultConfig()
		config.Parity = tt.parity

		tio, err := buildTermios(config)
		if err != nil {
			t.Errorf("buildTermios(parity=%v) failed: %v", tt.parity, err)
			continue
		}
		mask := uint32(unix.PARENB | unix.PARODD | unix.CMSPAR)
		if got := tio.Cflag & mask; got != tt.want {
			t.Errorf("parity %v: flags = %#x, want %#x", tt.parity, got, tt.want)
		}
	}
}

func TestBuildTermiosFlowControl(t *testing.T) {
	config := DefaultConfig()
	config.FlowControl = FlowControlHardware

	tio, err := buildTermios(config)
	if err != nil {
		t.Fatalf("buildTermios failed: %v", err)
	}
	if tio.Cflag&unix.CRTSCTS == 0 {
		t.Error("CRTSCTS should be set for hardware flow control")
	}

	config.FlowControl = FlowControlSoftware
	tio, err = buildTermios(config)
	if err != nil {
		t.Fatalf("buildTermios failed: %v", err)
	}
	if tio.Iflag&(unix.IXON|unix.IXOFF) != unix.IXON|unix.IXOFF {
		t.Error("IXON and IXOFF should be set for software flow control")
	}
	if tio.Cc[unix.VSTART] != charXON || tio.Cc[unix.VSTOP] != charXOFF {
		t.Errorf("Expected VSTART/VSTOP %#x/%#x, got %#x/%#x",
			charXON, charXOFF, tio.Cc[unix.VSTART], tio.Cc[unix.VSTOP])
	}
}

func TestBuildTermiosReadTimeout(t *testing.T) {
	config := DefaultConfig()
	config.ReadTimeoutTenths = 25

	tio, err := buildTermios(config)
	if err != nil {
		t.Fatalf("buildTermios failed: %v", err)
	}
	if tio.Cc[unix.VMIN] != 0 || tio.Cc[unix.VTIME] != 25 {
		t.Errorf("Expected VMIN=0 VTIME=25, got VMIN=%d VTIME=%d",
			tio.Cc[unix.VMIN], tio.Cc[unix.VTIME])
	}
}

func TestBuildTermiosUnsupportedBaud(t *testing.T) {
	config := DefaultConfig()
	config.BaudRate = 12345

	if _, err := buildTermios(config); !errors.Is(err, ErrInvalidBaudRate) {
		t.Errorf("Expected ErrInvalidBaudRate, got %v", err)
	}
}

func TestBuildTermiosDeterministic(t *testing.T) {
	// The control block is assembled from a zeroed struct each time, so
	// repeated mappings of the same configuration must be identical.
	config := DefaultConfig()
	config.Parity = ParityEven
	config.FlowControl = FlowControlHardware
	config.StopBits = 2

	first, err := buildTermios(config)
	if err != nil {
		t.Fatalf("buildTermios failed: %v", err)
	}
	second, err := buildTermios(config)
	if err != nil {
		t.Fatalf("buildTermios failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("buildTermios is not deterministic for identical configurations")
	}
}
