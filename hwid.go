package ports

import (
	"fmt"
	"strconv"
	"strings"
)

// hardwareID holds the identity fields recovered from a raw platform
// hardware-identifier string.
type hardwareID struct {
	VendorID  uint16
	ProductID uint16
	Serial    string
}

// parseHardwareID extracts vendor id, product id and a candidate serial number
// from a hardware-identifier string. The token delimiter convention is selected
// by the string prefix: USB identifiers use `\` and `&`, FTDI bus identifiers
// use `\` and `+`. Any other prefix is an unsupported convention and reports
// ok=false; callers substitute zero ids and an empty serial instead of failing
// the enumeration.
func parseHardwareID(raw string) (id hardwareID, ok bool) {
	var delims string
	switch {
	case strings.HasPrefix(raw, "FTDIBUS"):
		delims = "\\+"
	case strings.HasPrefix(raw, "USB"):
		delims = "\\&"
	default:
		return hardwareID{}, false
	}

	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return strings.ContainsRune(delims, r)
	})

	composite := false
	for i, tok := range tokens {
		switch {
		case strings.HasPrefix(tok, "VID_"):
			id.VendorID = parseHexID(tok[len("VID_"):])
		case strings.HasPrefix(tok, "PID_"):
			id.ProductID = parseHexID(tok[len("PID_"):])
		case i == 0:
			// Bus class token, not a serial number.
		case isInterfaceToken(tok):
			composite = true
		case id.Serial == "":
			id.Serial = tok
		}
	}

	if composite {
		// An MI_dd token marks a composite-device interface node. Interface
		// nodes never carry their own serial number; the instance suffix is
		// a bus location, so the caller must ask a parent node instead.
		id.Serial = ""
	}
	return id, true
}

// isInterfaceToken reports whether tok is an interface-number marker of the
// exact form MI_dd (two decimal digits).
func isInterfaceToken(tok string) bool {
	if len(tok) != 5 || !strings.HasPrefix(tok, "MI_") {
		return false
	}
	return isDecimalDigit(tok[3]) && isDecimalDigit(tok[4])
}

func isDecimalDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// parseHexID parses the 4 hex digits following a VID_/PID_ marker as a 16-bit
// integer. Malformed or truncated digits resolve to 0, the documented
// "unknown" id value.
func parseHexID(s string) uint16 {
	if len(s) < 4 {
		return 0
	}
	v, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0
	}
	return uint16(v)
}

// synthesizeHardwareID builds a USB-convention identifier string for platforms
// that expose no native one. The result parses back through parseHardwareID to
// the same identity.
func synthesizeHardwareID(vid, pid uint16, serial string) string {
	id := fmt.Sprintf("USB\\VID_%04X&PID_%04X", vid, pid)
	if serial != "" {
		id += "\\" + serial
	}
	return id
}
