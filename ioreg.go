package ports

import (
	"strconv"
	"strings"
)

// ioregNode is one service entry from an ioreg tree dump. The macOS
// enumerator works from a textual registry snapshot, so a node carries its
// parent chain instead of a live service handle.
type ioregNode struct {
	name   string
	class  string
	parent *ioregNode
	props  map[string]string
}

// stringProp returns a string property of the node.
func (n *ioregNode) stringProp(key string) (string, bool) {
	v, ok := n.props[key]
	return v, ok
}

// uint16Prop parses a numeric property. ioreg renders idVendor/idProduct in
// decimal.
func (n *ioregNode) uint16Prop(key string) (uint16, bool) {
	raw, ok := n.props[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}

// parseIoregTree parses the text form produced by
//
//	ioreg -r -c IOSerialBSDClient -t -l
//
// into a flat node list with parent links. The -t flag prints, for every
// matched service, the chain from the registry root, and -l includes the
// properties of every node on that chain; depth is encoded in the column of
// the "+-o" marker.
func parseIoregTree(text string) []*ioregNode {
	var (
		nodes []*ioregNode
		stack []*ioregNode
		depth []int
	)

	for _, line := range strings.Split(text, "\n") {
		if idx := strings.Index(line, "+-o "); idx >= 0 {
			rest := line[idx+len("+-o "):]
			name := rest
			class := ""
			if open := strings.Index(rest, "<class "); open >= 0 {
				name = strings.TrimSpace(rest[:open])
				class = rest[open+len("<class "):]
				if end := strings.IndexAny(class, ",>"); end >= 0 {
					class = class[:end]
				}
				class = strings.TrimSpace(class)
			}

			for len(stack) > 0 && depth[len(depth)-1] >= idx {
				stack = stack[:len(stack)-1]
				depth = depth[:len(depth)-1]
			}
			node := &ioregNode{name: name, class: class, props: make(map[string]string)}
			if len(stack) > 0 {
				node.parent = stack[len(stack)-1]
			}
			nodes = append(nodes, node)
			stack = append(stack, node)
			depth = append(depth, idx)
			continue
		}

		if len(stack) == 0 {
			continue
		}
		key, value, ok := parseIoregProperty(line)
		if ok {
			stack[len(stack)-1].props[key] = value
		}
	}
	return nodes
}

// parseIoregProperty parses a `"key" = value` line. String values lose their
// quotes; everything else (numbers, booleans, collections) is kept as raw
// text.
func parseIoregProperty(line string) (key, value string, ok bool) {
	trimmed := strings.TrimLeft(line, " |")
	if !strings.HasPrefix(trimmed, `"`) {
		return "", "", false
	}
	end := strings.Index(trimmed[1:], `"`)
	if end < 0 {
		return "", "", false
	}
	key = trimmed[1 : 1+end]

	rest := trimmed[end+2:]
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "=") {
		return "", "", false
	}
	value = strings.TrimSpace(rest[1:])
	if strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) && len(value) >= 2 {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

// findByCallout returns the serial client whose IOCalloutDevice property
// matches devPath exactly, or nil.
func findByCallout(nodes []*ioregNode, devPath string) *ioregNode {
	for _, n := range nodes {
		if n.class != "IOSerialBSDClient" {
			continue
		}
		if callout, ok := n.stringProp("IOCalloutDevice"); ok && callout == devPath {
			return n
		}
	}
	return nil
}

// usbAncestor walks the parent chain for the USB device service that carries
// identity properties, trying the IOUSBHostDevice class first and falling
// back to IOUSBDevice for older hosts.
func usbAncestor(n *ioregNode) *ioregNode {
	for _, class := range []string{"IOUSBHostDevice", "IOUSBDevice"} {
		for cur := n.parent; cur != nil; cur = cur.parent {
			if cur.class == class {
				return cur
			}
		}
	}
	return nil
}

// fillFromIoreg populates identity fields from the USB ancestor of a matched
// serial service. Missing properties keep their defaults.
func fillFromIoreg(info *PortInfo, usb *ioregNode) {
	if v, ok := usb.uint16Prop("idVendor"); ok {
		info.VendorID = v
	}
	if v, ok := usb.uint16Prop("idProduct"); ok {
		info.ProductID = v
	}
	if v, ok := usb.stringProp("USB Vendor Name"); ok && v != "" {
		info.Manufacturer = v
	}
	if v, ok := usb.stringProp("USB Product Name"); ok && v != "" {
		info.Description = v
		info.FriendlyName = v
	}
	serial := ""
	if v, ok := usb.stringProp("USB Serial Number"); ok && v != "" {
		info.SerialNumber = v
		serial = v
	}
	info.HardwareID = synthesizeHardwareID(info.VendorID, info.ProductID, serial)
}

// calloutDescriptions maps known device-name fragments to a description used
// when no service identity is available. The table is ordered: more specific
// fragments come before substrings of themselves.
var calloutDescriptions = []struct {
	fragment    string
	description string
}{
	{"SLAB_USBtoUART", "Silicon Labs CP210x USB to UART Bridge"},
	{"wchusbserial", "WCH CH34x USB to Serial"},
	{"usbserial", "USB Serial Device"},
	{"usbmodem", "USB Modem"},
	{"Bluetooth", "Bluetooth Serial Port"},
	{"debug-console", "Debug Console"},
}

// describeCallout derives a deterministic description from a callout device
// name for ports without a resolvable service identity.
func describeCallout(name string) string {
	for _, d := range calloutDescriptions {
		if strings.Contains(name, d.fragment) {
			return d.description
		}
	}
	return ValueUnknown
}
