package ports

import (
	"os/exec"
	"path/filepath"
)

// Callout devices only: a cu. node is opened for outgoing use and does not
// block on carrier detect the way its tty. sibling does.
const calloutGlob = "/dev/cu.*"

// enumState is the service-tree enumeration strategy. The IOKit registry is
// snapshotted once through ioreg at construction; each next call correlates
// one callout device against it.
type enumState struct {
	paths []string
	nodes []*ioregNode
	idx   int
}

func newEnumState() (*enumState, error) {
	paths, err := filepath.Glob(calloutGlob)
	if err != nil {
		return nil, platformError("scan device root", calloutGlob, err)
	}

	// The service layer being unavailable is not fatal: enumeration falls
	// back to name-derived descriptions.
	var nodes []*ioregNode
	if out, err := exec.Command("ioreg", "-r", "-c", "IOSerialBSDClient", "-t", "-l").Output(); err == nil {
		nodes = parseIoregTree(string(out))
	}

	return &enumState{paths: paths, nodes: nodes}, nil
}

func (s *enumState) close() error {
	s.paths = nil
	s.nodes = nil
	return nil
}

// next correlates the next callout device with its serial service by exact
// IOCalloutDevice equality, then walks the service tree for the USB
// ancestor carrying the identity properties. Devices without a service
// match or a USB ancestor get a deterministic name-derived description.
func (s *enumState) next(info *PortInfo) (bool, error) {
	if s.idx >= len(s.paths) {
		return false, nil
	}
	devPath := s.paths[s.idx]
	s.idx++

	name := filepath.Base(devPath)
	info.reset(name, devPath)

	if node := findByCallout(s.nodes, devPath); node != nil {
		if usb := usbAncestor(node); usb != nil {
			fillFromIoreg(info, usb)
			return true, nil
		}
	}
	info.Description = describeCallout(name)
	if info.Description != ValueUnknown {
		info.FriendlyName = info.Description
	}
	return true, nil
}

// listPorts is the lightweight enumeration path: the callout glob without
// any service correlation.
func listPorts() ([]PortDescriptor, error) {
	paths, err := filepath.Glob(calloutGlob)
	if err != nil {
		return nil, platformError("scan device root", calloutGlob, err)
	}

	var descriptors []PortDescriptor
	for _, devPath := range paths {
		name := filepath.Base(devPath)
		driver := ""
		if d := describeCallout(name); d != ValueUnknown {
			driver = d
		}
		descriptors = append(descriptors, PortDescriptor{
			Path:   devPath,
			Name:   name,
			Driver: driver,
		})
	}
	return descriptors, nil
}
