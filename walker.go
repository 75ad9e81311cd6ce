package ports

// maxParentHops bounds the upward device-tree traversal so that a malformed
// or cyclic parent chain terminates as "not found" instead of looping.
const maxParentHops = 5

// parentLookup returns the parent of a device node, or ok=false at the root.
type parentLookup func(node uint32) (parent uint32, ok bool)

// instanceIDLookup returns the hardware-identifier string of a device node.
type instanceIDLookup func(node uint32) (id string, ok bool)

// findParentSerial walks up the device tree from node looking for an ancestor
// that carries the leaf's vendor/product identity together with a serial
// number. Composite USB interface nodes lack a serial of their own; the
// device node some levels up holds it. An ancestor whose id parses to a
// different vendor/product pair is rejected, which guards against taking a
// serial number from an unrelated ancestor that merely shares the bus class.
func findParentSerial(node uint32, vid, pid uint16, parent parentLookup, instanceID instanceIDLookup) string {
	for hop := 0; hop < maxParentHops; hop++ {
		next, ok := parent(node)
		if !ok {
			return ""
		}
		node = next

		raw, ok := instanceID(node)
		if !ok {
			continue
		}
		id, ok := parseHardwareID(raw)
		if !ok || id.VendorID != vid || id.ProductID != pid {
			continue
		}
		if id.Serial != "" {
			return id.Serial
		}
	}
	return ""
}
