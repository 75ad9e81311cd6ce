package ports

// Enumerator walks the host's serial devices and yields one PortInfo per
// device. The sequence is finite, forward only and not restartable; create a
// fresh Enumerator to scan again. OS resources acquired at construction stay
// open for the lifetime of the Enumerator and are released exactly once by
// Close (or before NewEnumerator returns, when construction fails half way).
//
// The record returned by Port aliases enumerator-internal storage and is
// overwritten by the next call to Next; Clone it to keep it longer. An
// Enumerator must not be shared between goroutines; concurrent scans need
// one Enumerator each.
type Enumerator struct {
	state *enumState
	cur   PortInfo
	err   error
	done  bool
}

// NewEnumerator opens the platform enumeration root and returns an iterator
// over the attached serial devices. Failing to open the root is the only
// fatal condition; devices that cannot be fully resolved are skipped or
// filled with default values as the iteration advances.
func NewEnumerator() (*Enumerator, error) {
	state, err := newEnumState()
	if err != nil {
		return nil, err
	}
	return &Enumerator{state: state}, nil
}

// Next advances to the next port, lazily performing one step of the
// underlying OS iteration. It returns false when the sequence is exhausted
// or an error occurred; Err tells the two apart.
func (e *Enumerator) Next() bool {
	if e.state == nil {
		e.err = ErrEnumeratorClosed
		return false
	}
	if e.done || e.err != nil {
		return false
	}
	ok, err := e.state.next(&e.cur)
	if err != nil {
		e.err = err
		return false
	}
	if !ok {
		e.done = true
		return false
	}
	return true
}

// Port returns the current record. The record is reused on every advance and
// is only valid until the next call to Next or Close.
func (e *Enumerator) Port() *PortInfo {
	return &e.cur
}

// Err returns the first error encountered while advancing. It is nil after a
// normally exhausted sequence.
func (e *Enumerator) Err() error {
	return e.err
}

// Close releases the OS resources held by the enumerator. It is safe to call
// Close more than once.
func (e *Enumerator) Close() error {
	if e.state == nil {
		return nil
	}
	err := e.state.close()
	e.state = nil
	e.done = true
	return err
}

// ListPorts returns minimal descriptors for every serial device on the host
// using the lightweight platform path (registry value scan on Windows, sysfs
// class directory on Linux, /dev callout glob on macOS). The result is
// freshly allocated and safe to retain.
func ListPorts() ([]PortDescriptor, error) {
	return listPorts()
}

// GetPortInfo resolves the full identity of a single port, given its device
// path or short name. The returned record is a private copy.
func GetPortInfo(path string) (*PortInfo, error) {
	e, err := NewEnumerator()
	if err != nil {
		return nil, err
	}
	defer e.Close()

	for e.Next() {
		p := e.Port()
		if p.SystemLocation == path || p.PortName == path {
			return p.Clone(), nil
		}
	}
	if err := e.Err(); err != nil {
		return nil, err
	}
	return nil, ErrDeviceNotFound
}
