// Package secret provides an owning container for sensitive byte
// sequences. A Buffer is wiped (overwritten, not just released) by
// whoever owns it last; ownership transfers explicitly when a Buffer is
// returned to a caller.
package secret

import "runtime"

// Buffer holds sensitive bytes. The zero value is empty and safe to wipe.
type Buffer struct {
	data []byte
}

// New takes ownership of b. The caller must not retain or reuse b.
func New(b []byte) *Buffer {
	return &Buffer{data: b}
}

// FromString copies s into a new Buffer. The string itself cannot be
// wiped; prefer New with a byte slice where the source allows it.
func FromString(s string) *Buffer {
	return &Buffer{data: []byte(s)}
}

// Bytes exposes the underlying bytes without copying. The slice is only
// valid until Wipe is called.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Len reports the number of bytes held.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Wipe overwrites the contents with zeros and drops the backing slice.
// Wiping twice is a no-op; the second call does not count as an erasure.
// Safe on a nil receiver so `defer buf.Wipe()` works on every path.
func (b *Buffer) Wipe() {
	if b == nil || b.data == nil {
		return
	}
	zero(b.data)
	b.data = nil
	if onWipe != nil {
		onWipe()
	}
}

// onWipe, when set, is invoked once per effective Wipe. Tests use it to
// assert that every sensitive buffer created during an operation was
// erased exactly once.
var onWipe func()

// SetWipeObserver installs fn as the wipe observer and returns the
// previous one. Not safe for concurrent use; intended for tests.
func SetWipeObserver(fn func()) func() {
	prev := onWipe
	onWipe = fn
	return prev
}

// Wipe zeroizes an unowned byte slice in place.
func Wipe(b []byte) {
	zero(b)
}

// zero is hardened with KeepAlive so the stores cannot be eliminated as
// dead writes.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
