// Package console is the headless front-end: raw key codes from a terminal
// (or any reader) in, plain text frames out.
package console

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/term"
)

// KeyBuffer is the number of pending key codes kept before new ones are dropped.
const KeyBuffer = 16

const ctrlC = 3

// KeyReader reads single bytes on a background goroutine and hands them out
// through a non-blocking Poll.
type KeyReader struct {
	keys    chan byte
	restore func() error
}

// NewKeyReader starts reading r. The goroutine exits when r returns an error.
func NewKeyReader(r io.Reader) *KeyReader {
	k := &KeyReader{
		keys:    make(chan byte, KeyBuffer),
		restore: func() error { return nil },
	}
	go k.pump(bufio.NewReader(r))
	return k
}

// OpenTerminal puts f into raw mode when it is a terminal so keys arrive
// without Enter, and starts reading it. Close restores the terminal.
func OpenTerminal(f *os.File) (*KeyReader, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return NewKeyReader(f), nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	k := NewKeyReader(f)
	k.restore = func() error { return term.Restore(fd, state) }
	return k, nil
}

func (k *KeyReader) pump(r io.ByteReader) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return
		}
		// Raw mode swallows the interrupt signal; treat it as quit.
		if b == ctrlC {
			b = 'q'
		}
		select {
		case k.keys <- b:
		default:
		}
	}
}

// Poll returns the oldest pending key code, if any, without blocking.
func (k *KeyReader) Poll() (byte, bool) {
	select {
	case b := <-k.keys:
		return b, true
	default:
		return 0, false
	}
}

// Close restores the terminal state. The reader goroutine stays blocked
// until the input yields an error or the process exits.
func (k *KeyReader) Close() error {
	return k.restore()
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
