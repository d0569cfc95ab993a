package interaction

import (
	"io"
	"os"

	"golang.org/x/term"
)

// KeyboardReader handles keyboard input in raw mode
type KeyboardReader struct {
	in       io.Reader
	fd       int
	oldState *term.State
	input    chan KeyEvent
	stop     chan struct{}
}

// KeyEvent represents a keyboard event
type KeyEvent struct {
	Key  rune
	Type KeyType
}

// KeyType represents the type of key pressed
type KeyType int

const (
	KeyChar KeyType = iota
	KeyEscape
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
)

// NewKeyboardReader puts stdin into raw mode and starts reading keys
func NewKeyboardReader() (*KeyboardReader, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	kr := newReader(os.Stdin)
	kr.fd = fd
	kr.oldState = oldState
	go kr.readInput()
	return kr, nil
}

// NewReaderFrom reads keys from r without touching terminal modes.
func NewReaderFrom(r io.Reader) *KeyboardReader {
	kr := newReader(r)
	go kr.readInput()
	return kr
}

func newReader(r io.Reader) *KeyboardReader {
	return &KeyboardReader{
		in:    r,
		fd:    -1,
		input: make(chan KeyEvent, 10),
		stop:  make(chan struct{}),
	}
}

// readInput reads keyboard input in a goroutine
func (kr *KeyboardReader) readInput() {
	buf := make([]byte, 32)

	for {
		n, err := kr.in.Read(buf)
		if err != nil {
			close(kr.input)
			return
		}
		if n == 0 {
			continue
		}

		for _, event := range kr.parseKeys(buf[:n]) {
			select {
			case kr.input <- event:
			case <-kr.stop:
				return
			}
		}
	}
}

// parseKeys splits one read into key events; keys typed ahead arrive together
func (kr *KeyboardReader) parseKeys(buf []byte) []KeyEvent {
	var events []KeyEvent
	for len(buf) > 0 {
		n := 1
		if buf[0] == 27 && len(buf) >= 3 && buf[1] == '[' {
			n = 3
		}
		if event := kr.parseInput(buf[:n]); event != nil {
			events = append(events, *event)
		}
		buf = buf[n:]
	}
	return events
}

// parseInput parses raw keyboard input
func (kr *KeyboardReader) parseInput(buf []byte) *KeyEvent {
	if len(buf) == 0 {
		return nil
	}

	// Handle escape sequences
	if buf[0] == 27 {
		if len(buf) == 1 {
			return &KeyEvent{Key: 27, Type: KeyEscape}
		}
		if len(buf) >= 3 && buf[1] == '[' {
			switch buf[2] {
			case 'A':
				return &KeyEvent{Type: KeyUp}
			case 'B':
				return &KeyEvent{Type: KeyDown}
			case 'C':
				return &KeyEvent{Type: KeyRight}
			case 'D':
				return &KeyEvent{Type: KeyLeft}
			}
		}
		return nil
	}

	// Handle regular characters, Ctrl+C included
	return &KeyEvent{Key: rune(buf[0]), Type: KeyChar}
}

// Events returns the keyboard event channel
func (kr *KeyboardReader) Events() <-chan KeyEvent {
	return kr.input
}

// Close stops delivering events and restores the terminal
func (kr *KeyboardReader) Close() error {
	close(kr.stop)
	if kr.oldState == nil {
		return nil
	}
	return term.Restore(kr.fd, kr.oldState)
}
