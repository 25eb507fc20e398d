// Package input turns a raw terminal byte stream into per-frame key state
// and the logical intents consumed by the simulation.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// repeatDebounce is the quiet period a key needs before another byte counts as a new press.
// Terminal auto-repeat delivers bytes closer together than this while a key is held down.
const repeatDebounce = 150 * time.Millisecond

// key identifies one logical key.
type key int

const (
	keyQuit key = iota
	keyLeft
	keyRight
	keyUp
	keyDown
	keySpace
	keyEnter
	keyEscape
	keyPause
	keyRetry
	keyNumber
	keyCount
)

// byteKey maps a single input byte onto a key. Digits are handled separately.
func byteKey(b byte) (key, bool) {
	switch b {
	case 'q', 'Q':
		return keyQuit, true
	case 'a', 'A', 'j', 'J':
		return keyLeft, true
	case 'd', 'D', 'l', 'L':
		return keyRight, true
	case 'w', 'W', 'i', 'I':
		return keyUp, true
	case 's', 'S', 'k', 'K':
		return keyDown, true
	case ' ':
		return keySpace, true
	case '\n', '\r':
		return keyEnter, true
	case '\x1b':
		return keyEscape, true
	case 'p', 'P':
		return keyPause, true
	case 'r', 'R':
		return keyRetry, true
	}
	return 0, false
}

// csiKey maps the final byte of an ESC [ sequence onto an arrow key.
func csiKey(b byte) (key, bool) {
	switch b {
	case 'A':
		return keyUp, true
	case 'B':
		return keyDown, true
	case 'C':
		return keyRight, true
	case 'D':
		return keyLeft, true
	}
	return 0, false
}

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Space   bool
	Enter   bool
	Escape  bool
	Pause   bool // Edge-triggered
	Retry   bool // Edge-triggered
	Number  int  // Digit pressed this frame, -1 if none
	Pressed []byte

	// Edge-triggered: true only on the frame a key goes down.
	SpacePressed bool
	EnterPressed bool
}

// keyState tracks the last time each key was pressed and which keys went
// down since the previous frame.
type keyState struct {
	last      [keyCount]time.Time
	edge      [keyCount]bool
	numberVal int
}

func newKeyState() keyState {
	return keyState{numberVal: -1}
}

// held reports whether k was seen within the hold window.
func (ks *keyState) held(k key, now time.Time) bool {
	return now.Sub(ks.last[k]) < keyHoldDuration
}

// press records a byte for k. A press after a quiet period also sets the edge.
func (ks *keyState) press(k key, now time.Time) {
	if now.Sub(ks.last[k]) > repeatDebounce {
		ks.edge[k] = true
	}
	ks.last[k] = now
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:    make(chan byte, 128),
		state: newKeyState(),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	now := time.Now()
	buf := s.drain()

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if k, ok := csiKey(buf[i+2]); ok {
				s.state.press(k, now)
				i += 2
				continue
			}
		}

		if b >= '0' && b <= '9' {
			s.state.press(keyNumber, now)
			s.state.numberVal = int(b - '0')
			continue
		}
		if k, ok := byteKey(b); ok {
			s.state.press(k, now)
		}
	}

	ks := &s.state
	input := Input{
		Quit:    s.closed || ks.held(keyQuit, now),
		Left:    ks.held(keyLeft, now),
		Right:   ks.held(keyRight, now),
		Up:      ks.held(keyUp, now),
		Down:    ks.held(keyDown, now),
		Space:   ks.held(keySpace, now),
		Enter:   ks.held(keyEnter, now),
		Escape:  ks.held(keyEscape, now),
		Pause:   ks.edge[keyPause],
		Retry:   ks.edge[keyRetry],
		Number:  -1,
		Pressed: buf,

		SpacePressed: ks.edge[keySpace],
		EnterPressed: ks.edge[keyEnter],
	}
	if ks.held(keyNumber, now) {
		input.Number = ks.numberVal
	}
	clear(ks.edge[:])

	return input
}

// drain collects every byte currently buffered without blocking.
func (s *Stream) drain() []byte {
	var buf []byte
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				return buf
			}
			buf = append(buf, b)
		default:
			return buf
		}
	}
}

// ResetKeyInput forgets all held keys so a screen change does not leak
// the key that triggered it into the next screen.
func ResetKeyInput(s *Stream) {
	s.state = newKeyState()
}
