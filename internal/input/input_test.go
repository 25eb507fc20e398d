package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestStream(bytes ...byte) *Stream {
	s := &Stream{
		ch:    make(chan byte, 64),
		state: newKeyState(),
	}
	for _, b := range bytes {
		s.ch <- b
	}
	return s
}

func TestReadInputArrowKeys(t *testing.T) {
	s := newTestStream('\x1b', '[', 'D', '\x1b', '[', 'A')
	in := ReadInput(s)

	assert.True(t, in.Left)
	assert.True(t, in.Up)
	assert.False(t, in.Right)
	assert.Equal(t, -1, in.Number)
}

func TestReadInputSpaceIsEdgeTriggered(t *testing.T) {
	s := newTestStream(' ')
	in := ReadInput(s)
	assert.True(t, in.Space)
	assert.True(t, in.SpacePressed)

	// Auto-repeat bytes arriving right after the press are not new presses.
	s.ch <- ' '
	in = ReadInput(s)
	assert.True(t, in.Space)
	assert.False(t, in.SpacePressed)

	// Nothing pressed: edge stays clear.
	in = ReadInput(s)
	assert.False(t, in.SpacePressed)
}

func TestReadInputPressAfterQuietPeriod(t *testing.T) {
	s := newTestStream('\r')
	assert.True(t, ReadInput(s).EnterPressed)

	s.state.last[keyEnter] = time.Now().Add(-time.Second)
	s.ch <- '\r'
	assert.True(t, ReadInput(s).EnterPressed)
}

func TestReadInputNumbersAndToggles(t *testing.T) {
	s := newTestStream('3', 'p', 'r')
	in := ReadInput(s)
	assert.Equal(t, 3, in.Number)
	assert.True(t, in.Pause)
	assert.True(t, in.Retry)
}

func TestReadInputClosedStreamQuits(t *testing.T) {
	s := newTestStream()
	close(s.ch)
	assert.True(t, ReadInput(s).Quit)
}

func TestResetKeyInput(t *testing.T) {
	s := newTestStream('a')
	assert.True(t, ReadInput(s).Left)

	ResetKeyInput(s)
	assert.False(t, ReadInput(s).Left)
}

func TestIntent(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want Intent
	}{
		{"idle", Input{}, Intent{}},
		{"left", Input{Left: true}, Intent{MoveX: -1}},
		{"both cancel", Input{Left: true, Right: true}, Intent{}},
		{"down and fire", Input{Down: true, SpacePressed: true}, Intent{MoveY: 1, Action: true}},
		{"held space is not action", Input{Space: true}, Intent{}},
		{"confirm", Input{EnterPressed: true}, Intent{Confirm: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Intent())
		})
	}
}

func TestReadInputPauseRepeatIsNotNewEdge(t *testing.T) {
	s := newTestStream('p')
	assert.True(t, ReadInput(s).Pause)

	s.ch <- 'p'
	assert.False(t, ReadInput(s).Pause)
}

func TestReadInputIgnoresUnknownBytes(t *testing.T) {
	s := newTestStream('z', '\x1b', '[', 'Z')
	in := ReadInput(s)
	assert.False(t, in.Left || in.Right || in.Up || in.Down)
	assert.True(t, in.Escape)
	assert.Len(t, in.Pressed, 4)
}
