package draw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// maxChunkSize is the maximum bytes to write at once. It stays under a
// typical 1500 byte MTU so SSH frames are not split.
const maxChunkSize = 1400

// ChunkWriter accumulates one frame of terminal output and writes it in chunks
// sized for network flow (e.g. over SSH). The canvas renders into it through
// io.Writer; HUD text goes in with WriteAt after the canvas.
//
// Text that belongs to the scene, such as score popups, is written before the
// canvas renders. It goes to the overlay with WriteOverlayAt and is emitted
// after everything else so the canvas never paints over it.
type ChunkWriter struct {
	buf     strings.Builder
	overlay strings.Builder
	bufw    *bufio.Writer // Buffers writes to underlying writer for fewer syscalls
	numBuf  [20]byte      // Scratch buffer for allocation-free integer formatting
	offCol  int
	offRow  int
}

// NewChunkWriter creates a ChunkWriter that writes to w. offsetCol and offsetRow
// are added to all cursor coordinates (for canvas centering).
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset (e.g. after terminal resize).
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// moveCursor appends an ANSI cursor position sequence to sb. col and row are
// 1-based canvas coordinates.
func (cw *ChunkWriter) moveCursor(sb *strings.Builder, col, row int) {
	sb.WriteString("\033[")
	sb.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	sb.WriteByte(';')
	sb.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	sb.WriteByte('H')
}

// Write implements io.Writer for use with Canvas.Render and other writers.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends raw output, e.g. an escape sequence.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteAt writes a string at a 1-based canvas position.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.moveCursor(&cw.buf, col, row)
	cw.buf.WriteString(s)
}

// WriteCenteredAt writes s so that it is centered on centerCol.
func (cw *ChunkWriter) WriteCenteredAt(centerCol, row int, s string) {
	cw.WriteAt(centerCol-len(s)/2, row, s)
}

// WriteColoredAt writes s in color c and resets the attributes afterwards.
func (cw *ChunkWriter) WriteColoredAt(col, row int, c Color, s string) {
	cw.WriteAt(col, row, Foreground(c)+s+ColorReset)
}

// WriteOverlayAt queues s in color c to be drawn on top of the frame.
func (cw *ChunkWriter) WriteOverlayAt(col, row int, c Color, s string) {
	cw.moveCursor(&cw.overlay, col, row)
	cw.overlay.WriteString(Foreground(c))
	cw.overlay.WriteString(s)
	cw.overlay.WriteString(ColorReset)
}

// Ensure ChunkWriter satisfies io.Writer.
var _ io.Writer = (*ChunkWriter)(nil)

// Flush writes the frame and then the overlay to the underlying writer in
// chunks, and resets both buffers.
func (cw *ChunkWriter) Flush() error {
	for _, sb := range []*strings.Builder{&cw.buf, &cw.overlay} {
		if err := cw.writeChunks(sb.String()); err != nil {
			return err
		}
		sb.Reset()
	}
	return cw.bufw.Flush()
}

func (cw *ChunkWriter) writeChunks(data string) error {
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// TerminalSize returns the terminal dimensions from sizeFunc. Sizes below one
// cell are reported as an error so callers keep their previous layout.
func TerminalSize(sizeFunc TermSizeFunc) (width, height int, err error) {
	width, height, err = sizeFunc()
	if err != nil {
		return 0, 0, err
	}
	if width < 1 || height < 1 {
		return 0, 0, fmt.Errorf("terminal size %dx%d", width, height)
	}
	return width, height, nil
}
