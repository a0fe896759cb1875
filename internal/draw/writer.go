package draw

import (
	"bytes"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"
)

// FrameWriter collects one frame of terminal output and sends it on Flush in
// pieces of at most maxChunkSize bytes, so a frame crosses an SSH channel as a
// handful of packets. Positions passed to it are 1-based and relative to the
// canvas origin; the origin offset is added when the cursor moves.
type FrameWriter struct {
	frame  bytes.Buffer
	out    io.Writer
	num    [20]byte
	offCol int
	offRow int
}

// NewFrameWriter returns a FrameWriter sending to w with the canvas origin at
// (offsetCol, offsetRow).
func NewFrameWriter(w io.Writer, offsetCol, offsetRow int) *FrameWriter {
	return &FrameWriter{
		out:    w,
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset moves the canvas origin, e.g. after a resize.
func (f *FrameWriter) SetOffset(offsetCol, offsetRow int) {
	f.offCol = offsetCol
	f.offRow = offsetRow
}

// MoveCursor queues a cursor move to canvas cell (col, row).
func (f *FrameWriter) MoveCursor(col, row int) {
	f.frame.WriteString("\033[")
	f.frame.Write(strconv.AppendInt(f.num[:0], int64(row+f.offRow), 10))
	f.frame.WriteByte(';')
	f.frame.Write(strconv.AppendInt(f.num[:0], int64(col+f.offCol), 10))
	f.frame.WriteByte('H')
}

// Write implements io.Writer so the canvas can render into the frame.
func (f *FrameWriter) Write(p []byte) (int, error) {
	return f.frame.Write(p)
}

// WriteString queues s at the current cursor.
func (f *FrameWriter) WriteString(s string) {
	f.frame.WriteString(s)
}

// WriteAt queues s at canvas cell (col, row).
func (f *FrameWriter) WriteAt(col, row int, s string) {
	f.MoveCursor(col, row)
	f.frame.WriteString(s)
}

// WriteStyled queues s at (col, row) wrapped in an SGR style and a reset.
// An empty style writes s plain.
func (f *FrameWriter) WriteStyled(col, row int, style, s string) {
	f.MoveCursor(col, row)
	if style == "" {
		f.frame.WriteString(s)
		return
	}
	f.frame.WriteString(style)
	f.frame.WriteString(s)
	f.frame.WriteString(ColorReset)
}

// WritePadded queues s in a field of width columns starting at (col, row).
// Longer text is cut; shorter text is padded with spaces so it overwrites
// whatever a previous frame left in the field.
func (f *FrameWriter) WritePadded(col, row, width int, style, s string) {
	if width <= 0 {
		return
	}
	s = runewidth.Truncate(s, width, "")
	f.WriteStyled(col, row, style, runewidth.FillRight(s, width))
}

// WriteCentered queues lines centered in a view width columns wide, one per
// row starting at row.
func (f *FrameWriter) WriteCentered(width, row int, style string, lines ...string) {
	for i, line := range lines {
		col := (width-runewidth.StringWidth(line))/2 + 1
		f.WriteStyled(max(col, 1), row+i, style, line)
	}
}

// Clear queues a full terminal clear. Whatever was on screen is gone, so
// the caller must force the canvas to redraw.
func (f *FrameWriter) Clear() {
	f.frame.WriteString("\033[H\033[2J")
}

// Pending reports how many bytes are queued for the next Flush.
func (f *FrameWriter) Pending() int {
	return f.frame.Len()
}

// Flush sends the queued frame, one Write per chunk, and empties it. On error
// the rest of the frame is dropped.
func (f *FrameWriter) Flush() error {
	defer f.frame.Reset()
	for f.frame.Len() > 0 {
		if _, err := f.out.Write(f.frame.Next(maxChunkSize)); err != nil {
			return err
		}
	}
	return nil
}

// Ensure FrameWriter satisfies io.Writer.
var _ io.Writer = (*FrameWriter)(nil)
