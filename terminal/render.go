// @lixen: #focus{sys[term,io,output]}
// @lixen: #interact{trigger[output,ansi]}
package terminal

import (
	"bufio"
	"io"
)

const (
	// DefaultRenderBufferSize is the output batch size
	DefaultRenderBufferSize = 64 * 1024
	// MinRenderBufferSize keeps room for the worst-case single cell emission
	MinRenderBufferSize = 1024

	// renderReserve is the free space required before emitting a cell
	renderReserve = 256
)

// RenderStats describes the output of the most recent flush
type RenderStats struct {
	Cells  int // cells emitted
	Moves  int // cursor position sequences
	Styles int // attribute resets
	Bytes  int // bytes written to the sink
	Writes int // sink write calls
}

// countingWriter tracks bytes and calls reaching the sink
type countingWriter struct {
	w      io.Writer
	bytes  int
	writes int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.bytes += n
	c.writes++
	return n, err
}

// Renderer converges the terminal to a CellGrid's back buffer
// SGR state persists across flushes so unchanged frames emit nothing
type Renderer struct {
	sink   *countingWriter
	writer *bufio.Writer

	// Last emitted style; *Valid false means unknown
	lastAttr  Attr
	lastFg    Color
	lastBg    Color
	attrValid bool
	fgValid   bool
	bgValid   bool

	stats RenderStats
}

// NewRenderer creates a renderer batching output through a buffer of bufSize bytes
// bufSize <= 0 selects DefaultRenderBufferSize
func NewRenderer(sink io.Writer, bufSize int) *Renderer {
	if bufSize <= 0 {
		bufSize = DefaultRenderBufferSize
	}
	if bufSize < MinRenderBufferSize {
		bufSize = MinRenderBufferSize
	}
	cw := &countingWriter{w: sink}
	return &Renderer{
		sink:   cw,
		writer: bufio.NewWriterSize(cw, bufSize),
	}
}

// Invalidate forgets the emitted style so the next changed cell re-emits it
func (r *Renderer) Invalidate() {
	r.attrValid = false
	r.fgValid = false
	r.bgValid = false
}

// Stats returns counters for the last flush
func (r *Renderer) Stats() RenderStats {
	return r.stats
}

// Flush writes changed back cells to the sink and copies them into front
// On sink failure the grid is invalidated so the next flush repaints everything
func (r *Renderer) Flush(g *CellGrid) error {
	w := r.writer
	startBytes, startWrites := r.sink.bytes, r.sink.writes
	r.stats = RenderStats{}

	lastX, lastY := -2, -2

	for y := 0; y < g.height; y++ {
		rowStart := y * g.width
		for x := 0; x < g.width; x++ {
			idx := rowStart + x
			c := g.back[idx]

			if c == g.front[idx] {
				lastX = -2
				continue
			}

			if w.Available() < renderReserve {
				if err := w.Flush(); err != nil {
					return r.fail(g, err)
				}
			}

			if x != lastX+1 || y != lastY {
				writeCursorPos(w, x, y)
				r.stats.Moves++
			}

			r.writeStyle(w, c)
			if n := c.GlyphLen(); n > 0 {
				w.Write(c.glyph[:n])
			} else {
				w.WriteByte(' ')
			}

			g.front[idx] = c
			lastX, lastY = x, y
			r.stats.Cells++
		}
	}

	if err := w.Flush(); err != nil {
		return r.fail(g, err)
	}

	r.stats.Bytes = r.sink.bytes - startBytes
	r.stats.Writes = r.sink.writes - startWrites
	return nil
}

// FlushFull repaints every cell after clearing the screen
func (r *Renderer) FlushFull(g *CellGrid) error {
	g.invalidate()
	r.Invalidate()
	r.writer.Write(csiClear)
	return r.Flush(g)
}

// fail drops buffered output and forces a full repaint on the next flush
func (r *Renderer) fail(g *CellGrid, err error) error {
	r.writer.Reset(r.sink)
	g.invalidate()
	r.Invalidate()
	return err
}

// writeStyle emits attribute and color changes relative to the last emitted style
func (r *Renderer) writeStyle(w *bufio.Writer, c Cell) {
	if !r.attrValid || c.Attrs != r.lastAttr {
		writeAttrs(w, c.Attrs)
		r.lastAttr = c.Attrs
		r.attrValid = true
		r.stats.Styles++
		// SGR 0 also resets colors to terminal defaults
		r.lastFg, r.lastBg = ColorNone, ColorNone
		r.fgValid, r.bgValid = true, true
	}

	r.lastFg, r.fgValid = writeChannel(w, c.Fg, r.lastFg, r.fgValid, csiFgRGB, csiDefaultFg)
	r.lastBg, r.bgValid = writeChannel(w, c.Bg, r.lastBg, r.bgValid, csiBgRGB, csiDefaultBg)
}

// writeChannel emits one color channel if it differs from the last emitted value
func writeChannel(w *bufio.Writer, want, last Color, valid bool, rgbPrefix, defaultSeq []byte) (Color, bool) {
	if want.IsSet() {
		if !valid || want != last {
			writeRGB(w, rgbPrefix, want)
		}
		return want, true
	}
	if !valid || last.IsSet() {
		w.Write(defaultSeq)
	}
	return ColorNone, true
}
