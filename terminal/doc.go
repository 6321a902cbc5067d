// @lixen: #focus{sys[term]}
// Package terminal provides direct ANSI terminal control with a differential cell renderer.
//
// Features:
//   - 24-bit true color with an alpha sentinel for "terminal default"
//   - Double-buffered CellGrid with cell-level diffing
//   - Raw byte input decoding (CSI, SS3, SGR mouse, Alt keys, UTF-8) tolerant of fragmented reads
//   - SIGWINCH resize detection
//   - Clean terminal restoration on exit/panic
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
//
// Pipeline:
//
//	Backend.Read -> Decoder.Poll -> Event -> (application mutates CellGrid back buffer)
//	CellGrid -> Renderer.Flush -> Backend.Write
//
// None of the types here are safe for concurrent use; a single lock around each
// input or tick cycle (see package app) serializes access.
package terminal
