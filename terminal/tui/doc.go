// Package tui provides immediate-mode widgets drawn onto a terminal.CellGrid.
//
// Core abstraction is Region, a rectangular window onto the grid's back buffer.
// All drawing operations are relative to region bounds with automatic clipping.
//
// Widgets:
//   - Frame: box-bordered split tree; children share a border line joined by ┬┴├┤
//   - Panel: one Item per row, Label or Value with a live formatter
//   - Menu: vertical entries with spacer skipping and a cursor marker
//   - Board: cols x rows cells laid out evenly, with mouse hit-testing
//
// Usage pattern:
//
//	root := tui.NewRegion(grid)
//	frame := tui.NewFrame(root.Rect())
//	left, right, _ := frame.Split(30, tui.Vertical)
//	left.Add(panel)
//	right.Add(board)
//	frame.Draw(grid)
//	screen.Show()
package tui
