// Package listview is a scrolling, keyboard-driven list for Bubble Tea views.
//
// Only the rows inside the viewport are rendered, so the cost of View does not
// grow with the number of items. The cursor always stays inside the window.
package listview
