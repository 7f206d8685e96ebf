package tui

// Key strings as reported by tea.KeyMsg.String().
const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
)
