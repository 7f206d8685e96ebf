package tui

// ViewState is the screen the session is showing.
type ViewState int

const (
	// ViewStateMainMenu shows the action menu.
	ViewStateMainMenu ViewState = iota
	// ViewStatePrompt collects free text for a game, league, search or feed.
	ViewStatePrompt
	// ViewStateLoading waits for a feed to load.
	ViewStateLoading
	// ViewStateList shows the result of the last action.
	ViewStateList
	// ViewStateDetail shows a single match.
	ViewStateDetail
	// ViewStateExit ends the program.
	ViewStateExit
)

// String returns a short name for logs.
func (s ViewState) String() string {
	switch s {
	case ViewStateMainMenu:
		return "main_menu"
	case ViewStatePrompt:
		return "prompt"
	case ViewStateLoading:
		return "loading"
	case ViewStateList:
		return "list"
	case ViewStateDetail:
		return "detail"
	case ViewStateExit:
		return "exit"
	default:
		return "unknown"
	}
}
