package app

// State represents the current input focus of the application.
type State int

const (
	StateBrowsing State = iota // Keys drive the list
	StateSearching             // Keys go to the search box
)

func (s State) String() string {
	switch s {
	case StateBrowsing:
		return "browsing"
	case StateSearching:
		return "searching"
	default:
		return "unknown"
	}
}
