// Package msg defines the tea.Msg types exchanged between aeroinspect's UI
// components and the app model. It has no upstream imports to avoid cycles.
package msg

// -- Loading --

// LoadCompleted is emitted by a list after a batch has been applied.
type LoadCompleted struct {
	ListID int64
	Count  int
	Loaded int
	Total  int
	// Exhausted is true once every record of the collection is loaded.
	Exhausted bool
}

// LoadFailed is emitted by a list when a batch fetch fails. The list keeps
// its rendered window; retrying is up to the receiver.
type LoadFailed struct {
	ListID int64
	Offset int
	Err    error
}

// -- Selection --

// SelectionChanged is emitted when the selected list item changes.
// Index is -1 when the selection was cleared.
type SelectionChanged struct {
	ListID int64
	Index  int
	Key    string
}

// -- Search --

// QueryApplied is emitted when the search box commits a new query.
type QueryApplied struct {
	Query string
}
