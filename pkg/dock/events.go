package dock

// EventKind identifies one change notification emitted by a mutation.
type EventKind string

const (
	EventRootChanged       EventKind = "root-changed"
	EventPanelCountChanged EventKind = "panel-count-changed"
	EventPanelAdded        EventKind = "panel-added"
	EventPanelRemoved      EventKind = "panel-removed"
	EventLayoutChanged     EventKind = "layout-changed"
)

// Event is one change notification. Mutations return an ordered slice of
// events instead of firing callbacks, so structural changes are always fully
// applied before any observer can react, and the ordering is testable.
type Event struct {
	Kind    EventKind `json:"kind"`
	PanelID string    `json:"panelId,omitempty"`
}

// panelAddedEvents is the burst emitted after a successful insert.
// rootChanged is included only when the insert replaced the tree root.
func panelAddedEvents(panelID string, rootChanged bool) []Event {
	events := make([]Event, 0, 4)
	if rootChanged {
		events = append(events, Event{Kind: EventRootChanged})
	}
	return append(events,
		Event{Kind: EventPanelCountChanged},
		Event{Kind: EventPanelAdded, PanelID: panelID},
		Event{Kind: EventLayoutChanged},
	)
}

// panelRemovedEvents is the burst emitted after a successful removal. Root
// change is always reported: removal either replaced the root or reshaped
// the tree under it, and observers resync from the root in both cases.
func panelRemovedEvents(panelID string) []Event {
	return []Event{
		{Kind: EventRootChanged},
		{Kind: EventPanelCountChanged},
		{Kind: EventPanelRemoved, PanelID: panelID},
		{Kind: EventLayoutChanged},
	}
}

// treeReplacedEvents is the burst emitted after Clear or a layout load.
func treeReplacedEvents() []Event {
	return []Event{
		{Kind: EventRootChanged},
		{Kind: EventPanelCountChanged},
		{Kind: EventLayoutChanged},
	}
}
