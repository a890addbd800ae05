package types

// EventType classifies progress messages emitted during a run
type EventType string

const (
	EventInfo    EventType = "INFO"
	EventSuccess EventType = "SUCCESS"
	EventWarning EventType = "WARN"
	EventError   EventType = "ERROR"
)

// Event is a progress message. Rename events use the form "Renamed: old → new".
type Event struct {
	Type    EventType
	Message string
}

// EventHandler receives events synchronously
type EventHandler func(Event)

// Emit calls h when it is set.
func (h EventHandler) Emit(t EventType, msg string) {
	if h != nil {
		h(Event{Type: t, Message: msg})
	}
}
