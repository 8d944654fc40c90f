package core

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next loop iteration.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Keyboard key pressed. Data carries a *KeyEvent.
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// Keyboard codes carried by key events. Only the keys the application reacts
// to are mapped.
const (
	KEY_ESCAPE uint16 = 0x1B
)

type KeyEvent struct {
	KeyCode uint16
}

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

// Should handle the event; further listeners still run.
type FnOnEvent func(context EventContext)

type eventSystemState struct {
	registered map[SystemEventCode][]FnOnEvent
}

// The event system runs on the main thread only, like the windowing
// callbacks that feed it. Dispatch is synchronous.
var eventState *eventSystemState

func EventSystemInitialize() bool {
	if eventState != nil {
		return false
	}
	eventState = &eventSystemState{
		registered: make(map[SystemEventCode][]FnOnEvent),
	}
	return true
}

func EventSystemShutdown() error {
	eventState = nil
	return nil
}

// EventRegister subscribes the callback to the provided code. Returns false
// if the event system has not been initialized.
func EventRegister(code SystemEventCode, onEvent FnOnEvent) bool {
	if eventState == nil {
		return false
	}
	eventState.registered[code] = append(eventState.registered[code], onEvent)
	return true
}

// EventFire invokes every callback registered for the context's code. Codes
// nobody listens to are dropped silently.
func EventFire(context EventContext) {
	if eventState == nil {
		return
	}
	for _, cb := range eventState.registered[context.Type] {
		cb(context)
	}
}
