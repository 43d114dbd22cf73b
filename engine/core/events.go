package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed. Data: *KeyEvent
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released. Data: *KeyEvent
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Mouse button pressed. Data: *MouseEvent
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04

	// Mouse button released. Data: *MouseEvent
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05

	// Mouse moved. Data: *MouseEvent
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06

	// Mouse wheel. Data: *MouseEvent
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07

	// Resized/resolution changed from the OS. Data: *SystemEvent
	EVENT_CODE_RESIZED EventCode = 0x08

	// The camera crossed the world boundary. Data: *CameraEvent
	EVENT_CODE_CAMERA_WRAPPED EventCode = 0x09

	MAX_EVENT_CODE EventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   float64
	PosY   float64
	Scroll int8
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type CameraEvent struct {
	// Per axis (X, Y, Z).
	Wrapped    [3]bool
	Reoriented bool
	PosX       float64
	PosY       float64
	PosZ       float64
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	id       uint32
	callback FnOnEvent
}

// State structure.
type eventSystemState struct {
	// Lookup table for event codes.
	registered [MAX_MESSAGE_CODES][]registeredEvent
	nextID     uint32
}

/**
 * Event system internal state.
 */
var onceEvent sync.Once
var eventInitialized bool = false
var eventState *eventSystemState = nil

func EventSystemInitialize() bool {
	if eventInitialized {
		return false
	}
	onceEvent.Do(func() {
		eventState = &eventSystemState{}
	})
	eventInitialized = true
	return true
}

func EventSystemShutdown() error {
	if !eventInitialized {
		return nil
	}
	// Drop every registration so a later initialize starts clean.
	for i := 0; i < MAX_MESSAGE_CODES; i++ {
		eventState.registered[i] = nil
	}
	eventInitialized = false
	return nil
}

/**
 * Register to listen for when events are sent with the provided code.
 * @param code The event code to listen for.
 * @param onEvent The callback invoked when the event code is fired.
 * @returns A registration id for EventUnregister, or 0 if the system is not
 * initialized or the code is out of range.
 */
func EventRegister(code EventCode, onEvent FnOnEvent) uint32 {
	if !eventInitialized || onEvent == nil || code >= MAX_MESSAGE_CODES {
		return 0
	}
	eventState.nextID++
	eventState.registered[code] = append(eventState.registered[code], registeredEvent{
		id:       eventState.nextID,
		callback: onEvent,
	})
	return eventState.nextID
}

/**
 * Unregister from listening for when events are sent with the provided code.
 * @returns TRUE if the registration was found and removed; otherwise false.
 */
func EventUnregister(code EventCode, id uint32) bool {
	if !eventInitialized || code >= MAX_MESSAGE_CODES {
		return false
	}
	events := eventState.registered[code]
	for i, e := range events {
		if e.id == id {
			eventState.registered[code] = append(events[:i:i], events[i+1:]...)
			return true
		}
	}
	// Not found.
	return false
}

/**
 * Fires an event to listeners of the given code, synchronously and in
 * registration order. If an event handler returns TRUE, the event is
 * considered handled and is not passed on to any more listeners.
 * @returns TRUE if handled, otherwise FALSE.
 */
func EventFire(context EventContext) bool {
	if !eventInitialized || context.Type >= MAX_MESSAGE_CODES {
		return false
	}
	// Handlers may register or unregister while we iterate.
	events := append([]registeredEvent(nil), eventState.registered[context.Type]...)
	for _, e := range events {
		if e.callback(context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}
