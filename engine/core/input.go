package core

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Key codes follow the Windows virtual key values; letters are their ASCII
// upper case. Only keys the platforms translate are listed.
type KeyCode uint16

const (
	KEY_BACKSPACE KeyCode = 0x08
	KEY_TAB       KeyCode = 0x09
	KEY_ENTER     KeyCode = 0x0D
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_F1        KeyCode = 0x70
	KEY_LSHIFT    KeyCode = 0xA0
	KEY_RSHIFT    KeyCode = 0xA1
	KEY_LCONTROL  KeyCode = 0xA2
	KEY_RCONTROL  KeyCode = 0xA3
	KEY_LMENU     KeyCode = 0xA4
	KEY_RMENU     KeyCode = 0xA5
	KEY_GRAVE     KeyCode = 0xC0
	KEYS_MAX_KEYS KeyCode = 0x100
)

const (
	KEY_A KeyCode = iota + 0x41
	KEY_B
	KEY_C
	KEY_D
	KEY_E
	KEY_F
	KEY_G
	KEY_H
	KEY_I
	KEY_J
	KEY_K
	KEY_L
	KEY_M
	KEY_N
	KEY_O
	KEY_P
	KEY_Q
	KEY_R
	KEY_S
	KEY_T
	KEY_U
	KEY_V
	KEY_W
	KEY_X
	KEY_Y
	KEY_Z
)

// inputFrame is the device state at one point in time. Mouse positions are
// window coordinates and are unbounded while the cursor is disabled.
type inputFrame struct {
	keys    [KEYS_MAX_KEYS]bool
	buttons [BUTTON_MAX_BUTTONS]bool
	mouseX  float64
	mouseY  float64
}

var inputInitialized bool = false
var thisFrame, lastFrame inputFrame

func InputInitialize() error {
	thisFrame, lastFrame = inputFrame{}, inputFrame{}
	inputInitialized = true
	LogInfo("Input subsystem initialized.")
	return nil
}

func InputShutdown() error {
	inputInitialized = false
	return nil
}

// InputUpdate rolls the current state over into the previous state. Call it
// once at the very end of a frame.
func InputUpdate(deltaTime float64) error {
	if inputInitialized {
		lastFrame = thisFrame
	}
	return nil
}

func keyIn(frame *inputFrame, key KeyCode) bool {
	return inputInitialized && key < KEYS_MAX_KEYS && frame.keys[key]
}

func InputIsKeyDown(key KeyCode) bool {
	return keyIn(&thisFrame, key)
}

func InputIsKeyUp(key KeyCode) bool {
	return inputInitialized && key < KEYS_MAX_KEYS && !thisFrame.keys[key]
}

// InputWasKeyDown reports the key as of the last InputUpdate.
func InputWasKeyDown(key KeyCode) bool {
	return keyIn(&lastFrame, key)
}

// InputProcessKey records a key transition and fires EVENT_CODE_KEY_PRESSED
// or EVENT_CODE_KEY_RELEASED. Repeats and unknown keys are dropped.
func InputProcessKey(key KeyCode, pressed bool) error {
	if !inputInitialized {
		return ErrNotInitialized
	}
	if key >= KEYS_MAX_KEYS || thisFrame.keys[key] == pressed {
		return nil
	}
	thisFrame.keys[key] = pressed

	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	EventFire(EventContext{Type: code, Data: &KeyEvent{KeyCode: key}})
	return nil
}

func InputIsButtonDown(button Button) bool {
	return inputInitialized && button < BUTTON_MAX_BUTTONS && thisFrame.buttons[button]
}

func InputProcessButton(button Button, pressed bool) error {
	if !inputInitialized {
		return ErrNotInitialized
	}
	if button >= BUTTON_MAX_BUTTONS || thisFrame.buttons[button] == pressed {
		return nil
	}
	thisFrame.buttons[button] = pressed

	code := EVENT_CODE_BUTTON_RELEASED
	if pressed {
		code = EVENT_CODE_BUTTON_PRESSED
	}
	EventFire(EventContext{Type: code, Data: &MouseEvent{Button: button}})
	return nil
}

// InputGetMouseDelta returns how far the mouse moved since the last InputUpdate.
func InputGetMouseDelta() (float64, float64) {
	if !inputInitialized {
		return 0, 0
	}
	return thisFrame.mouseX - lastFrame.mouseX, thisFrame.mouseY - lastFrame.mouseY
}

func InputProcessMouseMove(x, y float64) error {
	if !inputInitialized {
		return ErrNotInitialized
	}
	if thisFrame.mouseX == x && thisFrame.mouseY == y {
		return nil
	}
	thisFrame.mouseX, thisFrame.mouseY = x, y
	EventFire(EventContext{
		Type: EVENT_CODE_MOUSE_MOVED,
		Data: &MouseEvent{PosX: x, PosY: y},
	})
	return nil
}

func InputProcessMouseWheel(zDelta int8) error {
	if !inputInitialized {
		return ErrNotInitialized
	}
	EventFire(EventContext{
		Type: EVENT_CODE_MOUSE_WHEEL,
		Data: &MouseEvent{Scroll: zDelta},
	})
	return nil
}
