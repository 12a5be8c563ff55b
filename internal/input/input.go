package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"voxel-island/internal/camera"
)

// Action represents a logical action, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionBoost
	ActionTurbo
	ActionLook
	ActionHighlight
	ActionToggleWireframe
	ActionRemesh
	ActionQuit
	ActionCount // Sentinel value for array sizing
)

// InputManager maps physical keys and buttons to actions and tracks the cursor
type InputManager struct {
	mu sync.RWMutex

	// one key can map to multiple actions
	keyToActions         map[glfw.Key][]Action
	mouseButtonToActions map[glfw.MouseButton][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	cursor     mgl32.Vec2
	lastCursor mgl32.Vec2
	hasCursor  bool
}

// NewInputManager creates an InputManager with the free-camera bindings
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
	}

	im.BindKey(glfw.KeyW, ActionMoveForward)
	im.BindKey(glfw.KeyUp, ActionMoveForward)
	im.BindKey(glfw.KeyS, ActionMoveBackward)
	im.BindKey(glfw.KeyDown, ActionMoveBackward)
	im.BindKey(glfw.KeyA, ActionMoveLeft)
	im.BindKey(glfw.KeyLeft, ActionMoveLeft)
	im.BindKey(glfw.KeyD, ActionMoveRight)
	im.BindKey(glfw.KeyRight, ActionMoveRight)
	im.BindKey(glfw.KeySpace, ActionMoveUp)
	im.BindKey(glfw.KeyLeftControl, ActionMoveDown)
	im.BindKey(glfw.KeyLeftShift, ActionBoost)
	im.BindKey(glfw.KeyX, ActionTurbo)
	im.BindKey(glfw.KeyF, ActionHighlight)
	im.BindKey(glfw.KeyTab, ActionToggleWireframe)
	im.BindKey(glfw.KeyR, ActionRemesh)
	im.BindKey(glfw.KeyEscape, ActionQuit)

	im.BindMouseButton(glfw.MouseButtonRight, ActionLook)

	return im
}

// BindKey binds a physical key to a logical action
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	defer im.mu.Unlock()
	delete(im.keyToActions, key)
}

// BindMouseButton binds a mouse button to a logical action
func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
}

// HandleKeyEvent processes a key event and updates internal state
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.RLock()
	actions := im.keyToActions[key]
	im.mu.RUnlock()
	im.apply(actions, action == glfw.Press || action == glfw.Repeat)
}

// HandleMouseButtonEvent processes a mouse button event and updates internal state
func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.mu.RLock()
	actions := im.mouseButtonToActions[button]
	im.mu.RUnlock()
	im.apply(actions, action == glfw.Press)
}

func (im *InputManager) apply(actions []Action, isPressed bool) {
	if len(actions) == 0 {
		return
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	for _, act := range actions {
		// edges are detected as events arrive
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !isPressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = isPressed
	}
}

// HandleCursorPos records the cursor position in window pixels
func (im *InputManager) HandleCursorPos(x, y float64) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.cursor = mgl32.Vec2{float32(x), float32(y)}
	if !im.hasCursor {
		im.lastCursor = im.cursor
		im.hasCursor = true
	}
}

// WarpCursor moves the tracked cursor without producing a look delta
func (im *InputManager) WarpCursor(x, y float64) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.cursor = mgl32.Vec2{float32(x), float32(y)}
	im.lastCursor = im.cursor
	im.hasCursor = true
}

// Attach installs the key, mouse button and cursor callbacks on the window
func (im *InputManager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		im.HandleCursorPos(x, y)
	})
	im.WarpCursor(window.GetCursorPos())
}

// PostUpdate must be called at the end of each frame, after all input checks
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()
	clear(im.justPressed[:])
	clear(im.justReleased[:])
	im.lastCursor = im.cursor
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justReleased[action]
}

// LookDelta is the previous cursor position minus the current one
func (im *InputManager) LookDelta() mgl32.Vec2 {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.lastCursor.Sub(im.cursor)
}

// Controls snapshots this frame's state for the free camera
func (im *InputManager) Controls() camera.Controls {
	return camera.Controls{
		Forward:   im.IsActive(ActionMoveForward),
		Backward:  im.IsActive(ActionMoveBackward),
		Left:      im.IsActive(ActionMoveLeft),
		Right:     im.IsActive(ActionMoveRight),
		Up:        im.IsActive(ActionMoveUp),
		Down:      im.IsActive(ActionMoveDown),
		Boost:     im.IsActive(ActionBoost),
		Turbo:     im.IsActive(ActionTurbo),
		Look:      im.IsActive(ActionLook),
		LookDelta: im.LookDelta(),
	}
}
