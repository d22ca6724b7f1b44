package kbdctl

import (
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// SetupShortcutKeys installs the key callback on w. quit is called from
// inside glfw.PollEvents, on the render thread.
func SetupShortcutKeys(w *glfw.Window, quit func()) {
	w.SetKeyCallback(keyCallback(quit))
}

// IsQuitShortcut reports whether a key event asks the program to stop:
// Escape on press, or ctrl+shift+q on release.
func IsQuitShortcut(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) bool {
	switch action {
	case glfw.Press:
		return key == glfw.KeyEscape
	case glfw.Release:
		return key == glfw.KeyQ &&
			mods&glfw.ModControl != 0 &&
			mods&glfw.ModShift != 0
	}
	return false
}

func keyCallback(quit func()) glfw.KeyCallback {
	return func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if IsQuitShortcut(key, action, mods) {
			slog.Info("told to quit, exiting", "module", "kbdctl")
			quit()
		}
	}
}
