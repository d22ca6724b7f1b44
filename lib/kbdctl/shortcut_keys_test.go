package kbdctl

import (
	"testing"

	"github.com/fosdem/glstage/lib/test"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestIsQuitShortcut(t *testing.T) {
	cases := []struct {
		name   string
		key    glfw.Key
		action glfw.Action
		mods   glfw.ModifierKey
		quit   bool
	}{
		{"escape", glfw.KeyEscape, glfw.Press, 0, true},
		{"escape released", glfw.KeyEscape, glfw.Release, 0, false},
		{"ctrl shift q", glfw.KeyQ, glfw.Release, glfw.ModControl | glfw.ModShift, true},
		{"ctrl shift q pressed", glfw.KeyQ, glfw.Press, glfw.ModControl | glfw.ModShift, false},
		{"ctrl q", glfw.KeyQ, glfw.Release, glfw.ModControl, false},
		{"plain q", glfw.KeyQ, glfw.Release, 0, false},
		{"repeat", glfw.KeyEscape, glfw.Repeat, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			test.ExpectEquality(t, IsQuitShortcut(tc.key, tc.action, tc.mods), tc.quit)
		})
	}
}

func TestKeyCallback(t *testing.T) {
	calls := 0
	cb := keyCallback(func() { calls++ })
	cb(nil, glfw.KeyA, 0, glfw.Press, 0)
	test.ExpectEquality(t, calls, 0)
	cb(nil, glfw.KeyEscape, 0, glfw.Press, 0)
	test.ExpectEquality(t, calls, 1)
}
