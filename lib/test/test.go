// Package test has helpers for the standard testing package.
//
// The Expect functions report a failure and carry on. The Demand functions
// stop the test, which is what you want when later checks depend on the
// value being right.
//
// Success and failure depend on the type of the value:
//
//	bool  -> true is success
//	error -> nil is success
//	nil   -> success
package test

import (
	"strings"
	"testing"
)

func success(t *testing.T, v any) bool {
	t.Helper()
	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return v
	case error:
		return v == nil
	default:
		t.Fatalf("unsupported type (%T) for expectation testing", v)
	}
	return false
}

func ExpectSuccess(t *testing.T, v any) bool {
	t.Helper()
	if !success(t, v) {
		t.Errorf("expected success (%T: %v)", v, v)
		return false
	}
	return true
}

func ExpectFailure(t *testing.T, v any) bool {
	t.Helper()
	if success(t, v) {
		t.Errorf("expected failure (%T)", v)
		return false
	}
	return true
}

func ExpectEquality[T comparable](t *testing.T, v T, expected T) bool {
	t.Helper()
	if v != expected {
		t.Errorf("equality test of type %T failed: '%v' does not equal '%v'", v, v, expected)
		return false
	}
	return true
}

// ExpectSubstring checks that s contains sub.
func ExpectSubstring(t *testing.T, s string, sub string) bool {
	t.Helper()
	if !strings.Contains(s, sub) {
		t.Errorf("'%s' does not contain '%s'", s, sub)
		return false
	}
	return true
}

func DemandSuccess(t *testing.T, v any) {
	t.Helper()
	if !success(t, v) {
		t.Fatalf("a success value is demanded (%T: %v)", v, v)
	}
}

func DemandFailure(t *testing.T, v any) {
	t.Helper()
	if success(t, v) {
		t.Fatalf("a failure value is demanded for type %T", v)
	}
}

func DemandEquality[T comparable](t *testing.T, v T, expected T) {
	t.Helper()
	if v != expected {
		t.Fatalf("equality test of type %T failed: '%v' does not equal '%v'", v, v, expected)
	}
}
