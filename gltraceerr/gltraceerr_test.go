package gltraceerr

import (
	"errors"
	"strings"
	"testing"
)

func TestIsMatchesSentinelKind(t *testing.T) {
	err := New(FormatError, "bad magic")
	if !errors.Is(err, FormatError) {
		t.Fatal("expected errors.Is to match FormatError")
	}
	if errors.Is(err, IOError) {
		t.Fatal("did not expect errors.Is to match IOError")
	}
}

func TestWrapPreservesCauseForUnwrap(t *testing.T) {
	cause := errors.New("short read")
	err := Wrap(IOError, cause, "tracefile: read SOF")
	if !errors.Is(err, IOError) {
		t.Fatal("expected errors.Is to match IOError")
	}
	if errors.Unwrap(err) != cause {
		t.Fatal("expected Unwrap to return the original cause")
	}
	if !strings.Contains(err.Error(), "short read") {
		t.Fatalf("error message dropped cause: %q", err.Error())
	}
}

func TestWrapNilReturnsNilInterface(t *testing.T) {
	err := Wrap(IOError, nil, "should not happen")
	if err != nil {
		t.Fatalf("expected nil interface, got %v", err)
	}
}

func TestAddLocationAppearsInMessage(t *testing.T) {
	err := New(ReplayDivergence, "return value mismatch")
	err = AddLocation(err, Location{FileOffset: 4096, CallCounter: 12, Frame: 3})
	msg := err.Error()
	if !strings.Contains(msg, "offset=4096") || !strings.Contains(msg, "call=12") || !strings.Contains(msg, "frame=3") {
		t.Fatalf("location missing from message: %q", msg)
	}
}

func TestAddLocationNoopOnPlainError(t *testing.T) {
	plain := errors.New("not a gltraceerr.Error")
	got := AddLocation(plain, Location{FileOffset: 1})
	if got != plain {
		t.Fatal("expected AddLocation to return the same plain error unchanged")
	}
}
