package fault_test

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/Jacoboon/GameWatcher/internal/fault"
)

func TestWrapKeepsMarkerAndCause(t *testing.T) {
	err := fault.Wrap(fault.ErrMalformed, "catalog", "decode", "top level is not an array", fs.ErrInvalid)
	if !errors.Is(err, fault.ErrMalformed) {
		t.Fatalf("expected ErrMalformed in chain, got %v", err)
	}
	if !errors.Is(err, fs.ErrInvalid) {
		t.Fatalf("expected cause in chain, got %v", err)
	}
	if !strings.Contains(err.Error(), "catalog: decode: top level is not an array") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := fault.Wrap(nil, " ", "", "", nil)
	if !errors.Is(err, fault.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration fallback, got %v", err)
	}
	if !strings.HasSuffix(err.Error(), "repair failure") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCategory(t *testing.T) {
	cases := map[string]error{
		"locked":        fault.Wrap(fault.ErrLocked, "repair", "lock", "", nil),
		"malformed":     fault.Wrap(fault.ErrMalformed, "catalog", "", "", nil),
		"write":         fault.Wrap(fault.ErrWrite, "catalog", "save", "", nil),
		"not_found":     fault.Wrap(fault.ErrNotFound, "reporoot", "", "", nil),
		"configuration": fault.Wrap(fault.ErrConfiguration, "config", "", "", nil),
		"unknown":       errors.New("plain"),
		"":              nil,
	}
	for want, err := range cases {
		if got := fault.Category(err); got != want {
			t.Fatalf("Category(%v) = %q, want %q", err, got, want)
		}
	}
}
