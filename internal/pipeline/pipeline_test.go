package pipeline

import (
	"errors"
	"testing"
)

func TestStartTime(t *testing.T) {
	if got := startTime(0, 1000, 25); got != "0" {
		t.Fatalf("startTime(0,...) = %q, want %q", got, "0")
	}
	got := startTime(2, 1000, 25)
	want := "79.960000"
	if got != want {
		t.Fatalf("startTime(2, 1000, 25) = %q, want %q", got, want)
	}
}

func TestFutureAwaitIdempotentOnNil(t *testing.T) {
	if err := await(nil); err != nil {
		t.Fatalf("await(nil) = %v, want nil", err)
	}
}

func TestFutureAwaitPropagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	f := run(nil, func() error { return wantErr })
	if err := await(f); err != wantErr {
		t.Fatalf("await() = %v, want %v", err, wantErr)
	}
}
