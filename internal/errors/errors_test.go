package errors

import (
	"errors"
	"testing"
)

func TestIsKind(t *testing.T) {
	err := NewCorruptSegmentError(3, 1000, 17)
	if !IsKind(err, KindCorruptSegment) {
		t.Fatalf("expected KindCorruptSegment, got %v", err)
	}
	if IsKind(err, KindCatalog) {
		t.Fatalf("did not expect KindCatalog")
	}
}

func TestIsCancelled(t *testing.T) {
	if !IsCancelled(NewCancelledError()) {
		t.Fatalf("expected cancellation error to report IsCancelled")
	}
	if IsCancelled(NewIOError("x", nil)) {
		t.Fatalf("did not expect IO error to report IsCancelled")
	}
}

func TestCoreErrorIs(t *testing.T) {
	a := NewCatalogError("insert failed", nil)
	b := NewCatalogError("different message", nil)
	if !errors.Is(a, b) {
		t.Fatalf("expected two CoreErrors of the same kind to match via errors.Is")
	}
	c := NewResumeError("identity mismatch", nil)
	if errors.Is(a, c) {
		t.Fatalf("did not expect different kinds to match")
	}
}

func TestWrapExecError(t *testing.T) {
	err := WrapExecError("realesrgan-ncnn-vulkan", errors.New("boom"), "")
	if !IsKind(err, KindCommand) {
		t.Fatalf("expected KindCommand, got %v", err)
	}
}
