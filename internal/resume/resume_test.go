package resume

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/revup/internal/config"
	"github.com/five82/revup/internal/workspace"
)

func TestEnterFreshScratchHasNoPriorArgs(t *testing.T) {
	ws := workspace.NewAt(t.TempDir())
	args := config.New("/videos/a.mkv")

	decision, err := Enter(ws, args)
	if err != nil {
		t.Fatalf("Enter() error = %v", err)
	}
	if decision.Retained {
		t.Fatalf("expected fresh scratch to not be retained")
	}
	if _, err := os.Stat(ws.ArgsPath()); err != nil {
		t.Fatalf("expected args.temp to be written: %v", err)
	}
}

// Property 3: resume identity.
func TestEnterSameIdentityRetainsScratch(t *testing.T) {
	ws := workspace.NewAt(t.TempDir())
	args := config.New("/videos/a.mkv")

	if _, err := Enter(ws, args); err != nil {
		t.Fatalf("first Enter() error = %v", err)
	}

	// Simulate a completed segment left over from the interrupted run.
	partsDir := ws.VideoPartsDir()
	if err := os.MkdirAll(partsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	marker := filepath.Join(partsDir, "0.mp4")
	if err := os.WriteFile(marker, []byte("fake segment"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	decision, err := Enter(ws, args)
	if err != nil {
		t.Fatalf("second Enter() error = %v", err)
	}
	if !decision.Retained {
		t.Fatalf("expected matching identity to retain scratch")
	}
	if _, err := os.Stat(marker); err != nil {
		t.Fatalf("expected video_parts/0.mp4 to survive a retained run: %v", err)
	}
}

func TestEnterDifferentIdentityWipesScratch(t *testing.T) {
	ws := workspace.NewAt(t.TempDir())
	args := config.New("/videos/a.mkv")

	if _, err := Enter(ws, args); err != nil {
		t.Fatalf("first Enter() error = %v", err)
	}

	partsDir := ws.VideoPartsDir()
	if err := os.MkdirAll(partsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	marker := filepath.Join(partsDir, "0.mp4")
	if err := os.WriteFile(marker, []byte("fake segment"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	other := config.New("/videos/b.mkv")
	decision, err := Enter(ws, other)
	if err != nil {
		t.Fatalf("second Enter() error = %v", err)
	}
	if decision.Retained {
		t.Fatalf("expected differing identity to not retain scratch")
	}
	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Fatalf("expected video_parts/0.mp4 to be wiped, stat err = %v", err)
	}
}
