package finalize

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/revup/internal/segment"
	"github.com/five82/revup/internal/workspace"
)

func TestUsableAspectRatio(t *testing.T) {
	cases := map[string]bool{
		"16:9": true,
		"4:3":  true,
		"":     false,
		"N/A":  false,
		"0":    false,
		"0:1":  false,
	}
	for dar, want := range cases {
		if got := usableAspectRatio(dar); got != want {
			t.Errorf("usableAspectRatio(%q) = %v, want %v", dar, got, want)
		}
	}
}

func TestWritePartsList(t *testing.T) {
	ws := workspace.NewAt(t.TempDir())
	plan := []segment.Segment{{Index: 0, Size: 1000}, {Index: 1, Size: 1000}, {Index: 2, Size: 500}}

	if err := WritePartsList(ws, plan, "mp4"); err != nil {
		t.Fatalf("WritePartsList() error = %v", err)
	}

	raw, err := os.ReadFile(ws.PartsTxtPath())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %v", len(lines), lines)
	}
	want := "file '" + filepath.Join(ws.VideoPartsDir(), "0.mp4") + "'"
	if lines[0] != want {
		t.Fatalf("line 0 = %q, want %q", lines[0], want)
	}
}
