package stage

import (
	"strings"
	"testing"
)

func TestEncodeArgsLibx265(t *testing.T) {
	args, err := encodeArgs(EncodeParams{
		InputPattern: "out_frames/0/frame%08d.png",
		OutputPath:   "video_parts/0.mp4",
		Encoder:      "libx265",
		FrameRate:    23.976,
		CRF:          15,
		Preset:       "slow",
		X265Params:   "psy-rd=2:aq-strength=1:deblock=0,0:bframes=8",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	joined := strings.Join(args, " ")
	for _, want := range []string{"-pix_fmt yuv420p10le", "-crf 15", "-preset slow", "-x265-params"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected args to contain %q, got %q", want, joined)
		}
	}
}

func TestEncodeArgsLibsvtHevc(t *testing.T) {
	args, err := encodeArgs(EncodeParams{Encoder: "libsvt_hevc", CRF: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	joined := strings.Join(args, " ")
	for _, want := range []string{"-rc 0", "-qp 20", "-tune 0"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected args to contain %q, got %q", want, joined)
		}
	}
}

func TestEncodeArgsUnknownEncoder(t *testing.T) {
	if _, err := encodeArgs(EncodeParams{Encoder: "libvpx"}); err == nil {
		t.Fatalf("expected an error for an unrecognized encoder")
	}
}

func TestScanStderrCountsTokenLines(t *testing.T) {
	var ticks int
	r := strings.NewReader("frame=1 AVIOContext\nother line\rframe=2 AVIOContext\r")
	scanStderr(r, new(strings.Builder), "AVIOContext", func() { ticks++ })
	if ticks != 2 {
		t.Fatalf("expected 2 ticks, got %d", ticks)
	}
}
