package probe

import "testing"

func TestParseFrameRate(t *testing.T) {
	cases := []struct {
		raw  string
		want float32
	}{
		{"24000/1001", 23.976025},
		{"25/1", 25},
		{"30", 30},
		{"0/0", 0},
		{"", 0},
	}
	for _, c := range cases {
		got := parseFrameRate(c.raw)
		diff := got - c.want
		if diff < 0 {
			diff = -diff
		}
		if diff > 0.01 {
			t.Fatalf("parseFrameRate(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestFrameCountFromOutputFallback(t *testing.T) {
	// (a) nb_frames wins when present and nonzero.
	out := &ffprobeOutput{
		Streams: []ffprobeStream{{CodecType: "video", NbFrames: "2500"}},
	}
	if got := frameCountFromOutput(out); got != 2500 {
		t.Fatalf("expected nb_frames to win, got %d", got)
	}

	// (b) falls back to the tag when nb_frames is absent.
	out = &ffprobeOutput{
		Streams: []ffprobeStream{{
			CodecType: "video",
			Tags:      map[string]string{"NUMBER_OF_FRAMES-eng": "1800"},
		}},
	}
	if got := frameCountFromOutput(out); got != 1800 {
		t.Fatalf("expected tag fallback, got %d", got)
	}

	// (c) falls back to duration * 25 (pessimistic) when both are absent.
	out = &ffprobeOutput{
		Format:  ffprobeFormat{Duration: "10"},
		Streams: []ffprobeStream{{CodecType: "video"}},
	}
	if got := frameCountFromOutput(out); got != 250 {
		t.Fatalf("expected duration*25 fallback, got %d", got)
	}
}
