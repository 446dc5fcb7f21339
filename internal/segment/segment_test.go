package segment

import "testing"

// S1-S3 concrete scenarios from spec.md §8.
func TestPlanScenarios(t *testing.T) {
	cases := []struct {
		name        string
		frameCount  uint32
		segmentSize uint32
		want        []Segment
	}{
		{"S1", 2500, 1000, []Segment{{0, 1000}, {1, 1000}, {2, 500}}},
		{"S2", 1000, 1000, []Segment{{0, 1000}}},
		{"S3", 1, 1000, []Segment{{0, 1}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Plan(c.frameCount, c.segmentSize)
			if len(got) != len(c.want) {
				t.Fatalf("Plan(%d, %d) = %v, want %v", c.frameCount, c.segmentSize, got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Fatalf("Plan(%d, %d)[%d] = %v, want %v", c.frameCount, c.segmentSize, i, got[i], c.want[i])
				}
			}
		})
	}
}

// Property 1: segmenter totality.
func TestPlanTotality(t *testing.T) {
	for f := uint32(1); f <= 4097; f += 37 {
		for _, s := range []uint32{1, 7, 1000, 4096} {
			segments := Plan(f, s)

			wantLen := (f + s - 1) / s
			if uint32(len(segments)) != wantLen {
				t.Fatalf("Plan(%d, %d): len = %d, want %d", f, s, len(segments), wantLen)
			}

			var sum uint32
			for i, seg := range segments {
				if seg.Index != uint32(i) {
					t.Fatalf("Plan(%d, %d): index %d at position %d, want contiguous from 0", f, s, seg.Index, i)
				}
				sum += seg.Size
			}
			if sum != f {
				t.Fatalf("Plan(%d, %d): sizes sum to %d, want %d", f, s, sum, f)
			}
		}
	}
}

// Property 2: last-segment sizing.
func TestPlanLastSegmentSizing(t *testing.T) {
	cases := []struct {
		f, s, want uint32
	}{
		{1000, 1000, 1000}, // F mod S == 0 -> last size S
		{2500, 1000, 500},  // F mod S != 0 -> ((F-1) mod S) + 1
		{1, 1000, 1},
		{999, 1000, 999},
		{2000, 1000, 1000},
	}
	for _, c := range cases {
		segments := Plan(c.f, c.s)
		last := segments[len(segments)-1]
		if last.Size != c.want {
			t.Fatalf("Plan(%d, %d) last segment size = %d, want %d", c.f, c.s, last.Size, c.want)
		}
	}
}
