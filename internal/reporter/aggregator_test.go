package reporter

import "testing"

func TestAggregatorAcrossFiles(t *testing.T) {
	agg := NewAggregator(1000)

	agg.StartFile(0)
	fp := agg.Tick(100)
	if fp.Position != 100 || fp.Total != 1000 {
		t.Fatalf("got %+v", fp)
	}

	agg.StartFile(400)
	fp = agg.Tick(50)
	if fp.Position != 450 {
		t.Fatalf("expected cumulative position 450, got %d", fp.Position)
	}

	if got := agg.Position().Position; got != 450 {
		t.Fatalf("Position() without tick should not advance, got %d", got)
	}
}
