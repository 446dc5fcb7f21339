// Package segment implements the pure segmenter (C2) described in
// spec.md §3 and §4.2.
package segment

// Segment is a contiguous frame range of a source video, the unit of
// pipelined work (spec.md §3, GLOSSARY).
type Segment struct {
	Index uint32
	Size  uint32
}

// Plan returns the ordered list of segments for a video of frameCount
// frames cut at segmentSize frames per segment.
//
// Invariant (spec.md §3, §8 properties 1-2): there are ceil(F/S) segments,
// all but the last have size S, and the last has size ((F-1) mod S) + 1
// when F mod S != 0, else S. Indices are contiguous from 0.
//
// The source this was distilled from subtracts 1 from the last-segment
// remainder unconditionally (lib.rs get_last_segment_size); that is the
// bug spec.md §9 calls out. This implementation uses the corrected
// formula.
func Plan(frameCount, segmentSize uint32) []Segment {
	if segmentSize == 0 || frameCount == 0 {
		return nil
	}

	count := (frameCount + segmentSize - 1) / segmentSize
	segments := make([]Segment, 0, count)

	remainder := frameCount % segmentSize
	lastSize := segmentSize
	if remainder != 0 {
		lastSize = ((frameCount - 1) % segmentSize) + 1
	}

	for i := uint32(0); i < count; i++ {
		size := segmentSize
		if i == count-1 {
			size = lastSize
		}
		segments = append(segments, Segment{Index: i, Size: size})
	}

	return segments
}
