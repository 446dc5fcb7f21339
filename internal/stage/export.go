package stage

import (
	"context"
	"fmt"
)

// ExportParams are the inputs to the export stage (spec.md §4.3).
type ExportParams struct {
	InputPath     string
	OutputPattern string // tmp_frames/<i>/frame%08d.png
	StartTime     string // "0" for i=0, "(i*S-1)/fps" otherwise
	FrameCount    uint32
}

// Export runs the export stage: the transcoder reads from InputPath
// starting at StartTime and writes exactly FrameCount PNGs to
// OutputPattern, with quality-preserving flags. Progress ticks fire once
// per stderr line containing "AVIOContext" (§4.3).
func Export(ctx context.Context, p ExportParams, cb TickCallback) error {
	args := []string{
		"-ss", p.StartTime,
		"-i", p.InputPath,
		"-frames:v", fmt.Sprintf("%d", p.FrameCount),
		"-qscale:v", "1",
		"-qmin", "1",
		"-qmax", "1",
		"-vsync", "0",
		p.OutputPattern,
	}
	return run(ctx, "ffmpeg", args, "AVIOContext", cb)
}
