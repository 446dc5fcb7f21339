package stage

import (
	"context"
	"fmt"

	"github.com/five82/revup/internal/errors"
)

// EncodeParams are the inputs to the encode stage (spec.md §4.3).
type EncodeParams struct {
	InputPattern string // out_frames/<i>/frame%08d.png
	OutputPath   string // video_parts/<i>.<ext>
	Encoder      string // libx265, libsvt_hevc, libsvtav1
	FrameRate    float32
	CRF          int
	Preset       string // only meaningful for libx265
	X265Params   string // only meaningful for libx265
}

// Encode runs the encode stage: the transcoder reads the PNG sequence at
// InputPattern and writes a coded segment to OutputPath. Parameterization
// differs by codec (§4.3). Progress ticks fire once per stderr line
// containing "AVIOContext".
func Encode(ctx context.Context, p EncodeParams, cb TickCallback) error {
	args, err := encodeArgs(p)
	if err != nil {
		return err
	}
	return run(ctx, "ffmpeg", args, "AVIOContext", cb)
}

func encodeArgs(p EncodeParams) ([]string, error) {
	base := []string{
		"-r", fmt.Sprintf("%g", p.FrameRate),
		"-i", p.InputPattern,
		"-c:v", p.Encoder,
	}

	switch p.Encoder {
	case "libx265":
		base = append(base,
			"-pix_fmt", "yuv420p10le",
			"-crf", fmt.Sprintf("%d", p.CRF),
			"-preset", p.Preset,
			"-x265-params", p.X265Params,
		)
	case "libsvt_hevc":
		base = append(base,
			"-rc", "0",
			"-qp", fmt.Sprintf("%d", p.CRF),
			"-tune", "0",
			"-pix_fmt", "yuv420p10le",
			"-crf", fmt.Sprintf("%d", p.CRF),
		)
	case "libsvtav1":
		base = append(base,
			"-pix_fmt", "yuv420p10le",
			"-crf", fmt.Sprintf("%d", p.CRF),
		)
	default:
		return nil, errors.NewConfigError(fmt.Sprintf("unrecognized encoder %q", p.Encoder))
	}

	return append(base, p.OutputPath), nil
}
