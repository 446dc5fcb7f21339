package stage

import (
	"context"
	"strconv"
)

// UpscaleParams are the inputs to the upscale stage (spec.md §4.3).
type UpscaleParams struct {
	InputDir  string
	OutputDir string
	Model     string // effective "<model>-x<scale>" name
	Scale     int
}

// Upscale runs the upscale stage: the neural upscaler reads PNGs from
// InputDir and writes upscaled PNGs to OutputDir. Progress ticks fire once
// per stderr line containing "done" (§4.3).
func Upscale(ctx context.Context, p UpscaleParams, cb TickCallback) error {
	args := []string{
		"-i", p.InputDir,
		"-o", p.OutputDir,
		"-n", p.Model,
		"-s", strconv.Itoa(p.Scale),
		"-f", "png",
		"-v",
	}
	return run(ctx, "realesrgan-ncnn-vulkan", args, "done", cb)
}
