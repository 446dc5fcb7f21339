// Package finalize implements the finalizer (C6) from spec.md §4.6: a
// two-step tail that concatenates the ordered segment parts and then
// grafts the source's non-video streams back on, grounded in the
// original's process() concat-retry loop and copy_streams dispatch
// (_examples/original_source/reve-shared/src/lib.rs).
package finalize

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	revuperrors "github.com/five82/revup/internal/errors"
	"github.com/five82/revup/internal/probe"
	"github.com/five82/revup/internal/segment"
	"github.com/five82/revup/internal/workspace"
)

// WritePartsList writes parts.txt, the ffmpeg concat-demuxer file list
// describing every segment in plan, in order (§3 Scratch layout).
func WritePartsList(ws *workspace.Workspace, plan []segment.Segment, ext string) error {
	var buf bytes.Buffer
	for _, seg := range plan {
		fmt.Fprintf(&buf, "file '%s'\n", ws.VideoPartPath(seg.Index, ext))
	}
	if err := os.WriteFile(ws.PartsTxtPath(), buf.Bytes(), 0o644); err != nil {
		return revuperrors.NewFinalizerError("failed to write parts.txt", err)
	}
	return nil
}

const (
	concatRetries  = 5
	concatInterval = time.Second
)

// Params describes one finalize invocation.
type Params struct {
	InputPath  string
	OutputPath string
	Ext        string // container extension driving the concat/graft codec path
	SourceInfo *probe.Info
}

// Run concatenates video_parts/ into a single stream per parts.txt, then
// grafts the source's non-video streams onto it, producing OutputPath.
// Per spec.md §4.6 it retries the concat step up to 5 times at 1 second
// intervals before failing, and chooses the bin-data-dropping graft
// variant when the source carries a data stream (mkvmerge attachment
// streams ffmpeg cannot stream-copy).
func Run(ctx context.Context, ws *workspace.Workspace, p Params) error {
	concatPath := ws.ConcatOutputPath(p.Ext)

	if err := concatWithRetry(ctx, ws, p, concatPath); err != nil {
		return err
	}

	if err := graft(ctx, p, concatPath); err != nil {
		return err
	}

	info, err := os.Stat(p.OutputPath)
	if err != nil {
		return revuperrors.NewFinalizerError("final output missing after graft", err)
	}
	if info.Size() == 0 {
		return revuperrors.NewFinalizerError("final output is zero-length after graft", nil)
	}
	return nil
}

// concatWithRetry mirrors the original's `loop { sleep(1s); ... }`: a
// fresh ffmpeg concat/AR-correct invocation is re-run on each iteration
// where the previous attempt left no (or a zero-length) file behind,
// rather than simply re-checking a single attempt's output.
func concatWithRetry(ctx context.Context, ws *workspace.Workspace, p Params, concatPath string) error {
	var lastErr error
	for attempt := 0; attempt < concatRetries; attempt++ {
		lastErr = runConcat(ctx, ws, p, concatPath)
		if lastErr == nil {
			if fi, statErr := os.Stat(concatPath); statErr == nil && fi.Size() > 0 {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return revuperrors.NewCancelledError()
		case <-time.After(concatInterval):
		}
	}
	return revuperrors.NewFinalizerError(
		fmt.Sprintf("concatenation produced no usable output after %d attempts", concatRetries), lastErr)
}

func runConcat(ctx context.Context, ws *workspace.Workspace, p Params, concatPath string) error {
	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", ws.PartsTxtPath(),
		"-c", "copy",
	}

	dar := ""
	if p.SourceInfo != nil {
		dar = p.SourceInfo.DisplayAspectRatio
	}
	if usableAspectRatio(dar) {
		args = append(args, "-aspect", dar)
	}

	args = append(args, concatPath)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return revuperrors.WrapExecError("concat", err, stderr.String())
	}
	return nil
}

// usableAspectRatio reports whether dar is a real value, not one of the
// "unknown" sentinels probe.DisplayAspectRatio returns (§4.1, §4.6).
func usableAspectRatio(dar string) bool {
	return dar != "" && dar != "N/A" && dar != "0" && dar != "0:1"
}

// graft copies the source's non-video streams onto concatPath's video
// stream, producing p.OutputPath. When the source carries a data stream
// (probe.Info.BinDataPresent), attachment/data streams are dropped rather
// than copied, matching the original's copy_streams_no_bin_data path.
func graft(ctx context.Context, p Params, concatPath string) error {
	args := []string{
		"-y",
		"-i", concatPath,
		"-i", p.InputPath,
		"-map", "0:v:0",
		"-map", "1:a?",
		"-map", "1:s?",
	}

	if p.SourceInfo != nil && p.SourceInfo.BinDataPresent {
		// Drop data/attachment streams entirely; only video/audio/subs survive.
	} else {
		args = append(args, "-map", "1:d?", "-map", "1:t?")
	}

	args = append(args,
		"-map_chapters", "1",
		"-c", "copy",
		p.OutputPath,
	)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return revuperrors.WrapExecError("graft", err, stderr.String())
	}
	return nil
}
