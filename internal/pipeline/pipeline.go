// Package pipeline implements the pipeline orchestrator (C4) from
// spec.md §4.4: it drives one video plan to completion using a two-stage
// prefetch (export-ahead, encode-behind) around a synchronous upscale
// stage, grounded in the original's export_handle/merge_handle loop
// (_examples/original_source/reve-shared/src/lib.rs, process()).
package pipeline

import (
	"context"
	"fmt"
	"os"

	revuperrors "github.com/five82/revup/internal/errors"
	"github.com/five82/revup/internal/reporter"
	"github.com/five82/revup/internal/segment"
	"github.com/five82/revup/internal/stage"
	"github.com/five82/revup/internal/workspace"
)

// Params are the per-run inputs the orchestrator needs to drive every
// stage, derived from the video plan and run arguments (§3, §4.3).
type Params struct {
	InputPath  string
	Ext        string // output segment extension, e.g. "mp4"
	FrameRate  float32
	SegmentLen uint32 // S, the configured segment size

	Model string // effective "<model>-x<scale>" name
	Scale int

	Encoder    string
	CRF        int
	Preset     string
	X265Params string
}

// future is a handle to an in-flight background stage invocation.
type future struct {
	done chan error
}

func run(ctx context.Context, work func() error) *future {
	f := &future{done: make(chan error, 1)}
	go func() { f.done <- work() }()
	return f
}

// await is idempotent on a nil future, matching "Await export_ahead
// (idempotent if none)" (§4.4 step 1).
func await(f *future) error {
	if f == nil {
		return nil
	}
	return <-f.done
}

// startTime returns segment i's export start time, per spec.md §4.3:
// "0" for i=0, otherwise "(i*S-1)/fps".
func startTime(index, segmentLen uint32, frameRate float32) string {
	if index == 0 {
		return "0"
	}
	if frameRate <= 0 {
		return "0"
	}
	seconds := (float64(index)*float64(segmentLen) - 1) / float64(frameRate)
	return fmt.Sprintf("%f", seconds)
}

// Run drives segments (the unprocessed queue U from the resume
// controller, in ascending index order) to completion: every segment is
// exported, upscaled, and encoded, with one export prefetched ahead and
// one encode running behind the segment currently being upscaled (§4.4).
func Run(ctx context.Context, ws *workspace.Workspace, segments []segment.Segment, p Params, rep reporter.Reporter, agg *reporter.Aggregator) error {
	if len(segments) == 0 {
		return nil
	}

	exportSeg := func(seg segment.Segment) func() error {
		return func() error {
			dir := ws.TmpFramesDir(seg.Index)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return revuperrors.NewStageError("export", p.InputPath, err)
			}
			return stage.Export(ctx, stage.ExportParams{
				InputPath:     p.InputPath,
				OutputPattern: ws.TmpFramePattern(seg.Index),
				StartTime:     startTime(seg.Index, p.SegmentLen, p.FrameRate),
				FrameCount:    seg.Size,
			}, nil)
		}
	}

	encodeSeg := func(seg segment.Segment, ticked uint32) func() error {
		return func() error {
			if err := os.RemoveAll(ws.TmpFramesDir(seg.Index)); err != nil {
				return revuperrors.NewStageError("encode", p.InputPath, err)
			}
			cb := func() {
				rep.StageTick(reporter.StageTickUpdate{
					Stage: reporter.StageMerge, SegmentIndex: seg.Index,
					SegmentTotal: seg.Size, SegmentTicked: ticked,
				})
			}
			err := stage.Encode(ctx, stage.EncodeParams{
				InputPattern: ws.OutFramePattern(seg.Index),
				OutputPath:   ws.VideoPartPath(seg.Index, p.Ext),
				Encoder:      p.Encoder,
				FrameRate:    p.FrameRate,
				CRF:          p.CRF,
				Preset:       p.Preset,
				X265Params:   p.X265Params,
			}, cb)
			if err != nil {
				return err
			}
			return os.RemoveAll(ws.OutFramesDir(seg.Index))
		}
	}

	// Bootstrap: export U[0] synchronously before entering the loop (§4.4).
	if err := exportSeg(segments[0])(); err != nil {
		return err
	}

	var exportAhead *future
	var encodeBehind *future
	var framesIntoFile uint64

	for i, seg := range segments {
		if err := await(exportAhead); err != nil {
			return err
		}
		exportAhead = nil

		if i+1 < len(segments) {
			exportAhead = run(ctx, exportSeg(segments[i+1]))
		}

		if err := os.MkdirAll(ws.OutFramesDir(seg.Index), 0o755); err != nil {
			return revuperrors.NewStageError("upscale", p.InputPath, err)
		}

		var ticked uint32
		upscaleCb := func() {
			ticked++
			framesIntoFile++
			rep.StageTick(reporter.StageTickUpdate{
				Stage: reporter.StageUpscale, SegmentIndex: seg.Index,
				SegmentTotal: seg.Size, SegmentTicked: ticked,
			})
			if agg != nil {
				rep.FrameProgress(agg.Tick(framesIntoFile))
			}
		}
		err := stage.Upscale(ctx, stage.UpscaleParams{
			InputDir:  ws.TmpFramesDir(seg.Index),
			OutputDir: ws.OutFramesDir(seg.Index),
			Model:     p.Model,
			Scale:     p.Scale,
		}, upscaleCb)
		if err != nil {
			return err
		}

		if err := await(encodeBehind); err != nil {
			return err
		}

		encodeBehind = run(ctx, encodeSeg(seg, seg.Size))
	}

	return await(encodeBehind)
}
