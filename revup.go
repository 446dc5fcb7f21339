// Package revup provides a Go library for upscaling video using a
// frame-segmented export/upscale/encode pipeline driving external
// subprocesses (ffmpeg, ffprobe, a neural upscaler).
//
// Basic usage:
//
//	args := revup.NewArgs("input.mkv")
//	result, err := revup.Run(ctx, args, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("wrote", result.OutputPath)
package revup

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/revup/internal/catalog"
	"github.com/five82/revup/internal/config"
	"github.com/five82/revup/internal/discovery"
	revuperrors "github.com/five82/revup/internal/errors"
	"github.com/five82/revup/internal/finalize"
	"github.com/five82/revup/internal/pipeline"
	"github.com/five82/revup/internal/probe"
	"github.com/five82/revup/internal/reporter"
	"github.com/five82/revup/internal/resume"
	"github.com/five82/revup/internal/segment"
	"github.com/five82/revup/internal/util"
	"github.com/five82/revup/internal/workspace"
)

// Args is re-exported so callers never need to import internal/config.
type Args = config.Args

// NewArgs returns Args populated with the spec's CLI defaults (§6).
func NewArgs(inputPath string) *Args {
	return config.New(inputPath)
}

// Result describes the outcome of processing one file.
type Result struct {
	InputPath  string
	OutputPath string
	Elapsed    time.Duration
}

// BatchResult describes the outcome of processing a directory (C8).
type BatchResult struct {
	Results         []Result
	SuccessfulCount int
	SkippedCount    int
	TotalFiles      int
}

// Run processes a single input file end to end: probe, segment, resume,
// pipeline, finalize (C1, C2, C5, C4, C6). rep may be nil, in which case
// progress is discarded.
func Run(ctx context.Context, args *Args, rep reporter.Reporter) (*Result, error) {
	if rep == nil {
		rep = reporter.Null{}
	}
	if err := args.Validate(); err != nil {
		return nil, err
	}

	if args.OutputPath == "" {
		argsCopy := *args
		argsCopy.OutputPath = discovery.OutputPath(args.InputPath, args.Encoder, args.Format)
		args = &argsCopy
	}

	return processFile(ctx, args, rep, nil, 0)
}

// RunDirectory processes every eligible video under dir (C8), using
// catalogPath as the persistent work catalog's backing SQLite database.
func RunDirectory(ctx context.Context, dir string, policyResolution int, baseArgs *Args, catalogPath string, rep reporter.Reporter) (*BatchResult, error) {
	if rep == nil {
		rep = reporter.Null{}
	}
	start := time.Now()

	cat, err := catalog.Open(catalogPath)
	if err != nil {
		return nil, err
	}
	defer cat.Close()

	paths, err := discovery.Walk(dir)
	if err != nil {
		return nil, err
	}

	eligible, err := discovery.Populate(paths, cat, int64(policyResolution), rep)
	if err != nil {
		return nil, err
	}
	skipped := len(paths) - len(eligible)

	if len(eligible) == 0 {
		eligible, err = discovery.Reconstruct(cat, dir)
		if err != nil {
			return nil, err
		}
	}

	if len(eligible) == 0 {
		return nil, revuperrors.NewNoFilesFoundError(dir)
	}

	beforeFrameCount := len(eligible)
	totalFrames, perFileBase, eligible, err := discovery.TotalFrameCount(eligible, rep)
	if err != nil {
		return nil, err
	}
	skipped += beforeFrameCount - len(eligible)

	rep.BatchStarted(reporter.BatchStartInfo{
		TotalFiles: len(eligible),
		OutputDir:  dir,
	})

	batch := &BatchResult{TotalFiles: len(eligible), SkippedCount: skipped}
	agg := reporter.NewAggregator(totalFrames)

	for i, cand := range eligible {
		fileArgs := *baseArgs
		fileArgs.InputPath = cand.InputPath

		outputExt := fileArgs.Format
		if err := discovery.ValidateExtensionInvariant(cand.InputPath, outputExt); err != nil {
			// Fatal for this file only (§4.8 step 5): log and move on.
			rep.Warning(fmt.Sprintf("skipping %s: %v", cand.InputPath, err))
			batch.SkippedCount++
			continue
		}
		fileArgs.OutputPath = discovery.OutputPath(cand.InputPath, fileArgs.Encoder, outputExt)

		if util.FileExists(fileArgs.OutputPath) {
			continue
		}

		rep.FileStarted(reporter.FileProgressContext{
			CurrentFile: i + 1, TotalFiles: len(eligible), Filename: util.GetFilename(cand.InputPath),
		})

		if err := cat.ClearStaleProcessing(cand.InputPath); err != nil {
			return nil, err
		}
		if err := cat.Transition(cand.InputPath, catalog.StatusProcessing); err != nil {
			return nil, err
		}

		result, err := processFile(ctx, &fileArgs, rep, agg, perFileBase[i])
		if err != nil {
			return nil, fmt.Errorf("processing %s: %w", cand.InputPath, err)
		}

		if err := cat.Transition(cand.InputPath, catalog.StatusDone); err != nil {
			return nil, err
		}

		batch.Results = append(batch.Results, *result)
		batch.SuccessfulCount++
	}

	rep.BatchComplete(reporter.BatchSummary{
		SuccessfulCount: batch.SuccessfulCount,
		SkippedCount:    batch.SkippedCount,
		TotalFiles:      batch.TotalFiles,
		ElapsedSec:      time.Since(start).Seconds(),
	})
	return batch, nil
}

// processFile drives one file through C5/C1/C2/C4/C6. When agg is nil, a
// fresh single-file Aggregator is created after the frame count is known;
// otherwise the caller's run-wide Aggregator is reused. Either way it is
// positioned at frameBase (the sum of frame counts of files already
// completed in this run) plus the frames of segments reused from a prior
// run, so progress advances continuously across a directory run and a
// resumed file (§9 Design Notes, "Per-file progress coupling").
func processFile(ctx context.Context, args *Args, rep reporter.Reporter, agg *reporter.Aggregator, frameBase uint64) (*Result, error) {
	start := time.Now()
	ws := workspace.New()

	if _, err := resume.Enter(ws, args); err != nil {
		return nil, err
	}

	info, err := probe.Full(args.InputPath)
	if err != nil {
		return nil, err
	}

	plan := segment.Plan(info.FrameCount, uint32(args.SegmentSize))
	unprocessed, err := resume.ScanSegments(ws, plan, args.Format)
	if err != nil {
		return nil, err
	}
	if err := finalize.WritePartsList(ws, plan, args.Format); err != nil {
		return nil, err
	}

	var lastSize uint32
	if len(plan) > 0 {
		lastSize = plan[len(plan)-1].Size
	}
	rep.PlanReady(reporter.PlanSummary{
		Filename:        util.GetFilename(args.InputPath),
		SegmentCount:    len(plan),
		LastSegmentSize: lastSize,
		Encoder:         args.Encoder,
		Resumed:         len(unprocessed) < len(plan),
	})

	// Frames of segments reused from a prior run count as already done.
	var reusedFrames uint64
	for _, seg := range plan {
		reusedFrames += uint64(seg.Size)
	}
	for _, seg := range unprocessed {
		reusedFrames -= uint64(seg.Size)
	}
	if agg == nil {
		agg = reporter.NewAggregator(uint64(info.FrameCount))
	}
	agg.StartFile(frameBase + reusedFrames)

	pp := pipeline.Params{
		InputPath:  args.InputPath,
		Ext:        args.Format,
		FrameRate:  info.FrameRate,
		SegmentLen: uint32(args.SegmentSize),
		Model:      args.UpscalerModelName(),
		Scale:      args.Scale,
		Encoder:    args.Encoder,
		CRF:        args.CRF,
		Preset:     args.Preset,
		X265Params: args.X265Params,
	}
	if err := pipeline.Run(ctx, ws, unprocessed, pp, rep, agg); err != nil {
		return nil, err
	}

	if err := finalize.Run(ctx, ws, finalize.Params{
		InputPath:  args.InputPath,
		OutputPath: args.OutputPath,
		Ext:        args.Format,
		SourceInfo: info,
	}); err != nil {
		return nil, err
	}

	result := &Result{InputPath: args.InputPath, OutputPath: args.OutputPath, Elapsed: time.Since(start)}
	rep.FileComplete(reporter.FileCompleteSummary{
		Filename:   util.GetFilename(args.InputPath),
		OutputPath: args.OutputPath,
		ElapsedSec: result.Elapsed.Seconds(),
	})
	return result, nil
}

// FindVideos lists every video file under dir (C8 step 1).
func FindVideos(dir string) ([]string, error) {
	return discovery.Walk(dir)
}
