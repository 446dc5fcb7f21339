package reporter

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/five82/revup/internal/util"
)

// Terminal outputs human-friendly text and progress bars to the
// terminal, the same way the teacher's TerminalReporter does (fatih/color
// for section headers, schollz/progressbar/v3 for live counters) adapted
// to this spec's per-segment, per-stage progress surface.
type Terminal struct {
	mu       sync.Mutex
	bar      *progressbar.ProgressBar
	lastFile string

	cyan    *color.Color
	green   *color.Color
	yellow  *color.Color
	red     *color.Color
	magenta *color.Color
	bold    *color.Color
}

// NewTerminal creates a new terminal reporter.
func NewTerminal() *Terminal {
	return &Terminal{
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
	}
}

func (r *Terminal) printLabel(width int, label, value string) {
	padded := fmt.Sprintf("%-*s", width, label)
	fmt.Printf("  %s %s\n", r.bold.Sprint(padded), value)
}

func (r *Terminal) finishBar() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar != nil {
		_ = r.bar.Finish()
		r.bar = nil
	}
}

func (r *Terminal) BatchStarted(info BatchStartInfo) {
	fmt.Println()
	_, _ = r.cyan.Println("BATCH")
	fmt.Printf("  Processing %d files -> %s\n", info.TotalFiles, r.bold.Sprint(info.OutputDir))
	for i, name := range info.FileList {
		fmt.Printf("  %d. %s\n", i+1, name)
	}
}

func (r *Terminal) FileStarted(ctx FileProgressContext) {
	r.finishBar()
	fmt.Printf("\nFile %s of %d: %s\n",
		r.bold.Sprint(ctx.CurrentFile), ctx.TotalFiles, ctx.Filename)
	r.mu.Lock()
	r.lastFile = ctx.Filename
	r.mu.Unlock()
}

func (r *Terminal) PlanReady(plan PlanSummary) {
	resumed := "fresh"
	if plan.Resumed {
		resumed = "resumed"
	}
	fmt.Printf("  %s %d segments, last segment %d frames, encoder %s (%s)\n",
		r.bold.Sprint("Plan:"), plan.SegmentCount, plan.LastSegmentSize, plan.Encoder, resumed)
}

func (r *Terminal) StageTick(update StageTickUpdate) {
	r.mu.Lock()
	if r.bar == nil {
		r.mu.Unlock()
		r.startBar(update)
		r.mu.Lock()
	}
	r.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar == nil {
		return
	}
	r.bar.Describe(fmt.Sprintf("segment %d [%s]", update.SegmentIndex, strings.ToUpper(string(update.Stage))))
	_ = r.bar.Set(int(update.SegmentTicked))
}

func (r *Terminal) startBar(update StageTickUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bar = progressbar.NewOptions(
		int(update.SegmentTotal),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (r *Terminal) FrameProgress(fp FrameProgress) {
	// Cumulative, cross-segment, cross-file position; surfaced alongside
	// the per-segment bar rather than replacing it (§9 Design Notes).
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "\r  overall frame %d/%d", fp.Position, fp.Total)
}

func (r *Terminal) CatalogSkip(skip CatalogSkip) {
	fmt.Printf("  %s %s (height %d exceeds policy %d)\n",
		r.yellow.Sprint("SKIP"), skip.Filename, skip.Height, skip.Policy)
}

func (r *Terminal) FileComplete(summary FileCompleteSummary) {
	r.finishBar()
	fmt.Println()
	_, _ = r.cyan.Println("RESULT")
	r.printLabel(10, "Output:", summary.OutputPath)
	fmt.Printf("  %s %s\n", r.bold.Sprint("Time:"), util.FormatDurationFromSecs(int64(summary.ElapsedSec)))
	fmt.Printf("%s %s\n", r.green.Add(color.Bold).Sprint("✓"), r.bold.Sprint(summary.Filename+" complete"))
}

func (r *Terminal) Warning(message string) {
	fmt.Println()
	_, _ = r.yellow.Printf("WARN: %s\n", message)
}

func (r *Terminal) Error(err ReporterError) {
	_, _ = fmt.Fprintln(os.Stderr)
	_, _ = r.red.Fprintf(os.Stderr, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *Terminal) BatchComplete(summary BatchSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("BATCH SUMMARY")
	fmt.Printf("  %s\n", r.bold.Sprintf("%d of %d succeeded, %d skipped",
		summary.SuccessfulCount, summary.TotalFiles, summary.SkippedCount))
	fmt.Printf("  Time: %s\n", util.FormatDurationFromSecs(int64(summary.ElapsedSec)))
}

var _ Reporter = (*Terminal)(nil)
