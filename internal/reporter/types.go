package reporter

// Stage names a pipelined subprocess stage (C3).
type Stage string

const (
	StageExport  Stage = "export"
	StageUpscale Stage = "upscale"
	StageMerge   Stage = "merge"
)

// BatchStartInfo is reported once when a multi-file run begins (C8).
type BatchStartInfo struct {
	TotalFiles int
	FileList   []string
	OutputDir  string
}

// FileProgressContext is reported when processing moves to a new file.
type FileProgressContext struct {
	CurrentFile int
	TotalFiles  int
	Filename    string
}

// PlanSummary is reported once a video's segment plan is known (C2/C4),
// mirroring the original's "current/total, filename, total segments, last
// segment size, codec" banner.
type PlanSummary struct {
	Filename        string
	SegmentCount    int
	LastSegmentSize uint32
	Encoder         string
	Resumed         bool
}

// StageTickUpdate is reported on every progress tick from a stage runner (C3).
type StageTickUpdate struct {
	Stage         Stage
	SegmentIndex  uint32
	SegmentTotal  uint32
	SegmentTicked uint32
}

// FrameProgress is the cross-segment, cross-file frame counter described
// in spec.md §9 Design Notes ("Per-file progress coupling").
type FrameProgress struct {
	Position uint64
	Total    uint64
}

// CatalogSkip is reported when a candidate is cataloged as skipped (C8, S6).
type CatalogSkip struct {
	Filename string
	Height   int64
	Policy   int64
}

// FileCompleteSummary is reported when one file's pipeline finishes (C4/C6).
type FileCompleteSummary struct {
	Filename   string
	OutputPath string
	ElapsedSec float64
}

// ReporterError is a structured error surfaced to the user (§7).
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// BatchSummary is reported once a multi-file run finishes (C8).
type BatchSummary struct {
	SuccessfulCount int
	SkippedCount    int
	TotalFiles      int
	ElapsedSec      float64
}
