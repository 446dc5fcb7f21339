package reporter

// Reporter receives progress and status events from the pipeline and
// driver. It is the same seam the teacher's reporter package defines
// (one implementation for terminal output, one no-op for library/test
// callers), generalized to this spec's event surface (§9 Design Notes,
// "Per-file progress coupling").
type Reporter interface {
	BatchStarted(BatchStartInfo)
	FileStarted(FileProgressContext)
	PlanReady(PlanSummary)
	StageTick(StageTickUpdate)
	FrameProgress(FrameProgress)
	CatalogSkip(CatalogSkip)
	FileComplete(FileCompleteSummary)
	Warning(message string)
	Error(ReporterError)
	BatchComplete(BatchSummary)
}

// Null discards every event. Used by library callers that want no
// terminal output (e.g. tests, or callers wiring their own UI).
type Null struct{}

func (Null) BatchStarted(BatchStartInfo)        {}
func (Null) FileStarted(FileProgressContext)    {}
func (Null) PlanReady(PlanSummary)              {}
func (Null) StageTick(StageTickUpdate)          {}
func (Null) FrameProgress(FrameProgress)        {}
func (Null) CatalogSkip(CatalogSkip)            {}
func (Null) FileComplete(FileCompleteSummary)   {}
func (Null) Warning(string)                     {}
func (Null) Error(ReporterError)                {}
func (Null) BatchComplete(BatchSummary)         {}

var _ Reporter = Null{}
