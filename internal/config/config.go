// Package config holds the run arguments (§3, §6) for a revup invocation.
package config

import (
	"fmt"

	"github.com/five82/revup/internal/errors"
)

// Defaults per spec.md §6.
const (
	DefaultResolution  = 480
	DefaultFormat      = "mp4"
	DefaultModel       = "realesr-animevideov3"
	DefaultScale       = 2
	DefaultSegmentSize = 1000
	DefaultCRF         = 15
	DefaultPreset      = "slow"
	DefaultEncoder     = "libx265"
	DefaultX265Params  = "psy-rd=2:aq-strength=1:deblock=0,0:bframes=8"
)

// Models is the set of accepted -m/--model values. Per spec.md §9 Design
// Notes, "realesr-realvideo" appears in GUI validation but is absent from
// CLI validation upstream; the CLI's sole acceptance of
// realesr-animevideov3 is treated as authoritative here.
var Models = map[string]bool{
	"realesr-animevideov3": true,
}

// Scales is the set of accepted -s/--scale values.
var Scales = map[int]bool{2: true, 3: true, 4: true}

// Presets is the set of accepted -p/--preset values.
var Presets = map[string]bool{
	"ultrafast": true, "superfast": true, "veryfast": true, "faster": true,
	"fast": true, "medium": true, "slow": true, "slower": true, "veryslow": true,
}

// Encoders is the set of accepted -e/--encoder values.
var Encoders = map[string]bool{
	"libx265": true, "libsvt_hevc": true, "libsvtav1": true,
}

// Formats is the set of accepted -f/--format and source extensions for a
// single-file -i (§6: "Accepts file extensions {mp4, mkv, avi} when a file").
var Formats = map[string]bool{"mp4": true, "mkv": true, "avi": true}

// Args holds the full set of user-visible run arguments, per spec.md §3
// ("Run arguments") and §6 (CLI surface).
type Args struct {
	InputPath  string
	Resolution int
	Format     string
	Model      string
	Scale      int

	SegmentSize int
	CRF         int
	Preset      string
	Encoder     string
	X265Params  string

	OutputPath string
}

// Identity is the resume identity of a run: the (input_path, model,
// upscale_ratio) triple from spec.md §3. Two runs with the same Identity
// share scratch state; otherwise scratch is wiped (§4.5).
type Identity struct {
	InputPath string
	Model     string
	Scale     int
}

// New returns an Args populated with the spec.md §6 defaults.
func New(inputPath string) *Args {
	return &Args{
		InputPath:   inputPath,
		Resolution:  DefaultResolution,
		Format:      DefaultFormat,
		Model:       DefaultModel,
		Scale:       DefaultScale,
		SegmentSize: DefaultSegmentSize,
		CRF:         DefaultCRF,
		Preset:      DefaultPreset,
		Encoder:     DefaultEncoder,
		X265Params:  DefaultX265Params,
	}
}

// ResumeIdentity returns the triple that governs scratch reuse (§3, §4.5).
func (a *Args) ResumeIdentity() Identity {
	return Identity{InputPath: a.InputPath, Model: a.Model, Scale: a.Scale}
}

// SameIdentity reports whether two identities match (§8 property 3).
func (id Identity) SameIdentity(other Identity) bool {
	return id.InputPath == other.InputPath && id.Model == other.Model && id.Scale == other.Scale
}

// Validate checks the arguments for validation errors (§7: "Validation
// errors ... fatal at entry, surfaced to the user").
func (a *Args) Validate() error {
	if a.InputPath == "" {
		return errors.NewConfigError("inputpath is required")
	}
	if a.Resolution <= 0 {
		return errors.NewConfigError(fmt.Sprintf("resolution must be positive, got %d", a.Resolution))
	}
	if !Formats[a.Format] {
		return errors.NewConfigError(fmt.Sprintf("format must be one of mp4, mkv, avi; got %q", a.Format))
	}
	if !Models[a.Model] {
		return errors.NewConfigError(fmt.Sprintf("model must be one of realesr-animevideov3; got %q", a.Model))
	}
	if !Scales[a.Scale] {
		return errors.NewConfigError(fmt.Sprintf("scale must be 2, 3, or 4; got %d", a.Scale))
	}
	if a.SegmentSize <= 0 {
		return errors.NewConfigError(fmt.Sprintf("parts (segment size) must be positive, got %d", a.SegmentSize))
	}
	if a.CRF < 0 || a.CRF > 51 {
		return errors.NewConfigError(fmt.Sprintf("crf must be 0-51, got %d", a.CRF))
	}
	if !Presets[a.Preset] {
		return errors.NewConfigError(fmt.Sprintf("preset %q is not recognized", a.Preset))
	}
	if !Encoders[a.Encoder] {
		return errors.NewConfigError(fmt.Sprintf("encoder must be one of libx265, libsvt_hevc, libsvtav1; got %q", a.Encoder))
	}
	return nil
}

// UpscalerModelName returns the effective model name passed to the
// upscaler, per spec.md §4.3: "<model>-x<scale>".
func (a *Args) UpscalerModelName() string {
	return fmt.Sprintf("%s-x%d", a.Model, a.Scale)
}
