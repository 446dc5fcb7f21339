// Package resume implements the resume controller (C5) from spec.md §4.5:
// it decides whether a prior run's scratch state can be reused and scans
// video_parts/ to classify each segment.
package resume

import (
	"encoding/json"
	"os"

	"github.com/five82/revup/internal/config"
	revuperrors "github.com/five82/revup/internal/errors"
	"github.com/five82/revup/internal/probe"
	"github.com/five82/revup/internal/segment"
	"github.com/five82/revup/internal/workspace"
)

// savedArgs is the minimal identity persisted to args.temp — only the
// fields resume identity depends on are stored and round-tripped; the
// other run arguments are not written.
type savedArgs struct {
	InputPath string
	Model     string
	Scale     int
}

// Decision describes the outcome of entering a run (spec.md §4.5).
type Decision struct {
	// Retained is true when the previous scratch state (including
	// video_parts/) was reused because the resume identity matched.
	Retained bool
}

// Enter decides whether to retain or wipe scratch state for this run, and
// persists the current args as the new args.temp. This MUST be called
// before any stage runs, per spec.md §4.5.
func Enter(ws *workspace.Workspace, args *config.Args) (Decision, error) {
	identity := args.ResumeIdentity()

	if saved, ok := readSavedArgs(ws); ok {
		savedIdentity := config.Identity{InputPath: saved.InputPath, Model: saved.Model, Scale: saved.Scale}
		if savedIdentity.SameIdentity(identity) {
			if err := persist(ws, identity); err != nil {
				return Decision{}, err
			}
			return Decision{Retained: true}, nil
		}
	}

	if err := wipeScratch(ws); err != nil {
		return Decision{}, err
	}
	if err := persist(ws, identity); err != nil {
		return Decision{}, err
	}
	return Decision{Retained: false}, nil
}

func readSavedArgs(ws *workspace.Workspace) (savedArgs, bool) {
	raw, err := os.ReadFile(ws.ArgsPath())
	if err != nil {
		return savedArgs{}, false
	}
	var saved savedArgs
	if err := json.Unmarshal(raw, &saved); err != nil {
		return savedArgs{}, false
	}
	return saved, true
}

func persist(ws *workspace.Workspace, identity config.Identity) error {
	if err := os.MkdirAll(ws.Root, 0o755); err != nil {
		return revuperrors.NewResumeError("failed to create scratch root", err)
	}
	raw, err := json.Marshal(savedArgs{InputPath: identity.InputPath, Model: identity.Model, Scale: identity.Scale})
	if err != nil {
		return revuperrors.NewResumeError("failed to serialize run arguments", err)
	}
	if err := os.WriteFile(ws.ArgsPath(), raw, 0o644); err != nil {
		return revuperrors.NewResumeError("failed to persist run arguments", err)
	}
	return nil
}

// wipeScratch clears tmp_frames/, out_frames/, video_parts/, and
// parts.txt. Per spec.md §4.5: "preserving video_parts/ is NOT done when
// identity differs — the whole scratch tree is rebuilt from empty."
func wipeScratch(ws *workspace.Workspace) error {
	for _, dir := range []string{
		ws.Root + "/tmp_frames",
		ws.Root + "/out_frames",
		ws.VideoPartsDir(),
	} {
		if err := os.RemoveAll(dir); err != nil {
			return revuperrors.NewResumeError("failed to clear scratch directory "+dir, err)
		}
	}
	if err := os.Remove(ws.PartsTxtPath()); err != nil && !os.IsNotExist(err) {
		return revuperrors.NewResumeError("failed to remove parts.txt", err)
	}
	return nil
}

// ScanSegments classifies each planned segment against video_parts/,
// per spec.md §4.5:
//   - file absent -> unprocessed
//   - file present, frame count matches -> reusable, omitted from the result
//   - file present, frame count mismatches -> corrupt: deleted, unprocessed
//
// It returns the ordered list of segments still requiring export, upscale,
// and encode.
func ScanSegments(ws *workspace.Workspace, plan []segment.Segment, ext string) ([]segment.Segment, error) {
	var unprocessed []segment.Segment

	for _, seg := range plan {
		path := ws.VideoPartPath(seg.Index, ext)

		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				unprocessed = append(unprocessed, seg)
				continue
			}
			return nil, revuperrors.NewResumeError("failed to stat segment file "+path, err)
		}

		count, err := probe.FrameCountOfSegment(path)
		if err != nil {
			return nil, revuperrors.NewResumeError("failed to probe segment file "+path, err)
		}

		if count == seg.Size {
			continue // reusable; skip export/upscale/encode for this segment
		}

		if err := os.Remove(path); err != nil {
			return nil, revuperrors.NewResumeError("failed to remove corrupt segment file "+path, err)
		}
		unprocessed = append(unprocessed, seg)
	}

	return unprocessed, nil
}
