// Package discovery implements the multi-file driver (C8) from
// spec.md §4.8: walking a directory for candidate videos, populating the
// catalog, building an eligible work list (falling back to catalog
// reconstruction when the filesystem scan finds nothing new), and
// pre-counting frames for the cross-file progress bar.
package discovery

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/five82/revup/internal/catalog"
	revuperrors "github.com/five82/revup/internal/errors"
	"github.com/five82/revup/internal/probe"
	"github.com/five82/revup/internal/reporter"
	"github.com/five82/revup/internal/util"
)

// Candidate is one file discovered under the input directory, with its
// probed attributes and computed output path.
type Candidate struct {
	InputPath  string
	OutputPath string
	Info       *probe.Info
}

// Walk recursively finds every video file under root, per spec.md §4.8
// step 1 (extension set util.DriverExtensions). The original driver used
// a non-recursive directory read; a full recursive walk is a deliberate
// supplement (see SPEC_FULL.md) so nested library layouts are covered.
func Walk(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if util.IsVideoFile(path) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, revuperrors.NewIOError("failed to walk directory "+root, err)
	}
	sort.Strings(found)
	return found, nil
}

// OutputPath computes a candidate's output path: directory-preserving,
// suffixed with the chosen codec and extension (§4.8 step 5).
//
// Output-extension invariant (§4.8): if the source extension is mkv, the
// output extension MUST also be mkv; callers must treat a mismatch as
// fatal for that file (see ValidateExtensionInvariant).
func OutputPath(inputPath, encoder, ext string) string {
	dir := filepath.Dir(inputPath)
	stem := util.GetFileStem(inputPath)
	return filepath.Join(dir, stem+"."+encoder+"."+ext)
}

// ValidateExtensionInvariant enforces §4.8's output-extension invariant.
func ValidateExtensionInvariant(inputPath, outputExt string) error {
	if strings.ToLower(filepath.Ext(inputPath)) == ".mkv" && outputExt != "mkv" {
		return revuperrors.NewConfigError(
			"source " + inputPath + " is mkv; output extension must also be mkv")
	}
	return nil
}

// Populate inserts every discovered path into the catalog (§4.8 step 2),
// probing each for height, and returns the eligible list: candidates
// whose probed height is at or below policyResolution.
//
// A probe failure is fatal for that file only (§4.1, §7): it is logged
// via rep and the driver moves on to the next candidate, leaving the
// unreadable file uncataloged rather than aborting the whole batch.
func Populate(paths []string, c *catalog.Catalog, policyResolution int64, rep reporter.Reporter) ([]Candidate, error) {
	var eligible []Candidate

	for _, path := range paths {
		info, err := probe.Full(path)
		if err != nil {
			rep.Warning(fmt.Sprintf("skipping %s: probe failed: %v", path, err))
			continue
		}

		rec := &catalog.Record{
			Filename:           util.GetFilename(path),
			Filepath:           path,
			Width:              info.Width,
			Height:             info.Height,
			Duration:           info.DurationSecs,
			PixelFormat:        info.PixelFormat,
			DisplayAspectRatio: info.DisplayAspectRatio,
			SampleAspectRatio:  info.SampleAspectRatio,
			ContainerFormat:    info.ContainerFormat,
			Bitrate:            info.BitrateKbps,
			Codec:              info.Codec,
			ContentHash:        info.ContentHash,
		}
		if _, err := c.InsertIfAbsent(rec, policyResolution); err != nil {
			return nil, err
		}

		if info.Height <= policyResolution {
			eligible = append(eligible, Candidate{InputPath: path, Info: info})
		}
	}

	return eligible, nil
}

// Reconstruct rebuilds the eligible list from the catalog when the
// filesystem scan found nothing new, preferring entries already
// `processing` (likely left by a crashed run) before `pending` ones,
// per spec.md §4.8 step 3's explicit ordering.
func Reconstruct(c *catalog.Catalog, pathPrefix string) ([]Candidate, error) {
	rows, err := c.QueryByPrefixAndStatus(pathPrefix, catalog.StatusProcessing, catalog.StatusPending)
	if err != nil {
		return nil, err
	}

	var out []Candidate
	for _, row := range rows {
		out = append(out, Candidate{InputPath: row.Filepath})
	}
	return out, nil
}

// TotalFrameCount pre-counts frames across every eligible candidate using
// the three-source fallback (§4.1), building the cumulative-frame vector
// the cross-file progress bar is positioned against (§4.8 step 4).
//
// A candidate whose frame count can't be read is skipped (§4.1, §7: a
// probe failure is fatal for that file only) rather than aborting the
// whole batch; it gets no entry in perFileBase and is omitted from the
// returned candidates, so perFileBase[i] is the base of kept[i] and the
// caller never tries to process the skipped file.
func TotalFrameCount(candidates []Candidate, rep reporter.Reporter) (total uint64, perFileBase []uint64, kept []Candidate, err error) {
	var running uint64
	for _, cand := range candidates {
		count, err := probe.FrameCount(cand.InputPath)
		if err != nil {
			rep.Warning(fmt.Sprintf("skipping %s: probe failed: %v", cand.InputPath, err))
			continue
		}
		perFileBase = append(perFileBase, running)
		kept = append(kept, cand)
		running += uint64(count)
	}
	return running, perFileBase, kept, nil
}
