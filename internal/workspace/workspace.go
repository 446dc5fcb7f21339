// Package workspace models the scratch directory tree (spec.md §3) as an
// explicit value threaded through components, rather than the teacher's
// ambient globals — per spec.md §9 Design Notes ("Global scratch root").
package workspace

import (
	"fmt"
	"path/filepath"
)

// Workspace is the working root for one run's scratch state (§3 "Scratch
// layout"). The root itself is platform-conditional (build-tagged
// defaultRoot, mirroring the original's temp/ vs /dev/shm/ split) but every
// path below it is computed the same way on every platform.
type Workspace struct {
	Root string
}

// New returns a Workspace rooted at the platform default.
func New() *Workspace {
	return &Workspace{Root: defaultRoot()}
}

// NewAt returns a Workspace rooted at an explicit path, for tests.
func NewAt(root string) *Workspace {
	return &Workspace{Root: root}
}

// TmpFramesDir is tmp_frames/<i>/, the raw PNGs for segment i (§3).
func (w *Workspace) TmpFramesDir(index uint32) string {
	return filepath.Join(w.Root, "tmp_frames", fmt.Sprintf("%d", index))
}

// TmpFramePattern is the ffmpeg output pattern for segment i's raw frames.
func (w *Workspace) TmpFramePattern(index uint32) string {
	return filepath.Join(w.TmpFramesDir(index), "frame%08d.png")
}

// OutFramesDir is out_frames/<i>/, the upscaled PNGs for segment i (§3).
func (w *Workspace) OutFramesDir(index uint32) string {
	return filepath.Join(w.Root, "out_frames", fmt.Sprintf("%d", index))
}

// OutFramePattern is the encoder input pattern for segment i's upscaled frames.
func (w *Workspace) OutFramePattern(index uint32) string {
	return filepath.Join(w.OutFramesDir(index), "frame%08d.png")
}

// VideoPartsDir is video_parts/, holding each segment's encoded output.
func (w *Workspace) VideoPartsDir() string {
	return filepath.Join(w.Root, "video_parts")
}

// VideoPartPath is video_parts/<i>.<ext>, the encoded form of segment i (§3).
func (w *Workspace) VideoPartPath(index uint32, ext string) string {
	return filepath.Join(w.VideoPartsDir(), fmt.Sprintf("%d.%s", index, ext))
}

// ArgsPath is args.temp, the serialized run arguments of the in-flight run (§3).
func (w *Workspace) ArgsPath() string {
	return filepath.Join(w.Root, "args.temp")
}

// PartsTxtPath is parts.txt, the concat list for the finalizer (§3).
func (w *Workspace) PartsTxtPath() string {
	return filepath.Join(w.Root, "parts.txt")
}

// ConcatOutputPath is the finalizer's intermediate concatenated file, before
// non-video streams are grafted back on (§4.6).
func (w *Workspace) ConcatOutputPath(ext string) string {
	return filepath.Join(w.Root, fmt.Sprintf("concat.%s", ext))
}
