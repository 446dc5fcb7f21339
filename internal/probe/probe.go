// Package probe implements the Probe component (C1): it invokes the
// external transcoder's probe mode (ffprobe) and answers the questions
// spec.md §4.1 requires.
package probe

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	revuperrors "github.com/five82/revup/internal/errors"
)

// Info is the structured record returned by a full probe, feeding the
// catalog record described in spec.md §3.
type Info struct {
	Width              int64
	Height             int64
	DurationSecs       float64
	PixelFormat        string
	DisplayAspectRatio string
	SampleAspectRatio  string
	ContainerFormat    string
	BitrateKbps        int64
	Codec              string
	BinDataPresent     bool
	FrameCount         uint32
	FrameRate          float32
	ContentHash        string
}

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration   string `json:"duration"`
	BitRate    string `json:"bit_rate"`
	FormatName string `json:"format_name"`
}

type ffprobeStream struct {
	CodecType          string            `json:"codec_type"`
	CodecName          string            `json:"codec_name"`
	Width              int64             `json:"width"`
	Height             int64             `json:"height"`
	PixFmt             string            `json:"pix_fmt"`
	NbFrames           string            `json:"nb_frames"`
	AvgFrameRate       string            `json:"avg_frame_rate"`
	DisplayAspectRatio string            `json:"display_aspect_ratio"`
	SampleAspectRatio  string            `json:"sample_aspect_ratio"`
	Tags               map[string]string `json:"tags"`
}

// run executes ffprobe requesting per-stream metadata, container format,
// and tags (the closest a JSON-mode probe gets to a "stream data hash" —
// Full below re-serializes the parsed output and hashes it), per spec.md §4.1.
func run(path string) (*ffprobeOutput, error) {
	cmd := exec.Command("ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, revuperrors.NewProbeError(path, err)
	}

	var parsed ffprobeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, revuperrors.NewProbeError(path, err)
	}
	return &parsed, nil
}

func firstVideoStream(out *ffprobeOutput) *ffprobeStream {
	for i := range out.Streams {
		if out.Streams[i].CodecType == "video" {
			return &out.Streams[i]
		}
	}
	return nil
}

// FrameCount tries three sources in order and returns the first nonzero,
// per spec.md §4.1: (a) stream nb_frames; (b) tag NUMBER_OF_FRAMES-eng;
// (c) duration * 25 (a conscious pessimism to avoid returning 0).
func FrameCount(path string) (uint32, error) {
	out, err := run(path)
	if err != nil {
		return 0, err
	}
	return frameCountFromOutput(out), nil
}

func frameCountFromOutput(out *ffprobeOutput) uint32 {
	video := firstVideoStream(out)
	if video == nil {
		return 0
	}

	if video.NbFrames != "" {
		if n, err := strconv.ParseUint(video.NbFrames, 10, 32); err == nil && n != 0 {
			return uint32(n)
		}
	}

	if video.Tags != nil {
		if tag, ok := video.Tags["NUMBER_OF_FRAMES-eng"]; ok {
			if n, err := strconv.ParseUint(tag, 10, 32); err == nil && n != 0 {
				return uint32(n)
			}
		}
	}

	if out.Format.Duration != "" {
		if d, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
			return uint32(d * 25)
		}
	}

	return 0
}

// FrameRate parses avg_frame_rate, given as "num/den", per spec.md §4.1.
func FrameRate(path string) (float32, error) {
	out, err := run(path)
	if err != nil {
		return 0, err
	}
	video := firstVideoStream(out)
	if video == nil {
		return 0, revuperrors.NewProbeError(path, fmt.Errorf("no video stream found"))
	}
	return parseFrameRate(video.AvgFrameRate), nil
}

func parseFrameRate(raw string) float32 {
	parts := strings.SplitN(raw, "/", 2)
	if len(parts) != 2 {
		if v, err := strconv.ParseFloat(raw, 32); err == nil {
			return float32(v)
		}
		return 0
	}
	num, errNum := strconv.ParseFloat(parts[0], 64)
	den, errDen := strconv.ParseFloat(parts[1], 64)
	if errNum != nil || errDen != nil || den == 0 {
		return 0
	}
	return float32(num / den)
}

// DisplayAspectRatio returns the source's display aspect ratio. "N/A" and
// "0" are both interpreted as "unknown" by the finalizer (C6), per
// spec.md §4.1.
func DisplayAspectRatio(path string) (string, error) {
	out, err := run(path)
	if err != nil {
		return "", err
	}
	video := firstVideoStream(out)
	if video == nil || video.DisplayAspectRatio == "" {
		return "N/A", nil
	}
	return video.DisplayAspectRatio, nil
}

// BinDataPresent reports whether any data-stream index exists, per
// spec.md §4.1.
func BinDataPresent(path string) (bool, error) {
	out, err := run(path)
	if err != nil {
		return false, err
	}
	for _, s := range out.Streams {
		if s.CodecType == "data" {
			return true, nil
		}
	}
	return false, nil
}

// Height returns the source's video stream height, per spec.md §4.1.
func Height(path string) (int64, error) {
	out, err := run(path)
	if err != nil {
		return 0, err
	}
	video := firstVideoStream(out)
	if video == nil {
		return 0, revuperrors.NewProbeError(path, fmt.Errorf("no video stream found"))
	}
	return video.Height, nil
}

// Full performs one ffprobe invocation and answers every question in
// spec.md §4.1 plus the additional catalog fields from §3, to avoid
// re-probing the same file for each attribute.
func Full(path string) (*Info, error) {
	out, err := run(path)
	if err != nil {
		return nil, err
	}

	video := firstVideoStream(out)
	if video == nil {
		return nil, revuperrors.NewProbeError(path, fmt.Errorf("no video stream found"))
	}

	info := &Info{
		Width:              video.Width,
		Height:             video.Height,
		PixelFormat:        video.PixFmt,
		DisplayAspectRatio: video.DisplayAspectRatio,
		SampleAspectRatio:  video.SampleAspectRatio,
		ContainerFormat:    out.Format.FormatName,
		Codec:              video.CodecName,
		FrameCount:         frameCountFromOutput(out),
		FrameRate:          parseFrameRate(video.AvgFrameRate),
	}
	if info.DisplayAspectRatio == "" {
		info.DisplayAspectRatio = "N/A"
	}

	if out.Format.Duration != "" {
		if d, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
			info.DurationSecs = d
		}
	}
	if out.Format.BitRate != "" {
		if b, err := strconv.ParseInt(out.Format.BitRate, 10, 64); err == nil {
			info.BitrateKbps = b / 1000
		}
	}
	for _, s := range out.Streams {
		if s.CodecType == "data" {
			info.BinDataPresent = true
			break
		}
	}

	raw, _ := json.Marshal(out)
	sum := sha256.Sum256(raw)
	info.ContentHash = hex.EncodeToString(sum[:])

	return info, nil
}

// FrameCountOfSegment probes an already-encoded segment file, falling back
// to the tag-based count before giving up (spec.md §4.5 edge case: "when
// the scanning probe returns 0 frames for a supposedly complete segment
// file, it falls back to the tag-based count before declaring
// corruption").
func FrameCountOfSegment(path string) (uint32, error) {
	out, err := run(path)
	if err != nil {
		return 0, err
	}
	video := firstVideoStream(out)
	if video == nil {
		return 0, nil
	}
	if video.NbFrames != "" {
		if n, err := strconv.ParseUint(video.NbFrames, 10, 32); err == nil && n != 0 {
			return uint32(n), nil
		}
	}
	if video.Tags != nil {
		if tag, ok := video.Tags["NUMBER_OF_FRAMES-eng"]; ok {
			if n, err := strconv.ParseUint(tag, 10, 32); err == nil {
				return uint32(n), nil
			}
		}
	}
	return 0, nil
}
