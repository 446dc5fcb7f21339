// Package stage implements the three subprocess wrappers (C3) described in
// spec.md §4.3: export-frames, upscale-frames, encode-segment. Each parses
// its external tool's stderr to emit progress ticks, but treats only the
// subprocess exit code as authoritative for success/failure (§4.3: "MUST
// NOT consider log parsing authoritative for completion").
package stage

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/five82/revup/internal/errors"
)

// TickCallback is invoked once per progress tick detected in the
// subprocess's stderr stream.
type TickCallback func()

// run launches name with args, scanning its stderr byte-by-byte (matching
// the teacher's internal/ffmpeg executor, which must scan byte-by-byte
// because progress lines are often \r-terminated, not \n-terminated).
// Every line containing token fires cb once. The subprocess's exit code is
// the sole success/failure signal.
func run(ctx context.Context, name string, args []string, token string, cb TickCallback) error {
	cmd := exec.CommandContext(ctx, name, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return errors.NewCommandStartError(name, err)
	}

	if err := cmd.Start(); err != nil {
		return errors.NewCommandStartError(name, err)
	}

	var stderrBuilder strings.Builder
	scanStderr(stderr, &stderrBuilder, token, cb)

	err = cmd.Wait()
	if err != nil {
		if ctx.Err() != nil {
			return errors.NewCancelledError()
		}
		return errors.WrapExecError(name, err, stderrBuilder.String())
	}
	return nil
}

// scanStderr reads r byte-by-byte, accumulating full lines and firing cb
// for every line containing token.
func scanStderr(r io.Reader, sink *strings.Builder, token string, cb TickCallback) {
	reader := bufio.NewReader(r)
	var line strings.Builder

	for {
		b, err := reader.ReadByte()
		if err != nil {
			break
		}
		sink.WriteByte(b)

		if b == '\r' || b == '\n' {
			text := line.String()
			line.Reset()
			if cb != nil && token != "" && strings.Contains(text, token) {
				cb()
			}
			continue
		}
		line.WriteByte(b)
	}

	// Flush a final unterminated line, in case the subprocess exits
	// mid-line (e.g. its last progress report has no trailing newline).
	if line.Len() > 0 && cb != nil && token != "" && strings.Contains(line.String(), token) {
		cb()
	}
}
