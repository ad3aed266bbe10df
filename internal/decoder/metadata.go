package decoder

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	hterrors "github.com/hypetrigger-go/hypetrigger/internal/errors"
)

type parserState int

const (
	statePrelude parserState = iota
	stateInsideOutputSection
	stateDone
)

var videoStreamRegex = regexp.MustCompile(`^\s*Stream .* Video: .* (\d+)x(\d+),? `)

// Geometry is the (width, height) pair published once the parser locates the
// decoder's output stream line.
type Geometry struct {
	Width  int
	Height int
}

// ParseStderr runs the line-oriented state machine of §4.6 over the
// decoder's stderr stream. It publishes the first discovered Geometry onto
// geometryCh (a single-value buffered channel) exactly once, then continues
// draining lines — matched or not — to logLine until stderr closes. A
// matched line whose dimensions fail to parse is reported to logLine as a
// parse error and is not fatal. This
// mirrors the teacher's byte-wise stderr reader in internal/ffmpeg.RunEncode,
// which also reconstructs lines by hand rather than using bufio.Scanner, so
// that partial lines ending in bare \r (ffmpeg's progress-line convention)
// are still captured.
func ParseStderr(stderr io.Reader, geometryCh chan<- Geometry, logLine func(string)) {
	defer close(geometryCh)

	state := statePrelude
	reader := bufio.NewReader(stderr)
	var lineBuf strings.Builder

	flush := func() {
		line := lineBuf.String()
		lineBuf.Reset()
		if line == "" {
			return
		}
		if logLine != nil {
			logLine(line)
		}

		switch state {
		case statePrelude:
			if strings.HasPrefix(line, "Output #") {
				state = stateInsideOutputSection
			}
		case stateInsideOutputSection:
			if m := videoStreamRegex.FindStringSubmatch(line); m != nil {
				w, werr := strconv.Atoi(m[1])
				h, herr := strconv.Atoi(m[2])
				if werr == nil && herr == nil {
					geometryCh <- Geometry{Width: w, Height: h}
					state = stateDone
				} else if logLine != nil {
					perr := werr
					if perr == nil {
						perr = herr
					}
					logLine(hterrors.NewParseError("failed to parse output geometry", perr).Error())
				}
			}
		case stateDone:
			// Nothing further to extract; lines still forwarded to logLine above.
		}
	}

	for {
		b, err := reader.ReadByte()
		if err != nil {
			flush()
			return
		}
		if b == '\r' || b == '\n' {
			flush()
			continue
		}
		lineBuf.WriteByte(b)
	}
}
