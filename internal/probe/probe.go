// Package probe shells out to ffprobe to learn a source's duration ahead of
// a run, so the CLI can turn the pipeline's fixed sampling rate into a rough
// total-frame estimate for progress reporting. It is grounded on the
// teacher's internal/ffprobe package, trimmed to the one fact this core
// actually needs: duration is relevant here, the encoding-oriented HDR,
// audio-channel, and codec-name lookups the teacher also exposed are not.
package probe

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration runs ffprobe against inputPath and returns the container
// duration in seconds.
func Duration(inputPath string) (float64, error) {
	cmd := exec.Command("ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		inputPath,
	)

	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var result probeOutput
	if err := json.Unmarshal(output, &result); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	d, err := strconv.ParseFloat(result.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	return d, nil
}

// EstimateTotalFrames returns a rough total-frame count for a run sampling
// at fps frames per second, or 0 if the duration can't be determined (the
// caller should fall back to an indeterminate progress indicator).
func EstimateTotalFrames(inputPath string, fps float64) int64 {
	d, err := Duration(inputPath)
	if err != nil || d <= 0 || fps <= 0 {
		return 0
	}
	return int64(d * fps)
}
