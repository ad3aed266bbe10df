package reporter

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu       sync.Mutex
	progress *progressbar.ProgressBar
	cyan     *color.Color
	green    *color.Color
	yellow   *color.Color
	red      *color.Color
	magenta  *color.Color
	bold     *color.Color
}

// NewTerminalReporter creates a new terminal reporter.
func NewTerminalReporter() *TerminalReporter {
	return &TerminalReporter{
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
	}
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to ensure proper alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	fmt.Printf("  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) Initialization(summary InitializationSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("PIPELINE")
	r.printLabel(10, "Input:", summary.Input)
	r.printLabel(10, "Decoder:", summary.DecoderExe)
	r.printLabel(10, "FPS:", fmt.Sprintf("%.2f", summary.FPS))
	r.printLabel(10, "Triggers:", strings.Join(summary.Triggers, ", "))

	total := int64(-1)
	if summary.EstimatedFrames > 0 {
		total = summary.EstimatedFrames
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = progressbar.NewOptions64(
		total,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Dispatching [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) FrameProgress(progress FrameProgress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress == nil {
		return
	}
	_ = r.progress.Add64(1)
	r.progress.Describe(fmt.Sprintf("frame %d, t=%.2fs, %dx%d",
		progress.FrameNum, progress.Timestamp, progress.Width, progress.Height))
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
}

func (r *TerminalReporter) OCRResult(result OCRResult) {
	text := strings.TrimSpace(result.Text)
	if text == "" {
		return
	}
	fmt.Printf("\n  %s [%d, t=%.2fs] %s\n", r.magenta.Sprint("OCR"), result.FrameNum, result.Timestamp, text)
}

func (r *TerminalReporter) ClassifierResult(result ClassifierResult) {
	fmt.Printf("\n  %s [%d, t=%.2fs] class=%d confidence=%.3f\n",
		r.magenta.Sprint("CLASSIFIER"), result.FrameNum, result.Timestamp, result.ClassIndex, result.Confidence)
}

func (r *TerminalReporter) Warning(message string) {
	fmt.Println()
	_, _ = r.yellow.Printf("WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	_, _ = fmt.Fprintln(os.Stderr)
	_, _ = r.red.Fprintf(os.Stderr, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) Complete(outcome Outcome) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("RESULTS")
	r.printLabel(12, "Frames:", fmt.Sprintf("%d delivered", outcome.FramesDelivered))
	status := "completed"
	if outcome.Stopped {
		status = "stopped"
	}
	r.printLabel(12, "Status:", status)
	fmt.Printf("%s %s\n", r.green.Add(color.Bold).Sprint("✓"), r.bold.Sprint("done"))
}
