package reporter

import "testing"

type recordingReporter struct {
	calls []string
}

func (r *recordingReporter) Initialization(InitializationSummary) { r.calls = append(r.calls, "Initialization") }
func (r *recordingReporter) FrameProgress(FrameProgress)          { r.calls = append(r.calls, "FrameProgress") }
func (r *recordingReporter) OCRResult(OCRResult)                  { r.calls = append(r.calls, "OCRResult") }
func (r *recordingReporter) ClassifierResult(ClassifierResult)    { r.calls = append(r.calls, "ClassifierResult") }
func (r *recordingReporter) Warning(string)                       { r.calls = append(r.calls, "Warning") }
func (r *recordingReporter) Error(ReporterError)                   { r.calls = append(r.calls, "Error") }
func (r *recordingReporter) Complete(Outcome)                      { r.calls = append(r.calls, "Complete") }

func TestCompositeReporterFansOutToAll(t *testing.T) {
	a := &recordingReporter{}
	b := &recordingReporter{}
	c := NewCompositeReporter(a, b)

	c.Initialization(InitializationSummary{})
	c.FrameProgress(FrameProgress{})
	c.OCRResult(OCRResult{})
	c.ClassifierResult(ClassifierResult{})
	c.Warning("test")
	c.Error(ReporterError{})
	c.Complete(Outcome{})

	want := []string{"Initialization", "FrameProgress", "OCRResult", "ClassifierResult", "Warning", "Error", "Complete"}
	for _, r := range []*recordingReporter{a, b} {
		if len(r.calls) != len(want) {
			t.Fatalf("got %d calls, want %d: %v", len(r.calls), len(want), r.calls)
		}
		for i, call := range r.calls {
			if call != want[i] {
				t.Errorf("call %d = %s, want %s", i, call, want[i])
			}
		}
	}
}

func TestCompositeReporterEmpty(t *testing.T) {
	c := NewCompositeReporter()
	// Must not panic with zero reporters.
	c.Initialization(InitializationSummary{})
	c.Complete(Outcome{})
}

func TestNullReporterDoesNothing(t *testing.T) {
	var r Reporter = NullReporter{}
	r.Initialization(InitializationSummary{Input: "x"})
	r.FrameProgress(FrameProgress{FrameNum: 1})
	r.OCRResult(OCRResult{Text: "hi"})
	r.ClassifierResult(ClassifierResult{ClassIndex: 2})
	r.Warning("w")
	r.Error(ReporterError{Title: "t"})
	r.Complete(Outcome{FramesDelivered: 5})
}
