package reporter

// CompositeReporter fans out events to multiple reporters.
type CompositeReporter struct {
	reporters []Reporter
}

// NewCompositeReporter creates a composite reporter.
func NewCompositeReporter(reporters ...Reporter) *CompositeReporter {
	return &CompositeReporter{reporters: reporters}
}

func (c *CompositeReporter) Initialization(summary InitializationSummary) {
	for _, r := range c.reporters {
		r.Initialization(summary)
	}
}

func (c *CompositeReporter) FrameProgress(progress FrameProgress) {
	for _, r := range c.reporters {
		r.FrameProgress(progress)
	}
}

func (c *CompositeReporter) OCRResult(result OCRResult) {
	for _, r := range c.reporters {
		r.OCRResult(result)
	}
}

func (c *CompositeReporter) ClassifierResult(result ClassifierResult) {
	for _, r := range c.reporters {
		r.ClassifierResult(result)
	}
}

func (c *CompositeReporter) Warning(message string) {
	for _, r := range c.reporters {
		r.Warning(message)
	}
}

func (c *CompositeReporter) Error(err ReporterError) {
	for _, r := range c.reporters {
		r.Error(err)
	}
}

func (c *CompositeReporter) Complete(outcome Outcome) {
	for _, r := range c.reporters {
		r.Complete(outcome)
	}
}
