package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	hypetrigger "github.com/hypetrigger-go/hypetrigger"
	"github.com/hypetrigger-go/hypetrigger/internal/classifier"
	"github.com/hypetrigger-go/hypetrigger/internal/logging"
	"github.com/hypetrigger-go/hypetrigger/internal/ocr"
	"github.com/hypetrigger-go/hypetrigger/internal/probe"
	"github.com/hypetrigger-go/hypetrigger/internal/reporter"
	"github.com/hypetrigger-go/hypetrigger/internal/util"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hypetrigger",
		Short: "Dispatch decoded video frames to pluggable trigger analyzers",
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the hypetrigger version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version)
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	var (
		decoderExe      string
		inputFmt        string
		fps             float64
		verbose         bool
		noLog           bool
		logDir          string
		testInput       bool
		enableOCR       bool
		ocrLanguage     string
		ocrDatapath     string
		classifierDir   string
		classifierClass int
	)

	cmd := &cobra.Command{
		Use:   "run [input]",
		Short: "Decode an input and dispatch sampled frames to triggers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.Setup(logDir, verbose, noLog)
			if err != nil {
				return err
			}
			defer logger.Close()

			rep := reporter.NewCompositeReporter(reporter.NewTerminalReporter())

			opts := []hypetrigger.Option{
				hypetrigger.SetDecoderExe(decoderExe),
				hypetrigger.SetFPS(fps),
				hypetrigger.WithReporter(rep),
				hypetrigger.WithLogger(logger),
			}

			var closers []func() error

			if enableOCR {
				cfg := ocr.DefaultConfig()
				if ocrLanguage != "" {
					cfg.Language = ocrLanguage
				}
				if ocrDatapath != "" {
					cfg.Datapath = ocrDatapath
				}
				t, err := ocr.New(cfg, ocr.WithCallback(func(r ocr.Result) {
					rep.OCRResult(reporter.OCRResult{Text: r.Text, Timestamp: r.Timestamp, FrameNum: r.FrameNum})
				}))
				if err != nil {
					return fmt.Errorf("initializing OCR trigger: %w", err)
				}
				closers = append(closers, t.Close)
				opts = append(opts, hypetrigger.AddTrigger(t))
			}

			if classifierDir != "" {
				t, err := classifier.New(classifierDir, classifierClass, classifier.WithCallback(func(r classifier.Result) {
					rep.ClassifierResult(reporter.ClassifierResult{ClassIndex: r.ClassIndex, Confidence: r.Confidence})
				}))
				if err != nil {
					return fmt.Errorf("initializing classifier trigger: %w", err)
				}
				closers = append(closers, func() error { t.Close(); return nil })
				opts = append(opts, hypetrigger.AddTrigger(t))
			}

			defer func() {
				for _, c := range closers {
					_ = c()
				}
			}()

			if testInput {
				opts = append(opts, hypetrigger.TestInput())
			} else {
				if len(args) == 0 {
					return fmt.Errorf("an input argument is required unless --test-input is set")
				}
				if inputFmt == "" && !util.FileExists(args[0]) {
					return fmt.Errorf("input file does not exist: %s", args[0])
				}
				if inputFmt == "" && !util.IsVideoFile(args[0]) {
					logger.Warn("input %s has an unrecognized extension, proceeding anyway", args[0])
				}
				opts = append(opts, hypetrigger.SetInput(args[0]))
				if inputFmt != "" {
					opts = append(opts, hypetrigger.SetInputFormat(inputFmt))
				}
				if n := probe.EstimateTotalFrames(args[0], fps); n > 0 {
					opts = append(opts, hypetrigger.WithEstimatedFrames(n))
				}
			}

			pipeline, err := hypetrigger.New(opts...)
			if err != nil {
				return err
			}

			handle, _, err := pipeline.RunAsync(context.Background())
			if err != nil {
				return err
			}
			stopOnSignal(handle, logger)

			outcome, err := handle.Wait()
			if err != nil {
				return err
			}

			fmt.Printf("delivered %d frames (stopped=%v)\n", outcome.FramesDelivered, outcome.Stopped)
			return nil
		},
	}

	cmd.Flags().StringVar(&decoderExe, "decoder", "ffmpeg", "decoder executable")
	cmd.Flags().StringVar(&inputFmt, "input-format", "", "explicit decoder input format (-f before -i)")
	cmd.Flags().Float64Var(&fps, "fps", 2.0, "sampling rate in frames per second")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging, including decoder stderr")
	cmd.Flags().BoolVar(&noLog, "no-log", false, "disable file logging")
	cmd.Flags().StringVar(&logDir, "log-dir", ".", "directory for run log files")
	cmd.Flags().BoolVar(&testInput, "test-input", false, "use the decoder's synthetic test source instead of a file input")
	cmd.Flags().BoolVar(&enableOCR, "ocr", false, "enable the OCR trigger")
	cmd.Flags().StringVar(&ocrLanguage, "ocr-language", "", "tesseract language code (default: eng)")
	cmd.Flags().StringVar(&ocrDatapath, "ocr-datapath", "", "directory holding tessdata language files")
	cmd.Flags().StringVar(&classifierDir, "classifier-model", "", "enable the classifier trigger with the model at this path")
	cmd.Flags().IntVar(&classifierClass, "classifier-classes", 1000, "number of output classes the classifier model produces")

	return cmd
}

// stopOnSignal arranges for the first SIGINT/SIGTERM to request a graceful
// pipeline stop (the decoder's "q\n" stop sequence, draining in-flight
// frames) and a second to hard-kill the decoder child, for a caller that
// ignores or can't honor the graceful request.
func stopOnSignal(h *hypetrigger.Handle, logger *logging.Logger) {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		if _, ok := <-sigCh; !ok {
			return
		}
		logger.Info("signal received, requesting graceful stop")
		if err := h.Stop(); err != nil {
			logger.Warn("graceful stop failed: %v", err)
		}

		if _, ok := <-sigCh; !ok {
			return
		}
		logger.Warn("second signal received, killing decoder")
		_ = h.Kill()
	}()
}
