// Package decoder supervises the external video-decoder child process: it
// builds the argv, pipes stdio, exposes a graceful stop operation, and runs
// the stderr metadata parser and stdout frame dispatcher described in the
// core spec. It is grounded on the teacher's internal/ffmpeg.RunEncode, which
// spawns ffmpeg the same way (exec.CommandContext, piped stderr, byte-wise
// line reconstruction).
package decoder

import (
	"context"
	"io"
	"os/exec"
	"strconv"

	hterrors "github.com/hypetrigger-go/hypetrigger/internal/errors"
)

// Args holds the semantic decoder invocation parameters named in §6.1.
type Args struct {
	DecoderExe  string
	InputFormat string // optional
	Input       string
	FPS         float64
}

// BuildArgv builds the decoder argv with exactly the semantic arguments
// named in §6.1, in order.
func BuildArgv(a Args) []string {
	args := []string{"-hwaccel", "auto"}
	if a.InputFormat != "" {
		args = append(args, "-f", a.InputFormat)
	}
	args = append(args, "-i", a.Input)
	args = append(args, "-filter:v", "fps="+strconv.FormatFloat(a.FPS, 'f', -1, 64))
	args = append(args, "-vsync", "drop")
	args = append(args, "-f", "rawvideo")
	args = append(args, "-pix_fmt", "rgb24")
	args = append(args, "-an")
	args = append(args, "-y")
	args = append(args, "pipe:1")
	return args
}

// StopSequence is the byte sequence written to the decoder's stdin to
// request a clean exit (§6.2).
var StopSequence = []byte("q\n")

// Process wraps a running decoder child process and its three piped stdio
// streams.
type Process struct {
	cmd    *exec.Cmd
	Stdin  io.WriteCloser
	Stdout io.ReadCloser
	Stderr io.ReadCloser
}

// Start spawns the decoder with the given context (so cancellation kills the
// process, mirroring the teacher's exec.CommandContext usage) and argv.
func Start(ctx context.Context, a Args) (*Process, error) {
	argv := BuildArgv(a)
	cmd := exec.CommandContext(ctx, a.DecoderExe, argv...)
	applyPlatformAttrs(cmd)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, hterrors.NewIOError("failed to open decoder stdin pipe", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, hterrors.NewIOError("failed to open decoder stdout pipe", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, hterrors.NewIOError("failed to open decoder stderr pipe", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, hterrors.WrapExecError(a.DecoderExe, err, "")
	}

	return &Process{cmd: cmd, Stdin: stdin, Stdout: stdout, Stderr: stderr}, nil
}

// Stop writes the graceful-exit byte sequence to the child's stdin. It does
// not wait for the child to exit; callers observe that via Wait.
func (p *Process) Stop() error {
	_, err := p.Stdin.Write(StopSequence)
	return err
}

// Kill forcibly terminates the child process: the hard counterpart to Stop
// (the CLI calls it on a second interrupt signal).
func (p *Process) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

// Wait blocks until the child process exits.
func (p *Process) Wait() error {
	return p.cmd.Wait()
}
