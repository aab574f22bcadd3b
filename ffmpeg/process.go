package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/gogpu/kantera"
)

// stderrTail bounds how much of a failing child's stderr ends up in an error.
const stderrTail = 512

// process is a running child with its stderr captured.
type process struct {
	name   string
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr bytes.Buffer
}

func startProcess(ctx context.Context, bin string, args []string, in, out bool) (*process, error) {
	p := &process{name: bin, cmd: exec.CommandContext(ctx, bin, args...)}
	p.cmd.Stderr = &p.stderr
	var err error
	if in {
		if p.stdin, err = p.cmd.StdinPipe(); err != nil {
			return nil, p.wrap(err)
		}
	}
	if out {
		if p.stdout, err = p.cmd.StdoutPipe(); err != nil {
			return nil, p.wrap(err)
		}
	}
	kantera.Logger().Debug("ffmpeg: start", "bin", bin, "args", strings.Join(args, " "))
	if err := p.cmd.Start(); err != nil {
		return nil, p.wrap(err)
	}
	return p, nil
}

// wait closes stdin if it is open and reaps the child.
func (p *process) wait() error {
	if p.stdin != nil {
		p.stdin.Close()
	}
	if err := p.cmd.Wait(); err != nil {
		return p.wrap(err)
	}
	return nil
}

// kill stops the child and reaps it, ignoring its exit status.
func (p *process) kill() {
	if p.stdin != nil {
		p.stdin.Close()
	}
	if p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
	p.cmd.Wait()
}

func (p *process) wrap(err error) error {
	msg := strings.TrimSpace(p.stderr.String())
	if len(msg) > stderrTail {
		msg = "..." + msg[len(msg)-stderrTail:]
	}
	if msg == "" {
		return fmt.Errorf("ffmpeg: %s: %w", p.name, err)
	}
	return fmt.Errorf("ffmpeg: %s: %w: %s", p.name, err, msg)
}

// output runs a child to completion and returns its stdout.
func output(ctx context.Context, bin string, args []string) ([]byte, error) {
	p, err := startProcess(ctx, bin, args, false, true)
	if err != nil {
		return nil, err
	}
	data, rerr := io.ReadAll(p.stdout)
	if err := p.wait(); err != nil {
		return nil, err
	}
	if rerr != nil {
		return nil, p.wrap(rerr)
	}
	return data, nil
}
