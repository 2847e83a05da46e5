package encode

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
)

// Options tune a spawned encoder.
type Options struct {
	// BufferSize of the writer in front of the encoder's stdin. Zero uses the
	// bufio default.
	BufferSize int
	// WriteTimeout bounds every Write and the final flush. Zero waits forever.
	WriteTimeout time.Duration
	Logger       *bslogger.Logger
}

// Process is a running encoder. Bytes written to it are fed to the encoder's
// standard input in order. Process is not safe for concurrent use.
type Process struct {
	cmd     *exec.Cmd
	pipe    *os.File
	w       *bufio.Writer
	stderr  bytes.Buffer
	timeout time.Duration
	logger  *bslogger.Logger
	closed  bool
	stalled bool
	written int64
}

// waitDelay bounds how long Wait keeps reading stderr after the encoder has
// exited, in case a descendant still holds the pipe open.
const waitDelay = 2 * time.Second

// Spawn starts the encoder with a pipe on its standard input. Standard error
// is captured for diagnostics; standard output is discarded.
func Spawn(c Command, opts Options) (*Process, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpawn, err)
	}

	p := new(Process)
	p.cmd = exec.Command(c.Binary, c.Args...)
	p.cmd.Stdin = r
	p.cmd.Stderr = &p.stderr
	p.cmd.WaitDelay = waitDelay
	p.pipe = w
	p.timeout = opts.WriteTimeout
	p.logger = opts.Logger
	if opts.BufferSize > 0 {
		p.w = bufio.NewWriterSize(w, opts.BufferSize)
	} else {
		p.w = bufio.NewWriter(w)
	}

	if err := p.cmd.Start(); err != nil {
		r.Close()
		w.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrSpawn, c.Binary, err)
	}
	// The child owns the read end now.
	r.Close()

	if p.logger != nil {
		p.logger.Debugf("Started encoder pid %d: %s", p.cmd.Process.Pid, c)
	}
	return p, nil
}

func (p *Process) deadline() {
	if p.timeout > 0 {
		p.pipe.SetWriteDeadline(time.Now().Add(p.timeout))
	}
}

func (p *Process) wrap(err error) error {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		p.stalled = true
		return fmt.Errorf("%w after %s", ErrWriteTimeout, p.timeout)
	}
	return err
}

// Write feeds b to the encoder. It either writes all of b or returns an error.
func (p *Process) Write(b []byte) (int, error) {
	if p.closed {
		return 0, ErrClosed
	}

	p.deadline()
	n, err := p.w.Write(b)
	p.written += int64(n)
	if err == nil && n < len(b) {
		err = fmt.Errorf("short write to encoder: %d of %d bytes", n, len(b))
	}
	return n, p.wrap(err)
}

// Written reports the number of bytes accepted so far.
func (p *Process) Written() int64 {
	return p.written
}

// Close flushes buffered bytes and closes the encoder's standard input, which
// signals end of stream. It is safe to call more than once. After a write has
// timed out the buffered bytes are dropped rather than flushed.
func (p *Process) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	var err error
	if !p.stalled {
		p.deadline()
		err = p.w.Flush()
	}
	if cerr := p.pipe.Close(); err == nil {
		err = cerr
	}
	return p.wrap(err)
}

// Kill stops the encoder without waiting for it to drain its input.
func (p *Process) Kill() error {
	if p.cmd.ProcessState != nil {
		return nil
	}
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("killing encoder: %w", err)
	}
	return nil
}

// Wait closes the input if needed and blocks until the encoder exits. A
// non-zero exit is reported as an *ExitError with the captured stderr. An
// encoder that stopped reading before a write deadline is killed first, so
// Wait does not block on it.
func (p *Process) Wait() error {
	var closeErr, killErr error
	if !p.closed {
		closeErr = p.Close()
	}
	if p.stalled {
		killErr = p.Kill()
	}

	err := p.cmd.Wait()
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		err = &ExitError{Code: exitErr.ExitCode(), Stderr: p.stderr.String(), Killed: p.stalled}
	case err != nil:
		err = fmt.Errorf("waiting for encoder: %w", err)
	}
	if closeErr != nil {
		err = errors.Join(fmt.Errorf("closing encoder input: %w", closeErr), err)
	}
	if killErr != nil {
		err = errors.Join(killErr, err)
	}
	if err != nil {
		return err
	}

	if p.logger != nil {
		p.logger.Debugf("Encoder pid %d exited after %d bytes", p.cmd.Process.Pid, p.written)
	}
	return nil
}
