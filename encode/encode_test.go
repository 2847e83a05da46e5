package encode

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shell(t *testing.T, script string) Command {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return Command{Binary: sh, Args: []string{"-c", script}}
}

func TestFfmpegArgs(t *testing.T) {
	f := NewFfmpeg(60, 1920, 1080)
	want := []string{
		"-y", "-an",
		"-f", "rawvideo",
		"-pix_fmt", "bgra",
		"-video_size", "1920x1080",
		"-framerate", "60",
		"-i", "-",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"output.mp4",
	}
	assert.Equal(t, want, f.Args())

	cmd := f.Command()
	assert.Equal(t, "ffmpeg", cmd.Binary)
	assert.Equal(t, want, cmd.Args)
}

func TestFfmpegArgsNoOverwrite(t *testing.T) {
	f := NewFfmpeg(30, 640, 480)
	f.Overwrite = false
	f.InputFormat = "rgba"
	f.Output = "morph.mkv"

	args := f.Args()
	assert.NotContains(t, args, "-y")
	assert.Equal(t, "morph.mkv", args[len(args)-1])
	assert.Contains(t, args, "640x480")
	assert.Contains(t, args, "rgba")
}

func TestSpawnMissingBinary(t *testing.T) {
	_, err := Spawn(Command{Binary: "/nonexistent/ffmpeg"}, Options{})
	require.ErrorIs(t, err, ErrSpawn)
	assert.Contains(t, err.Error(), "/nonexistent/ffmpeg")
}

func TestProbeMissingBinary(t *testing.T) {
	err := Probe("/nonexistent/ffmpeg")
	assert.ErrorIs(t, err, ErrSpawn)
}

func TestProcessStreamsAllBytes(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frames.raw")
	p, err := Spawn(shell(t, "cat > "+out), Options{BufferSize: 16})
	require.NoError(t, err)

	frame := bytes.Repeat([]byte{1, 2, 3, 4}, 100)
	for i := 0; i < 5; i++ {
		n, err := p.Write(frame)
		require.NoError(t, err)
		assert.Equal(t, len(frame), n)
	}
	require.NoError(t, p.Close())
	require.NoError(t, p.Wait())

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat(frame, 5), got)
	assert.EqualValues(t, 5*len(frame), p.Written())
}

func TestProcessExitErrorCarriesStderr(t *testing.T) {
	p, err := Spawn(shell(t, "cat > /dev/null; echo 'bad codec' >&2; exit 3"), Options{})
	require.NoError(t, err)

	_, err = p.Write([]byte("frame"))
	require.NoError(t, err)
	require.NoError(t, p.Close())

	err = p.Wait()
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Contains(t, exitErr.Stderr, "bad codec")
	assert.Contains(t, err.Error(), "status 3: bad codec")
}

func TestProcessWriteAfterEncoderDied(t *testing.T) {
	p, err := Spawn(shell(t, "exit 0"), Options{BufferSize: 1})
	require.NoError(t, err)

	// Give the child time to exit and close its end of the pipe.
	time.Sleep(200 * time.Millisecond)

	frame := make([]byte, 1<<20)
	var werr error
	for i := 0; i < 8 && werr == nil; i++ {
		_, werr = p.Write(frame)
	}
	require.Error(t, werr)
	assert.True(t, errors.Is(werr, syscall.EPIPE), "got %v", werr)
	p.Wait()
}

func TestProcessWriteTimeout(t *testing.T) {
	p, err := Spawn(shell(t, "sleep 5"), Options{BufferSize: 1, WriteTimeout: 50 * time.Millisecond})
	require.NoError(t, err)
	defer p.cmd.Process.Kill()

	// Larger than any pipe buffer, and nobody reads.
	frame := make([]byte, 4<<20)
	_, err = p.Write(frame)
	assert.ErrorIs(t, err, ErrWriteTimeout)
}

func TestProcessWaitKillsStalledEncoder(t *testing.T) {
	p, err := Spawn(shell(t, "exec sleep 8"), Options{BufferSize: 1, WriteTimeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = p.Write(make([]byte, 4<<20))
	require.ErrorIs(t, err, ErrWriteTimeout)

	start := time.Now()
	err = p.Wait()
	assert.Less(t, time.Since(start), 2*time.Second)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.True(t, exitErr.Killed)
	assert.Contains(t, err.Error(), "killed")
}

func TestProcessWaitReportsFlushFailure(t *testing.T) {
	p, err := Spawn(shell(t, "exit 0"), Options{})
	require.NoError(t, err)
	time.Sleep(200 * time.Millisecond)

	// Fits in the buffer, so only the flush inside Wait sees the dead reader.
	_, err = p.Write([]byte("frame"))
	require.NoError(t, err)

	err = p.Wait()
	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.EPIPE)
	assert.Contains(t, err.Error(), "closing encoder input")
}

func TestProcessWriteAfterClose(t *testing.T) {
	p, err := Spawn(shell(t, "cat > /dev/null"), Options{})
	require.NoError(t, err)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	_, err = p.Write([]byte{0})
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, p.Wait())
}
