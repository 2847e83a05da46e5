package encode

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
)

// Command is an external program and its arguments.
type Command struct {
	Binary string
	Args   []string
}

func (c Command) String() string {
	return fmt.Sprintf("%s %v", c.Binary, c.Args)
}

// Ffmpeg describes an ffmpeg invocation that reads raw frames from stdin.
type Ffmpeg struct {
	Binary       string
	FPS          int
	Width        int
	Height       int
	InputFormat  string
	Codec        string
	OutputFormat string
	Output       string
	Overwrite    bool
}

// NewFfmpeg creates an instance of Ffmpeg encoding BGRA frames to an H.264
// output.mp4.
func NewFfmpeg(fps, width, height int) *Ffmpeg {
	f := new(Ffmpeg)
	f.Binary = "ffmpeg"
	f.FPS = fps
	f.Width = width
	f.Height = height
	f.InputFormat = "bgra"
	f.Codec = "libx264"
	f.OutputFormat = "yuv420p"
	f.Output = "output.mp4"
	f.Overwrite = true

	return f
}

// Args builds the ffmpeg argument vector.
func (f *Ffmpeg) Args() []string {
	args := make([]string, 0, 20)
	if f.Overwrite {
		args = append(args, "-y")
	}
	args = append(args,
		"-an",
		"-f", "rawvideo",
		"-pix_fmt", f.InputFormat,
		"-video_size", fmt.Sprintf("%dx%d", f.Width, f.Height),
		"-framerate", strconv.Itoa(f.FPS),
		"-i", "-",
		"-c:v", f.Codec,
		"-pix_fmt", f.OutputFormat,
		f.Output,
	)
	return args
}

// Command returns the invocation for Spawn.
func (f *Ffmpeg) Command() Command {
	return Command{Binary: f.Binary, Args: f.Args()}
}

// Probe checks that binary runs and identifies itself as ffmpeg.
func Probe(binary string) error {
	cmd := exec.Command(binary, "-version")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSpawn, binary, err)
	}
	if !bytes.Contains(stdout.Bytes(), []byte("ffmpeg version")) {
		return fmt.Errorf("%s does not look like ffmpeg", binary)
	}
	return nil
}
