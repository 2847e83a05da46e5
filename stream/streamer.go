package stream

import (
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/matt-g-everett/curvemorph/encode"
	"github.com/matt-g-everett/curvemorph/render"
)

type spawnFunc func(encode.Command, encode.Options) (Sink, error)

func spawnProcess(c encode.Command, opts encode.Options) (Sink, error) {
	return encode.Spawn(c, opts)
}

// Streamer that renders a curve morph and streams it into ffmpeg.
type Streamer struct {
	config    Config
	producer  *Producer
	ffmpeg    *encode.Ffmpeg
	logger    *bslogger.Logger
	spawn     spawnFunc
	probe     func(string) error
	frameSize int
}

// NewStreamer creates an instance of a Streamer from a verified Config.
func NewStreamer(config Config, publisher Publisher, logger *bslogger.Logger) (*Streamer, error) {
	if err := config.Verify(); err != nil {
		return nil, err
	}
	easing, err := config.Easing()
	if err != nil {
		return nil, err
	}
	style, blend, err := config.Style()
	if err != nil {
		return nil, err
	}
	format, err := config.PixelFormat()
	if err != nil {
		return nil, err
	}

	s := new(Streamer)
	s.config = config
	s.logger = logger
	s.ffmpeg = config.Ffmpeg()
	s.spawn = spawnProcess
	s.probe = encode.Probe
	s.frameSize = render.FrameSize(config.Video.Width, config.Video.Height)

	animation := NewMorph(config.Curves, easing, style, blend)
	canvas := render.NewCanvas(config.Video.Width, config.Video.Height, format)
	s.producer = NewProducer(animation, canvas, logger).WithPublisher(publisher, config.Events.Every)

	return s, nil
}

// RunID identifies the run in published events.
func (s *Streamer) RunID() string {
	return s.producer.RunID()
}

// Run spawns the encoder, streams every frame to it and waits for the output
// to be written. It returns the number of frames emitted.
func (s *Streamer) Run() (int, error) {
	frames := s.config.Frames()
	if s.config.Encoder.Probe {
		if err := s.probe(s.ffmpeg.Binary); err != nil {
			return 0, &StageError{Stage: StageSpawn, Err: err}
		}
	}

	cmd := s.ffmpeg.Command()
	sink, err := s.spawn(cmd, encode.Options{
		BufferSize:   s.config.Encoder.BufferSize,
		WriteTimeout: s.config.Encoder.WriteTimeout,
		Logger:       s.logger,
	})
	if err != nil {
		return 0, &StageError{Stage: StageSpawn, Err: err}
	}

	s.logger.Infof("Rendering %d frames of %dx%d at %d fps to %s",
		max(frames-1, 0), s.config.Video.Width, s.config.Video.Height, s.config.Video.FPS, s.ffmpeg.Output)
	start := time.Now()
	emitted, err := s.producer.Run(sink, frames)
	if err != nil {
		return emitted, err
	}

	s.logger.Infof("Wrote %d frames (%d bytes each) in %s", emitted, s.frameSize, time.Since(start))
	return emitted, nil
}
