package stream

import (
	"errors"
	"io"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/google/uuid"
	"github.com/matt-g-everett/curvemorph/render"
	"github.com/matt-g-everett/curvemorph/util"
)

// A Sink accepts raw frames and reports completion once its input is closed.
type Sink interface {
	io.Writer
	Close() error
	Wait() error
}

// Producer renders an Animation frame by frame and writes each frame to a
// sink in order.
type Producer struct {
	animation     Animation
	renderer      render.Renderer
	publisher     Publisher
	logger        *bslogger.Logger
	runID         string
	progressEvery int
}

// NewProducer creates an instance of a Producer.
func NewProducer(animation Animation, renderer render.Renderer, logger *bslogger.Logger) *Producer {
	p := new(Producer)
	p.animation = animation
	p.renderer = renderer
	p.publisher = NopPublisher{}
	p.logger = logger
	p.runID = uuid.New().String()

	return p
}

// WithPublisher sends run events to pub, with a progress event every n
// frames. n <= 0 disables progress events.
func (p *Producer) WithPublisher(pub Publisher, n int) *Producer {
	p.publisher = pub
	p.progressEvery = n
	return p
}

// RunID identifies this producer's run in events.
func (p *Producer) RunID() string {
	return p.runID
}

func (p *Producer) publish(e Event) {
	e.RunID = p.runID
	e.Timestamp = time.Now().UTC()
	if err := p.publisher.Publish(e); err != nil {
		p.logger.Warningf("Unable to publish event: %s", err)
	}
}

// Emit renders frames 1 .. frames-1 and writes them to w. Frame 0, the
// unmorphed source curve, is not emitted. It returns the number of frames
// written in full.
func (p *Producer) Emit(w io.Writer, frames int) (int, error) {
	size := render.FrameSize(p.renderer.Size())
	emitted := 0
	for i := 1; i < frames; i++ {
		t := util.NormalizedTime(i, frames)
		curve, style := p.animation.CalculateFrame(t)
		p.renderer.Render(curve, style)

		f := NewFrame(i, t, curve, p.renderer.Pixels())
		data, err := f.Bytes(size)
		if err != nil {
			return emitted, &StageError{Stage: StageRender, Frame: i, Err: err}
		}

		n, err := w.Write(data)
		if err == nil && n != len(data) {
			err = io.ErrShortWrite
		}
		if err != nil {
			return emitted, &StageError{Stage: StageWrite, Frame: i, Err: err}
		}
		emitted++
		p.logger.Debugf("Frame %d/%d t=%.4f start=%s control=%s end=%s", f.Index, frames, f.Time, f.Curve.Start, f.Curve.Control, f.Curve.End)

		if p.progressEvery > 0 && f.Index%p.progressEvery == 0 {
			p.publish(Event{Type: EventProgress, Frame: f.Index, Frames: frames, Time: f.Time})
		}
	}
	return emitted, nil
}

// Run emits every frame to sink, closes the sink's input and waits for it to
// finish. Any failure aborts the run. When the encoder also fails, its error
// is joined to the returned one so its exit status and stderr reach the
// caller.
func (p *Producer) Run(sink Sink, frames int) (int, error) {
	p.publish(Event{Type: EventStarted, Frames: frames})

	emitted, err := p.Emit(sink, frames)
	if err != nil {
		p.logger.Errorf("Aborting after %d frames: %s", emitted, err)
		if cerr := sink.Close(); cerr != nil {
			p.logger.Debugf("Closing encoder input after abort: %s", cerr)
		}
		err = p.wait(sink, err)
		p.fail(emitted, frames, err)
		return emitted, err
	}

	if err := sink.Close(); err != nil {
		err = p.wait(sink, &StageError{Stage: StageClose, Err: err})
		p.fail(emitted, frames, err)
		return emitted, err
	}
	if err := sink.Wait(); err != nil {
		err = &StageError{Stage: StageWait, Err: err}
		p.fail(emitted, frames, err)
		return emitted, err
	}

	p.publish(Event{Type: EventCompleted, Frame: emitted, Frames: frames, Time: 1})
	return emitted, nil
}

// wait reaps the sink after cause has already failed the run.
func (p *Producer) wait(sink Sink, cause error) error {
	werr := sink.Wait()
	if werr == nil {
		return cause
	}
	p.logger.Errorf("Encoder: %s", werr)
	return errors.Join(cause, &StageError{Stage: StageWait, Err: werr})
}

func (p *Producer) fail(emitted, frames int, err error) {
	p.publish(Event{Type: EventFailed, Frame: emitted, Frames: frames, Error: err.Error()})
}
