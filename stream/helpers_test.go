package stream

import (
	"errors"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/curvemorph/render"
	"github.com/matt-g-everett/curvemorph/shape"
)

func testLogger() *bslogger.Logger {
	l := bslogger.NewLogger("test", bslogger.Minimal, nil)
	return &l
}

var (
	curve1 = shape.Bezier{Start: shape.Pt(120, 350), Control: shape.Pt(600, 660), End: shape.Pt(680, 200)}
	curve2 = shape.Bezier{Start: shape.Pt(500, 650), Control: shape.Pt(500, 460), End: shape.Pt(500, 200)}
)

// fakeRenderer stamps the first byte of each frame with its sequence number
// so the written stream can be checked for order.
type fakeRenderer struct {
	width, height int
	curves        []shape.Bezier
	styles        []render.Style
	buf           []byte
	short         int
}

func newFakeRenderer(width, height int) *fakeRenderer {
	return &fakeRenderer{width: width, height: height, buf: make([]byte, render.FrameSize(width, height))}
}

func (r *fakeRenderer) Render(b shape.Bezier, style render.Style) {
	r.curves = append(r.curves, b)
	r.styles = append(r.styles, style)
	r.buf[0] = byte(len(r.curves))
}

func (r *fakeRenderer) Pixels() []byte {
	if r.short > 0 && len(r.curves) == r.short {
		return r.buf[:len(r.buf)-1]
	}
	return r.buf
}

func (r *fakeRenderer) Size() (int, int) { return r.width, r.height }

// fakeSink records write sizes, the first byte of each write and the order
// of lifecycle calls.
type fakeSink struct {
	writes    []int
	firsts    []byte
	calls     []string
	failAfter int
	closeErr  error
	waitErr   error
}

var errBrokenPipe = errors.New("broken pipe")

func (s *fakeSink) Write(b []byte) (int, error) {
	if s.failAfter > 0 && len(s.writes) == s.failAfter {
		return 0, errBrokenPipe
	}
	s.writes = append(s.writes, len(b))
	s.firsts = append(s.firsts, b[0])
	s.calls = append(s.calls, "write")
	return len(b), nil
}

func (s *fakeSink) Close() error {
	s.calls = append(s.calls, "close")
	return s.closeErr
}

func (s *fakeSink) Wait() error {
	s.calls = append(s.calls, "wait")
	return s.waitErr
}

type recordingPublisher struct {
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(e Event) error {
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []EventType {
	types := make([]EventType, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

type fakeToken struct {
	mqtt.Token
	err      error
	complete bool
}

func (t *fakeToken) WaitTimeout(time.Duration) bool { return t.complete }
func (t *fakeToken) Wait() bool                     { return t.complete }
func (t *fakeToken) Error() error                   { return t.err }

type fakeClient struct {
	mqtt.Client
	token    *fakeToken
	topic    string
	qos      byte
	payloads [][]byte
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.topic = topic
	c.qos = qos
	c.payloads = append(c.payloads, payload.([]byte))
	return c.token
}
