package stream

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/matt-g-everett/curvemorph/encode"
	"github.com/matt-g-everett/curvemorph/render"
	"github.com/matt-g-everett/curvemorph/shape"
	"github.com/matt-g-everett/curvemorph/util"
	"gopkg.in/yaml.v2"
)

// Config for a rendering run.
type Config struct {
	Video struct {
		Width    int     `yaml:"width"`
		Height   int     `yaml:"height"`
		FPS      int     `yaml:"fps"`
		Duration float64 `yaml:"duration"`
	} `yaml:"video"`
	Curves     shape.CurveTransform `yaml:"curves"`
	EasingName string               `yaml:"easing"`
	Render     struct {
		Background string  `yaml:"background"`
		Stroke     string  `yaml:"stroke"`
		StrokeTo   string  `yaml:"strokeTo"`
		LineWidth  float64 `yaml:"lineWidth"`
	} `yaml:"render"`
	Encoder struct {
		Binary            string        `yaml:"binary"`
		Codec             string        `yaml:"codec"`
		PixelFormat       string        `yaml:"pixelFormat"`
		OutputPixelFormat string        `yaml:"outputPixelFormat"`
		Output            string        `yaml:"output"`
		Overwrite         bool          `yaml:"overwrite"`
		Probe             bool          `yaml:"probe"`
		BufferSize        int           `yaml:"bufferSize"`
		WriteTimeout      time.Duration `yaml:"writeTimeout"`
	} `yaml:"encoder"`
	Events struct {
		Every int `yaml:"every"`
	} `yaml:"events"`
	Mqtt struct {
		URL      string `yaml:"url"`
		ClientID string `yaml:"clientID"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		QoS      byte   `yaml:"qos"`
		Topics   struct {
			Events string `yaml:"events"`
		}
	} `yaml:"mqtt"`
}

// DefaultConfig morphs a sweeping curve into a vertical line over five
// seconds of 1080p60.
func DefaultConfig() Config {
	var c Config
	c.Video.Width = 1920
	c.Video.Height = 1080
	c.Video.FPS = 60
	c.Video.Duration = 5
	c.Curves = shape.NewCurveTransform(
		shape.Bezier{Start: shape.Pt(120, 350), Control: shape.Pt(600, 660), End: shape.Pt(680, 200)},
		shape.Bezier{Start: shape.Pt(500, 650), Control: shape.Pt(500, 460), End: shape.Pt(500, 200)},
	)
	c.EasingName = "InOutQuint"
	c.Render.Background = "#ffffff"
	c.Render.Stroke = "#000000"
	c.Render.LineWidth = 1
	c.Encoder.Binary = "ffmpeg"
	c.Encoder.Codec = "libx264"
	c.Encoder.PixelFormat = "bgra"
	c.Encoder.OutputPixelFormat = "yuv420p"
	c.Encoder.Output = "output.mp4"
	c.Encoder.Overwrite = true
	c.Events.Every = 30
	c.Mqtt.ClientID = "curvemorph"
	c.Mqtt.Topics.Events = "curvemorph/events"

	return c
}

// ReadConfig decodes YAML over the defaults and verifies the result.
func ReadConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	return c, c.Verify()
}

// Verify rejects settings that cannot produce a video.
func (c *Config) Verify() error {
	if c.Video.Width <= 0 || c.Video.Height <= 0 {
		return fmt.Errorf("invalid video size %dx%d", c.Video.Width, c.Video.Height)
	}
	if c.Video.FPS <= 0 {
		return fmt.Errorf("invalid frame rate %d", c.Video.FPS)
	}
	if c.Video.Duration < 0 {
		return fmt.Errorf("invalid duration %g", c.Video.Duration)
	}
	if c.Render.LineWidth <= 0 {
		return fmt.Errorf("invalid line width %g", c.Render.LineWidth)
	}
	if c.Encoder.Binary == "" {
		return errors.New("no encoder binary")
	}
	if c.Encoder.WriteTimeout < 0 {
		return fmt.Errorf("invalid write timeout %s", c.Encoder.WriteTimeout)
	}
	if c.Mqtt.QoS > 2 {
		return fmt.Errorf("invalid mqtt qos %d", c.Mqtt.QoS)
	}
	if _, err := shape.EasingByName(c.EasingName); err != nil {
		return err
	}
	if _, err := render.ParsePixelFormat(c.Encoder.PixelFormat); err != nil {
		return err
	}
	if _, _, err := c.Style(); err != nil {
		return err
	}
	return nil
}

// Frames is the total frame count the run is timed against.
func (c *Config) Frames() int {
	return util.FrameCount(c.Video.Duration, c.Video.FPS)
}

// PixelFormat resolves the raw frame layout shared by renderer and encoder.
func (c *Config) PixelFormat() (render.PixelFormat, error) {
	return render.ParsePixelFormat(c.Encoder.PixelFormat)
}

// Easing resolves the configured easing strategy.
func (c *Config) Easing() (shape.Easing, error) {
	return shape.EasingByName(c.EasingName)
}

// Style resolves the configured colours. The blend is constant unless
// strokeTo is set.
func (c *Config) Style() (render.Style, render.StrokeBlend, error) {
	style := render.Style{LineWidth: c.Render.LineWidth}
	var err error
	if style.Background, err = render.ParseColour(c.Render.Background); err != nil {
		return style, render.StrokeBlend{}, fmt.Errorf("background: %w", err)
	}
	if style.Stroke, err = render.ParseColour(c.Render.Stroke); err != nil {
		return style, render.StrokeBlend{}, fmt.Errorf("stroke: %w", err)
	}

	blend := render.StrokeBlend{From: style.Stroke, To: style.Stroke}
	if c.Render.StrokeTo != "" {
		if blend.To, err = render.ParseColour(c.Render.StrokeTo); err != nil {
			return style, blend, fmt.Errorf("strokeTo: %w", err)
		}
	}
	return style, blend, nil
}

// Ffmpeg builds the encoder invocation.
func (c *Config) Ffmpeg() *encode.Ffmpeg {
	f := encode.NewFfmpeg(c.Video.FPS, c.Video.Width, c.Video.Height)
	f.Binary = c.Encoder.Binary
	f.Codec = c.Encoder.Codec
	if pf, err := render.ParsePixelFormat(c.Encoder.PixelFormat); err == nil {
		f.InputFormat = pf.String()
	}
	f.OutputFormat = c.Encoder.OutputPixelFormat
	f.Output = c.Encoder.Output
	f.Overwrite = c.Encoder.Overwrite
	return f
}
