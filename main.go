package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/curvemorph/stream"
)

type app struct {
	Config    stream.Config
	Client    mqtt.Client
	Publisher stream.Publisher
	Streamer  *stream.Streamer

	logger *bslogger.Logger
}

func newApp(logger *bslogger.Logger) *app {
	a := new(app)
	a.logger = logger
	a.Publisher = stream.NopPublisher{}
	return a
}

func (a *app) readConfig(configPath string) error {
	f, err := os.Open(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		a.logger.Warningf("No config at %s, using defaults", configPath)
		a.Config = stream.DefaultConfig()
		return a.Config.Verify()
	}
	if err != nil {
		return err
	}
	defer f.Close()

	a.Config, err = stream.ReadConfig(f)
	return err
}

func (a *app) connect() error {
	if a.Config.Mqtt.URL == "" {
		return nil
	}

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second)
	a.Client = mqtt.NewClient(options)

	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connecting to %s: %w", a.Config.Mqtt.URL, token.Error())
	}
	a.logger.Infof("Connected to %s", a.Config.Mqtt.URL)
	a.Publisher = stream.NewMqttPublisher(a.Client, a.Config.Mqtt.Topics.Events, a.Config.Mqtt.QoS)
	return nil
}

func (a *app) run() error {
	var err error
	a.Streamer, err = stream.NewStreamer(a.Config, a.Publisher, a.logger)
	if err != nil {
		return err
	}
	a.logger.Debugf("Run %s", a.Streamer.RunID())

	_, err = a.Streamer.Run()
	return err
}

func (a *app) close() {
	if a.Client != nil && a.Client.IsConnected() {
		a.Client.Disconnect(250)
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	verbose := flag.Bool("v", false, "Log every frame.")
	flag.Parse()

	mqtt.ERROR = log.New(os.Stderr, "mqtt ", 0)

	verbosity := bslogger.Normal
	if *verbose {
		verbosity = bslogger.All
	}
	logger := bslogger.NewLogger("curvemorph", verbosity, nil)

	a := newApp(&logger)
	if err := a.readConfig(*configPath); err != nil {
		logger.Errorf("Config: %s", err)
		os.Exit(1)
	}
	logger.Debugf("Config: %+v", a.Config)

	if err := a.connect(); err != nil {
		logger.Errorf("MQTT: %s", err)
		os.Exit(1)
	}
	defer a.close()

	if err := a.run(); err != nil {
		logger.Errorf("%s", err)
		a.close()
		os.Exit(1)
	}
	logger.Infof("Done, video written to %s", a.Config.Encoder.Output)
}
