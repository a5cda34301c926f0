// Command gainhost hosts the gain plugin outside a DAW: it plays audio
// through it with the terminal editor, renders WAV files and checks the
// applied gain.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/justyntemme/gainplug/internal/cli"
	"github.com/justyntemme/gainplug/pkg/framework/debug"
	"github.com/justyntemme/gainplug/pkg/gainplug"
	"github.com/justyntemme/gainplug/pkg/plugin"
)

var (
	version = "0.1.0"
)

// Globals are the flags shared by every command.
type Globals struct {
	LogFile  string `help:"Log file; empty logs to ~/tmp/${logname}, - logs to stderr" env:"GAINHOST_LOG_FILE"`
	LogLevel string `help:"Minimum log level (debug, info, warn, error, off)" default:"info" env:"GAINHOST_LOG_LEVEL"`

	SampleRate int           `help:"Stream sample rate in Hz" default:"48000" env:"GAINHOST_SAMPLE_RATE"`
	BlockSize  int           `help:"Maximum frames per process call" default:"512" env:"GAINHOST_BLOCK_SIZE"`
	Smoothing  time.Duration `help:"Gain transition time, 0 for none" default:"5ms" env:"GAINHOST_SMOOTHING"`
	GainDB     float64       `name:"gain" help:"Initial gain in dB" default:"0" env:"GAINHOST_GAIN"`
}

// CLI defines the command-line interface
type CLI struct {
	Globals

	Play    PlayCmd    `cmd:"" help:"Loop audio through the plugin with its terminal editor"`
	Render  RenderCmd  `cmd:"" help:"Process a WAV file through the plugin"`
	Measure MeasureCmd `cmd:"" help:"Check the applied gain against the requested one"`
	Info    InfoCmd    `cmd:"" help:"Show plugin, parameter and CPU information"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

func main() {
	// Environment from .env fills in flags not given on the command line.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		cli.PrintError(fmt.Sprintf("load .env: %v", err))
		os.Exit(1)
	}

	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("gainhost"),
		kong.Description("Stereo gain plugin host"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
			"logname": gainplug.LogFileName,
		},
		kong.Help(cli.StyledHelpPrinter("gainhost")),
	)

	restore, err := cliArgs.setupLogging()
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	err = ctx.Run(&cliArgs.Globals)
	if err != nil {
		debug.Error("%s: %v", ctx.Command(), err)
	}
	if rerr := restore(); rerr != nil && err == nil {
		err = rerr
	}
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

func (g *Globals) setupLogging() (func() error, error) {
	level, err := debug.ParseLevel(g.LogLevel)
	if err != nil {
		return nil, err
	}

	var restore func() error
	switch g.LogFile {
	case "-":
		restore = func() error { return nil }
	case "":
		restore, err = gainplug.SetupLogging()
	default:
		restore, err = debug.SetupFileLogging(g.LogFile, "gainhost", level)
	}
	if err != nil {
		return nil, err
	}
	debug.SetLevel(level)
	plugin.SetLogger(debug.Default())
	return restore, nil
}

// open creates an active instance through the factory, the way a host
// would, with the initial gain applied before the first block.
func (g *Globals) open(sampleRate int) (*plugin.Component, error) {
	if g.BlockSize <= 0 {
		return nil, fmt.Errorf("invalid block size %d", g.BlockSize)
	}
	gainplug.RegisterPlugin(&gainplug.Plugin{Smoothing: g.Smoothing})

	comp, err := plugin.CreateInstance(gainplug.Info.UID())
	if err != nil {
		return nil, err
	}

	normalized := comp.PlainParamToNormalized(gainplug.ParamGain, g.GainDB)
	if err := comp.SetParamNormalized(gainplug.ParamGain, normalized); err != nil {
		comp.Terminate()
		return nil, err
	}
	if err := comp.Initialize(float64(sampleRate), int32(g.BlockSize)); err != nil {
		comp.Terminate()
		return nil, err
	}
	if err := comp.SetActive(true); err != nil {
		comp.Terminate()
		return nil, err
	}
	return comp, nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	cli.PrintVersion(version)
	cli.PrintKV("Plugin", fmt.Sprintf("%s %s", gainplug.Info.Name, gainplug.Info.Version))
	return nil
}
