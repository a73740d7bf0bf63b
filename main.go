package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/llehouerou/glimpse/internal/app"
	"github.com/llehouerou/glimpse/internal/config"
	"github.com/llehouerou/glimpse/internal/errmsg"
	"github.com/llehouerou/glimpse/internal/icons"
	"github.com/llehouerou/glimpse/internal/logging"
	"github.com/llehouerou/glimpse/internal/mpris"
	"github.com/llehouerou/glimpse/internal/pipeline/gst"
	"github.com/llehouerou/glimpse/internal/playback"
	"github.com/llehouerou/glimpse/internal/stderr"
	"github.com/llehouerou/glimpse/internal/ui/render"
)

var errNoSource = errors.New("no source: pass a URL, --capture NODE or set [source] in the config")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "glimpse",
		Usage:     "play a video or a capture stream in the terminal",
		ArgsUsage: "[URL]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "live", Usage: "treat the URL as a live stream without duration"},
			&cli.UintFlag{Name: "capture", Usage: "play a PipeWire capture `NODE` instead of a URL"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE`"},
			&cli.Float64Flag{Name: "volume", Value: -1, Usage: "initial volume between 0 and 1"},
			&cli.BoolFlag{Name: "no-mpris", Usage: "do not expose the player on D-Bus"},
		},
		Action: run,
	}
}

func run(ctx *cli.Context) error {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLoadConfig, err))
	}

	src, err := sourceFrom(ctx, cfg)
	if err != nil {
		return err
	}

	log, logCloser, err := logging.Setup(cfg.GetLogConfig())
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	defer logCloser.Close()

	// Capture native stderr before GStreamer starts writing to it.
	if err := stderr.Start(log); err != nil {
		log.Warn("stderr capture unavailable", "error", err)
	}
	defer stderr.Stop()

	icons.Init(cfg.UI.Icons)

	pb := cfg.GetPlaybackConfig()
	c, err := playback.New(gst.NewBuilder(log), src,
		playback.WithTickInterval(pb.TickInterval),
		playback.WithEventBuffer(pb.EventBuffer),
		playback.WithLogger(log),
	)
	if err != nil {
		return openError(src, err)
	}
	defer c.Close()

	volume := *pb.Volume
	if v := ctx.Float64("volume"); v >= 0 {
		volume = v
	}
	if err := c.SetVolume(volume); err != nil {
		log.Warn("initial volume", "error", err)
	}

	title := src.String()
	if !src.IsCapture() {
		title = render.SourceTitle(src.URL)
	}
	m := app.New(c, title, pb.SeekStep)
	m.Stderr = stderr.Messages

	p := tea.NewProgram(m, tea.WithAltScreen())

	if cfg.MPRISEnabled() && !ctx.Bool("no-mpris") {
		if adapter, err := mpris.New(c, p, title); err != nil {
			log.Warn("mpris unavailable", "error", err)
		} else {
			defer adapter.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		return err
	}
	if err := c.Err(); err != nil {
		log.Error("session ended", "error", err)
		stderr.WriteOriginal(errmsg.Format(errmsg.OpSession, err) + "\n")
	}
	return nil
}

// sourceFrom picks the source: --capture, then the URL argument, then the
// config file.
func sourceFrom(ctx *cli.Context, cfg *config.Config) (playback.Source, error) {
	switch {
	case ctx.IsSet("capture"):
		return playback.FromCapture(uint32(ctx.Uint("capture"))), nil
	case ctx.Args().Present():
		return playback.FromURL(ctx.Args().First(), ctx.Bool("live")), nil
	case cfg.Source.URL != "":
		return playback.FromURL(cfg.Source.URL, cfg.Source.Live || ctx.Bool("live")), nil
	case cfg.HasSource():
		return playback.FromCapture(cfg.Source.CaptureNode), nil
	}
	return playback.Source{}, errNoSource
}

func openError(src playback.Source, err error) error {
	text := errmsg.FormatWith(errmsg.OpOpenSource, src.String(), err)
	if hint := errmsg.Hint(err); hint != "" {
		text += "\n" + hint
	}
	return errors.New(text)
}
