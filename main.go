// Command webnotify presents desktop notifications through the same
// presenter path an embedding web engine would use, which makes it a handy
// end-to-end check against whatever notification daemon is running.
package main

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // icon decoder
	_ "image/png"  // icon decoder
	"log/slog"
	"os"
	"os/signal"

	"github.com/alexflint/go-arg"

	"github.com/llehouerou/webnotify/internal/bridge"
	"github.com/llehouerou/webnotify/internal/config"
	"github.com/llehouerou/webnotify/internal/notify"
	"github.com/llehouerou/webnotify/internal/webengine"
)

const version = "v0.1.0"

type args struct {
	Title  string `arg:"positional,required" help:"notification summary"`
	Body   string `arg:"positional" help:"notification body"`
	Origin string `arg:"-o,--origin" default:"https://example.org" help:"origin the notification claims to come from"`
	Icon   string `arg:"-i,--icon" help:"path to a PNG or JPEG icon"`
	Wait   bool   `arg:"-w,--wait" help:"stay running and report close/action signals"`
	Debug  bool   `arg:"--debug" help:"verbose logging"`
}

func (args) Version() string {
	return "webnotify " + version
}

func main() {
	var parsed args
	arg.MustParse(&parsed)

	level := slog.LevelInfo
	if parsed.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(parsed, logger); err != nil {
		logger.Error("webnotify failed", "error", err)
		os.Exit(1)
	}
}

func run(parsed args, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var icon image.Image
	if parsed.Icon != "" {
		icon, err = loadIcon(parsed.Icon)
		if err != nil {
			return err
		}
	}

	notifier, err := notify.New()
	if err != nil {
		return err
	}
	defer notifier.Close()

	b := bridge.New(notifier, bridge.Options{
		AppName:       cfg.AppName,
		AppIcon:       cfg.AppIcon,
		OriginHintKey: cfg.OriginHintKey,
		ExpireTimeout: cfg.ExpireTimeout,
		MaxImageSize:  cfg.MaxImageSize,
	}, logger)

	// Drive the notification through an in-memory profile, the way an
	// embedding engine would deliver it.
	var profile webengine.MemoryProfile
	b.SetAsPresenter(&profile)

	n := webengine.NewStaticNotification(parsed.Title, parsed.Body, parsed.Origin, icon)
	if !profile.Deliver(n) {
		return fmt.Errorf("no presenter installed on profile")
	}
	if n.Shown() == 0 {
		return fmt.Errorf("notification was not shown")
	}
	if b.Len() == 0 {
		return fmt.Errorf("notification was not registered")
	}

	if !parsed.Wait {
		return nil
	}

	logger.Info("waiting for daemon signals, interrupt to quit")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := b.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func loadIcon(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open icon: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode icon %s: %w", path, err)
	}
	return img, nil
}
