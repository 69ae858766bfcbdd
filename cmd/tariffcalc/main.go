package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/levenlabs/go-lflag"
	"github.com/levenlabs/go-llog"

	"github.com/raterudder/tariffcalc/pkg/bill"
	"github.com/raterudder/tariffcalc/pkg/log"
	"github.com/raterudder/tariffcalc/pkg/render"
)

func main() {
	// init packages
	q := configuredQuery()
	r := render.Configured(os.Stdout)

	// parse flags
	lflag.Configure()

	var level slog.Level
	// lflag automatically sets llog's level, but we need to set the slog level
	switch llog.GetLevel() {
	case llog.DebugLevel:
		level = slog.LevelDebug
	case llog.InfoLevel:
		level = slog.LevelInfo
	case llog.WarnLevel:
		level = slog.LevelWarn
	case llog.ErrorLevel:
		level = slog.LevelError
	default:
		panic(fmt.Errorf("unknown log level: %s", llog.GetLevel().String()))
	}
	log.SetDefaultLogLevel(level)

	ctx := context.Background()
	log.Ctx(ctx).DebugContext(ctx, "logger configured", slog.String("level", level.String()))

	if err := q.run(ctx, bill.Default(), r); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "tariff calculation failed", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
