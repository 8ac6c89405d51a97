// Command waterwheel prints the force at every stage of the water-wheel
// gear train.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/talgya/waterwheel/internal/config"
	"github.com/talgya/waterwheel/internal/persistence"
	"github.com/talgya/waterwheel/internal/train"
)

const journalTimeout = 5 * time.Second

func main() {
	if err := run(context.Background(), os.Stdout, os.Stderr); err != nil {
		slog.Error("waterwheel failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout, stderr io.Writer) error {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// ── Settings ──────────────────────────────────────────────────────
	cfg, err := config.Load(os.Getenv(config.EnvConfig))
	if err != nil {
		return err
	}
	level.Set(cfg.SlogLevel())

	// ── Train ─────────────────────────────────────────────────────────
	report, err := train.Evaluate(train.WaterWheel())
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	if _, err := report.WriteTo(stdout); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	slog.Info("gear train evaluated",
		"stages", len(report.Before)+len(report.After),
		"advantage", fmt.Sprintf("%.4f", report.Advantage()),
	)

	// ── Journal ───────────────────────────────────────────────────────
	if cfg.JournalPath == "" {
		return nil
	}
	return journal(ctx, cfg.JournalPath, report)
}

func journal(ctx context.Context, path string, report *train.Report) error {
	db, err := persistence.Open(path)
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, journalTimeout)
	defer cancel()

	if err := db.SaveRun(ctx, persistence.NewRun(report, time.Now())); err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	return nil
}
