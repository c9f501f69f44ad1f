// Command lankarec runs the recommendation engine against generated
// fixture data and prints the ranked list. It exists for local
// inspection of pipeline behavior; the engine itself is consumed as a
// library.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/config"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/engine"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/fixtures"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/providers/prefs"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/pkg/logger"
)

const demoUserID = "demo-user"

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	gen := fixtures.NewGenerator()
	profile := gen.Profile(demoUserID)
	events := gen.Events(12)

	eng, err := engine.New(
		engine.WithConfig(cfg),
		engine.WithCalendar(gen.Calendar()),
		engine.WithProximity(gen.Proximity()),
		engine.WithPreferences(prefs.NewInMemoryStore(prefs.WithProfile(profile))),
		engine.WithLogger(log.Named("engine")),
	)
	if err != nil {
		log.Error(ctx, "failed to build engine", logger.Error(err))
		return
	}

	recs, err := eng.GetScoredRecommendations(ctx, demoUserID, events)
	if err != nil {
		log.Error(ctx, "recommendation failed", logger.Error(err))
		return
	}

	fmt.Printf("%-4s %-28s %-14s %-9s %s\n", "#", "EVENT", "NATURE", "SCORE", "FLAGS")
	for i, rec := range recs {
		flags := ""
		if rec.Score.EdgeCaseHandled() {
			flags = fmt.Sprintf("fallback:%v", rec.Score.SortedEdgeCases())
		}
		fmt.Printf("%-4d %-28s %-14s %-9.4f %s\n",
			i+1, rec.Event.Title, rec.Event.Nature, rec.Score.Value, flags)
	}
}
