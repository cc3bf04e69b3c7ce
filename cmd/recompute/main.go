// Command recompute runs the survivor status batch recompute from the
// command line, for cron jobs and manual runs after a week's games go
// final. Equivalent to POST /api/survivor/recompute.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"nerdfootball-go/config"
	"nerdfootball-go/database"
	"nerdfootball-go/logging"
	"nerdfootball-go/services"
)

func main() {
	throughWeek := flag.Int("through-week", 0, "recompute through this week (default: latest started week)")
	workers := flag.Int("workers", 0, "worker count (default: from config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Configure(cfg.ToLoggingConfig())

	db, err := database.NewMongoConnection(cfg.ToDatabaseConfig())
	if err != nil {
		logging.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	memberRepo := database.NewMongoMemberRepository(db)
	gameRepo := database.NewMongoGameRepository(db)
	pickRepo := database.NewMongoPickRepository(db)

	season := cfg.App.CurrentSeason
	workerCount := cfg.App.RecomputeWorkers
	if *workers > 0 {
		workerCount = *workers
	}

	resolver := services.NewGameResultResolver(gameRepo, season)
	engine := services.NewSurvivorEngine()
	reconciler := services.NewReconcileService(memberRepo)
	pickService := services.NewPickService(pickRepo, memberRepo, season)
	recomputeService := services.NewRecomputeService(
		memberRepo, pickService, engine, resolver, reconciler, season, workerCount)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	week := *throughWeek
	if week == 0 {
		scheduler := services.NewRecomputeScheduler(recomputeService, gameRepo, season, time.Hour)
		week, err = scheduler.LatestStartedWeek(ctx)
		if err != nil {
			logging.Fatalf("Could not determine current week: %v", err)
		}
		if week < 1 {
			logging.Info("Season has not started, nothing to recompute")
			return
		}
	}

	report, err := recomputeService.RecomputeAll(ctx, week)
	if err != nil {
		logging.Fatalf("Recompute failed: %v", err)
	}

	fmt.Printf("Run %s (season %d, through week %d)\n", report.RunID, report.Season, report.ThroughWeek)
	fmt.Printf("  processed: %d\n", report.Processed)
	fmt.Printf("  changed:   %d\n", report.Changed)
	fmt.Printf("  unchanged: %d\n", report.Unchanged)
	fmt.Printf("  protected: %d\n", report.Protected)
	fmt.Printf("  errors:    %d\n", len(report.Errors))
	for _, e := range report.Errors {
		fmt.Printf("    %s: %s\n", e.MemberID, e.Error)
	}

	if len(report.Errors) > 0 {
		os.Exit(1)
	}
}
