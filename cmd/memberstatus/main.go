// Command memberstatus prints one member's stored vs computed survivor
// status, for diagnosing drift before setting a manual override.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"nerdfootball-go/config"
	"nerdfootball-go/database"
	"nerdfootball-go/logging"
	"nerdfootball-go/services"
)

func main() {
	memberID := flag.String("member", "", "pool member id (required)")
	asOfWeek := flag.Int("as-of-week", 0, "compute through this week (default: latest started week)")
	flag.Parse()

	if *memberID == "" {
		logging.Fatal("-member is required")
	}

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
	resolver := services.NewGameResultResolver(gameRepo, season)
	engine := services.NewSurvivorEngine()
	reconciler := services.NewReconcileService(memberRepo)
	pickService := services.NewPickService(pickRepo, memberRepo, season)
	recomputeService := services.NewRecomputeService(
		memberRepo, pickService, engine, resolver, reconciler, season, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	member, err := memberRepo.GetMemberByID(ctx, *memberID)
	if err != nil {
		logging.Fatalf("Failed to load member: %v", err)
	}
	if member == nil {
		logging.Fatalf("Member %s not found", *memberID)
	}

	week := *asOfWeek
	if week == 0 {
		scheduler := services.NewRecomputeScheduler(recomputeService, gameRepo, season, time.Hour)
		week, err = scheduler.LatestStartedWeek(ctx)
		if err != nil {
			logging.Fatalf("Could not determine current week: %v", err)
		}
	}

	history, err := pickService.GetPickHistory(ctx, member)
	if err != nil {
		logging.Fatalf("Failed to load picks: %v", err)
	}

	computed, err := engine.ComputeStatus(ctx, history, resolver, week)
	if err != nil {
		logging.Fatalf("Failed to compute status: %v", err)
	}

	stored := member.Survivor
	fmt.Printf("Member %s (%s), season %d, as of week %d\n", member.ID, member.Name, season, week)
	fmt.Printf("  picks (%d): %s\n", history.Len(), stored.PickHistory)
	fmt.Printf("  stored:   alive=%d override=%t", stored.Alive, stored.ManualOverride)
	if stored.EliminationWeek != nil {
		fmt.Printf(" eliminated week %d (%s)", *stored.EliminationWeek, stored.EliminationReason)
	}
	fmt.Println()
	fmt.Printf("  computed: alive=%t resolvedThrough=%d", computed.Alive, computed.ResolvedThrough)
	if computed.EliminationWeek != nil {
		fmt.Printf(" eliminated week %d (%s)", *computed.EliminationWeek, computed.EliminationReason)
	}
	fmt.Println()
}
