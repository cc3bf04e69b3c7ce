package main

import (
	"context"
	"net/http"

	"nerdfootball-go/config"
	"nerdfootball-go/database"
	"nerdfootball-go/handlers"
	"nerdfootball-go/logging"
	"nerdfootball-go/middleware"
	"nerdfootball-go/services"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Configure(cfg.ToLoggingConfig())
	cfg.LogConfiguration()

	db, err := database.NewMongoConnection(cfg.ToDatabaseConfig())
	if err != nil {
		logging.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	// Repositories
	memberRepo := database.NewMongoMemberRepository(db)
	gameRepo := database.NewMongoGameRepository(db)
	pickRepo := database.NewMongoPickRepository(db)
	userRepo := database.NewMongoUserRepository(db)

	// Core services
	season := cfg.App.CurrentSeason
	resolver := services.NewGameResultResolver(gameRepo, season)
	engine := services.NewSurvivorEngine()
	reconciler := services.NewReconcileService(memberRepo)
	pickService := services.NewPickService(pickRepo, memberRepo, season)
	recomputeService := services.NewRecomputeService(
		memberRepo, pickService, engine, resolver, reconciler,
		season, cfg.App.RecomputeWorkers)
	scheduler := services.NewRecomputeScheduler(recomputeService, gameRepo, season, cfg.App.RecomputeEvery)

	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	seeder := services.NewUserSeeder(userRepo)
	if err := seeder.SeedAdmin(context.Background(), cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		logging.Fatalf("Admin seeding failed: %v", err)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, !cfg.App.IsDevelopment)
	memberHandler := handlers.NewMemberHandler(memberRepo, season)
	gameHandler := handlers.NewGameHandler(gameRepo, resolver, season)
	survivorHandler := handlers.NewSurvivorHandler(
		memberRepo, pickService, engine, resolver, reconciler,
		recomputeService, scheduler)

	// Routes
	r := mux.NewRouter()
	r.Use(middleware.SecurityHeaders(cfg.Server.BehindProxy))

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.TestConnection(); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", authHandler.Logout).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.RequireAdmin)

	api.HandleFunc("/auth/me", authHandler.Me).Methods("GET")

	api.HandleFunc("/games/{week:[0-9]+}", gameHandler.GetWeekGames).Methods("GET")
	api.HandleFunc("/games", gameHandler.UpsertGame).Methods("POST")

	api.HandleFunc("/survivor/members", memberHandler.ListMembers).Methods("GET")
	api.HandleFunc("/survivor/members", memberHandler.ProvisionMember).Methods("POST")
	api.HandleFunc("/survivor/members/{id}", memberHandler.GetMember).Methods("GET")
	api.HandleFunc("/survivor/members/{id}", memberHandler.RemoveMember).Methods("DELETE")

	api.HandleFunc("/survivor/members/{id}/status", survivorHandler.GetMemberStatus).Methods("GET")
	api.HandleFunc("/survivor/members/{id}/override", survivorHandler.SetOverride).Methods("POST")
	api.HandleFunc("/survivor/members/{id}/override", survivorHandler.ClearOverride).Methods("DELETE")
	api.HandleFunc("/survivor/members/{id}/picks", survivorHandler.SubmitPick).Methods("POST")
	api.HandleFunc("/survivor/members/{id}/picks/{week:[0-9]+}", survivorHandler.ClearPick).Methods("DELETE")
	api.HandleFunc("/survivor/recompute", survivorHandler.Recompute).Methods("POST")

	// Background recompute keeps statuses converging after games go final.
	if cfg.App.RecomputeEnabled {
		scheduler.Start()
		defer scheduler.Stop()
	}

	addr := cfg.GetServerAddress()
	logging.Infof("Server starting on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logging.Fatalf("Server failed: %v", err)
	}
}
