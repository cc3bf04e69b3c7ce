package services

import (
	"context"
	"time"

	"nerdfootball-go/logging"
	"nerdfootball-go/models"
)

// RecomputeScheduler runs the batch recompute on a fixed interval, so
// statuses converge shortly after a week's games go final without an admin
// having to trigger the run by hand.
type RecomputeScheduler struct {
	recompute *RecomputeService
	games     GamesProvider
	season    int
	interval  time.Duration
	ticker    *time.Ticker
	stopChan  chan struct{}
	running   bool
	logger    *logging.Logger
}

// NewRecomputeScheduler creates a new scheduler.
func NewRecomputeScheduler(recompute *RecomputeService, games GamesProvider, season int, interval time.Duration) *RecomputeScheduler {
	return &RecomputeScheduler{
		recompute: recompute,
		games:     games,
		season:    season,
		interval:  interval,
		stopChan:  make(chan struct{}),
		logger:    logging.WithPrefix("Scheduler"),
	}
}

// Start begins the periodic recompute loop.
func (s *RecomputeScheduler) Start() {
	if s.running {
		s.logger.Warn("Already running")
		return
	}

	s.logger.Infof("Starting scheduled recompute every %s", s.interval)
	s.running = true
	s.ticker = time.NewTicker(s.interval)

	// Run once at startup, then on the ticker.
	go s.runOnce()

	go func() {
		for {
			select {
			case <-s.ticker.C:
				go s.runOnce()
			case <-s.stopChan:
				s.logger.Info("Stopping scheduled recompute")
				return
			}
		}
	}()
}

// Stop halts the loop.
func (s *RecomputeScheduler) Stop() {
	if !s.running {
		return
	}
	s.running = false
	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.stopChan)
}

func (s *RecomputeScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	week, err := s.LatestStartedWeek(ctx)
	if err != nil {
		s.logger.Errorf("Could not determine current week: %v", err)
		return
	}
	if week < 1 {
		s.logger.Debug("Season has not started, skipping recompute")
		return
	}

	if _, err := s.recompute.RecomputeAll(ctx, week); err != nil {
		s.logger.Errorf("Scheduled recompute failed: %v", err)
	}
}

// LatestStartedWeek returns the highest week whose first game has kicked
// off, or 0 before the season starts. Weeks with no scheduled games yet are
// treated as not started.
func (s *RecomputeScheduler) LatestStartedWeek(ctx context.Context) (int, error) {
	now := time.Now()
	latest := 0

	for week := 1; week <= models.MaxSeasonWeeks; week++ {
		games, err := s.games.GetGamesByWeek(ctx, s.season, week)
		if err != nil {
			return 0, err
		}
		if len(games) == 0 {
			break
		}

		started := false
		for _, game := range games {
			if !game.Date.After(now) {
				started = true
				break
			}
		}
		if !started {
			break
		}
		latest = week
	}

	return latest, nil
}
