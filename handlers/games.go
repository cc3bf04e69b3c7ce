package handlers

import (
	"net/http"
	"strconv"

	"nerdfootball-go/database"
	"nerdfootball-go/logging"
	"nerdfootball-go/models"
	"nerdfootball-go/services"

	"github.com/gorilla/mux"
)

// GameHandler serves the weekly game results store: reads for dashboards
// and an administrative write path for entering or correcting results. The
// survivor core itself only ever reads this store.
type GameHandler struct {
	games    *database.MongoGameRepository
	resolver *services.GameResultResolver
	season   int
	logger   *logging.Logger
}

// NewGameHandler creates a new game results handler
func NewGameHandler(games *database.MongoGameRepository, resolver *services.GameResultResolver, season int) *GameHandler {
	return &GameHandler{
		games:    games,
		resolver: resolver,
		season:   season,
		logger:   logging.WithPrefix("GameHandler"),
	}
}

// GetWeekGames returns all games for a week.
// GET /api/games/{week}
func (h *GameHandler) GetWeekGames(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(mux.Vars(r)["week"])
	if err != nil || week < 1 || week > models.MaxSeasonWeeks {
		writeError(w, http.StatusBadRequest, "invalid week")
		return
	}

	games, err := h.games.GetGamesByWeek(r.Context(), h.season, week)
	if err != nil {
		h.logger.Errorf("Failed to load games for week %d: %v", week, err)
		writeError(w, http.StatusInternalServerError, "failed to load games")
		return
	}

	writeJSON(w, http.StatusOK, games)
}

// UpsertGame records or corrects one game's result. Team names are
// normalized before storage and the winner is settled from the scores
// when the game is final. POST /api/games
func (h *GameHandler) UpsertGame(w http.ResponseWriter, r *http.Request) {
	var game models.Game
	if err := decodeJSON(r, &game); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if game.Week < 1 || game.Week > models.MaxSeasonWeeks {
		writeError(w, http.StatusBadRequest, "invalid week")
		return
	}

	game.Season = h.season
	game.Home = models.NormalizeTeamName(game.Home)
	game.Away = models.NormalizeTeamName(game.Away)
	if !models.IsCanonicalTeam(game.Home) || !models.IsCanonicalTeam(game.Away) {
		writeError(w, http.StatusBadRequest, "unknown team name")
		return
	}
	game.SettleWinner()

	if err := h.games.UpsertGame(r.Context(), &game); err != nil {
		h.logger.Errorf("Failed to upsert game %d: %v", game.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to save game")
		return
	}

	// Fresh results must be visible to the next status computation.
	h.resolver.InvalidateWeek(game.Week)

	h.logger.Infof("Game saved: week %d %s (%d-%d, %s)",
		game.Week, game.Description(), game.AwayScore, game.HomeScore, game.State)
	writeJSON(w, http.StatusOK, game)
}
