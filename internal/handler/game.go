package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playscore/backend/internal/model"
	"github.com/playscore/backend/internal/service"
)

type GameHandler struct {
	svc *service.GameService
}

func NewGameHandler(svc *service.GameService) *GameHandler {
	return &GameHandler{svc: svc}
}

// Submit godoc
// @Summary Submit a game score
// @Tags games
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.GameCreateRequest true "Score"
// @Success 200 {object} model.GameResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/games [post]
func (h *GameHandler) Submit(c *gin.Context) {
	var req model.GameCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	game, err := h.svc.Submit(c.Request.Context(), GetAuthUser(c), req.Score)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewGameResponse(game))
}

// Get godoc
// @Summary Get a game
// @Description Owner or admin only.
// @Tags games
// @Produce json
// @Security BearerAuth
// @Param id path int true "Game id"
// @Success 200 {object} model.GameResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/games/{id} [get]
func (h *GameHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	game, err := h.svc.Get(c.Request.Context(), id, GetAuthUser(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewGameResponse(game))
}

// List godoc
// @Summary List games
// @Description Returns the caller's games; admins see all games.
// @Tags games
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.GameResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/games [get]
func (h *GameHandler) List(c *gin.Context) {
	games, err := h.svc.List(c.Request.Context(), GetAuthUser(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gameResponses(games))
}

// DailyLeaderboard godoc
// @Summary Daily leaderboard
// @Tags games
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.GameResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/games/leaderboard/daily [get]
func (h *GameHandler) DailyLeaderboard(c *gin.Context) {
	games, err := h.svc.DailyLeaderboard(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gameResponses(games))
}

// WeeklyLeaderboard godoc
// @Summary Weekly leaderboard
// @Tags games
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.GameResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/games/leaderboard/weekly [get]
func (h *GameHandler) WeeklyLeaderboard(c *gin.Context) {
	games, err := h.svc.WeeklyLeaderboard(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gameResponses(games))
}

// AllTimeLeaderboard godoc
// @Summary All-time leaderboard
// @Tags games
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.GameResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/games/leaderboard/all-time [get]
func (h *GameHandler) AllTimeLeaderboard(c *gin.Context) {
	games, err := h.svc.AllTimeLeaderboard(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gameResponses(games))
}

func gameResponses(games []*model.Game) []model.GameResponse {
	res := make([]model.GameResponse, 0, len(games))
	for _, game := range games {
		res = append(res, model.NewGameResponse(game))
	}
	return res
}
