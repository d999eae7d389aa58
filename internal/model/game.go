package model

import "time"

type Game struct {
	ID        int64
	UserID    int64
	Score     int
	CreatedOn time.Time
}

type GameCreateRequest struct {
	Score int `json:"score" binding:"gte=0"`
}

type GameResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Score     int       `json:"score"`
	CreatedOn time.Time `json:"createdOn"`
}

func NewGameResponse(game *Game) GameResponse {
	return GameResponse{
		ID:        game.ID,
		UserID:    game.UserID,
		Score:     game.Score,
		CreatedOn: game.CreatedOn,
	}
}
