package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/playscore/backend/internal/db"
	"github.com/playscore/backend/internal/model"
)

type gameRepo interface {
	CreateGame(ctx context.Context, userID int64, score int) (*model.Game, error)
	GetGameByID(ctx context.Context, gameID int64) (*model.Game, error)
	ListGamesByUser(ctx context.Context, userID int64) ([]*model.Game, error)
	ListGames(ctx context.Context) ([]*model.Game, error)
	ListGamesSince(ctx context.Context, since time.Time) ([]*model.Game, error)
}

// GameService records scores and derives leaderboards.
type GameService struct {
	repo         gameRepo
	allTimeLimit int

	now func() time.Time
}

func NewGameService(repo gameRepo, allTimeLimit string) (*GameService, error) {
	limit, err := strconv.Atoi(allTimeLimit)
	if err != nil || limit <= 0 {
		return nil, fmt.Errorf("%w: invalid ALL_TIME_LEADERBOARD_LIMIT", ErrMisconfigured)
	}

	return &GameService{
		repo:         repo,
		allTimeLimit: limit,
		now:          time.Now,
	}, nil
}

func (s *GameService) Submit(ctx context.Context, current *model.AuthUser, score int) (*model.Game, error) {
	return s.repo.CreateGame(ctx, current.ID, score)
}

// Get returns one game; owner or admin only.
func (s *GameService) Get(ctx context.Context, id int64, current *model.AuthUser) (*model.Game, error) {
	game, err := s.repo.GetGameByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !current.IsAdmin && game.UserID != current.ID {
		return nil, ErrForbidden
	}
	return game, nil
}

// List returns the caller's games; admins see everyone's.
func (s *GameService) List(ctx context.Context, current *model.AuthUser) ([]*model.Game, error) {
	if current.IsAdmin {
		return s.repo.ListGames(ctx)
	}
	return s.repo.ListGamesByUser(ctx, current.ID)
}

// DailyLeaderboard ranks scores submitted since midnight UTC.
func (s *GameService) DailyLeaderboard(ctx context.Context) ([]*model.Game, error) {
	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.leaderboardSince(ctx, midnight, 0)
}

// WeeklyLeaderboard ranks scores submitted since the start of the ISO week.
func (s *GameService) WeeklyLeaderboard(ctx context.Context) ([]*model.Game, error) {
	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	offset := int(now.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	weekStart := midnight.AddDate(0, 0, -offset)
	return s.leaderboardSince(ctx, weekStart, 0)
}

// AllTimeLeaderboard ranks every score ever submitted, capped at the
// configured entry limit.
func (s *GameService) AllTimeLeaderboard(ctx context.Context) ([]*model.Game, error) {
	return s.leaderboardSince(ctx, time.Time{}, s.allTimeLimit)
}

func (s *GameService) leaderboardSince(ctx context.Context, since time.Time, limit int) ([]*model.Game, error) {
	games, err := s.repo.ListGamesSince(ctx, since)
	if err != nil {
		return nil, err
	}

	ranked := bestScorePerUser(games)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// bestScorePerUser keeps each user's first entry. Input is ordered best score
// first with ties broken by earliest submission, so the kept entry is the
// user's best, and the output stays ranked.
func bestScorePerUser(games []*model.Game) []*model.Game {
	seen := make(map[int64]struct{}, len(games))
	ranked := make([]*model.Game, 0, len(games))
	for _, game := range games {
		if _, ok := seen[game.UserID]; ok {
			continue
		}
		seen[game.UserID] = struct{}{}
		ranked = append(ranked, game)
	}
	return ranked
}
