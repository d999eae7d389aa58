package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/playscore/backend/internal/model"
)

// fakeStore is an in-memory stand-in for the postgres repositories.
type fakeStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
	tokens map[tokenKey]*model.UserToken
	games  []*model.Game
}

type tokenKey struct {
	userID  int64
	purpose model.TokenPurpose
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[int64]*model.User),
		tokens: make(map[tokenKey]*model.UserToken),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Username == user.Username {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}

	f.nextID++
	stored := *user
	stored.ID = f.nextID
	stored.CreatedOn = time.Now()
	f.users[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Username == username && !user.IsDeleted {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) GetUserByID(_ context.Context, userID int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok || user.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStore) ListUsers(_ context.Context) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var users []*model.User
	for _, user := range f.users {
		if !user.IsDeleted {
			copied := *user
			users = append(users, &copied)
		}
	}
	return users, nil
}

func (f *fakeStore) UpdateUser(_ context.Context, user *model.User) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.users[user.ID]
	if !ok || stored.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	f.users[user.ID] = &copied
	result := copied
	return &result, nil
}

func (f *fakeStore) UpdateUserPassword(_ context.Context, userID int64, hash, salt []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok || user.IsDeleted {
		return pgx.ErrNoRows
	}
	user.PasswordHash = hash
	user.PasswordSalt = salt
	return nil
}

func (f *fakeStore) SetUserAdminStatus(_ context.Context, userID int64, isAdmin bool) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok || user.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	user.IsAdmin = isAdmin
	copied := *user
	return &copied, nil
}

func (f *fakeStore) SetUserAvatar(_ context.Context, userID int64, avatar int) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok || user.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	user.Avatar = avatar
	copied := *user
	return &copied, nil
}

func (f *fakeStore) SetSuperAdmin(_ context.Context, userID int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok || user.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	user.IsAdmin = true
	user.IsStaff = true
	copied := *user
	return &copied, nil
}

func (f *fakeStore) ReplaceUserToken(_ context.Context, token *model.UserToken) (*model.UserToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	stored := *token
	stored.ID = f.nextID
	stored.CreatedOn = time.Now()
	f.tokens[tokenKey{token.UserID, token.Purpose}] = &stored
	copied := stored
	return &copied, nil
}

func (f *fakeStore) GetUserToken(_ context.Context, userID int64, purpose model.TokenPurpose) (*model.UserToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	token, ok := f.tokens[tokenKey{userID, purpose}]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *token
	return &copied, nil
}

func (f *fakeStore) ConsumeUserToken(_ context.Context, userID int64, purpose model.TokenPurpose, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := tokenKey{userID, purpose}
	token, ok := f.tokens[key]
	if !ok || token.Code != code {
		return false, nil
	}
	delete(f.tokens, key)
	return true, nil
}

func (f *fakeStore) CreateGame(_ context.Context, userID int64, score int) (*model.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	game := &model.Game{
		ID:        f.nextID,
		UserID:    userID,
		Score:     score,
		CreatedOn: time.Now(),
	}
	f.games = append(f.games, game)
	copied := *game
	return &copied, nil
}

func (f *fakeStore) GetGameByID(_ context.Context, gameID int64) (*model.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, game := range f.games {
		if game.ID == gameID {
			copied := *game
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) ListGamesByUser(_ context.Context, userID int64) ([]*model.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var games []*model.Game
	for _, game := range f.games {
		if game.UserID == userID {
			copied := *game
			games = append(games, &copied)
		}
	}
	return games, nil
}

func (f *fakeStore) ListGames(_ context.Context) ([]*model.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	games := make([]*model.Game, 0, len(f.games))
	for _, game := range f.games {
		copied := *game
		games = append(games, &copied)
	}
	return games, nil
}

func (f *fakeStore) ListGamesSince(_ context.Context, since time.Time) ([]*model.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var games []*model.Game
	for _, game := range f.games {
		if !game.CreatedOn.Before(since) {
			copied := *game
			games = append(games, &copied)
		}
	}
	// score desc, ties by earliest submission, matching the SQL ordering
	sort.SliceStable(games, func(i, j int) bool {
		if games[i].Score != games[j].Score {
			return games[i].Score > games[j].Score
		}
		return games[i].CreatedOn.Before(games[j].CreatedOn)
	})
	return games, nil
}

type fakeMailer struct {
	mu    sync.Mutex
	sent  []string
	codes []string
}

func (f *fakeMailer) SendPasswordReset(_ context.Context, to, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	f.codes = append(f.codes, code)
	return nil
}
