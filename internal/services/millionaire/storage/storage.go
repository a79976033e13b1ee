// Package storage defines persistence contracts for the millionaire service.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/millionaire/internal/services/millionaire/domain/game"
	"github.com/louisbranch/millionaire/internal/services/millionaire/domain/question"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrActiveGameExists indicates the user already has an unfinished game.
	ErrActiveGameExists = errors.New("active game exists")
	// ErrInvalidPageToken indicates a malformed or foreign page token.
	ErrInvalidPageToken = errors.New("invalid page token")
)

// User is a player and their accumulated winnings.
type User struct {
	ID        string
	Name      string
	Balance   int64
	CreatedAt time.Time
}

// UserPage is one page of users ordered by balance.
type UserPage struct {
	Users         []User
	NextPageToken string
}

// QuestionStore reads and imports the question catalogue.
type QuestionStore interface {
	question.Source
	PutQuestions(ctx context.Context, questions []question.Question) error
	CountQuestionsByLevel(ctx context.Context) (map[int]int, error)
}

// UserStore persists players and balances.
type UserStore interface {
	GetUser(ctx context.Context, userID string) (User, error)
	CreditBalance(ctx context.Context, userID string, amount int64) error
}

// GameStore persists games with their question sets.
type GameStore interface {
	GetGame(ctx context.Context, gameID string) (game.Game, error)
	// ActiveGame returns the user's unfinished game or ErrNotFound.
	ActiveGame(ctx context.Context, userID string) (game.Game, error)
	CreateGame(ctx context.Context, g game.Game) error
	// UpdateGame writes progress fields; the question set is immutable.
	UpdateGame(ctx context.Context, g game.Game) error
}

// Tx is the unit of work every gameplay mutation runs in.
type Tx interface {
	question.Source
	UserStore
	GameStore
}

// Store is the full service persistence surface.
type Store interface {
	QuestionStore
	UserStore
	GameStore

	// WithinTx runs fn in one transaction, committing only when fn returns nil.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	PutUser(ctx context.Context, u User) error
	ListUserGames(ctx context.Context, userID string) ([]game.Game, error)
	ListUsersByBalance(ctx context.Context, pageSize int, pageToken string) (UserPage, error)
}
