package gameplay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/millionaire/internal/platform/id"
	"github.com/louisbranch/millionaire/internal/platform/money"
	"github.com/louisbranch/millionaire/internal/random"
	"github.com/louisbranch/millionaire/internal/services/millionaire/domain/game"
	"github.com/louisbranch/millionaire/internal/services/millionaire/domain/question"
	"github.com/louisbranch/millionaire/internal/services/millionaire/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/millionaire/internal/services/millionaire/gameplay"

var (
	// ErrGameNotFound hides missing games and games owned by someone else.
	ErrGameNotFound = errors.New("game not found")
	// ErrUserNotFound indicates the player is not registered.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserIDRequired indicates a call without a player identity.
	ErrUserIDRequired = errors.New("user id is required")
	// ErrUserNameRequired indicates a registration without a display name.
	ErrUserNameRequired = errors.New("user name is required")
)

// Randomness draws questions and shuffles answer slots.
type Randomness interface {
	question.Picker
	game.Shuffler
}

// Service is the gameplay entry point.
type Service struct {
	store       storage.Store
	rules       game.Rules
	rng         Randomness
	clock       func() time.Time
	idGenerator func() (string, error)
	tracer      trace.Tracer
	locks       userLocks
}

// Option customizes a Service.
type Option func(*Service)

// WithRules replaces the default prize table and time limit.
func WithRules(rules game.Rules) Option {
	return func(s *Service) { s.rules = rules }
}

// WithRandomness fixes the random source, typically a seeded one in tests.
func WithRandomness(rng Randomness) Option {
	return func(s *Service) { s.rng = rng }
}

// WithClock overrides time.Now.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithIDGenerator overrides game id generation.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(s *Service) { s.idGenerator = fn }
}

// NewService builds a gameplay service over store.
func NewService(store storage.Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	s := &Service{
		store:       store,
		rules:       game.DefaultRules(),
		clock:       time.Now,
		idGenerator: id.NewID,
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		src, err := random.NewSource()
		if err != nil {
			return nil, fmt.Errorf("seed random source: %w", err)
		}
		s.rng = src
	}
	if s.rules.Prizes.Levels() != question.LevelCount {
		return nil, fmt.Errorf("prize table has %d levels, want %d", s.rules.Prizes.Levels(), question.LevelCount)
	}
	return s, nil
}

// Rules returns the rules games are played under.
func (s *Service) Rules() game.Rules {
	return s.rules
}

// Status derives the status of g.
func (s *Service) Status(g game.Game) game.Status {
	return s.rules.Status(g)
}

func (s *Service) now() time.Time {
	return s.clock().UTC()
}

func (s *Service) startSpan(ctx context.Context, name string, userID string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "gameplay."+name, trace.WithAttributes(
		attribute.String("millionaire.user_id", userID),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// CreateGameForUser starts a new game with one random question per level.
// A previous game left unfinished past the time limit is closed as a timeout
// first; any other unfinished game yields a *game.GameInProgressError.
func (s *Service) CreateGameForUser(ctx context.Context, userID string) (created game.Game, err error) {
	userID = strings.TrimSpace(userID)
	ctx, span := s.startSpan(ctx, "CreateGameForUser", userID)
	defer func() { endSpan(span, err) }()
	if userID == "" {
		return game.Game{}, ErrUserIDRequired
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	gameID, err := s.idGenerator()
	if err != nil {
		return game.Game{}, fmt.Errorf("generate game id: %w", err)
	}
	now := s.now()

	err = s.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		if _, err := tx.GetUser(ctx, userID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		active, err := tx.ActiveGame(ctx, userID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
		case err != nil:
			return err
		default:
			outcome, expired := s.rules.Expire(active, now)
			if !expired {
				return &game.GameInProgressError{GameID: active.ID}
			}
			if err := commit(ctx, tx, outcome); err != nil {
				return err
			}
		}

		picks, err := question.Select(ctx, tx, s.rules.Prizes.Levels(), s.rng)
		if err != nil {
			return err
		}
		created, err = s.rules.Start(gameID, userID, picks, s.rng, now)
		if err != nil {
			return err
		}
		if err := tx.CreateGame(ctx, created); err != nil {
			if errors.Is(err, storage.ErrActiveGameExists) {
				inProgress := &game.GameInProgressError{}
				if existing, err := tx.ActiveGame(ctx, userID); err == nil {
					inProgress.GameID = existing.ID
				}
				return inProgress
			}
			return err
		}
		return nil
	})
	if err != nil {
		return game.Game{}, err
	}
	span.SetAttributes(attribute.String("millionaire.game_id", created.ID))
	return created, nil
}

// AnswerResult reports whether an answer was correct and the game after it.
type AnswerResult struct {
	Correct bool
	Game    game.Game
}

// AnswerCurrentQuestion submits key for the current question of gameID.
func (s *Service) AnswerCurrentQuestion(ctx context.Context, userID, gameID, key string) (result AnswerResult, err error) {
	userID = strings.TrimSpace(userID)
	ctx, span := s.startSpan(ctx, "AnswerCurrentQuestion", userID)
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String("millionaire.game_id", gameID))
	if userID == "" {
		return AnswerResult{}, ErrUserIDRequired
	}

	unlock := s.locks.lock(userID)
	defer unlock()
	now := s.now()

	err = s.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		g, err := ownedGame(ctx, tx, userID, gameID)
		if err != nil {
			return err
		}
		outcome, err := s.rules.Answer(g, key, now)
		if err != nil {
			return err
		}
		if err := commit(ctx, tx, outcome); err != nil {
			return err
		}
		result = AnswerResult{Correct: outcome.Correct, Game: outcome.Game}
		return nil
	})
	if err != nil {
		return AnswerResult{}, err
	}
	span.SetAttributes(
		attribute.Bool("millionaire.correct", result.Correct),
		attribute.String("millionaire.status", string(s.rules.Status(result.Game))),
	)
	return result, nil
}

// TakeMoney ends gameID and credits the prize of the last answered level.
func (s *Service) TakeMoney(ctx context.Context, userID, gameID string) (finished game.Game, err error) {
	userID = strings.TrimSpace(userID)
	ctx, span := s.startSpan(ctx, "TakeMoney", userID)
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String("millionaire.game_id", gameID))
	if userID == "" {
		return game.Game{}, ErrUserIDRequired
	}

	unlock := s.locks.lock(userID)
	defer unlock()
	now := s.now()

	err = s.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		g, err := ownedGame(ctx, tx, userID, gameID)
		if err != nil {
			return err
		}
		outcome, err := s.rules.TakeMoney(g, now)
		if err != nil {
			return err
		}
		if err := commit(ctx, tx, outcome); err != nil {
			return err
		}
		finished = outcome.Game
		return nil
	})
	if err != nil {
		return game.Game{}, err
	}
	span.SetAttributes(attribute.Int64("millionaire.prize", finished.Prize))
	return finished, nil
}

// commit persists a transition and its balance credit in the caller's tx.
func commit(ctx context.Context, tx storage.Tx, outcome game.Outcome) error {
	if err := tx.UpdateGame(ctx, outcome.Game); err != nil {
		return err
	}
	if outcome.Credit > 0 {
		if err := tx.CreditBalance(ctx, outcome.Game.UserID, outcome.Credit); err != nil {
			return fmt.Errorf("credit %d to %s: %w", outcome.Credit, outcome.Game.UserID, err)
		}
	}
	return nil
}

func ownedGame(ctx context.Context, store storage.GameStore, userID, gameID string) (game.Game, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return game.Game{}, ErrGameNotFound
	}
	g, err := store.GetGame(ctx, gameID)
	if errors.Is(err, storage.ErrNotFound) {
		return game.Game{}, ErrGameNotFound
	}
	if err != nil {
		return game.Game{}, err
	}
	if g.UserID != userID {
		return game.Game{}, ErrGameNotFound
	}
	return g, nil
}

// GetGame returns one of the player's games.
func (s *Service) GetGame(ctx context.Context, userID, gameID string) (game.Game, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return game.Game{}, ErrUserIDRequired
	}
	return ownedGame(ctx, s.store, userID, gameID)
}

// ListUserGames returns the player's games newest first.
func (s *Service) ListUserGames(ctx context.Context, userID string) ([]game.Game, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.store.ListUserGames(ctx, userID)
}

// EnsureUser registers userID or updates its name, keeping the balance.
func (s *Service) EnsureUser(ctx context.Context, userID, name string) (storage.User, error) {
	userID = strings.TrimSpace(userID)
	name = strings.TrimSpace(name)
	if userID == "" {
		return storage.User{}, ErrUserIDRequired
	}
	if name == "" {
		return storage.User{}, ErrUserNameRequired
	}
	if err := s.store.PutUser(ctx, storage.User{ID: userID, Name: name, CreatedAt: s.now()}); err != nil {
		return storage.User{}, err
	}
	return s.store.GetUser(ctx, userID)
}

// LeaderboardEntry is one ranked player.
type LeaderboardEntry struct {
	UserID           string
	Name             string
	Balance          int64
	FormattedBalance string
}

// LeaderboardPage is one page of the balance ranking.
type LeaderboardPage struct {
	Entries       []LeaderboardEntry
	NextPageToken string
}

// Leaderboard ranks players by balance, richest first, with balances
// formatted for locale.
func (s *Service) Leaderboard(ctx context.Context, pageSize int, pageToken string, locale string) (LeaderboardPage, error) {
	page, err := s.store.ListUsersByBalance(ctx, pageSize, pageToken)
	if err != nil {
		return LeaderboardPage{}, err
	}
	out := LeaderboardPage{
		Entries:       make([]LeaderboardEntry, 0, len(page.Users)),
		NextPageToken: page.NextPageToken,
	}
	for _, u := range page.Users {
		out.Entries = append(out.Entries, LeaderboardEntry{
			UserID:           u.ID,
			Name:             u.Name,
			Balance:          u.Balance,
			FormattedBalance: money.Format(locale, u.Balance),
		})
	}
	return out, nil
}
