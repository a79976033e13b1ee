package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/millionaire/internal/services/millionaire/domain/question"
)

// DefaultTimeLimit bounds how long a game may stay in progress.
const DefaultTimeLimit = time.Hour

// Shuffler permutes answer slots for a new game question.
type Shuffler interface {
	Perm(n int) []int
}

// Rules holds the prize table and time limit the state machine runs against.
type Rules struct {
	Prizes    PrizeTable
	TimeLimit time.Duration // <= 0 disables the limit
}

// DefaultRules returns the standard 15-level game with a one hour limit.
func DefaultRules() Rules {
	return Rules{
		Prizes:    DefaultPrizeTable(),
		TimeLimit: DefaultTimeLimit,
	}
}

// Outcome is the result of one transition. Credit is the amount to add to
// the player's balance in the same unit of work, and is zero unless the move
// finished the game with a positive prize.
type Outcome struct {
	Game    Game
	Correct bool
	Credit  int64
}

// Status derives the game status from stored fields only.
func (r Rules) Status(g Game) Status {
	switch {
	case g.FinishedAt == nil:
		return StatusInProgress
	case g.IsFailed && r.exceeded(g.FinishedAt.Sub(g.CreatedAt)):
		return StatusTimeout
	case g.IsFailed:
		return StatusFail
	case g.CurrentLevel > r.Prizes.MaxLevel():
		return StatusWon
	default:
		return StatusMoney
	}
}

// TimedOut reports whether the time limit had elapsed at now.
func (r Rules) TimedOut(g Game, now time.Time) bool {
	return r.exceeded(now.Sub(g.CreatedAt))
}

func (r Rules) exceeded(elapsed time.Duration) bool {
	return r.TimeLimit > 0 && elapsed > r.TimeLimit
}

// Start builds a new in-progress game from one pick per level.
func (r Rules) Start(gameID, userID string, picks []question.Pick, shuffle Shuffler, now time.Time) (Game, error) {
	gameID = strings.TrimSpace(gameID)
	userID = strings.TrimSpace(userID)
	if gameID == "" {
		return Game{}, errors.New("game id is required")
	}
	if userID == "" {
		return Game{}, errors.New("user id is required")
	}
	if len(picks) != r.Prizes.Levels() {
		return Game{}, fmt.Errorf("%w: got %d questions for %d levels", ErrInsufficientQuestions, len(picks), r.Prizes.Levels())
	}

	questions := make([]GameQuestion, len(picks))
	for i, pick := range picks {
		if pick.Level != i {
			return Game{}, fmt.Errorf("question %d has level %d, want %d", i, pick.Level, i)
		}
		order, err := answerOrder(shuffle)
		if err != nil {
			return Game{}, err
		}
		questions[i] = GameQuestion{
			GameID:   gameID,
			Level:    pick.Level,
			Question: pick.Question,
			Order:    order,
		}
	}

	return Game{
		ID:        gameID,
		UserID:    userID,
		Questions: questions,
		CreatedAt: now.UTC(),
	}, nil
}

func answerOrder(shuffle Shuffler) ([question.AnswerCount]int, error) {
	order := [question.AnswerCount]int{0, 1, 2, 3}
	if shuffle == nil {
		return order, nil
	}
	perm := shuffle.Perm(question.AnswerCount)
	if len(perm) != question.AnswerCount {
		return order, fmt.Errorf("shuffle returned %d slots, want %d", len(perm), question.AnswerCount)
	}
	var seen [question.AnswerCount]bool
	for slot, idx := range perm {
		if idx < 0 || idx >= question.AnswerCount || seen[idx] {
			return order, fmt.Errorf("shuffle returned invalid permutation %v", perm)
		}
		seen[idx] = true
		order[slot] = idx
	}
	return order, nil
}

// Answer applies a submitted answer key to the current question.
//
// Any call after the time limit, whatever the key, fails the game as a timeout.
// Otherwise a wrong answer fails the game and keeps the guaranteed prize, and a
// correct answer on the last level wins the top prize. Terminal games and
// unknown keys are rejected without change.
func (r Rules) Answer(g Game, rawKey string, now time.Time) (Outcome, error) {
	if g.Finished() {
		return Outcome{Game: g}, ErrGameAlreadyFinished
	}
	if r.TimedOut(g, now) {
		return r.fail(g, now), nil
	}
	key, err := question.ParseAnswerKey(rawKey)
	if err != nil {
		return Outcome{Game: g}, err
	}
	current, ok := g.CurrentGameQuestion()
	if !ok {
		return Outcome{Game: g}, fmt.Errorf("game %s has no question at level %d", g.ID, g.CurrentLevel)
	}

	if !current.AnswerCorrect(key) {
		return r.fail(g, now), nil
	}

	g.CurrentLevel++
	if g.CurrentLevel > r.Prizes.MaxLevel() {
		won := g.finish(r.Prizes.Top(), false, now)
		return Outcome{Game: won, Correct: true, Credit: won.Prize}, nil
	}
	return Outcome{Game: g, Correct: true}, nil
}

// TakeMoney ends the game keeping the prize of the last answered level. A game
// past its time limit is closed as a timeout instead.
func (r Rules) TakeMoney(g Game, now time.Time) (Outcome, error) {
	if g.Finished() {
		return Outcome{Game: g}, ErrGameAlreadyFinished
	}
	if r.TimedOut(g, now) {
		return r.fail(g, now), nil
	}
	done := g.finish(r.Prizes.Amount(g.PreviousLevel()), false, now)
	return Outcome{Game: done, Credit: done.Prize}, nil
}

// Expire closes an in-progress game that ran past its time limit. It reports
// false when the game is finished or still within the limit.
func (r Rules) Expire(g Game, now time.Time) (Outcome, bool) {
	if g.Finished() || !r.TimedOut(g, now) {
		return Outcome{Game: g}, false
	}
	return r.fail(g, now), true
}

func (r Rules) fail(g Game, now time.Time) Outcome {
	failed := g.finish(r.Prizes.Guaranteed(g.PreviousLevel()), true, now)
	return Outcome{Game: failed, Credit: failed.Prize}
}
