package game

import (
	"errors"
	"fmt"

	"github.com/louisbranch/millionaire/internal/services/millionaire/domain/question"
)

var (
	// ErrGameAlreadyFinished indicates a mutation on a terminal game.
	ErrGameAlreadyFinished = errors.New("game already finished")
	// ErrInvalidAnswerKey indicates a submitted key outside A-D.
	ErrInvalidAnswerKey = question.ErrInvalidAnswerKey
	// ErrInsufficientQuestions indicates the pool cannot fill every level.
	ErrInsufficientQuestions = question.ErrInsufficientQuestions
)

// GameInProgressError rejects starting a second unfinished game for a user.
type GameInProgressError struct {
	GameID string
}

func (e *GameInProgressError) Error() string {
	if e.GameID == "" {
		return "game in progress"
	}
	return fmt.Sprintf("game in progress: %s", e.GameID)
}
