package question

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MinLevel is the easiest difficulty level.
	MinLevel = 0
	// MaxLevel is the hardest difficulty level.
	MaxLevel = 14
	// LevelCount is the number of levels, and so questions, in one game.
	LevelCount = MaxLevel - MinLevel + 1
	// AnswerCount is the number of answer options per question.
	AnswerCount = 4
)

// AnswerKey designates one answer slot.
type AnswerKey string

// Recognized answer keys in display order.
const (
	KeyA AnswerKey = "A"
	KeyB AnswerKey = "B"
	KeyC AnswerKey = "C"
	KeyD AnswerKey = "D"
)

// Keys lists every answer key in slot order.
var Keys = [AnswerCount]AnswerKey{KeyA, KeyB, KeyC, KeyD}

// ErrInvalidAnswerKey indicates a key outside A-D.
var ErrInvalidAnswerKey = errors.New("invalid answer key")

// ParseAnswerKey normalizes raw input ("b", " B ") into an AnswerKey.
func ParseAnswerKey(raw string) (AnswerKey, error) {
	key := AnswerKey(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := key.Index(); !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidAnswerKey, raw)
	}
	return key, nil
}

// Index returns the zero-based slot for the key.
func (k AnswerKey) Index() (int, bool) {
	for i, key := range Keys {
		if key == k {
			return i, true
		}
	}
	return 0, false
}

// Question is one catalogue entry.
type Question struct {
	ID      string
	Text    string
	Answers [AnswerCount]string
	Correct AnswerKey
	Level   int
}

// Validate checks that the question is playable.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return errors.New("question text is required")
	}
	for i, answer := range q.Answers {
		if strings.TrimSpace(answer) == "" {
			return fmt.Errorf("answer %s is required", Keys[i])
		}
	}
	if _, ok := q.Correct.Index(); !ok {
		return fmt.Errorf("%w: correct key %q", ErrInvalidAnswerKey, q.Correct)
	}
	if q.Level < MinLevel || q.Level > MaxLevel {
		return fmt.Errorf("level %d out of range [%d, %d]", q.Level, MinLevel, MaxLevel)
	}
	return nil
}
