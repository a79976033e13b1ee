package question

import (
	"context"
	"errors"
	"fmt"
)

// ErrInsufficientQuestions indicates a level has no candidate questions.
var ErrInsufficientQuestions = errors.New("insufficient questions")

// Source supplies the candidate questions for one level.
type Source interface {
	QuestionsByLevel(ctx context.Context, level int) ([]Question, error)
}

// Picker draws uniform integers in [0, n).
type Picker interface {
	IntN(n int) int
}

// InsufficientError reports the first level without candidates.
type InsufficientError struct {
	Level int
}

func (e *InsufficientError) Error() string {
	return fmt.Sprintf("insufficient questions: no question for level %d", e.Level)
}

// Unwrap lets errors.Is match ErrInsufficientQuestions.
func (e *InsufficientError) Unwrap() error {
	return ErrInsufficientQuestions
}

// Pick is one selected question and the level it fills.
type Pick struct {
	Level    int
	Question Question
}

// Select draws one question per level in [0, levels), ordered by level.
// It reads from src only and fails before returning partial results.
func Select(ctx context.Context, src Source, levels int, rng Picker) ([]Pick, error) {
	if src == nil {
		return nil, errors.New("question source is required")
	}
	if rng == nil {
		return nil, errors.New("random picker is required")
	}
	if levels <= 0 || levels > LevelCount {
		return nil, fmt.Errorf("level count %d out of range [1, %d]", levels, LevelCount)
	}

	picks := make([]Pick, 0, levels)
	for level := MinLevel; level < MinLevel+levels; level++ {
		candidates, err := src.QuestionsByLevel(ctx, level)
		if err != nil {
			return nil, fmt.Errorf("load level %d questions: %w", level, err)
		}
		if len(candidates) == 0 {
			return nil, &InsufficientError{Level: level}
		}
		picks = append(picks, Pick{
			Level:    level,
			Question: candidates[rng.IntN(len(candidates))],
		})
	}
	return picks, nil
}

// MemorySource is an in-memory Source keyed by level.
type MemorySource map[int][]Question

// NewMemorySource groups questions by level.
func NewMemorySource(questions []Question) MemorySource {
	src := make(MemorySource)
	for _, q := range questions {
		src[q.Level] = append(src[q.Level], q)
	}
	return src
}

// QuestionsByLevel implements Source.
func (m MemorySource) QuestionsByLevel(ctx context.Context, level int) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]Question(nil), m[level]...), nil
}
