package game

import (
	"time"

	"github.com/louisbranch/millionaire/internal/services/millionaire/domain/question"
)

// Status is the derived lifecycle state of a game.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusFail       Status = "fail"
	StatusTimeout    Status = "timeout"
	StatusMoney      Status = "money"
)

// Terminal reports whether the status accepts no further moves.
func (s Status) Terminal() bool {
	return s != StatusInProgress
}

// GameQuestion places a question at one level of a game. Order maps each
// display slot to the index of the question answer shown there, so the same
// question reads differently across games.
type GameQuestion struct {
	GameID   string
	Level    int
	Question question.Question
	Order    [question.AnswerCount]int
}

// Variants returns the answer texts in display order.
func (gq GameQuestion) Variants() [question.AnswerCount]string {
	var variants [question.AnswerCount]string
	for slot, idx := range gq.Order {
		variants[slot] = gq.Question.Answers[idx]
	}
	return variants
}

// CorrectAnswerKey returns the display key of the correct answer.
func (gq GameQuestion) CorrectAnswerKey() question.AnswerKey {
	correct, _ := gq.Question.Correct.Index()
	for slot, idx := range gq.Order {
		if idx == correct {
			return question.Keys[slot]
		}
	}
	return ""
}

// AnswerCorrect reports whether key picks the correct display slot.
func (gq GameQuestion) AnswerCorrect(key question.AnswerKey) bool {
	return key != "" && key == gq.CorrectAnswerKey()
}

// Game is one playthrough.
type Game struct {
	ID           string
	UserID       string
	Questions    []GameQuestion // ordered by level
	CurrentLevel int
	FinishedAt   *time.Time
	IsFailed     bool
	CreatedAt    time.Time
	Prize        int64
}

// Finished reports whether the game reached a terminal outcome.
func (g Game) Finished() bool {
	return g.FinishedAt != nil
}

// CurrentGameQuestion returns the question at CurrentLevel.
func (g Game) CurrentGameQuestion() (GameQuestion, bool) {
	return g.questionAt(g.CurrentLevel)
}

// PreviousGameQuestion returns the question most recently answered correctly.
func (g Game) PreviousGameQuestion() (GameQuestion, bool) {
	return g.questionAt(g.PreviousLevel())
}

// PreviousLevel returns CurrentLevel-1, which is -1 before the first answer.
func (g Game) PreviousLevel() int {
	return g.CurrentLevel - 1
}

func (g Game) questionAt(level int) (GameQuestion, bool) {
	if level < 0 || level >= len(g.Questions) {
		return GameQuestion{}, false
	}
	return g.Questions[level], true
}

func (g Game) finish(prize int64, failed bool, now time.Time) Game {
	finishedAt := now.UTC()
	g.FinishedAt = &finishedAt
	g.IsFailed = failed
	g.Prize = prize
	return g
}
