package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/millionaire/internal/services/millionaire/domain/question"
)

const questionColumns = `id, level, text, answer_a, answer_b, answer_c, answer_d, correct_key`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (question.Question, error) {
	var q question.Question
	var correct string
	if err := row.Scan(
		&q.ID,
		&q.Level,
		&q.Text,
		&q.Answers[0],
		&q.Answers[1],
		&q.Answers[2],
		&q.Answers[3],
		&correct,
	); err != nil {
		return question.Question{}, err
	}
	q.Correct = question.AnswerKey(correct)
	return q, nil
}

func questionsByLevel(ctx context.Context, q querier, level int) ([]question.Question, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+questionColumns+`
		   FROM questions
		  WHERE level = ?
		  ORDER BY id ASC`,
		level,
	)
	if err != nil {
		return nil, fmt.Errorf("list level %d questions: %w", level, err)
	}
	defer rows.Close()

	var questions []question.Question
	for rows.Next() {
		item, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list level %d questions: %w", level, err)
	}
	return questions, nil
}

// QuestionsByLevel returns every catalogue question tagged with level.
func (s *Store) QuestionsByLevel(ctx context.Context, level int) ([]question.Question, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return questionsByLevel(ctx, s.sqlDB, level)
}

// QuestionsByLevel reads candidates inside the transaction.
func (t txStore) QuestionsByLevel(ctx context.Context, level int) ([]question.Question, error) {
	return questionsByLevel(ctx, t.q, level)
}

// PutQuestions inserts catalogue questions in one transaction. Questions are
// immutable once stored: an id that already exists keeps its original row, so
// games built from it are never re-graded. Edited questions need a new id.
func (s *Store) PutQuestions(ctx context.Context, questions []question.Question) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	for i, q := range questions {
		if strings.TrimSpace(q.ID) == "" {
			return fmt.Errorf("question %d: id is required", i)
		}
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %s: %w", q.ID, err)
		}
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put questions: %w", err)
	}
	for _, q := range questions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO questions (`+questionColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (id) DO NOTHING`,
			strings.TrimSpace(q.ID),
			q.Level,
			strings.TrimSpace(q.Text),
			q.Answers[0],
			q.Answers[1],
			q.Answers[2],
			q.Answers[3],
			string(q.Correct),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("put question %s: %w", q.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put questions: %w", err)
	}
	return nil
}

// CountQuestionsByLevel reports how many questions each level holds.
func (s *Store) CountQuestionsByLevel(ctx context.Context) (map[int]int, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT level, COUNT(*) FROM questions GROUP BY level`)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var level, count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, fmt.Errorf("count questions: %w", err)
		}
		counts[level] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	return counts, nil
}
