package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/millionaire/internal/services/millionaire/domain/game"
	"github.com/louisbranch/millionaire/internal/services/millionaire/domain/question"
	"github.com/louisbranch/millionaire/internal/services/millionaire/storage"
)

const gameColumns = `id, user_id, current_level, is_failed, prize, created_at, finished_at`

func scanGame(row rowScanner) (game.Game, error) {
	var (
		g          game.Game
		isFailed   int
		createdAt  int64
		finishedAt sql.NullInt64
	)
	if err := row.Scan(&g.ID, &g.UserID, &g.CurrentLevel, &isFailed, &g.Prize, &createdAt, &finishedAt); err != nil {
		return game.Game{}, err
	}
	g.IsFailed = isFailed != 0
	g.CreatedAt = fromMillis(createdAt)
	if finishedAt.Valid {
		t := fromMillis(finishedAt.Int64)
		g.FinishedAt = &t
	}
	return g, nil
}

func finishedMillis(t *time.Time) any {
	if t == nil {
		return nil
	}
	return toMillis(*t)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// encodeOrder stores an answer order as four digits, e.g. "2031".
func encodeOrder(order [question.AnswerCount]int) string {
	var b strings.Builder
	for _, idx := range order {
		b.WriteByte(byte('0' + idx))
	}
	return b.String()
}

func decodeOrder(raw string) ([question.AnswerCount]int, error) {
	var order [question.AnswerCount]int
	if len(raw) != question.AnswerCount {
		return order, fmt.Errorf("invalid answer order %q", raw)
	}
	var seen [question.AnswerCount]bool
	for i := 0; i < question.AnswerCount; i++ {
		idx := int(raw[i] - '0')
		if idx < 0 || idx >= question.AnswerCount || seen[idx] {
			return order, fmt.Errorf("invalid answer order %q", raw)
		}
		seen[idx] = true
		order[i] = idx
	}
	return order, nil
}

func loadGameQuestions(ctx context.Context, q querier, g *game.Game) error {
	rows, err := q.QueryContext(ctx,
		`SELECT gq.level, gq.answer_order,
		        q.id, q.level, q.text, q.answer_a, q.answer_b, q.answer_c, q.answer_d, q.correct_key
		   FROM game_questions gq
		   JOIN questions q ON q.id = gq.question_id
		  WHERE gq.game_id = ?
		  ORDER BY gq.level ASC`,
		g.ID,
	)
	if err != nil {
		return fmt.Errorf("load game questions: %w", err)
	}
	defer rows.Close()

	g.Questions = g.Questions[:0]
	for rows.Next() {
		var (
			gq      game.GameQuestion
			order   string
			correct string
		)
		if err := rows.Scan(
			&gq.Level,
			&order,
			&gq.Question.ID,
			&gq.Question.Level,
			&gq.Question.Text,
			&gq.Question.Answers[0],
			&gq.Question.Answers[1],
			&gq.Question.Answers[2],
			&gq.Question.Answers[3],
			&correct,
		); err != nil {
			return fmt.Errorf("scan game question: %w", err)
		}
		gq.GameID = g.ID
		gq.Question.Correct = question.AnswerKey(correct)
		gq.Order, err = decodeOrder(order)
		if err != nil {
			return err
		}
		g.Questions = append(g.Questions, gq)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load game questions: %w", err)
	}
	return nil
}

func getGameWhere(ctx context.Context, q querier, where string, arg string) (game.Game, error) {
	g, err := scanGame(q.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE `+where,
		arg,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return game.Game{}, storage.ErrNotFound
	}
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if err := loadGameQuestions(ctx, q, &g); err != nil {
		return game.Game{}, err
	}
	return g, nil
}

func getGame(ctx context.Context, q querier, gameID string) (game.Game, error) {
	return getGameWhere(ctx, q, `id = ?`, strings.TrimSpace(gameID))
}

func activeGame(ctx context.Context, q querier, userID string) (game.Game, error) {
	return getGameWhere(ctx, q, `user_id = ? AND finished_at IS NULL`, strings.TrimSpace(userID))
}

func createGame(ctx context.Context, q querier, g game.Game) error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("game id is required")
	}
	if strings.TrimSpace(g.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if _, err := q.ExecContext(ctx,
		`INSERT INTO games (`+gameColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID,
		g.UserID,
		g.CurrentLevel,
		boolInt(g.IsFailed),
		g.Prize,
		toMillis(g.CreatedAt),
		finishedMillis(g.FinishedAt),
	); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrActiveGameExists
		}
		return fmt.Errorf("create game: %w", err)
	}
	for _, gq := range g.Questions {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO game_questions (game_id, level, question_id, answer_order) VALUES (?, ?, ?, ?)`,
			g.ID, gq.Level, gq.Question.ID, encodeOrder(gq.Order),
		); err != nil {
			return fmt.Errorf("create game question %d: %w", gq.Level, err)
		}
	}
	return nil
}

func updateGame(ctx context.Context, q querier, g game.Game) error {
	res, err := q.ExecContext(ctx,
		`UPDATE games
		    SET current_level = ?, is_failed = ?, prize = ?, finished_at = ?
		  WHERE id = ?`,
		g.CurrentLevel,
		boolInt(g.IsFailed),
		g.Prize,
		finishedMillis(g.FinishedAt),
		g.ID,
	)
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GetGame returns a game with its question set.
func (s *Store) GetGame(ctx context.Context, gameID string) (game.Game, error) {
	if err := s.ready(ctx); err != nil {
		return game.Game{}, err
	}
	return getGame(ctx, s.sqlDB, gameID)
}

// ActiveGame returns the user's unfinished game.
func (s *Store) ActiveGame(ctx context.Context, userID string) (game.Game, error) {
	if err := s.ready(ctx); err != nil {
		return game.Game{}, err
	}
	return activeGame(ctx, s.sqlDB, userID)
}

// CreateGame inserts a game and its question set atomically.
func (s *Store) CreateGame(ctx context.Context, g game.Game) error {
	return s.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.CreateGame(ctx, g)
	})
}

// UpdateGame writes the game's progress fields.
func (s *Store) UpdateGame(ctx context.Context, g game.Game) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return updateGame(ctx, s.sqlDB, g)
}

func (t txStore) GetGame(ctx context.Context, gameID string) (game.Game, error) {
	return getGame(ctx, t.q, gameID)
}

func (t txStore) ActiveGame(ctx context.Context, userID string) (game.Game, error) {
	return activeGame(ctx, t.q, userID)
}

func (t txStore) CreateGame(ctx context.Context, g game.Game) error {
	return createGame(ctx, t.q, g)
}

func (t txStore) UpdateGame(ctx context.Context, g game.Game) error {
	return updateGame(ctx, t.q, g)
}

// ListUserGames returns the user's games newest first.
func (s *Store) ListUserGames(ctx context.Context, userID string) ([]game.Game, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+gameColumns+` FROM games
		  WHERE user_id = ?
		  ORDER BY created_at DESC, id DESC`,
		strings.TrimSpace(userID),
	)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	var games []game.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("list games: %w", err)
	}
	_ = rows.Close()

	for i := range games {
		if err := loadGameQuestions(ctx, s.sqlDB, &games[i]); err != nil {
			return nil, err
		}
	}
	return games, nil
}
