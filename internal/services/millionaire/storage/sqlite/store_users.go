package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/louisbranch/millionaire/internal/services/millionaire/storage"
)

// PutUser registers a user or renames an existing one. Balances are only
// changed through CreditBalance.
func (s *Store) PutUser(ctx context.Context, u storage.User) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id := strings.TrimSpace(u.ID)
	if id == "" {
		return fmt.Errorf("user id is required")
	}
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return fmt.Errorf("user name is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO users (id, name, balance, created_at)
		 VALUES (?, ?, 0, ?)
		 ON CONFLICT (id) DO UPDATE SET name = excluded.name`,
		id, name, toMillis(u.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

func getUser(ctx context.Context, q querier, userID string) (storage.User, error) {
	var (
		u         storage.User
		createdAt int64
	)
	err := q.QueryRowContext(ctx,
		`SELECT id, name, balance, created_at FROM users WHERE id = ?`,
		strings.TrimSpace(userID),
	).Scan(&u.ID, &u.Name, &u.Balance, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.User{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.User{}, fmt.Errorf("get user: %w", err)
	}
	u.CreatedAt = fromMillis(createdAt)
	return u, nil
}

func creditBalance(ctx context.Context, q querier, userID string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive, got %d", amount)
	}
	res, err := q.ExecContext(ctx,
		`UPDATE users SET balance = balance + ? WHERE id = ?`,
		amount, strings.TrimSpace(userID),
	)
	if err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GetUser returns one user by id.
func (s *Store) GetUser(ctx context.Context, userID string) (storage.User, error) {
	if err := s.ready(ctx); err != nil {
		return storage.User{}, err
	}
	return getUser(ctx, s.sqlDB, userID)
}

// CreditBalance adds a positive amount to the user's balance.
func (s *Store) CreditBalance(ctx context.Context, userID string, amount int64) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return creditBalance(ctx, s.sqlDB, userID, amount)
}

func (t txStore) GetUser(ctx context.Context, userID string) (storage.User, error) {
	return getUser(ctx, t.q, userID)
}

func (t txStore) CreditBalance(ctx context.Context, userID string, amount int64) error {
	return creditBalance(ctx, t.q, userID, amount)
}

// ListUsersByBalance pages users richest first, ties broken by id.
func (s *Store) ListUsersByBalance(ctx context.Context, pageSize int, pageToken string) (storage.UserPage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.UserPage{}, err
	}
	if pageSize <= 0 {
		return storage.UserPage{}, fmt.Errorf("page size must be greater than zero")
	}

	var (
		rows *sql.Rows
		err  error
	)
	if strings.TrimSpace(pageToken) == "" {
		rows, err = s.sqlDB.QueryContext(ctx,
			`SELECT id, name, balance, created_at FROM users
			  ORDER BY balance DESC, id ASC
			  LIMIT ?`,
			pageSize+1,
		)
	} else {
		balance, id, perr := decodeUserToken(pageToken)
		if perr != nil {
			return storage.UserPage{}, perr
		}
		rows, err = s.sqlDB.QueryContext(ctx,
			`SELECT id, name, balance, created_at FROM users
			  WHERE balance < ? OR (balance = ? AND id > ?)
			  ORDER BY balance DESC, id ASC
			  LIMIT ?`,
			balance, balance, id, pageSize+1,
		)
	}
	if err != nil {
		return storage.UserPage{}, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	page := storage.UserPage{Users: make([]storage.User, 0, pageSize)}
	for rows.Next() {
		var (
			u         storage.User
			createdAt int64
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Balance, &createdAt); err != nil {
			return storage.UserPage{}, fmt.Errorf("scan user: %w", err)
		}
		u.CreatedAt = fromMillis(createdAt)
		page.Users = append(page.Users, u)
	}
	if err := rows.Err(); err != nil {
		return storage.UserPage{}, fmt.Errorf("list users: %w", err)
	}

	if len(page.Users) > pageSize {
		page.Users = page.Users[:pageSize]
		last := page.Users[pageSize-1]
		page.NextPageToken = encodeUserToken(last.Balance, last.ID)
	}
	return page, nil
}

func encodeUserToken(balance int64, id string) string {
	return strconv.FormatInt(balance, 10) + ":" + id
}

func decodeUserToken(token string) (int64, string, error) {
	rawBalance, id, ok := strings.Cut(strings.TrimSpace(token), ":")
	if !ok || id == "" {
		return 0, "", fmt.Errorf("%w: %q", storage.ErrInvalidPageToken, token)
	}
	balance, err := strconv.ParseInt(rawBalance, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %q", storage.ErrInvalidPageToken, token)
	}
	return balance, id, nil
}
