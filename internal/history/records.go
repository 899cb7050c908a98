package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// User is an account row.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Step is one (guess, feedback) pair as logged.
type Step struct {
	Word     string `json:"word"`
	Feedback string `json:"feedback"`
}

// Suggestion is one answered suggestion request.
type Suggestion struct {
	UserID     string    `json:"-"`
	SessionID  string    `json:"sessionId,omitempty"`
	Feedback   []Step    `json:"feedbackHistory"`
	Suggestion string    `json:"suggestion"`
	Remaining  int       `json:"remainingCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Result is a finished practice game.
type Result struct {
	GameID    string    `json:"gameId"`
	UserID    string    `json:"-"`
	Answer    string    `json:"answer"`
	Daily     string    `json:"daily,omitempty"`
	Guesses   int       `json:"guesses"`
	Won       bool      `json:"won"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary aggregates practice results.
type Summary struct {
	Played      int     `json:"played"`
	Won         int     `json:"won"`
	MeanGuesses float64 `json:"meanGuesses"` // over won games
}

const timeLayout = "2006-01-02T15:04:05.000Z"

// CreateUser inserts u. A taken username yields ErrDuplicate.
func (d *DB) CreateUser(ctx context.Context, u User) error {
	_, err := d.SQL.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt.UTC().Format(time.RFC3339))
	if isUnique(err) {
		return ErrDuplicate
	}
	return err
}

// UserByUsername looks a user up case-insensitively.
func (d *DB) UserByUsername(ctx context.Context, username string) (*User, error) {
	return scanUser(d.SQL.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username=?`, username))
}

// UserByID looks a user up by ID.
func (d *DB) UserByID(ctx context.Context, id string) (*User, error) {
	return scanUser(d.SQL.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id=?`, id))
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}

// RecordSuggestion appends s to the suggestion log.
func (d *DB) RecordSuggestion(ctx context.Context, s Suggestion) error {
	fb, err := json.Marshal(s.Feedback)
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}
	_, err = d.SQL.ExecContext(ctx,
		`INSERT INTO suggestions (user_id, session_id, feedback, suggestion, remaining) VALUES (?,?,?,?,?)`,
		nullable(s.UserID), s.SessionID, string(fb), s.Suggestion, s.Remaining)
	return err
}

// Suggestions returns a user's most recent suggestions, newest first.
func (d *DB) Suggestions(ctx context.Context, userID string, limit int) ([]Suggestion, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.SQL.QueryContext(ctx, `
        SELECT session_id, feedback, suggestion, remaining, created_at
        FROM suggestions
        WHERE user_id=?
        ORDER BY id DESC
        LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Suggestion, 0, limit)
	for rows.Next() {
		var s Suggestion
		var fb, created string
		if err := rows.Scan(&s.SessionID, &fb, &s.Suggestion, &s.Remaining, &created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(fb), &s.Feedback); err != nil {
			return nil, fmt.Errorf("decode feedback: %w", err)
		}
		s.UserID = userID
		s.CreatedAt, _ = time.Parse(timeLayout, created)
		out = append(out, s)
	}
	return out, rows.Err()
}

// RecordResult stores a finished practice game. Re-recording a game is a no-op.
func (d *DB) RecordResult(ctx context.Context, r Result) error {
	_, err := d.SQL.ExecContext(ctx, `
        INSERT OR IGNORE INTO practice_results (game_id, user_id, answer, daily, guesses, won)
        VALUES (?,?,?,?,?,?)`,
		r.GameID, nullable(r.UserID), r.Answer, r.Daily, r.Guesses, r.Won)
	return err
}

// Results returns a user's practice results, newest first.
func (d *DB) Results(ctx context.Context, userID string, limit int) ([]Result, error) {
	return d.queryResults(ctx, `
        SELECT game_id, COALESCE(user_id,''), answer, daily, guesses, won, created_at
        FROM practice_results
        WHERE user_id=?
        ORDER BY created_at DESC, rowid DESC
        LIMIT ?`, userID, limit)
}

// Leaderboard returns the best won games for a daily date key:
// fewest guesses first, then earliest.
func (d *DB) Leaderboard(ctx context.Context, date string, limit int) ([]Result, error) {
	return d.queryResults(ctx, `
        SELECT game_id, COALESCE(user_id,''), answer, daily, guesses, won, created_at
        FROM practice_results
        WHERE daily=? AND won=1
        ORDER BY guesses ASC, created_at ASC, rowid ASC
        LIMIT ?`, date, limit)
}

func (d *DB) queryResults(ctx context.Context, q, key string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.SQL.QueryContext(ctx, q, key, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var r Result
		var created string
		if err := rows.Scan(&r.GameID, &r.UserID, &r.Answer, &r.Daily, &r.Guesses, &r.Won, &created); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(timeLayout, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Summarize aggregates every recorded practice result.
func (d *DB) Summarize(ctx context.Context) (Summary, error) {
	var s Summary
	var mean sql.NullFloat64
	err := d.SQL.QueryRowContext(ctx, `
        SELECT COUNT(1),
               COALESCE(SUM(won), 0),
               AVG(CASE WHEN won=1 THEN guesses END)
        FROM practice_results`).Scan(&s.Played, &s.Won, &mean)
	s.MeanGuesses = mean.Float64
	return s, err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
