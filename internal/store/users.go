package store

import (
	"context"
	"database/sql"
	"errors"

	"ctr/internal/domain"
)

// InsertUser creates a user and returns its id.
func (q *Queries) InsertUser(ctx context.Context, user domain.User) (int, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO users (user_name, role, prohibited) VALUES (?, ?, ?)`,
		user.Name, user.Role, user.Prohibited)
	if err != nil {
		return 0, classify(err)
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// GetUser returns the user with the given id, or nil if there is none.
func (q *Queries) GetUser(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	err := q.db.QueryRowContext(ctx,
		`SELECT user_id, user_name, role, prohibited FROM users WHERE user_id = ?`, id).
		Scan(&user.ID, &user.Name, &user.Role, &user.Prohibited)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns up to limit users ordered by id, skipping offset.
func (q *Queries) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT user_id, user_name, role, prohibited FROM users ORDER BY user_id LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Role, &user.Prohibited); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// CountUsers returns the number of users.
func (q *Queries) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// SetUserProhibited updates a user's prohibited flag.
func (q *Queries) SetUserProhibited(ctx context.Context, id int, prohibited bool) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET prohibited = ? WHERE user_id = ?`, prohibited, id)
	return classify(err)
}

// InsertActivity creates an activity and returns its id.
func (q *Queries) InsertActivity(ctx context.Context, act domain.Activity) (int, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO activities (act_name, act_time) VALUES (?, ?)`, act.Name, act.Time)
	if err != nil {
		return 0, classify(err)
	}
	id, err := res.LastInsertId()
	return int(id), err
}
