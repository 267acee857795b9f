package store

import (
	"context"

	"ctr/internal/domain"
)

// InsertComment creates a comment and returns its id.
func (q *Queries) InsertComment(ctx context.Context, cmt domain.Comment) (int, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO comments (cmt_content, cmt_time, act_id, user_id, parent_id) VALUES (?, ?, ?, ?, ?)`,
		cmt.Content, cmt.Time, cmt.ActID, cmt.UserID, cmt.ParentID)
	if err != nil {
		return 0, classify(err)
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// CountComments returns the number of comments under an activity.
func (q *Queries) CountComments(ctx context.Context, actID int) (int, error) {
	var count int
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE act_id = ?`, actID).Scan(&count)
	return count, err
}
