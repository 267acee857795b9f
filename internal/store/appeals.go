package store

import (
	"context"
	"database/sql"

	"ctr/internal/domain"
)

// InsertAppeal creates an appeal and returns its id.
func (q *Queries) InsertAppeal(ctx context.Context, app domain.Appeal) (int, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO appeals (app_time, app_matters, app_content, user_id, act_id, cmt_id, complainant_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		app.Time, app.Matters, app.Content,
		nullInt(app.UserID), nullInt(app.ActID), nullInt(app.CmtID), nullInt(app.ComplainantID))
	if err != nil {
		return 0, classify(err)
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// AppealsByPage returns limit appeals after offset, newest first when
// timeOrder is 0 and oldest first otherwise.
func (q *Queries) AppealsByPage(ctx context.Context, timeOrder, limit, offset int) ([]domain.Appeal, error) {
	order := "DESC"
	if timeOrder != 0 {
		order = "ASC"
	}
	rows, err := q.db.QueryContext(ctx,
		`SELECT app_id, app_time, app_matters, app_content, user_id, act_id, cmt_id, complainant_id
		FROM appeals ORDER BY app_time `+order+`, app_id `+order+` LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appeals []domain.Appeal
	for rows.Next() {
		var app domain.Appeal
		var userID, actID, cmtID, complainantID sql.NullInt64
		if err := rows.Scan(&app.ID, &app.Time, &app.Matters, &app.Content,
			&userID, &actID, &cmtID, &complainantID); err != nil {
			return nil, err
		}
		app.UserID = intPtr(userID)
		app.ActID = intPtr(actID)
		app.CmtID = intPtr(cmtID)
		app.ComplainantID = intPtr(complainantID)
		appeals = append(appeals, app)
	}
	return appeals, rows.Err()
}

// CountAppeals returns the number of appeals.
func (q *Queries) CountAppeals(ctx context.Context) (int, error) {
	var count int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM appeals`).Scan(&count)
	return count, err
}

// InsertAppealImage links a stored image to an appeal.
func (q *Queries) InsertAppealImage(ctx context.Context, img domain.AppealImage) (int, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO appeal_images (app_id, app_image) VALUES (?, ?)`, img.AppID, img.Path)
	if err != nil {
		return 0, classify(err)
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// AppealImages returns the images of an appeal in upload order.
func (q *Queries) AppealImages(ctx context.Context, appID int) ([]domain.AppealImage, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT app_img_id, app_id, app_image FROM appeal_images WHERE app_id = ? ORDER BY app_img_id`, appID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.AppealImage
	for rows.Next() {
		var img domain.AppealImage
		if err := rows.Scan(&img.ID, &img.AppID, &img.Path); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
