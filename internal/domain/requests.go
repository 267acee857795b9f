package domain

import (
	"io"
	"time"
)

// AddCommentRequest carries a new top-level comment.
type AddCommentRequest struct {
	Content string
	Time    time.Time
	ActID   int
	UserID  int
}

// UploadedImage is an image attached to a request.
type UploadedImage struct {
	Name string
	Body io.Reader
}

// AddAppealRequest carries a new appeal. Exactly one of UserID, CmtID and
// ActID must be set.
type AddAppealRequest struct {
	Time          time.Time
	Content       string
	UserID        *int
	CmtID         *int
	ActID         *int
	ComplainantID *int
	Images        []UploadedImage
}
