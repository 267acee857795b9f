package service

import (
	"context"
	"unicode/utf8"

	"ctr/internal/domain"
	"ctr/internal/store"
)

// CommunicateService manages comments under activities.
type CommunicateService struct {
	queries *store.Queries
}

// NewCommunicateService creates a new CommunicateService
func NewCommunicateService(q *store.Queries) *CommunicateService {
	return &CommunicateService{queries: q}
}

// AddComment posts a top-level comment. Unknown users or activities surface
// as constraint violations from the store.
func (s *CommunicateService) AddComment(ctx context.Context, req domain.AddCommentRequest) error {
	if req.Content == "" {
		return ErrCommentEmpty
	}
	if utf8.RuneCountInString(req.Content) >= MaxContentLength {
		return ErrCommentTooLong
	}

	_, err := s.queries.InsertComment(ctx, domain.Comment{
		Content:  req.Content,
		Time:     req.Time,
		ActID:    req.ActID,
		UserID:   req.UserID,
		ParentID: 0,
	})
	return err
}
