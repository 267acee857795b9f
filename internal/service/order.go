package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"ctr/internal/domain"
	"ctr/internal/store"
)

// OrderService handles appeals and moderation orders.
type OrderService struct {
	queries *store.Queries
	images  *ImageStore
}

// NewOrderService creates a new OrderService
func NewOrderService(q *store.Queries, images *ImageStore) *OrderService {
	return &OrderService{queries: q, images: images}
}

// AddAppeal files a complaint against exactly one user, comment or activity
// and stores any attached images.
func (s *OrderService) AddAppeal(ctx context.Context, req domain.AddAppealRequest) error {
	var matters int
	switch {
	case req.UserID != nil && req.CmtID == nil && req.ActID == nil:
		user, err := s.queries.GetUser(ctx, *req.UserID)
		if err != nil {
			return fmt.Errorf("get reported user: %w", err)
		}
		if user == nil {
			return ErrReportedMissing
		}
		matters = domain.MatterUser
		if user.Role == domain.RoleClubManager {
			matters = domain.MatterClubManager
		}
	case req.UserID == nil && req.CmtID != nil && req.ActID == nil:
		matters = domain.MatterComment
	case req.UserID == nil && req.CmtID == nil && req.ActID != nil:
		matters = domain.MatterActivity
	default:
		return ErrInvalidTargets
	}

	// Two missing ids count as the same person.
	if sameID(req.UserID, req.ComplainantID) {
		return ErrSelfComplaint
	}
	if req.Content == "" {
		return ErrAppealEmpty
	}
	if utf8.RuneCountInString(req.Content) > MaxContentLength {
		return ErrAppealTooLong
	}

	appeal := domain.Appeal{
		Time:          req.Time,
		Matters:       matters,
		Content:       req.Content,
		UserID:        req.UserID,
		ActID:         req.ActID,
		CmtID:         req.CmtID,
		ComplainantID: req.ComplainantID,
	}

	appID, err := s.queries.InsertAppeal(ctx, appeal)
	if err != nil {
		return err
	}
	return s.processAppealImages(ctx, appID, req.Images)
}

func (s *OrderService) processAppealImages(ctx context.Context, appID int, images []domain.UploadedImage) error {
	for _, img := range images {
		path, err := s.images.Save(img.Name, img.Body)
		if err != nil {
			return err
		}
		if _, err := s.queries.InsertAppealImage(ctx, domain.AppealImage{AppID: appID, Path: path}); err != nil {
			return err
		}
	}
	return nil
}

// GetAppealPage returns appeals begin..end (1-based, inclusive) ordered by
// time, newest first when timeOrder is 0.
func (s *OrderService) GetAppealPage(ctx context.Context, timeOrder, begin, end int) (*domain.AppealPage, error) {
	if begin < 1 || end < begin {
		return nil, ErrInvalidPage
	}

	appeals, err := s.queries.AppealsByPage(ctx, timeOrder, end-begin+1, begin-1)
	if err != nil {
		return nil, fmt.Errorf("list appeals: %w", err)
	}

	details := make([]domain.AppealDetail, 0, len(appeals))
	for _, app := range appeals {
		stored, err := s.queries.AppealImages(ctx, app.ID)
		if err != nil {
			return nil, fmt.Errorf("list images of appeal %d: %w", app.ID, err)
		}
		images := make([]string, 0, len(stored))
		for _, img := range stored {
			encoded, err := s.images.Load(img.Path)
			if err != nil {
				return nil, err
			}
			images = append(images, encoded)
		}

		cmtText := ""
		if app.CmtID != nil {
			cmtText = fmt.Sprint(*app.CmtID)
		}
		details = append(details, domain.AppealDetail{Appeal: app, CmtIDText: cmtText, Images: images})
	}

	total, err := s.queries.CountAppeals(ctx)
	if err != nil {
		return nil, fmt.Errorf("count appeals: %w", err)
	}
	return &domain.AppealPage{Total: total, Appeals: details}, nil
}

func sameID(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
