package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	repo   domain.Repository
	logger *zerolog.Logger
	now    func() time.Time
}

func NewRequestService(repo domain.Repository, logger *zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, logger: logger, now: time.Now}
}

func (s *RequestService) Create(ctx context.Context, requesterID int64, description string) (*models.Request, error) {
	requester, err := s.repo.GetUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(description) == "" {
		return nil, domain.NewFieldValidation("description", "description is required")
	}

	request := &models.Request{
		Description: description,
		RequesterID: requester.ID,
		Created:     s.now(),
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *RequestService) GetOwn(ctx context.Context, requesterID int64) ([]*models.RequestView, error) {
	if _, err := s.repo.GetUser(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.GetRequestsByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, requests)
}

func (s *RequestService) GetFromOthers(ctx context.Context, requesterID int64, page models.Page) ([]*models.RequestView, error) {
	if _, err := s.repo.GetUser(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.GetRequestsFromOthers(ctx, requesterID, page)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, requests)
}

func (s *RequestService) GetByID(ctx context.Context, requestID, userID int64) (*models.RequestView, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	views, err := s.toViews(ctx, []*models.Request{request})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// toViews attaches the items answering each request.
func (s *RequestService) toViews(ctx context.Context, requests []*models.Request) ([]*models.RequestView, error) {
	views := make([]*models.RequestView, 0, len(requests))
	for _, r := range requests {
		items, err := s.repo.GetItemsByRequest(ctx, r.ID)
		if err != nil {
			return nil, err
		}

		view := &models.RequestView{Request: *r, Items: []models.Item{}}
		for _, item := range items {
			view.Items = append(view.Items, *item)
		}
		views = append(views, view)
	}
	return views, nil
}
