package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewItemService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

// GetByOwner assembles the owner's item list. Comments and bookings are
// bulk-fetched once and grouped by item id in memory, so the number of
// store calls does not depend on how many items the owner has.
func (s *ItemService) GetByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.ItemView, error) {
	comments, err := s.repo.GetCommentsByItemOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[int64][]models.CommentView)
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], *c)
	}

	bookings, err := s.repo.GetBookingsByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}
	bookingsByItem := make(map[int64][]*models.Booking)
	for _, b := range bookings {
		bookingsByItem[b.ItemID] = append(bookingsByItem[b.ItemID], b)
	}

	items, err := s.repo.GetItemsByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]*models.ItemView, 0, len(items))
	for _, item := range items {
		itemBookings := bookingsByItem[item.ID]
		views = append(views, &models.ItemView{
			Item:        *item,
			NextBooking: nextBooking(itemBookings, now).Short(),
			LastBooking: lastBooking(itemBookings, now).Short(),
			Comments:    commentViews(commentsByItem[item.ID]),
		})
	}
	return views, nil
}

// GetByID returns a single item view. Booking summaries are attached only
// when the caller owns the item; comments are visible to everyone.
func (s *ItemService) GetByID(ctx context.Context, id, userID int64) (*models.ItemView, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &models.ItemView{Item: *item}

	if item.OwnerID == userID {
		bookings, err := s.repo.GetBookingsByItem(ctx, id)
		if err != nil {
			return nil, err
		}
		now := s.now()
		view.NextBooking = nextBooking(bookings, now).Short()
		view.LastBooking = lastBooking(bookings, now).Short()
	}

	comments, err := s.repo.GetCommentsByItem(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Comments = commentViewsFromPtrs(comments)

	return view, nil
}

func (s *ItemService) Search(ctx context.Context, text string, page models.Page) ([]*models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*models.Item{}, nil
	}
	return s.repo.SearchItems(ctx, text, page)
}

func (s *ItemService) Create(ctx context.Context, ownerID int64, dto domain.CreateItemDto) (*models.Item, error) {
	owner, err := s.repo.GetUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if dto.Name == "" {
		return nil, domain.NewFieldValidation("name", "name is required")
	}
	if dto.Available == nil {
		return nil, domain.NewFieldValidation("available", "available is required")
	}

	item := &models.Item{
		Name:        dto.Name,
		Description: dto.Description,
		Available:   *dto.Available,
		OwnerID:     owner.ID,
	}

	if dto.RequestID != 0 {
		request, err := s.repo.GetRequest(ctx, dto.RequestID)
		if err != nil {
			return nil, err
		}
		item.RequestID = request.ID
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.publishItemEvent(events.EventItemCreated, item)
	return item, nil
}

// Update applies a partial update: only non-nil dto fields overwrite the
// stored values. A non-owner gets NotFound, not a permission error.
func (s *ItemService) Update(ctx context.Context, id, ownerID int64, dto domain.UpdateItemDto) (*models.Item, error) {
	user, err := s.repo.GetUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if item.OwnerID != user.ID {
		return nil, domain.NewNotFound("item", id)
	}

	if dto.Name != nil {
		item.Name = *dto.Name
	}
	if dto.Description != nil {
		item.Description = *dto.Description
	}
	if dto.Available != nil {
		item.Available = *dto.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes the item and returns its last known view, captured
// before removal.
func (s *ItemService) Delete(ctx context.Context, id int64) (*models.ItemView, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := &models.ItemView{Item: *item, Comments: []models.CommentView{}}

	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return nil, err
	}

	s.publishItemEvent(events.EventItemDeleted, item)
	return snapshot, nil
}

// AddComment persists a comment if the author has at least one booking of
// this item that ended before now. The creation timestamp is stamped
// server-side.
func (s *ItemService) AddComment(ctx context.Context, itemID, authorID int64, text string) (*models.CommentView, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	author, err := s.repo.GetUser(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, domain.NewFieldValidation("text", "text is required")
	}

	now := s.now()
	bookings, err := s.repo.GetBookingsByBookerEndedBefore(ctx, authorID, now)
	if err != nil {
		return nil, err
	}

	eligible := false
	for _, b := range bookings {
		if b.ItemID == item.ID {
			eligible = true
			break
		}
	}
	if !eligible {
		metrics.IncCommentsRejected()
		return nil, domain.NewFieldValidation("userId", "user has not completed a booking of this item")
	}

	comment := &models.Comment{
		Text:     text,
		ItemID:   item.ID,
		AuthorID: author.ID,
		Created:  now,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		payload := events.CommentEventPayload{
			CommentID: comment.ID,
			ItemID:    item.ID,
			AuthorID:  author.ID,
		}
		if err := s.eventBus.PublishJSON(events.EventCommentAdded, payload); err != nil {
			s.logger.Error().Err(err).Int64("item_id", item.ID).Msg("publish event error")
		}
	}

	return &models.CommentView{
		ID:         comment.ID,
		Text:       comment.Text,
		ItemID:     comment.ItemID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    comment.Created,
	}, nil
}

func (s *ItemService) publishItemEvent(eventType string, item *models.Item) {
	if s.eventBus == nil {
		return
	}

	payload := events.ItemEventPayload{
		ItemID:    item.ID,
		Name:      item.Name,
		OwnerID:   item.OwnerID,
		Available: item.Available,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("item_id", item.ID).Msg("publish event error")
	}
}

func commentViews(comments []models.CommentView) []models.CommentView {
	if comments == nil {
		return []models.CommentView{}
	}
	return comments
}

func commentViewsFromPtrs(comments []*models.CommentView) []models.CommentView {
	out := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, *c)
	}
	return out
}
