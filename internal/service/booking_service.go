package service

import (
	"context"
	"time"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *BookingService) Create(ctx context.Context, bookerID int64, dto domain.CreateBookingDto) (*models.BookingView, error) {
	booker, err := s.repo.GetUser(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, dto.ItemID)
	if err != nil {
		return nil, err
	}

	// The owner must not discover someone probing their own item, so this
	// is NotFound rather than a validation failure.
	if item.OwnerID == booker.ID {
		return nil, domain.NewNotFound("item", item.ID)
	}

	if !item.Available {
		return nil, domain.NewFieldValidation("available", "item is not available for booking")
	}

	now := s.now()
	if dto.Start.IsZero() || dto.End.IsZero() {
		return nil, domain.NewFieldValidation("start", "start and end are required")
	}
	if !dto.Start.Before(dto.End) {
		return nil, domain.NewFieldValidation("end", "end must be after start")
	}
	if dto.Start.Before(now) {
		return nil, domain.NewFieldValidation("start", "start must not be in the past")
	}

	booking := &models.Booking{
		Start:    dto.Start,
		End:      dto.End,
		ItemID:   item.ID,
		BookerID: booker.ID,
		Status:   models.StatusWaiting,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.publishEvent(events.EventBookingCreated, booking)
	return &models.BookingView{Booking: *booking, Item: item, Booker: booker}, nil
}

// Approve moves a waiting booking to approved or rejected. Only the
// item's owner may decide.
func (s *BookingService) Approve(ctx context.Context, bookingID, ownerID int64, approved bool) (*models.BookingView, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID != ownerID {
		return nil, domain.NewNotFound("booking", bookingID)
	}

	if booking.Status != models.StatusWaiting {
		return nil, domain.NewFieldValidation("status", "booking is not waiting for approval")
	}

	status := models.StatusApproved
	eventType := events.EventBookingApproved
	if !approved {
		status = models.StatusRejected
		eventType = events.EventBookingRejected
	}

	if err := s.repo.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	booking.Status = status

	s.publishEvent(eventType, booking)
	return s.toView(ctx, booking)
}

func (s *BookingService) Cancel(ctx context.Context, bookingID, bookerID int64) (*models.BookingView, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.BookerID != bookerID {
		return nil, domain.NewNotFound("booking", bookingID)
	}

	if err := s.repo.UpdateBookingStatus(ctx, bookingID, models.StatusCanceled); err != nil {
		return nil, err
	}
	booking.Status = models.StatusCanceled

	s.publishEvent(events.EventBookingCanceled, booking)
	return s.toView(ctx, booking)
}

// GetByID is visible to the booker and the item's owner only.
func (s *BookingService) GetByID(ctx context.Context, bookingID, userID int64) (*models.BookingView, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}

	if booking.BookerID != userID && item.OwnerID != userID {
		return nil, domain.NewNotFound("booking", bookingID)
	}

	booker, err := s.repo.GetUser(ctx, booking.BookerID)
	if err != nil {
		return nil, err
	}
	return &models.BookingView{Booking: *booking, Item: item, Booker: booker}, nil
}

func (s *BookingService) GetByBooker(ctx context.Context, bookerID int64, state string, page models.Page) ([]*models.BookingView, error) {
	if _, err := s.repo.GetUser(ctx, bookerID); err != nil {
		return nil, err
	}

	bookings, err := s.repo.GetBookingsByBooker(ctx, bookerID, page)
	if err != nil {
		return nil, err
	}
	return s.filterToViews(ctx, bookings, state)
}

func (s *BookingService) GetByOwner(ctx context.Context, ownerID int64, state string, page models.Page) ([]*models.BookingView, error) {
	if _, err := s.repo.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}

	bookings, err := s.repo.GetBookingsByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}
	return s.filterToViews(ctx, bookings, state)
}

func (s *BookingService) filterToViews(ctx context.Context, bookings []*models.Booking, state string) ([]*models.BookingView, error) {
	if state == "" {
		state = models.StateAll
	}

	now := s.now()
	views := make([]*models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		ok, err := matchesState(b, state, now)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		view, err := s.toView(ctx, b)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func matchesState(b *models.Booking, state string, now time.Time) (bool, error) {
	switch state {
	case models.StateAll:
		return true, nil
	case models.StateCurrent:
		return b.Start.Before(now) && b.End.After(now), nil
	case models.StatePast:
		return b.End.Before(now), nil
	case models.StateFuture:
		return b.Start.After(now), nil
	case models.StateWaiting:
		return b.Status == models.StatusWaiting, nil
	case models.StateRejected:
		return b.Status == models.StatusRejected, nil
	default:
		return false, domain.NewFieldValidation("state", "unknown state: "+state)
	}
}

func (s *BookingService) toView(ctx context.Context, booking *models.Booking) (*models.BookingView, error) {
	item, err := s.repo.GetItem(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	booker, err := s.repo.GetUser(ctx, booking.BookerID)
	if err != nil {
		return nil, err
	}
	return &models.BookingView{Booking: *booking, Item: item, Booker: booker}, nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		BookerID:  booking.BookerID,
		Status:    booking.Status,
		Start:     booking.Start,
		End:       booking.End,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
