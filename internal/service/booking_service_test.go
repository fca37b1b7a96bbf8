package service

import (
	"context"
	"io"
	"testing"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestBookingService(repo *mockRepo) *BookingService {
	logger := zerolog.New(io.Discard)
	s := NewBookingService(repo, nil, &logger)
	s.now = func() time.Time { return testNow }
	return s
}

func TestBookingCreate(t *testing.T) {
	ctx := context.Background()
	booker := &models.User{ID: 5, Name: "booker", Email: "b@example.com"}
	item := &models.Item{ID: 1, Name: "drill", OwnerID: 1, Available: true}

	t.Run("happy path starts as waiting", func(t *testing.T) {
		repo := new(mockRepo)
		s := newTestBookingService(repo)

		repo.On("GetUser", ctx, int64(5)).Return(booker, nil)
		repo.On("GetItem", ctx, int64(1)).Return(item, nil)
		repo.On("CreateBooking", ctx, mock.MatchedBy(func(b *models.Booking) bool {
			return b.ItemID == 1 && b.BookerID == 5 && b.Status == models.StatusWaiting
		})).Return(nil)

		view, err := s.Create(ctx, 5, domain.CreateBookingDto{
			ItemID: 1,
			Start:  testNow.Add(time.Hour),
			End:    testNow.Add(2 * time.Hour),
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusWaiting, view.Status)
		assert.Equal(t, "drill", view.Item.Name)
		assert.Equal(t, "booker", view.Booker.Name)
	})

	t.Run("owner booking own item looks like missing item", func(t *testing.T) {
		repo := new(mockRepo)
		s := newTestBookingService(repo)

		owner := &models.User{ID: 1, Name: "owner", Email: "o@example.com"}
		repo.On("GetUser", ctx, int64(1)).Return(owner, nil)
		repo.On("GetItem", ctx, int64(1)).Return(item, nil)

		_, err := s.Create(ctx, 1, domain.CreateBookingDto{
			ItemID: 1,
			Start:  testNow.Add(time.Hour),
			End:    testNow.Add(2 * time.Hour),
		})
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("unavailable item is rejected", func(t *testing.T) {
		repo := new(mockRepo)
		s := newTestBookingService(repo)

		broken := &models.Item{ID: 2, Name: "saw", OwnerID: 1, Available: false}
		repo.On("GetUser", ctx, int64(5)).Return(booker, nil)
		repo.On("GetItem", ctx, int64(2)).Return(broken, nil)

		_, err := s.Create(ctx, 5, domain.CreateBookingDto{
			ItemID: 2,
			Start:  testNow.Add(time.Hour),
			End:    testNow.Add(2 * time.Hour),
		})
		require.Error(t, err)
		assert.True(t, domain.IsFieldValidation(err))
	})

	t.Run("time window validation", func(t *testing.T) {
		repo := new(mockRepo)
		s := newTestBookingService(repo)

		repo.On("GetUser", ctx, int64(5)).Return(booker, nil)
		repo.On("GetItem", ctx, int64(1)).Return(item, nil)

		cases := []struct {
			name  string
			start time.Time
			end   time.Time
		}{
			{"zero start", time.Time{}, testNow.Add(time.Hour)},
			{"end before start", testNow.Add(2 * time.Hour), testNow.Add(time.Hour)},
			{"end equals start", testNow.Add(time.Hour), testNow.Add(time.Hour)},
			{"start in the past", testNow.Add(-time.Hour), testNow.Add(time.Hour)},
		}
		for _, tc := range cases {
			_, err := s.Create(ctx, 5, domain.CreateBookingDto{ItemID: 1, Start: tc.start, End: tc.end})
			require.Error(t, err, tc.name)
			assert.True(t, domain.IsFieldValidation(err), tc.name)
		}
		repo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	})
}

func TestBookingApprove(t *testing.T) {
	ctx := context.Background()
	item := &models.Item{ID: 1, Name: "drill", OwnerID: 1, Available: true}
	booker := &models.User{ID: 5, Name: "booker", Email: "b@example.com"}

	waiting := func() *models.Booking {
		return &models.Booking{
			ID: 10, ItemID: 1, BookerID: 5,
			Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour),
			Status: models.StatusWaiting,
		}
	}

	t.Run("owner approves", func(t *testing.T) {
		repo := new(mockRepo)
		s := newTestBookingService(repo)

		repo.On("GetBooking", ctx, int64(10)).Return(waiting(), nil)
		repo.On("GetItem", ctx, int64(1)).Return(item, nil)
		repo.On("GetUser", ctx, int64(5)).Return(booker, nil)
		repo.On("UpdateBookingStatus", ctx, int64(10), models.StatusApproved).Return(nil)

		view, err := s.Approve(ctx, 10, 1, true)
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, view.Status)
	})

	t.Run("owner rejects", func(t *testing.T) {
		repo := new(mockRepo)
		s := newTestBookingService(repo)

		repo.On("GetBooking", ctx, int64(10)).Return(waiting(), nil)
		repo.On("GetItem", ctx, int64(1)).Return(item, nil)
		repo.On("GetUser", ctx, int64(5)).Return(booker, nil)
		repo.On("UpdateBookingStatus", ctx, int64(10), models.StatusRejected).Return(nil)

		view, err := s.Approve(ctx, 10, 1, false)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, view.Status)
	})

	t.Run("non-owner cannot see the booking", func(t *testing.T) {
		repo := new(mockRepo)
		s := newTestBookingService(repo)

		repo.On("GetBooking", ctx, int64(10)).Return(waiting(), nil)
		repo.On("GetItem", ctx, int64(1)).Return(item, nil)

		_, err := s.Approve(ctx, 10, 99, true)
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
		repo.AssertNotCalled(t, "UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already decided booking cannot be approved again", func(t *testing.T) {
		repo := new(mockRepo)
		s := newTestBookingService(repo)

		decided := waiting()
		decided.Status = models.StatusApproved
		repo.On("GetBooking", ctx, int64(10)).Return(decided, nil)
		repo.On("GetItem", ctx, int64(1)).Return(item, nil)

		_, err := s.Approve(ctx, 10, 1, true)
		require.Error(t, err)
		assert.True(t, domain.IsFieldValidation(err))
	})
}

func TestBookingCancel(t *testing.T) {
	ctx := context.Background()
	booking := &models.Booking{
		ID: 10, ItemID: 1, BookerID: 5,
		Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour),
		Status: models.StatusWaiting,
	}
	item := &models.Item{ID: 1, Name: "drill", OwnerID: 1, Available: true}
	booker := &models.User{ID: 5, Name: "booker", Email: "b@example.com"}

	t.Run("booker cancels", func(t *testing.T) {
		repo := new(mockRepo)
		s := newTestBookingService(repo)

		repo.On("GetBooking", ctx, int64(10)).Return(booking, nil)
		repo.On("GetItem", ctx, int64(1)).Return(item, nil)
		repo.On("GetUser", ctx, int64(5)).Return(booker, nil)
		repo.On("UpdateBookingStatus", ctx, int64(10), models.StatusCanceled).Return(nil)

		view, err := s.Cancel(ctx, 10, 5)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCanceled, view.Status)
	})

	t.Run("only the booker may cancel", func(t *testing.T) {
		repo := new(mockRepo)
		s := newTestBookingService(repo)

		repo.On("GetBooking", ctx, int64(10)).Return(booking, nil)

		_, err := s.Cancel(ctx, 10, 1)
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestBookingGetByID(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	s := newTestBookingService(repo)

	booking := &models.Booking{ID: 10, ItemID: 1, BookerID: 5, Status: models.StatusApproved}
	item := &models.Item{ID: 1, Name: "drill", OwnerID: 1, Available: true}
	booker := &models.User{ID: 5, Name: "booker", Email: "b@example.com"}

	repo.On("GetBooking", ctx, int64(10)).Return(booking, nil)
	repo.On("GetItem", ctx, int64(1)).Return(item, nil)
	repo.On("GetUser", ctx, int64(5)).Return(booker, nil)

	for _, userID := range []int64{5, 1} {
		view, err := s.GetByID(ctx, 10, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), view.ID)
	}

	_, err := s.GetByID(ctx, 10, 99)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestBookingStateFilter(t *testing.T) {
	ctx := context.Background()
	page := models.NewPage(0, 20)

	item := &models.Item{ID: 1, Name: "drill", OwnerID: 1, Available: true}
	booker := &models.User{ID: 5, Name: "booker", Email: "b@example.com"}
	bookings := []*models.Booking{
		{ID: 1, ItemID: 1, BookerID: 5, Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour), Status: models.StatusWaiting},
		{ID: 2, ItemID: 1, BookerID: 5, Start: testNow.Add(-time.Hour), End: testNow.Add(time.Hour), Status: models.StatusApproved},
		{ID: 3, ItemID: 1, BookerID: 5, Start: testNow.Add(-3 * time.Hour), End: testNow.Add(-2 * time.Hour), Status: models.StatusApproved},
		{ID: 4, ItemID: 1, BookerID: 5, Start: testNow.Add(3 * time.Hour), End: testNow.Add(4 * time.Hour), Status: models.StatusRejected},
	}

	newService := func() (*mockRepo, *BookingService) {
		repo := new(mockRepo)
		s := newTestBookingService(repo)
		repo.On("GetUser", ctx, int64(5)).Return(booker, nil)
		repo.On("GetBookingsByBooker", ctx, int64(5), page).Return(bookings, nil)
		repo.On("GetItem", ctx, int64(1)).Return(item, nil)
		return repo, s
	}

	cases := []struct {
		state string
		ids   []int64
	}{
		{models.StateAll, []int64{1, 2, 3, 4}},
		{"", []int64{1, 2, 3, 4}},
		{models.StateCurrent, []int64{2}},
		{models.StatePast, []int64{3}},
		{models.StateFuture, []int64{1, 4}},
		{models.StateWaiting, []int64{1}},
		{models.StateRejected, []int64{4}},
	}
	for _, tc := range cases {
		_, s := newService()
		views, err := s.GetByBooker(ctx, 5, tc.state, page)
		require.NoError(t, err, tc.state)

		ids := make([]int64, 0, len(views))
		for _, v := range views {
			ids = append(ids, v.ID)
		}
		assert.Equal(t, tc.ids, ids, tc.state)
	}

	_, s := newService()
	_, err := s.GetByBooker(ctx, 5, "SOMEDAY", page)
	require.Error(t, err)
	assert.True(t, domain.IsFieldValidation(err))
}
