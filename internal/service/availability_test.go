package service

import (
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func booking(id int64, start, end time.Time, status string) *models.Booking {
	return &models.Booking{ID: id, Start: start, End: end, ItemID: 1, BookerID: 2, Status: status}
}

func TestNextBooking(t *testing.T) {
	now := testNow

	t.Run("picks earliest upcoming non-rejected", func(t *testing.T) {
		bookings := []*models.Booking{
			booking(1, now.Add(3*time.Hour), now.Add(4*time.Hour), models.StatusApproved),
			booking(2, now.Add(1*time.Hour), now.Add(2*time.Hour), models.StatusWaiting),
			booking(3, now.Add(2*time.Hour), now.Add(3*time.Hour), models.StatusApproved),
		}

		next := nextBooking(bookings, now)
		require.NotNil(t, next)
		assert.Equal(t, int64(2), next.ID)
	})

	t.Run("skips rejected", func(t *testing.T) {
		bookings := []*models.Booking{
			booking(1, now.Add(1*time.Hour), now.Add(2*time.Hour), models.StatusRejected),
			booking(2, now.Add(2*time.Hour), now.Add(3*time.Hour), models.StatusApproved),
		}

		next := nextBooking(bookings, now)
		require.NotNil(t, next)
		assert.Equal(t, int64(2), next.ID)
	})

	t.Run("does not skip canceled", func(t *testing.T) {
		bookings := []*models.Booking{
			booking(1, now.Add(1*time.Hour), now.Add(2*time.Hour), models.StatusCanceled),
		}

		next := nextBooking(bookings, now)
		require.NotNil(t, next)
		assert.Equal(t, int64(1), next.ID)
	})

	t.Run("nil when nothing upcoming", func(t *testing.T) {
		bookings := []*models.Booking{
			booking(1, now.Add(-2*time.Hour), now.Add(-1*time.Hour), models.StatusApproved),
		}

		assert.Nil(t, nextBooking(bookings, now))
		assert.Nil(t, nextBooking(nil, now))
	})

	t.Run("boundary start equal to now is excluded", func(t *testing.T) {
		bookings := []*models.Booking{
			booking(1, now, now.Add(time.Hour), models.StatusApproved),
		}

		assert.Nil(t, nextBooking(bookings, now))
	})

	t.Run("equal starts resolve to original order", func(t *testing.T) {
		start := now.Add(time.Hour)
		bookings := []*models.Booking{
			booking(7, start, start.Add(time.Hour), models.StatusWaiting),
			booking(8, start, start.Add(2*time.Hour), models.StatusWaiting),
		}

		next := nextBooking(bookings, now)
		require.NotNil(t, next)
		assert.Equal(t, int64(7), next.ID)
	})
}

func TestLastBooking(t *testing.T) {
	now := testNow

	t.Run("picks max start among completed", func(t *testing.T) {
		bookings := []*models.Booking{
			booking(1, now.Add(-5*time.Hour), now.Add(-4*time.Hour), models.StatusApproved),
			booking(2, now.Add(-3*time.Hour), now.Add(-2*time.Hour), models.StatusApproved),
		}

		last := lastBooking(bookings, now)
		require.NotNil(t, last)
		assert.Equal(t, int64(2), last.ID)
	})

	t.Run("in-progress with later start wins over earlier completed", func(t *testing.T) {
		bookings := []*models.Booking{
			booking(1, now.Add(-5*time.Hour), now.Add(-4*time.Hour), models.StatusApproved),
			booking(2, now.Add(-1*time.Hour), now.Add(1*time.Hour), models.StatusApproved),
		}

		last := lastBooking(bookings, now)
		require.NotNil(t, last)
		assert.Equal(t, int64(2), last.ID)
	})

	t.Run("rejected and canceled are not excluded", func(t *testing.T) {
		bookings := []*models.Booking{
			booking(1, now.Add(-3*time.Hour), now.Add(-2*time.Hour), models.StatusApproved),
			booking(2, now.Add(-1*time.Hour), now.Add(-30*time.Minute), models.StatusRejected),
		}

		last := lastBooking(bookings, now)
		require.NotNil(t, last)
		assert.Equal(t, int64(2), last.ID)
	})

	t.Run("future bookings never qualify", func(t *testing.T) {
		bookings := []*models.Booking{
			booking(1, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusApproved),
		}

		assert.Nil(t, lastBooking(bookings, now))
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		bookings := []*models.Booking{
			booking(1, now.Add(-4*time.Hour), now.Add(-3*time.Hour), models.StatusApproved),
			booking(2, now.Add(-2*time.Hour), now.Add(-1*time.Hour), models.StatusWaiting),
			booking(3, now.Add(1*time.Hour), now.Add(2*time.Hour), models.StatusWaiting),
		}

		first := lastBooking(bookings, now)
		second := lastBooking(bookings, now)
		assert.Equal(t, first, second)
		assert.Equal(t, nextBooking(bookings, now), nextBooking(bookings, now))
	})
}

// Scenario from the item view: one upcoming waiting booking, one finished
// approved booking, evaluated at a fixed instant.
func TestResolverCombined(t *testing.T) {
	now := testNow
	bookings := []*models.Booking{
		booking(1, now.Add(1*time.Hour), now.Add(2*time.Hour), models.StatusWaiting),
		booking(2, now.Add(-3*time.Hour), now.Add(-2*time.Hour), models.StatusApproved),
	}

	next := nextBooking(bookings, now)
	require.NotNil(t, next)
	assert.Equal(t, int64(1), next.ID)

	last := lastBooking(bookings, now)
	require.NotNil(t, last)
	assert.Equal(t, int64(2), last.ID)
}
