package service

import (
	"sort"
	"time"

	"shareit/internal/models"
)

// nextBooking selects the nearest upcoming booking of an item: the
// minimum-start booking with start strictly after now and status other
// than rejected. Returns nil when nothing qualifies.
func nextBooking(bookings []*models.Booking, now time.Time) *models.Booking {
	filtered := make([]*models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Start.After(now) && b.Status != models.StatusRejected {
			filtered = append(filtered, b)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Start.Before(filtered[j].Start)
	})
	return filtered[0]
}

// lastBooking selects the most recent completed or in-progress booking:
// among bookings with end before now, or start before now and end after
// now, the one with the maximum start. An in-progress booking therefore
// wins over an earlier completed one. Unlike nextBooking, rejected and
// canceled bookings are not excluded.
func lastBooking(bookings []*models.Booking, now time.Time) *models.Booking {
	filtered := make([]*models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.End.Before(now) || (b.Start.Before(now) && b.End.After(now)) {
			filtered = append(filtered, b)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Start.Before(filtered[j].Start)
	})
	return filtered[len(filtered)-1]
}
