package models

import "time"

type Booking struct {
	ID       int64     `json:"id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	ItemID   int64     `json:"item_id"`
	BookerID int64     `json:"booker_id"`
	Status   string    `json:"status"` // waiting, approved, rejected, canceled
}

// BookingShort is the summary embedded into item views.
type BookingShort struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func (b *Booking) Short() *BookingShort {
	if b == nil {
		return nil
	}
	return &BookingShort{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}

// BookingView carries the booking together with its item and booker,
// the shape returned by the booking endpoints.
type BookingView struct {
	Booking
	Item   *Item `json:"item,omitempty"`
	Booker *User `json:"booker,omitempty"`
}
