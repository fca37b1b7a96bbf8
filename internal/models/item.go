package models

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"owner_id"`
	RequestID   int64  `json:"request_id,omitempty"`
}

// ItemView is the per-query projection of an item. NextBooking and
// LastBooking are present only for the item's owner; none of the view
// fields are ever persisted.
type ItemView struct {
	Item
	NextBooking *BookingShort `json:"next_booking,omitempty"`
	LastBooking *BookingShort `json:"last_booking,omitempty"`
	Comments    []CommentView `json:"comments"`
}
