package domain

import "time"

// CreateItemDto is the payload for item creation. RequestID, when set,
// must reference an existing request.
type CreateItemDto struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   int64  `json:"request_id,omitempty"`
}

// UpdateItemDto carries a partial update: nil fields are left untouched.
type UpdateItemDto struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateBookingDto struct {
	ItemID int64     `json:"item_id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

type CreateUserDto struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdateUserDto struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
