package models

import "time"

// Request is a wish for an item that does not exist yet. Items created
// in answer to it carry its id.
type Request struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requester_id"`
	Created     time.Time `json:"created"`
}

type RequestView struct {
	Request
	Items []Item `json:"items"`
}
