package models

const (
	StatusWaiting  = "waiting"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusCanceled = "canceled"
)

// Booking list filters accepted by the booking endpoints.
const (
	StateAll      = "ALL"
	StateCurrent  = "CURRENT"
	StatePast     = "PAST"
	StateFuture   = "FUTURE"
	StateWaiting  = "WAITING"
	StateRejected = "REJECTED"
)

const (
	// DefaultPageSize размер страницы по умолчанию для списочных запросов
	DefaultPageSize = 20

	// MaxPageSize верхняя граница размера страницы
	MaxPageSize = 100

	// RateLimitRequests количество запросов в окне на пользователя
	RateLimitRequests = 30

	// RateLimitWindow окно ограничения частоты запросов в секундах
	RateLimitWindow = 60
)

// Page is an offset/limit pair parsed from the from/size query params.
type Page struct {
	Offset int
	Limit  int
}

func NewPage(from, size int) Page {
	if from < 0 {
		from = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Offset: from, Limit: size}
}
