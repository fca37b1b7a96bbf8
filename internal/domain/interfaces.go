package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

type Repository interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	GetItemsByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.Item, error)
	SearchItems(ctx context.Context, text string, page models.Page) ([]*models.Item, error)
	GetItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id int64) error

	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) error
	GetBookingsByItem(ctx context.Context, itemID int64) ([]*models.Booking, error)
	GetBookingsByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.Booking, error)
	GetBookingsByBooker(ctx context.Context, bookerID int64, page models.Page) ([]*models.Booking, error)
	GetBookingsByBookerEndedBefore(ctx context.Context, bookerID int64, end time.Time) ([]*models.Booking, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItem(ctx context.Context, itemID int64) ([]*models.CommentView, error)
	GetCommentsByItemOwner(ctx context.Context, ownerID int64) ([]*models.CommentView, error)

	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error

	CreateRequest(ctx context.Context, request *models.Request) error
	GetRequest(ctx context.Context, id int64) (*models.Request, error)
	GetRequestsByRequester(ctx context.Context, requesterID int64) ([]*models.Request, error)
	GetRequestsFromOthers(ctx context.Context, requesterID int64, page models.Page) ([]*models.Request, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// RateLimitRepository counts requests per user within a fixed window.
type RateLimitRepository interface {
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

type ItemService interface {
	GetByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.ItemView, error)
	GetByID(ctx context.Context, id, userID int64) (*models.ItemView, error)
	Search(ctx context.Context, text string, page models.Page) ([]*models.Item, error)
	Create(ctx context.Context, ownerID int64, dto CreateItemDto) (*models.Item, error)
	Update(ctx context.Context, id, ownerID int64, dto UpdateItemDto) (*models.Item, error)
	Delete(ctx context.Context, id int64) (*models.ItemView, error)
	AddComment(ctx context.Context, itemID, authorID int64, text string) (*models.CommentView, error)
}

type BookingService interface {
	Create(ctx context.Context, bookerID int64, dto CreateBookingDto) (*models.BookingView, error)
	Approve(ctx context.Context, bookingID, ownerID int64, approved bool) (*models.BookingView, error)
	Cancel(ctx context.Context, bookingID, bookerID int64) (*models.BookingView, error)
	GetByID(ctx context.Context, bookingID, userID int64) (*models.BookingView, error)
	GetByBooker(ctx context.Context, bookerID int64, state string, page models.Page) ([]*models.BookingView, error)
	GetByOwner(ctx context.Context, ownerID int64, state string, page models.Page) ([]*models.BookingView, error)
}

type UserService interface {
	Create(ctx context.Context, dto CreateUserDto) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id int64, dto UpdateUserDto) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type RequestService interface {
	Create(ctx context.Context, requesterID int64, description string) (*models.Request, error)
	GetOwn(ctx context.Context, requesterID int64) ([]*models.RequestView, error)
	GetFromOthers(ctx context.Context, requesterID int64, page models.Page) ([]*models.RequestView, error)
	GetByID(ctx context.Context, requestID, userID int64) (*models.RequestView, error)
}
