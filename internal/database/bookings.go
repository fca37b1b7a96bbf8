package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
              VALUES (?, ?, ?, ?, ?)`
	// Times are stored as text, so offsets must be normalized or range
	// comparisons and ORDER BY on the column go lexicographic.
	result, err := db.ExecContext(ctx, query,
		booking.Start.UTC(),
		booking.End.UTC(),
		booking.ItemID,
		booking.BookerID,
		booking.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT id, start_date, end_date, item_id, booker_id, status
              FROM bookings WHERE id = ?`
	var b models.Booking
	err := db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("booking", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &b, nil
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.NewNotFound("booking", id)
	}
	return nil
}

// GetBookingsByItem returns the item's bookings ordered by start ascending.
func (db *DB) GetBookingsByItem(ctx context.Context, itemID int64) ([]*models.Booking, error) {
	query := `SELECT id, start_date, end_date, item_id, booker_id, status
              FROM bookings WHERE item_id = ? ORDER BY start_date ASC`
	return db.queryBookings(ctx, query, itemID)
}

// GetBookingsByOwner returns bookings across every item the owner has,
// ordered by start descending.
func (db *DB) GetBookingsByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.Booking, error) {
	query := `SELECT b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status
              FROM bookings b
              JOIN items i ON i.id = b.item_id
              WHERE i.owner_id = ?
              ORDER BY b.start_date DESC LIMIT ? OFFSET ?`
	return db.queryBookings(ctx, query, ownerID, page.Limit, page.Offset)
}

func (db *DB) GetBookingsByBooker(ctx context.Context, bookerID int64, page models.Page) ([]*models.Booking, error) {
	query := `SELECT id, start_date, end_date, item_id, booker_id, status
              FROM bookings WHERE booker_id = ?
              ORDER BY start_date DESC LIMIT ? OFFSET ?`
	return db.queryBookings(ctx, query, bookerID, page.Limit, page.Offset)
}

// GetBookingsByBookerEndedBefore backs the comment-eligibility check.
func (db *DB) GetBookingsByBookerEndedBefore(ctx context.Context, bookerID int64, end time.Time) ([]*models.Booking, error) {
	query := `SELECT id, start_date, end_date, item_id, booker_id, status
              FROM bookings WHERE booker_id = ? AND end_date < ?
              ORDER BY start_date DESC`
	return db.queryBookings(ctx, query, bookerID, end.UTC())
}

// GetAllBookings backs the back-office export.
func (db *DB) GetAllBookings(ctx context.Context) ([]*models.Booking, error) {
	query := `SELECT id, start_date, end_date, item_id, booker_id, status
              FROM bookings ORDER BY start_date ASC`
	return db.queryBookings(ctx, query)
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...interface{}) ([]*models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b := &models.Booking{}
		err := rows.Scan(&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
