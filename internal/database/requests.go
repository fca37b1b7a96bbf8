package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shareit/internal/domain"
	"shareit/internal/models"
)

func (db *DB) CreateRequest(ctx context.Context, request *models.Request) error {
	query := `INSERT INTO requests (description, requester_id, created)
              VALUES (?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		request.Description,
		request.RequesterID,
		request.Created.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id
	return nil
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.Request, error) {
	query := `SELECT id, description, requester_id, created FROM requests WHERE id = ?`
	var r models.Request
	err := db.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.Description, &r.RequesterID, &r.Created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("request", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return &r, nil
}

func (db *DB) GetRequestsByRequester(ctx context.Context, requesterID int64) ([]*models.Request, error) {
	query := `SELECT id, description, requester_id, created
              FROM requests WHERE requester_id = ? ORDER BY created DESC`
	return db.queryRequests(ctx, query, requesterID)
}

func (db *DB) GetRequestsFromOthers(ctx context.Context, requesterID int64, page models.Page) ([]*models.Request, error) {
	query := `SELECT id, description, requester_id, created
              FROM requests WHERE requester_id != ?
              ORDER BY created DESC LIMIT ? OFFSET ?`
	return db.queryRequests(ctx, query, requesterID, page.Limit, page.Offset)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...interface{}) ([]*models.Request, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.Request
	for rows.Next() {
		r := &models.Request{}
		if err := rows.Scan(&r.ID, &r.Description, &r.RequesterID, &r.Created); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}
