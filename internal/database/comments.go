package database

import (
	"context"
	"fmt"

	"shareit/internal/models"
)

func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `INSERT INTO comments (text, item_id, author_id, created)
              VALUES (?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		comment.Text,
		comment.ItemID,
		comment.AuthorID,
		comment.Created.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	comment.ID = id
	return nil
}

// GetCommentsByItem returns the item's comments with author names joined in.
func (db *DB) GetCommentsByItem(ctx context.Context, itemID int64) ([]*models.CommentView, error) {
	query := `SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created
              FROM comments c
              JOIN users u ON u.id = c.author_id
              WHERE c.item_id = ?
              ORDER BY c.created ASC`
	return db.queryComments(ctx, query, itemID)
}

// GetCommentsByItemOwner returns comments across every item the owner has,
// for bulk grouping in the item list view.
func (db *DB) GetCommentsByItemOwner(ctx context.Context, ownerID int64) ([]*models.CommentView, error) {
	query := `SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created
              FROM comments c
              JOIN users u ON u.id = c.author_id
              JOIN items i ON i.id = c.item_id
              WHERE i.owner_id = ?
              ORDER BY c.created ASC`
	return db.queryComments(ctx, query, ownerID)
}

func (db *DB) queryComments(ctx context.Context, query string, args ...interface{}) ([]*models.CommentView, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.CommentView
	for rows.Next() {
		c := &models.CommentView{}
		err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Created)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
