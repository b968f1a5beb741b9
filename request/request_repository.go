package request

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct{ pool *pgxpool.Pool }

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const selectRequest = `SELECT id, description, requester_id, created FROM requests`

func (r *Repository) Insert(ctx context.Context, req ItemRequest) (ItemRequest, error) {
	sql := `
			INSERT INTO requests(description, requester_id, created)
			VALUES ($1, $2, $3)
			RETURNING id;
		`

	err := r.pool.QueryRow(ctx, sql, req.Description, req.RequesterID, req.Created).Scan(&req.ID)

	if err != nil {
		return ItemRequest{}, fmt.Errorf("failed to insert item request: %w", err)
	}

	return req, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (ItemRequest, error) {
	var req ItemRequest
	err := r.pool.QueryRow(ctx, selectRequest+` WHERE id=$1;`, id).
		Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created)

	if errors.Is(err, pgx.ErrNoRows) {
		return ItemRequest{}, ErrRequestNotFound
	}

	if err != nil {
		return ItemRequest{}, fmt.Errorf("failed to fetch item request with id %v: %w", id, err)
	}

	return req, nil
}

func (r *Repository) ListByRequester(ctx context.Context, requesterID int64) ([]ItemRequest, error) {
	sql := selectRequest + ` WHERE requester_id=$1 ORDER BY created;`

	return r.queryRequests(ctx, sql, requesterID)
}

// ListOthers returns requests posted by everyone but the given user, oldest
// first, so browsers can find requests to answer.
func (r *Repository) ListOthers(ctx context.Context, userID int64, limit, offset int) ([]ItemRequest, error) {
	sql := selectRequest + ` WHERE requester_id <> $1 ORDER BY created LIMIT $2 OFFSET $3;`

	return r.queryRequests(ctx, sql, userID, limit, offset)
}

func (r *Repository) queryRequests(ctx context.Context, sql string, args ...any) ([]ItemRequest, error) {
	rows, err := r.pool.Query(ctx, sql, args...)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch item requests: %w", err)
	}

	defer rows.Close()

	requests := []ItemRequest{}

	for rows.Next() {
		var req ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created); err != nil {
			return nil, fmt.Errorf("error scanning item request row: %w", err)
		}

		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item request rows: %w", err)
	}

	return requests, nil
}

func (r *Repository) ItemsForRequest(ctx context.Context, requestID int64) ([]AnsweredItem, error) {
	sql := `
            SELECT id, name, description, available, owner_id, request_id
            FROM items
            WHERE request_id = $1
            ORDER BY id;
        `

	rows, err := r.pool.Query(ctx, sql, requestID)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch items for request '%v': %w", requestID, err)
	}

	defer rows.Close()

	items := []AnsweredItem{}

	for rows.Next() {
		var it AnsweredItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
			return nil, fmt.Errorf("error scanning item row: %w", err)
		}

		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, nil
}
