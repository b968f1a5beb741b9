package item

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct{ pool *pgxpool.Pool }

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const selectItem = `SELECT id, name, description, available, owner_id, request_id FROM items`

func scanItem(row pgx.Row) (Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID)
	return it, err
}

func (r *Repository) Insert(ctx context.Context, it Item) (Item, error) {
	sql := `
			INSERT INTO items(name, description, available, owner_id, request_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id;
		`

	err := r.pool.QueryRow(ctx, sql, it.Name, it.Description, it.Available, it.OwnerID, it.RequestID).Scan(&it.ID)

	if err != nil {
		return Item{}, fmt.Errorf("failed to insert item: %w", err)
	}

	return it, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (Item, error) {
	it, err := scanItem(r.pool.QueryRow(ctx, selectItem+` WHERE id=$1;`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrItemNotFound
	}

	if err != nil {
		return Item{}, fmt.Errorf("failed to fetch item with id %v: %w", id, err)
	}

	return it, nil
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]Item, error) {
	sql := selectItem + ` WHERE owner_id=$1 ORDER BY id LIMIT $2 OFFSET $3;`

	return r.queryItems(ctx, sql, ownerID, limit, offset)
}

func (r *Repository) Update(ctx context.Context, it Item) error {
	sql := `
			UPDATE items
			SET name=$1, description=$2, available=$3
			WHERE id=$4;
		`

	tag, err := r.pool.Exec(ctx, sql, it.Name, it.Description, it.Available, it.ID)

	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id=$1;`, id)

	if err != nil {
		return fmt.Errorf("failed to delete item '%v': %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (r *Repository) Search(ctx context.Context, text string, limit, offset int) ([]Item, error) {
	sql := selectItem + `
            WHERE (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
            AND available = true
            ORDER BY id
            LIMIT $2 OFFSET $3;
        `

	return r.queryItems(ctx, sql, text, limit, offset)
}

func (r *Repository) queryItems(ctx context.Context, sql string, args ...any) ([]Item, error) {
	rows, err := r.pool.Query(ctx, sql, args...)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}

	defer rows.Close()

	items := []Item{}

	for rows.Next() {
		it, err := scanItem(rows)

		if err != nil {
			return nil, fmt.Errorf("error scanning item row: %w", err)
		}

		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, nil
}

func (r *Repository) InsertComment(ctx context.Context, itemID, authorID int64, text string, created time.Time) (int64, error) {
	sql := `
			INSERT INTO comments(text, item_id, author_id, created)
			VALUES ($1, $2, $3, $4)
			RETURNING id;
		`

	var id int64
	err := r.pool.QueryRow(ctx, sql, text, itemID, authorID, created).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to insert comment: %w", err)
	}

	return id, nil
}

func (r *Repository) CommentsForItem(ctx context.Context, itemID int64) ([]Comment, error) {
	sql := `
            SELECT c.id, c.text, u.name, c.created
            FROM comments c
            JOIN users u ON u.id = c.author_id
            WHERE c.item_id = $1
            ORDER BY c.created;
        `

	rows, err := r.pool.Query(ctx, sql, itemID)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}

	defer rows.Close()

	comments := []Comment{}

	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.AuthorName, &c.Created); err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}

		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}
