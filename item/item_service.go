package item

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/upostnikova0/java-shareit/pagination"
	"github.com/upostnikova0/java-shareit/user"
)

type ItemRepository interface {
	Insert(ctx context.Context, it Item) (Item, error)
	GetByID(ctx context.Context, id int64) (Item, error)
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]Item, error)
	Update(ctx context.Context, it Item) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, text string, limit, offset int) ([]Item, error)
	InsertComment(ctx context.Context, itemID, authorID int64, text string, created time.Time) (int64, error)
	CommentsForItem(ctx context.Context, itemID int64) ([]Comment, error)
}

type UserDirectory interface {
	GetUser(ctx context.Context, id int64) (user.User, error)
}

type RequestDirectory interface {
	RequestExists(ctx context.Context, id int64) (bool, error)
}

// BookingLookup is the read-only contract on the booking engine used to
// enrich owner views and to gate comments.
type BookingLookup interface {
	LastApprovedForItem(ctx context.Context, itemID int64) (*BookingRef, error)
	NextApprovedForItem(ctx context.Context, itemID int64) (*BookingRef, error)
	HasFinishedBooking(ctx context.Context, userID, itemID int64, asOf time.Time) (bool, error)
}

type Service struct {
	repo     ItemRepository
	users    UserDirectory
	requests RequestDirectory
	bookings BookingLookup
	logger   *slog.Logger
}

func NewService(repo ItemRepository, users UserDirectory, requests RequestDirectory, bookings BookingLookup) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		requests: requests,
		bookings: bookings,
		logger:   slog.Default().With("component", "item"),
	}
}

func (s *Service) Create(ctx context.Context, userID int64, in NewItem) (Item, error) {
	owner, err := s.users.GetUser(ctx, userID)

	if err != nil {
		return Item{}, err
	}

	if in.RequestID != nil {
		exists, err := s.requests.RequestExists(ctx, *in.RequestID)

		if err != nil {
			return Item{}, err
		}

		if !exists {
			return Item{}, ErrRequestNotFound
		}
	}

	created, err := s.repo.Insert(ctx, Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   *in.Available,
		OwnerID:     owner.ID,
		RequestID:   in.RequestID,
	})

	if err != nil {
		return Item{}, err
	}

	s.logger.Info("created item", "id", created.ID, "owner", userID)

	return created, nil
}

func (s *Service) GetByID(ctx context.Context, itemID, userID int64) (Detail, error) {
	it, err := s.repo.GetByID(ctx, itemID)

	if err != nil {
		return Detail{}, err
	}

	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return Detail{}, err
	}

	return s.detail(ctx, it, userID)
}

func (s *Service) ListByOwner(ctx context.Context, userID int64, from, size int) ([]Detail, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	limit, offset, err := pagination.Page(from, size)

	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, userID, limit, offset)

	if err != nil {
		return nil, err
	}

	details := []Detail{}

	for _, it := range items {
		d, err := s.detail(ctx, it, userID)

		if err != nil {
			return nil, err
		}

		details = append(details, d)
	}

	return details, nil
}

func (s *Service) Update(ctx context.Context, userID, itemID int64, patch Patch) (Item, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return Item{}, err
	}

	it, err := s.repo.GetByID(ctx, itemID)

	if err != nil {
		return Item{}, err
	}

	// a foreign item reads as absent to its non-owner
	if it.OwnerID != userID {
		return Item{}, ErrItemNotFound
	}

	if patch.Name != nil {
		it.Name = *patch.Name
	}

	if patch.Description != nil {
		it.Description = *patch.Description
	}

	if patch.Available != nil {
		it.Available = *patch.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return Item{}, err
	}

	s.logger.Info("updated item", "id", itemID)

	return it, nil
}

func (s *Service) Delete(ctx context.Context, itemID int64) error {
	return s.repo.Delete(ctx, itemID)
}

func (s *Service) Search(ctx context.Context, text string, from, size int) ([]Item, error) {
	if strings.TrimSpace(text) == "" {
		return []Item{}, nil
	}

	limit, offset, err := pagination.Page(from, size)

	if err != nil {
		return nil, err
	}

	return s.repo.Search(ctx, text, limit, offset)
}

// AddComment lets a user comment on an item only after an approved booking
// of that item has run its course.
func (s *Service) AddComment(ctx context.Context, userID, itemID int64, text string) (Comment, error) {
	if strings.TrimSpace(text) == "" {
		return Comment{}, ErrEmptyComment
	}

	author, err := s.users.GetUser(ctx, userID)

	if err != nil {
		return Comment{}, err
	}

	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return Comment{}, err
	}

	now := time.Now()
	completed, err := s.bookings.HasFinishedBooking(ctx, userID, itemID, now)

	if err != nil {
		return Comment{}, err
	}

	if !completed {
		return Comment{}, ErrRentalNotCompleted
	}

	id, err := s.repo.InsertComment(ctx, itemID, userID, text, now)

	if err != nil {
		return Comment{}, err
	}

	s.logger.Info("added comment", "id", id, "item", itemID, "author", userID)

	return Comment{
		ID:         id,
		Text:       text,
		AuthorName: author.Name,
		Created:    now,
	}, nil
}

// GetItem exposes the raw item record for collaborators such as the booking
// engine; no enrichment, no caller checks.
func (s *Service) GetItem(ctx context.Context, id int64) (Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) detail(ctx context.Context, it Item, userID int64) (Detail, error) {
	comments, err := s.repo.CommentsForItem(ctx, it.ID)

	if err != nil {
		return Detail{}, err
	}

	d := Detail{Item: it, Comments: comments}

	// last/next bookings are the owner's view only
	if it.OwnerID != userID {
		return d, nil
	}

	if d.LastBooking, err = s.bookings.LastApprovedForItem(ctx, it.ID); err != nil {
		return Detail{}, err
	}

	if d.NextBooking, err = s.bookings.NextApprovedForItem(ctx, it.ID); err != nil {
		return Detail{}, err
	}

	return d, nil
}
