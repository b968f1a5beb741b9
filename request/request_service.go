package request

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/upostnikova0/java-shareit/pagination"
	"github.com/upostnikova0/java-shareit/user"
)

type RequestRepository interface {
	Insert(ctx context.Context, req ItemRequest) (ItemRequest, error)
	GetByID(ctx context.Context, id int64) (ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]ItemRequest, error)
	ListOthers(ctx context.Context, userID int64, limit, offset int) ([]ItemRequest, error)
	ItemsForRequest(ctx context.Context, requestID int64) ([]AnsweredItem, error)
}

type UserDirectory interface {
	GetUser(ctx context.Context, id int64) (user.User, error)
}

type Service struct {
	repo   RequestRepository
	users  UserDirectory
	logger *slog.Logger
}

func NewService(repo RequestRepository, users UserDirectory) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		logger: slog.Default().With("component", "request"),
	}
}

func (s *Service) Create(ctx context.Context, userID int64, in NewRequest) (ItemRequest, error) {
	requester, err := s.users.GetUser(ctx, userID)

	if err != nil {
		return ItemRequest{}, err
	}

	created, err := s.repo.Insert(ctx, ItemRequest{
		Description: in.Description,
		RequesterID: requester.ID,
		Created:     time.Now(),
	})

	if err != nil {
		return ItemRequest{}, err
	}

	created.Items = []AnsweredItem{}
	s.logger.Info("created item request", "id", created.ID, "requester", userID)

	return created, nil
}

func (s *Service) ListOwn(ctx context.Context, userID int64) ([]ItemRequest, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequester(ctx, userID)

	if err != nil {
		return nil, err
	}

	return s.withItems(ctx, requests)
}

func (s *Service) ListAll(ctx context.Context, userID int64, from, size int) ([]ItemRequest, error) {
	limit, offset, err := pagination.Page(from, size)

	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListOthers(ctx, userID, limit, offset)

	if err != nil {
		return nil, err
	}

	return s.withItems(ctx, requests)
}

func (s *Service) GetByID(ctx context.Context, requestID, userID int64) (ItemRequest, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return ItemRequest{}, err
	}

	req, err := s.repo.GetByID(ctx, requestID)

	if err != nil {
		return ItemRequest{}, err
	}

	items, err := s.repo.ItemsForRequest(ctx, req.ID)

	if err != nil {
		return ItemRequest{}, err
	}

	req.Items = items

	return req, nil
}

// RequestExists serves the item catalog's referential check when an item is
// created in response to a request.
func (s *Service) RequestExists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)

	if errors.Is(err, ErrRequestNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *Service) withItems(ctx context.Context, requests []ItemRequest) ([]ItemRequest, error) {
	for i := range requests {
		items, err := s.repo.ItemsForRequest(ctx, requests[i].ID)

		if err != nil {
			return nil, err
		}

		requests[i].Items = items
	}

	return requests, nil
}
