package user

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

type UserRepository interface {
	Insert(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo   UserRepository
	cache  *cache.Cache
	logger *slog.Logger
}

func NewService(repo UserRepository, ttl, cleanup time.Duration) *Service {
	return &Service{
		repo:   repo,
		cache:  cache.New(ttl, cleanup),
		logger: slog.Default().With("component", "user"),
	}
}

func (s *Service) Create(ctx context.Context, u User) (User, error) {
	created, err := s.repo.Insert(ctx, u)

	if err != nil {
		return User{}, err
	}

	s.logger.Info("created user", "id", created.ID)

	return created, nil
}

// GetUser serves id lookups through a short-lived cache; every write path
// below invalidates the entry.
func (s *Service) GetUser(ctx context.Context, id int64) (User, error) {
	key := strconv.FormatInt(id, 10)

	if cached, found := s.cache.Get(key); found {
		return cached.(User), nil
	}

	u, err := s.repo.GetByID(ctx, id)

	if err != nil {
		return User{}, err
	}

	s.cache.Set(key, u, cache.DefaultExpiration)

	return u, nil
}

func (s *Service) GetAll(ctx context.Context) ([]User, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (User, error) {
	u, err := s.repo.GetByID(ctx, id)

	if err != nil {
		return User{}, err
	}

	if patch.Name != nil {
		u.Name = *patch.Name
	}

	if patch.Email != nil {
		u.Email = *patch.Email
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}

	s.cache.Delete(strconv.FormatInt(id, 10))
	s.logger.Info("updated user", "id", id)

	return u, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(strconv.FormatInt(id, 10))
	s.logger.Info("deleted user", "id", id)

	return nil
}
