package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/upostnikova0/java-shareit/item"
	"github.com/upostnikova0/java-shareit/pagination"
	"github.com/upostnikova0/java-shareit/user"
)

type BookingRepository interface {
	Insert(ctx context.Context, b Booking) (Booking, error)
	GetByID(ctx context.Context, id int64) (Booking, error)
	Decide(ctx context.Context, id, ownerID int64, approve bool) (Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, state State, now time.Time, limit, offset int) ([]Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state State, now time.Time, limit, offset int) ([]Booking, error)
	FindLastApproved(ctx context.Context, itemID int64, now time.Time) (*Booking, error)
	FindNextApproved(ctx context.Context, itemID int64, now time.Time) (*Booking, error)
	HasCompletedApproved(ctx context.Context, bookerID, itemID int64, asOf time.Time) (bool, error)
}

// UserDirectory resolves the requesting user; a missing user surfaces as the
// directory's not-found error.
type UserDirectory interface {
	GetUser(ctx context.Context, id int64) (user.User, error)
}

// ItemCatalog serves the live item state bookings are validated against.
type ItemCatalog interface {
	GetByID(ctx context.Context, id int64) (item.Item, error)
}

type Service struct {
	repo   BookingRepository
	users  UserDirectory
	items  ItemCatalog
	logger *slog.Logger
}

func NewService(repo BookingRepository, users UserDirectory, items ItemCatalog) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		items:  items,
		logger: slog.Default().With("component", "booking"),
	}
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateRequest) (Booking, error) {
	booker, err := s.users.GetUser(ctx, userID)

	if err != nil {
		return Booking{}, err
	}

	it, err := s.items.GetByID(ctx, req.ItemID)

	if err != nil {
		return Booking{}, err
	}

	if !it.Available {
		return Booking{}, ErrItemUnavailable
	}

	if !req.End.After(req.Start) {
		return Booking{}, ErrInvalidDateRange
	}

	// booking your own item is reported as not-found so callers cannot
	// probe item ownership
	if it.OwnerID == userID {
		return Booking{}, ErrBookingNotFound
	}

	booking := Booking{
		ItemID: it.ID,
		Start:  req.Start,
		End:    req.End,
		Booker: booker,
		Item: ItemInfo{
			ID:        it.ID,
			Name:      it.Name,
			OwnerID:   it.OwnerID,
			Available: it.Available,
		},
	}

	created, err := s.repo.Insert(ctx, booking)

	if err != nil {
		return Booking{}, err
	}

	s.logger.Info("created booking", "id", created.ID, "item", created.ItemID, "booker", userID)

	return created, nil
}

func (s *Service) UpdateStatus(ctx context.Context, userID, bookingID int64, approve bool) (Booking, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return Booking{}, err
	}

	decided, err := s.repo.Decide(ctx, bookingID, userID, approve)

	if err != nil {
		return Booking{}, err
	}

	s.logger.Info("decided booking", "id", bookingID, "status", decided.Status)

	return decided, nil
}

func (s *Service) GetByID(ctx context.Context, userID, bookingID int64) (Booking, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return Booking{}, err
	}

	booking, err := s.repo.GetByID(ctx, bookingID)

	if err != nil {
		return Booking{}, err
	}

	// visible to the booker and the item owner only; everyone else gets
	// the same not-found shape
	if booking.Booker.ID != userID && booking.Item.OwnerID != userID {
		return Booking{}, ErrBookingNotFound
	}

	return booking, nil
}

func (s *Service) ListByBooker(ctx context.Context, userID int64, state State, from, size int) ([]Booking, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	limit, offset, err := pagination.Page(from, size)

	if err != nil {
		return nil, err
	}

	return s.repo.ListByBooker(ctx, userID, state, time.Now(), limit, offset)
}

func (s *Service) ListByOwner(ctx context.Context, userID int64, state State, from, size int) ([]Booking, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	limit, offset, err := pagination.Page(from, size)

	if err != nil {
		return nil, err
	}

	return s.repo.ListByOwner(ctx, userID, state, time.Now(), limit, offset)
}

// LastApprovedForItem feeds the item catalog's owner view.
func (s *Service) LastApprovedForItem(ctx context.Context, itemID int64) (*item.BookingRef, error) {
	b, err := s.repo.FindLastApproved(ctx, itemID, time.Now())

	if err != nil || b == nil {
		return nil, err
	}

	return bookingRef(b), nil
}

// NextApprovedForItem feeds the item catalog's owner view.
func (s *Service) NextApprovedForItem(ctx context.Context, itemID int64) (*item.BookingRef, error) {
	b, err := s.repo.FindNextApproved(ctx, itemID, time.Now())

	if err != nil || b == nil {
		return nil, err
	}

	return bookingRef(b), nil
}

// HasFinishedBooking backs the comment gate: true when the user held an
// approved booking of the item that ended before asOf.
func (s *Service) HasFinishedBooking(ctx context.Context, userID, itemID int64, asOf time.Time) (bool, error) {
	return s.repo.HasCompletedApproved(ctx, userID, itemID, asOf)
}

func bookingRef(b *Booking) *item.BookingRef {
	return &item.BookingRef{
		ID:       b.ID,
		BookerID: b.Booker.ID,
		Start:    b.Start,
		End:      b.End,
		Status:   string(b.Status),
	}
}
