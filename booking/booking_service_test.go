package booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	bk "github.com/upostnikova0/java-shareit/booking"
	bk_mocks "github.com/upostnikova0/java-shareit/booking/mocks"
	"github.com/upostnikova0/java-shareit/item"
	"github.com/upostnikova0/java-shareit/pagination"
	"github.com/upostnikova0/java-shareit/user"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var booker = user.User{ID: 7, Name: "eva", Email: "eva@example.com"}

var drill = item.Item{
	ID:          3,
	Name:        "drill",
	Description: "cordless drill",
	Available:   true,
	OwnerID:     1,
}

type testDeps struct {
	repo    *bk_mocks.MockBookingRepository
	users   *bk_mocks.MockUserDirectory
	items   *bk_mocks.MockItemCatalog
	service *bk.Service
	ctx     context.Context
}

func newTestDeps(t *testing.T) (*gomock.Controller, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	repo := bk_mocks.NewMockBookingRepository(ctrl)
	users := bk_mocks.NewMockUserDirectory(ctrl)
	items := bk_mocks.NewMockItemCatalog(ctrl)
	svc := bk.NewService(repo, users, items)

	return ctrl, testDeps{
		repo: repo, users: users, items: items, service: svc, ctx: context.Background(),
	}
}

func TestCreateBooking(t *testing.T) {
	start := time.Now().Add(24 * time.Hour)
	end := start.Add(48 * time.Hour)

	req := bk.CreateRequest{ItemID: drill.ID, Start: start, End: end}

	toInsert := bk.Booking{
		ItemID: drill.ID,
		Start:  start,
		End:    end,
		Booker: booker,
		Item: bk.ItemInfo{
			ID:        drill.ID,
			Name:      drill.Name,
			OwnerID:   drill.OwnerID,
			Available: drill.Available,
		},
	}

	inserted := toInsert
	inserted.ID = 11
	inserted.Status = bk.StatusWaiting

	t.Run("success", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.users.EXPECT().GetUser(testDeps.ctx, booker.ID).Return(booker, nil).Times(1)
		testDeps.items.EXPECT().GetByID(testDeps.ctx, drill.ID).Return(drill, nil).Times(1)
		testDeps.repo.EXPECT().Insert(testDeps.ctx, toInsert).Return(inserted, nil).Times(1)

		booking, err := testDeps.service.Create(testDeps.ctx, booker.ID, req)

		require.Nil(t, err)
		require.Equal(t, inserted, booking)
	})

	t.Run("unknown user", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.users.EXPECT().GetUser(testDeps.ctx, booker.ID).Return(user.User{}, user.ErrUserNotFound).Times(1)
		testDeps.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

		_, err := testDeps.service.Create(testDeps.ctx, booker.ID, req)

		require.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.users.EXPECT().GetUser(testDeps.ctx, booker.ID).Return(booker, nil).Times(1)
		testDeps.items.EXPECT().GetByID(testDeps.ctx, drill.ID).Return(item.Item{}, item.ErrItemNotFound).Times(1)
		testDeps.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

		_, err := testDeps.service.Create(testDeps.ctx, booker.ID, req)

		require.ErrorIs(t, err, item.ErrItemNotFound)
	})

	t.Run("item unavailable", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		unavailable := drill
		unavailable.Available = false

		testDeps.users.EXPECT().GetUser(testDeps.ctx, booker.ID).Return(booker, nil).Times(1)
		testDeps.items.EXPECT().GetByID(testDeps.ctx, drill.ID).Return(unavailable, nil).Times(1)
		testDeps.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

		_, err := testDeps.service.Create(testDeps.ctx, booker.ID, req)

		require.ErrorIs(t, err, bk.ErrItemUnavailable)
	})

	t.Run("end before start", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		bad := bk.CreateRequest{ItemID: drill.ID, Start: end, End: start}

		testDeps.users.EXPECT().GetUser(testDeps.ctx, booker.ID).Return(booker, nil).Times(1)
		testDeps.items.EXPECT().GetByID(testDeps.ctx, drill.ID).Return(drill, nil).Times(1)
		testDeps.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

		_, err := testDeps.service.Create(testDeps.ctx, booker.ID, bad)

		require.ErrorIs(t, err, bk.ErrInvalidDateRange)
	})

	t.Run("end equal to start", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		bad := bk.CreateRequest{ItemID: drill.ID, Start: start, End: start}

		testDeps.users.EXPECT().GetUser(testDeps.ctx, booker.ID).Return(booker, nil).Times(1)
		testDeps.items.EXPECT().GetByID(testDeps.ctx, drill.ID).Return(drill, nil).Times(1)
		testDeps.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

		_, err := testDeps.service.Create(testDeps.ctx, booker.ID, bad)

		require.ErrorIs(t, err, bk.ErrInvalidDateRange)
	})

	t.Run("own item reads as not found", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		owner := user.User{ID: drill.OwnerID, Name: "mark", Email: "mark@example.com"}

		testDeps.users.EXPECT().GetUser(testDeps.ctx, owner.ID).Return(owner, nil).Times(1)
		testDeps.items.EXPECT().GetByID(testDeps.ctx, drill.ID).Return(drill, nil).Times(1)
		testDeps.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

		_, err := testDeps.service.Create(testDeps.ctx, owner.ID, req)

		require.ErrorIs(t, err, bk.ErrBookingNotFound)
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.users.EXPECT().GetUser(testDeps.ctx, booker.ID).Return(booker, nil).Times(1)
		testDeps.items.EXPECT().GetByID(testDeps.ctx, drill.ID).Return(drill, nil).Times(1)
		testDeps.repo.EXPECT().Insert(testDeps.ctx, toInsert).Return(bk.Booking{}, errors.New("repo error")).Times(1)

		_, err := testDeps.service.Create(testDeps.ctx, booker.ID, req)

		require.Error(t, err)
	})
}

func TestUpdateStatus(t *testing.T) {
	owner := user.User{ID: drill.OwnerID, Name: "mark", Email: "mark@example.com"}

	t.Run("approve", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		decided := bk.Booking{ID: 11, ItemID: drill.ID, Status: bk.StatusApproved, Booker: booker}

		testDeps.users.EXPECT().GetUser(testDeps.ctx, owner.ID).Return(owner, nil).Times(1)
		testDeps.repo.EXPECT().Decide(testDeps.ctx, int64(11), owner.ID, true).Return(decided, nil).Times(1)

		booking, err := testDeps.service.UpdateStatus(testDeps.ctx, owner.ID, 11, true)

		require.Nil(t, err)
		require.Equal(t, bk.StatusApproved, booking.Status)
	})

	t.Run("unknown user", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.users.EXPECT().GetUser(testDeps.ctx, owner.ID).Return(user.User{}, user.ErrUserNotFound).Times(1)
		testDeps.repo.EXPECT().Decide(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := testDeps.service.UpdateStatus(testDeps.ctx, owner.ID, 11, true)

		require.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("already decided", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.users.EXPECT().GetUser(testDeps.ctx, owner.ID).Return(owner, nil).Times(1)
		testDeps.repo.EXPECT().Decide(testDeps.ctx, int64(11), owner.ID, false).Return(bk.Booking{}, bk.ErrAlreadyDecided).Times(1)

		_, err := testDeps.service.UpdateStatus(testDeps.ctx, owner.ID, 11, false)

		require.ErrorIs(t, err, bk.ErrAlreadyDecided)
	})
}

func TestGetBookingByID(t *testing.T) {
	stored := bk.Booking{
		ID:     11,
		ItemID: drill.ID,
		Status: bk.StatusWaiting,
		Booker: booker,
		Item:   bk.ItemInfo{ID: drill.ID, Name: drill.Name, OwnerID: drill.OwnerID, Available: true},
	}

	t.Run("visible to the booker", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.users.EXPECT().GetUser(testDeps.ctx, booker.ID).Return(booker, nil).Times(1)
		testDeps.repo.EXPECT().GetByID(testDeps.ctx, int64(11)).Return(stored, nil).Times(1)

		booking, err := testDeps.service.GetByID(testDeps.ctx, booker.ID, 11)

		require.Nil(t, err)
		require.Equal(t, stored, booking)
	})

	t.Run("visible to the item owner", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		owner := user.User{ID: drill.OwnerID}

		testDeps.users.EXPECT().GetUser(testDeps.ctx, owner.ID).Return(owner, nil).Times(1)
		testDeps.repo.EXPECT().GetByID(testDeps.ctx, int64(11)).Return(stored, nil).Times(1)

		booking, err := testDeps.service.GetByID(testDeps.ctx, owner.ID, 11)

		require.Nil(t, err)
		require.Equal(t, stored, booking)
	})

	t.Run("hidden from everyone else", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		stranger := user.User{ID: 99, Name: "sam", Email: "sam@example.com"}

		testDeps.users.EXPECT().GetUser(testDeps.ctx, stranger.ID).Return(stranger, nil).Times(1)
		testDeps.repo.EXPECT().GetByID(testDeps.ctx, int64(11)).Return(stored, nil).Times(1)

		_, err := testDeps.service.GetByID(testDeps.ctx, stranger.ID, 11)

		require.ErrorIs(t, err, bk.ErrBookingNotFound)
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.users.EXPECT().GetUser(testDeps.ctx, booker.ID).Return(booker, nil).Times(1)
		testDeps.repo.EXPECT().GetByID(testDeps.ctx, int64(11)).Return(bk.Booking{}, bk.ErrBookingNotFound).Times(1)

		_, err := testDeps.service.GetByID(testDeps.ctx, booker.ID, 11)

		require.ErrorIs(t, err, bk.ErrBookingNotFound)
	})
}

func TestListByBooker(t *testing.T) {
	bookings := []bk.Booking{{ID: 11, Booker: booker, Status: bk.StatusWaiting}}

	t.Run("success", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.users.EXPECT().GetUser(testDeps.ctx, booker.ID).Return(booker, nil).Times(1)
		testDeps.repo.EXPECT().ListByBooker(testDeps.ctx, booker.ID, bk.StateAll, gomock.Any(), 10, 0).Return(bookings, nil).Times(1)

		got, err := testDeps.service.ListByBooker(testDeps.ctx, booker.ID, bk.StateAll, 0, 10)

		require.Nil(t, err)
		require.Equal(t, bookings, got)
	})

	t.Run("offset snaps to page boundary", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.users.EXPECT().GetUser(testDeps.ctx, booker.ID).Return(booker, nil).Times(1)
		testDeps.repo.EXPECT().ListByBooker(testDeps.ctx, booker.ID, bk.StatePast, gomock.Any(), 5, 5).Return(bookings, nil).Times(1)

		_, err := testDeps.service.ListByBooker(testDeps.ctx, booker.ID, bk.StatePast, 7, 5)

		require.Nil(t, err)
	})

	t.Run("invalid pagination", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.users.EXPECT().GetUser(testDeps.ctx, booker.ID).Return(booker, nil).Times(1)
		testDeps.repo.EXPECT().ListByBooker(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := testDeps.service.ListByBooker(testDeps.ctx, booker.ID, bk.StateAll, -1, 10)

		require.ErrorIs(t, err, pagination.ErrInvalid)
	})

	t.Run("unknown user", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.users.EXPECT().GetUser(testDeps.ctx, booker.ID).Return(user.User{}, user.ErrUserNotFound).Times(1)

		_, err := testDeps.service.ListByBooker(testDeps.ctx, booker.ID, bk.StateAll, 0, 10)

		require.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestListByOwner(t *testing.T) {
	owner := user.User{ID: drill.OwnerID, Name: "mark", Email: "mark@example.com"}
	bookings := []bk.Booking{{ID: 11, Booker: booker, Status: bk.StatusWaiting}}

	t.Run("success", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.users.EXPECT().GetUser(testDeps.ctx, owner.ID).Return(owner, nil).Times(1)
		testDeps.repo.EXPECT().ListByOwner(testDeps.ctx, owner.ID, bk.StateWaiting, gomock.Any(), 10, 0).Return(bookings, nil).Times(1)

		got, err := testDeps.service.ListByOwner(testDeps.ctx, owner.ID, bk.StateWaiting, 0, 10)

		require.Nil(t, err)
		require.Equal(t, bookings, got)
	})

	t.Run("invalid pagination", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.users.EXPECT().GetUser(testDeps.ctx, owner.ID).Return(owner, nil).Times(1)
		testDeps.repo.EXPECT().ListByOwner(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := testDeps.service.ListByOwner(testDeps.ctx, owner.ID, bk.StateAll, 0, 0)

		require.ErrorIs(t, err, pagination.ErrInvalid)
	})
}

func TestApprovedNeighbours(t *testing.T) {
	start := time.Now().Add(-48 * time.Hour)
	end := start.Add(24 * time.Hour)

	approved := &bk.Booking{
		ID:     21,
		ItemID: drill.ID,
		Start:  start,
		End:    end,
		Status: bk.StatusApproved,
		Booker: booker,
	}

	t.Run("last approved maps to a booking ref", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().FindLastApproved(testDeps.ctx, drill.ID, gomock.Any()).Return(approved, nil).Times(1)

		ref, err := testDeps.service.LastApprovedForItem(testDeps.ctx, drill.ID)

		require.Nil(t, err)
		require.NotNil(t, ref)
		require.Equal(t, approved.ID, ref.ID)
		require.Equal(t, booker.ID, ref.BookerID)
		require.Equal(t, "APPROVED", ref.Status)
	})

	t.Run("no last approved yields nil", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().FindLastApproved(testDeps.ctx, drill.ID, gomock.Any()).Return(nil, nil).Times(1)

		ref, err := testDeps.service.LastApprovedForItem(testDeps.ctx, drill.ID)

		require.Nil(t, err)
		require.Nil(t, ref)
	})

	t.Run("next approved maps to a booking ref", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().FindNextApproved(testDeps.ctx, drill.ID, gomock.Any()).Return(approved, nil).Times(1)

		ref, err := testDeps.service.NextApprovedForItem(testDeps.ctx, drill.ID)

		require.Nil(t, err)
		require.NotNil(t, ref)
		require.Equal(t, approved.ID, ref.ID)
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().FindNextApproved(testDeps.ctx, drill.ID, gomock.Any()).Return(nil, errors.New("repo error")).Times(1)

		ref, err := testDeps.service.NextApprovedForItem(testDeps.ctx, drill.ID)

		require.Error(t, err)
		require.Nil(t, ref)
	})
}

func TestHasFinishedBooking(t *testing.T) {
	asOf := time.Now()

	t.Run("passes through", func(t *testing.T) {
		ctrl, testDeps := newTestDeps(t)
		defer ctrl.Finish()

		testDeps.repo.EXPECT().HasCompletedApproved(testDeps.ctx, booker.ID, drill.ID, asOf).Return(true, nil).Times(1)

		ok, err := testDeps.service.HasFinishedBooking(testDeps.ctx, booker.ID, drill.ID, asOf)

		require.Nil(t, err)
		require.True(t, ok)
	})
}
