package service_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suburban/infras/s3"
	accessoryDto "suburban/internal/domains/accessory/model/dto"
	accessoryRepo "suburban/internal/domains/accessory/repository"
	accessoryService "suburban/internal/domains/accessory/service"
	allocationDto "suburban/internal/domains/allocation/model/dto"
	allocationRepo "suburban/internal/domains/allocation/repository"
	allocationService "suburban/internal/domains/allocation/service"
	bookingModel "suburban/internal/domains/booking/model"
	bookingDto "suburban/internal/domains/booking/model/dto"
	bookingRepo "suburban/internal/domains/booking/repository"
	bookingService "suburban/internal/domains/booking/service"
	cbRepo "suburban/internal/domains/conferencebooking/repository"
	"suburban/internal/domains/guest/model/dto"
	"suburban/internal/domains/guest/repository"
	"suburban/internal/domains/guest/service"
	roomModel "suburban/internal/domains/room/model"
	roomDto "suburban/internal/domains/room/model/dto"
	roomRepo "suburban/internal/domains/room/repository"
	roomService "suburban/internal/domains/room/service"
	gDto "suburban/shared/dto"
	"suburban/shared/failure"
	"suburban/shared/testsuite"
)

type fixture struct {
	guests      service.Guest
	bookings    bookingService.Booking
	rooms       roomService.Room
	accessories accessoryService.Accessory
	allocations allocationService.Allocation
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	env := testsuite.NewEnv(t)

	gRepo := repository.New(env.DB, env.Otel)
	bRepo := bookingRepo.New(env.DB, env.Otel)
	rRepo := roomRepo.New(env.DB, env.Otel)
	aRepo := allocationRepo.New(env.DB, env.Otel)
	accRepo := accessoryRepo.New(env.DB, env.Otel)

	return fixture{
		guests:      service.New(gRepo, bRepo, rRepo, aRepo, env.Transactor, env.Activity, env.Cache, env.Otel),
		bookings:    bookingService.New(bRepo, rRepo, gRepo, aRepo, env.Transactor, env.Activity, env.Cache, env.Metrics, env.Otel),
		rooms:       roomService.New(rRepo, bRepo, aRepo, env.Transactor, env.Activity, env.Config, env.Cache, env.Otel, s3.New(env.Config, env.Otel)),
		accessories: accessoryService.New(accRepo, aRepo, env.Transactor, env.Activity, env.Otel),
		allocations: allocationService.New(aRepo, accRepo, bRepo, cbRepo.New(env.DB, env.Otel), env.Transactor, env.Activity, env.Metrics, env.Otel),
	}
}

func TestGuestService_CreateAndUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := testsuite.StaffContext()

	res, err := f.guests.Create(ctx, dto.CreateGuestRequest{Name: "Dave", Phone: "0733333333"})
	require.NoError(t, err)
	assert.Empty(t, res.Room)
	assert.Empty(t, res.BookingID)

	require.NoError(t, f.guests.Update(ctx, dto.UpdateGuestRequest{Email: "dave@example.com"}, res.ID))

	got, err := f.guests.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dave", got.Name)
	assert.Equal(t, "dave@example.com", got.Email)

	err = f.guests.Update(ctx, dto.UpdateGuestRequest{Name: "x"}, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = f.guests.Get(ctx, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestGuestService_GetShowsLatestBooking(t *testing.T) {
	f := newFixture(t)
	ctx := testsuite.StaffContext()

	room, err := f.rooms.Create(ctx, roomDto.CreateRoomRequest{Name: "12", BaseRate: decimal.NewFromInt(50)})
	require.NoError(t, err)

	stay, err := f.bookings.CheckIn(ctx, bookingDto.CheckInRequest{
		Name:         "Erin",
		Phone:        "0744444444",
		Room:         "12",
		CheckInDate:  "2024-07-01",
		CheckOutDate: "2024-07-02",
	})
	require.NoError(t, err)

	got, err := f.guests.Get(ctx, stay.GuestID)
	require.NoError(t, err)
	assert.Equal(t, "12", got.Room)
	assert.Equal(t, bookingModel.GuestStatus(bookingModel.StatusCheckedIn), got.Status)
	assert.Equal(t, stay.BookingID, got.BookingID)
	assert.Equal(t, room.ID, got.RoomID)
	assert.Equal(t, bookingModel.StatusCheckedIn, got.BookingStatus)

	list, err := f.guests.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Len(t, list.Guests, 1)
}

func TestGuestService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := testsuite.StaffContext()

	room, err := f.rooms.Create(ctx, roomDto.CreateRoomRequest{Name: "14", BaseRate: decimal.NewFromInt(50)})
	require.NoError(t, err)

	stay, err := f.bookings.CheckIn(ctx, bookingDto.CheckInRequest{
		Name:         "Frank",
		Phone:        "0755555555",
		Room:         "14",
		CheckInDate:  "2024-07-01",
		CheckOutDate: "2024-07-03",
	})
	require.NoError(t, err)

	acc, err := f.accessories.Create(ctx, accessoryDto.CreateAccessoryRequest{Name: "Iron", TotalStock: 2})
	require.NoError(t, err)

	_, err = f.allocations.Allocate(ctx, allocationDto.AllocateRequest{AccessoryID: acc.ID, BookingID: stay.BookingID, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, f.guests.Delete(ctx, stay.GuestID))

	_, err = f.bookings.Get(ctx, stay.BookingID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err), "bookings go with their guest")

	gotRoom, err := f.rooms.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, roomModel.StatusAvailable, gotRoom.Status)

	gotAcc, err := f.accessories.Get(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, gotAcc.AvailableStock, "lent accessories are put back")

	err = f.guests.Delete(ctx, stay.GuestID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
