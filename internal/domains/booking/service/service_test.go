package service_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suburban/infras/s3"
	allocationRepo "suburban/internal/domains/allocation/repository"
	"suburban/internal/domains/booking/model"
	"suburban/internal/domains/booking/model/dto"
	"suburban/internal/domains/booking/repository"
	"suburban/internal/domains/booking/service"
	guestModel "suburban/internal/domains/guest/model"
	guestRepo "suburban/internal/domains/guest/repository"
	roomModel "suburban/internal/domains/room/model"
	roomDto "suburban/internal/domains/room/model/dto"
	roomRepo "suburban/internal/domains/room/repository"
	roomService "suburban/internal/domains/room/service"
	"suburban/shared"
	gDto "suburban/shared/dto"
	"suburban/shared/failure"
	"suburban/shared/testsuite"
)

type fixture struct {
	bookings service.Booking
	rooms    roomService.Room
	roomRepo roomRepo.Room
	guests   guestRepo.Guest
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	env := testsuite.NewEnv(t)

	rRepo := roomRepo.New(env.DB, env.Otel)
	bRepo := repository.New(env.DB, env.Otel)
	gRepo := guestRepo.New(env.DB, env.Otel)
	aRepo := allocationRepo.New(env.DB, env.Otel)

	return fixture{
		bookings: service.New(bRepo, rRepo, gRepo, aRepo, env.Transactor, env.Activity, env.Cache, env.Metrics, env.Otel),
		rooms:    roomService.New(rRepo, bRepo, aRepo, env.Transactor, env.Activity, env.Config, env.Cache, env.Otel, s3.New(env.Config, env.Otel)),
		roomRepo: rRepo,
		guests:   gRepo,
	}
}

func (f fixture) createRoom(t *testing.T, name string, rate int64) roomDto.RoomResponse {
	t.Helper()

	room, err := f.rooms.Create(testsuite.StaffContext(), roomDto.CreateRoomRequest{
		Name:     name,
		Type:     "Double",
		BaseRate: decimal.NewFromInt(rate),
	})
	require.NoError(t, err)

	return room
}

func (f fixture) roomStatus(t *testing.T, id string) string {
	t.Helper()

	room, err := f.roomRepo.Get(testsuite.StaffContext(), shared.FilterByID(id, roomModel.FieldID, roomModel.TableName))
	require.NoError(t, err)

	return room.Status
}

func checkInRequest(room string) dto.CheckInRequest {
	return dto.CheckInRequest{
		Name:         "Alice",
		Phone:        "0700000000",
		Room:         room,
		CheckInDate:  "2024-01-01",
		CheckOutDate: "2024-01-03",
	}
}

func TestBookingService_CheckIn(t *testing.T) {
	f := newFixture(t)
	ctx := testsuite.StaffContext()
	room := f.createRoom(t, "Room 1", 120)

	res, err := f.bookings.CheckIn(ctx, checkInRequest("Room 1"))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Nights)
	assert.True(t, decimal.NewFromInt(240).Equal(res.TotalPrice), "got %s", res.TotalPrice)
	assert.Equal(t, room.ID, res.RoomID)
	assert.Equal(t, roomModel.StatusOccupied, f.roomStatus(t, room.ID))

	booking, err := f.bookings.Get(ctx, res.BookingID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCheckedIn, booking.Status)
	assert.Equal(t, "Alice", booking.GuestName)
	assert.Equal(t, "Room 1", booking.RoomName)
}

func TestBookingService_CheckIn_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := testsuite.StaffContext()
	f.createRoom(t, "Room 1", 120)

	tests := []struct {
		name string
		req  dto.CheckInRequest
		code int
	}{
		{
			name: "unknown room",
			req:  checkInRequest("Room 9"),
			code: http.StatusNotFound,
		},
		{
			name: "check-out before check-in",
			req: func() dto.CheckInRequest {
				req := checkInRequest("Room 1")
				req.CheckOutDate = "2023-12-31"

				return req
			}(),
			code: http.StatusBadRequest,
		},
		{
			name: "same day",
			req: func() dto.CheckInRequest {
				req := checkInRequest("Room 1")
				req.CheckOutDate = req.CheckInDate

				return req
			}(),
			code: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.bookings.CheckIn(ctx, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.code, failure.GetCode(err))
		})
	}

	res, err := f.bookings.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Empty(t, res.Bookings, "failed check-ins must not leave rows behind")
}

func TestBookingService_CheckOut(t *testing.T) {
	f := newFixture(t)
	ctx := testsuite.StaffContext()
	room := f.createRoom(t, "Room 1", 120)

	res, err := f.bookings.CheckIn(ctx, checkInRequest("Room 1"))
	require.NoError(t, err)

	require.NoError(t, f.bookings.CheckOut(ctx, res.GuestID))

	assert.Equal(t, roomModel.StatusAvailable, f.roomStatus(t, room.ID))

	booking, err := f.bookings.Get(ctx, res.BookingID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCheckedOut, booking.Status)

	guest, err := f.guests.GetDetail(ctx, shared.FilterByID(res.GuestID, guestModel.FieldID, guestModel.TableName))
	require.NoError(t, err)
	assert.Equal(t, model.GuestStatus(model.StatusCheckedOut), guest.Status)

	err = f.bookings.CheckOut(ctx, res.GuestID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := testsuite.StaffContext()
	room := f.createRoom(t, "Room 2", 75)

	checkIn, err := f.bookings.CheckIn(ctx, checkInRequest("Room 2"))
	require.NoError(t, err)
	require.NoError(t, f.bookings.CheckOut(ctx, checkIn.GuestID))

	res, err := f.bookings.Create(ctx, dto.CreateBookingRequest{
		GuestID:      checkIn.GuestID,
		RoomID:       room.ID,
		CheckInDate:  "2024-02-10",
		CheckOutDate: "2024-02-13",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusReserved, res.Status)
	assert.True(t, decimal.NewFromInt(225).Equal(res.TotalPrice), "got %s", res.TotalPrice)
	assert.Equal(t, roomModel.StatusOccupied, f.roomStatus(t, room.ID))

	_, err = f.bookings.Create(ctx, dto.CreateBookingRequest{
		GuestID:      "missing",
		RoomID:       room.ID,
		CheckInDate:  "2024-02-10",
		CheckOutDate: "2024-02-13",
	})
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingService_UpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := testsuite.StaffContext()
	room := f.createRoom(t, "Room 3", 100)

	res, err := f.bookings.CheckIn(ctx, checkInRequest("Room 3"))
	require.NoError(t, err)

	err = f.bookings.UpdateStatus(ctx, dto.UpdateBookingStatusRequest{Status: model.StatusReserved}, res.BookingID)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err), "checked in cannot go back to reserved")

	err = f.bookings.UpdateStatus(ctx, dto.UpdateBookingStatusRequest{Status: model.StatusCheckedIn, CheckOutDate: "2024-01-05"}, res.BookingID)
	require.NoError(t, err, "repeating the current status only moves the check-out date")

	booking, err := f.bookings.Get(ctx, res.BookingID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", booking.CheckOutDate)

	require.NoError(t, f.bookings.UpdateStatus(ctx, dto.UpdateBookingStatusRequest{Status: model.StatusCancelled}, res.BookingID))
	assert.Equal(t, roomModel.StatusAvailable, f.roomStatus(t, room.ID))

	err = f.bookings.UpdateStatus(ctx, dto.UpdateBookingStatusRequest{Status: model.StatusCheckedIn}, res.BookingID)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err), "cancelled is final")

	err = f.bookings.UpdateStatus(ctx, dto.UpdateBookingStatusRequest{Status: model.StatusCancelled}, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := testsuite.StaffContext()
	room := f.createRoom(t, "Room 4", 90)

	res, err := f.bookings.CheckIn(ctx, checkInRequest("Room 4"))
	require.NoError(t, err)

	require.NoError(t, f.bookings.Delete(ctx, res.BookingID))
	assert.Equal(t, roomModel.StatusAvailable, f.roomStatus(t, room.ID))

	_, err = f.bookings.Get(ctx, res.BookingID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	err = f.bookings.Delete(ctx, res.BookingID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingService_OneCheckedInStayPerGuest(t *testing.T) {
	f := newFixture(t)
	ctx := testsuite.StaffContext()
	f.createRoom(t, "Room 1", 120)
	second := f.createRoom(t, "Room 2", 90)

	stay, err := f.bookings.CheckIn(ctx, checkInRequest("Room 1"))
	require.NoError(t, err)

	_, err = f.bookings.Create(ctx, dto.CreateBookingRequest{
		GuestID:      stay.GuestID,
		RoomID:       second.ID,
		CheckInDate:  "2024-01-01",
		CheckOutDate: "2024-01-03",
		Status:       model.StatusCheckedIn,
	})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err), "create straight into a second stay")
	assert.Equal(t, roomModel.StatusAvailable, f.roomStatus(t, second.ID))

	reserved, err := f.bookings.Create(ctx, dto.CreateBookingRequest{
		GuestID:      stay.GuestID,
		RoomID:       second.ID,
		CheckInDate:  "2024-01-03",
		CheckOutDate: "2024-01-05",
	})
	require.NoError(t, err)

	err = f.bookings.UpdateStatus(ctx, dto.UpdateBookingStatusRequest{Status: model.StatusCheckedIn}, reserved.ID)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err), "move a reservation into a second stay")

	booking, err := f.bookings.Get(ctx, reserved.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReserved, booking.Status)

	require.NoError(t, f.bookings.CheckOut(ctx, stay.GuestID))
	require.NoError(t, f.bookings.UpdateStatus(ctx, dto.UpdateBookingStatusRequest{Status: model.StatusCheckedIn}, reserved.ID))

	guest, err := f.guests.GetDetail(ctx, shared.FilterByID(stay.GuestID, guestModel.FieldID, guestModel.TableName))
	require.NoError(t, err)
	assert.Equal(t, model.GuestStatus(model.StatusCheckedIn), guest.Status)
	assert.Equal(t, roomModel.StatusOccupied, f.roomStatus(t, second.ID))
}

func TestBookingService_MaintenanceRoomRejectsStays(t *testing.T) {
	f := newFixture(t)
	ctx := testsuite.StaffContext()
	room := f.createRoom(t, "Room 9", 100)
	f.createRoom(t, "Room 10", 100)

	stay, err := f.bookings.CheckIn(ctx, checkInRequest("Room 10"))
	require.NoError(t, err)
	require.NoError(t, f.bookings.CheckOut(ctx, stay.GuestID))

	reserved, err := f.bookings.Create(ctx, dto.CreateBookingRequest{
		GuestID:      stay.GuestID,
		RoomID:       room.ID,
		CheckInDate:  "2024-03-01",
		CheckOutDate: "2024-03-02",
	})
	require.NoError(t, err)

	require.NoError(t, f.rooms.Update(ctx, roomDto.UpdateRoomRequest{Status: roomModel.StatusMaintenance}, room.ID))

	_, err = f.bookings.CheckIn(ctx, checkInRequest("Room 9"))
	assert.Equal(t, http.StatusConflict, failure.GetCode(err), "check in")

	_, err = f.bookings.Create(ctx, dto.CreateBookingRequest{
		GuestID:      stay.GuestID,
		RoomID:       room.ID,
		CheckInDate:  "2024-03-05",
		CheckOutDate: "2024-03-06",
	})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err), "reserve")

	err = f.bookings.UpdateStatus(ctx, dto.UpdateBookingStatusRequest{Status: model.StatusCheckedIn}, reserved.ID)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err), "arrive on a reservation")
	assert.Equal(t, roomModel.StatusMaintenance, f.roomStatus(t, room.ID))

	require.NoError(t, f.bookings.Delete(ctx, reserved.ID))
	assert.Equal(t, roomModel.StatusMaintenance, f.roomStatus(t, room.ID), "releasing the room keeps maintenance")
}
