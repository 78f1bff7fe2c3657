package service_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suburban/infras/s3"
	allocationRepo "suburban/internal/domains/allocation/repository"
	bookingModel "suburban/internal/domains/booking/model"
	bookingDto "suburban/internal/domains/booking/model/dto"
	bookingRepo "suburban/internal/domains/booking/repository"
	bookingService "suburban/internal/domains/booking/service"
	guestRepo "suburban/internal/domains/guest/repository"
	"suburban/internal/domains/room/model"
	"suburban/internal/domains/room/model/dto"
	"suburban/internal/domains/room/repository"
	"suburban/internal/domains/room/service"
	gDto "suburban/shared/dto"
	"suburban/shared/failure"
	"suburban/shared/testsuite"
)

func newServices(t *testing.T) (service.Room, bookingService.Booking) {
	t.Helper()

	env := testsuite.NewEnv(t)

	rooms := repository.New(env.DB, env.Otel)
	bookings := bookingRepo.New(env.DB, env.Otel)
	allocations := allocationRepo.New(env.DB, env.Otel)

	return service.New(rooms, bookings, allocations, env.Transactor, env.Activity, env.Config, env.Cache, env.Otel, s3.New(env.Config, env.Otel)),
		bookingService.New(bookings, rooms, guestRepo.New(env.DB, env.Otel), allocations, env.Transactor, env.Activity, env.Cache, env.Metrics, env.Otel)
}

func checkIn(t *testing.T, bookings bookingService.Booking, room string) bookingDto.CheckInResponse {
	t.Helper()

	res, err := bookings.CheckIn(testsuite.StaffContext(), bookingDto.CheckInRequest{
		Name:         "Carol",
		Phone:        "0722222222",
		Room:         room,
		CheckInDate:  "2024-06-01",
		CheckOutDate: "2024-06-04",
	})
	require.NoError(t, err)

	return res
}

type memoryFile struct {
	*bytes.Reader
}

func (memoryFile) Close() error { return nil }

func TestRoomService_Create(t *testing.T) {
	svc, _ := newServices(t)
	ctx := testsuite.StaffContext()

	res, err := svc.Create(ctx, dto.CreateRoomRequest{Name: "101", Type: "Single", BaseRate: decimal.RequireFromString("99.999")})
	require.NoError(t, err)

	assert.Equal(t, model.StatusAvailable, res.Status)
	assert.Equal(t, model.HousekeepingClean, res.HousekeepingState)
	assert.True(t, decimal.NewFromInt(100).Equal(res.BaseRate), "got %s", res.BaseRate)

	_, err = svc.Create(ctx, dto.CreateRoomRequest{Name: "101", BaseRate: decimal.NewFromInt(50)})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	got, err := svc.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Single", got.Type)

	_, err = svc.Get(ctx, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestRoomService_GetAllAndCount(t *testing.T) {
	svc, _ := newServices(t)
	ctx := testsuite.StaffContext()

	for _, name := range []string{"103", "101", "102"} {
		_, err := svc.Create(ctx, dto.CreateRoomRequest{Name: name, BaseRate: decimal.NewFromInt(60)})
		require.NoError(t, err)
	}

	res, err := svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 2}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	require.Len(t, res.Rooms, 2)
	assert.Equal(t, "101", res.Rooms[0].Name)
	assert.Equal(t, "102", res.Rooms[1].Name)

	count, err := svc.Count(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRoomService_Update(t *testing.T) {
	svc, bookings := newServices(t)
	ctx := testsuite.StaffContext()

	room, err := svc.Create(ctx, dto.CreateRoomRequest{Name: "201", BaseRate: decimal.NewFromInt(70)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.CreateRoomRequest{Name: "202", BaseRate: decimal.NewFromInt(70)})
	require.NoError(t, err)

	rate := decimal.NewFromInt(85)
	require.NoError(t, svc.Update(ctx, dto.UpdateRoomRequest{BaseRate: &rate}, room.ID))

	err = svc.Update(ctx, dto.UpdateRoomRequest{Name: "202"}, room.ID)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	stay := checkIn(t, bookings, "201")
	assert.True(t, decimal.NewFromInt(255).Equal(stay.TotalPrice), "check-in uses the current rate, got %s", stay.TotalPrice)

	err = svc.Update(ctx, dto.UpdateRoomRequest{Status: model.StatusMaintenance}, room.ID)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err), "a checked-in guest holds the room")

	err = svc.Update(ctx, dto.UpdateRoomRequest{Type: "Suite"}, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestRoomService_Delete(t *testing.T) {
	svc, bookings := newServices(t)
	ctx := testsuite.StaffContext()

	room, err := svc.Create(ctx, dto.CreateRoomRequest{Name: "301", BaseRate: decimal.NewFromInt(70)})
	require.NoError(t, err)

	stay := checkIn(t, bookings, "301")

	err = svc.Delete(ctx, room.ID)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	require.NoError(t, bookings.UpdateStatus(ctx, bookingDto.UpdateBookingStatusRequest{Status: bookingModel.StatusCancelled}, stay.BookingID))
	require.NoError(t, svc.Delete(ctx, room.ID))

	_, err = svc.Get(ctx, room.ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestRoomService_SetHousekeeping(t *testing.T) {
	svc, _ := newServices(t)
	ctx := testsuite.StaffContext()

	room, err := svc.Create(ctx, dto.CreateRoomRequest{Name: "401", BaseRate: decimal.NewFromInt(70)})
	require.NoError(t, err)

	require.NoError(t, svc.SetHousekeeping(ctx, dto.SetHousekeepingRequest{State: model.HousekeepingDirty}, room.ID))

	got, err := svc.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, model.HousekeepingDirty, got.HousekeepingState)
	assert.Equal(t, model.StatusAvailable, got.Status)

	err = svc.SetHousekeeping(ctx, dto.SetHousekeepingRequest{State: model.HousekeepingClean}, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestRoomService_UploadImage(t *testing.T) {
	svc, _ := newServices(t)
	ctx := testsuite.StaffContext()

	room, err := svc.Create(ctx, dto.CreateRoomRequest{Name: "501", BaseRate: decimal.NewFromInt(70)})
	require.NoError(t, err)

	_, err = svc.UploadImage(ctx, dto.UploadRoomImageRequest{}, room.ID)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	header := &multipart.FileHeader{
		Filename: "room.png",
		Size:     3,
		Header:   textproto.MIMEHeader{"Content-Type": {"image/png"}},
	}
	req := dto.UploadRoomImageRequest{Image: header, ImageFile: memoryFile{bytes.NewReader([]byte{1, 2, 3})}}

	_, err = svc.UploadImage(ctx, req, room.ID)
	assert.Equal(t, http.StatusNotImplemented, failure.GetCode(err), "uploads need object storage")

	_, err = svc.UploadImage(ctx, req, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
