package service_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	allocationRepo "suburban/internal/domains/allocation/repository"
	"suburban/internal/domains/conference/model"
	"suburban/internal/domains/conference/model/dto"
	"suburban/internal/domains/conference/repository"
	"suburban/internal/domains/conference/service"
	bookingModel "suburban/internal/domains/conferencebooking/model"
	bookingDto "suburban/internal/domains/conferencebooking/model/dto"
	bookingRepo "suburban/internal/domains/conferencebooking/repository"
	bookingService "suburban/internal/domains/conferencebooking/service"
	gDto "suburban/shared/dto"
	"suburban/shared/failure"
	"suburban/shared/testsuite"
)

func newServices(t *testing.T) (service.Conference, bookingService.ConferenceBooking) {
	t.Helper()

	env := testsuite.NewEnv(t)

	facilities := repository.New(env.DB, env.Otel)
	bookings := bookingRepo.New(env.DB, env.Otel)
	allocations := allocationRepo.New(env.DB, env.Otel)

	return service.New(facilities, bookings, allocations, env.Transactor, env.Activity, env.Config, env.Cache, env.Otel),
		bookingService.New(bookings, facilities, allocations, env.Transactor, env.Activity, env.Metrics, env.Otel)
}

func TestConferenceService_Create(t *testing.T) {
	svc, _ := newServices(t)
	ctx := testsuite.StaffContext()

	res, err := svc.Create(ctx, dto.CreateConferenceRequest{Name: "Hall A"})
	require.NoError(t, err)

	assert.Equal(t, model.DefaultCapacity, res.Capacity)
	assert.Equal(t, []string(model.DefaultEquipment()), res.Equipment)
	assert.True(t, model.DefaultHourlyRate.Equal(res.HourlyRate))
	assert.True(t, model.DefaultDailyRate.Equal(res.DailyRate))
	assert.Equal(t, model.StatusAvailable, res.Status)

	_, err = svc.Create(ctx, dto.CreateConferenceRequest{Name: "Hall A"})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	got, err := svc.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Equipment, got.Equipment)

	list, err := svc.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Len(t, list.Conferences, 1)
}

func TestConferenceService_Update(t *testing.T) {
	svc, _ := newServices(t)
	ctx := testsuite.StaffContext()

	hall, err := svc.Create(ctx, dto.CreateConferenceRequest{Name: "Hall A"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.CreateConferenceRequest{Name: "Hall B"})
	require.NoError(t, err)

	rate := decimal.NewFromInt(65)
	require.NoError(t, svc.Update(ctx, dto.UpdateConferenceRequest{HourlyRate: &rate, Equipment: model.Equipment{"projector"}}, hall.ID))

	got, err := svc.Get(ctx, hall.ID)
	require.NoError(t, err)
	assert.True(t, rate.Equal(got.HourlyRate))
	assert.Equal(t, []string{"projector"}, got.Equipment)

	err = svc.Update(ctx, dto.UpdateConferenceRequest{Name: "Hall B"}, hall.ID)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	err = svc.Update(ctx, dto.UpdateConferenceRequest{Capacity: 10}, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestConferenceService_Delete(t *testing.T) {
	svc, bookings := newServices(t)
	ctx := testsuite.StaffContext()

	hall, err := svc.Create(ctx, dto.CreateConferenceRequest{Name: "Hall A"})
	require.NoError(t, err)

	booking, err := bookings.Create(ctx, bookingDto.CreateConferenceBookingRequest{
		FacilityID: hall.ID,
		Name:       "Offsite",
		Date:       "2024-03-01",
		StartTime:  "09:00",
		EndTime:    "10:00",
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, hall.ID)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err), "live bookings hold the facility")

	require.NoError(t, bookings.Update(ctx, bookingDto.UpdateConferenceBookingRequest{Status: bookingModel.StatusCancelled}, booking.ID))
	require.NoError(t, svc.Delete(ctx, hall.ID))

	_, err = svc.Get(ctx, hall.ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
