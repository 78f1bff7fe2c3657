package service_test

import (
	"net/http"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	allocationRepo "suburban/internal/domains/allocation/repository"
	conferenceDto "suburban/internal/domains/conference/model/dto"
	conferenceRepo "suburban/internal/domains/conference/repository"
	conferenceService "suburban/internal/domains/conference/service"
	"suburban/internal/domains/conferencebooking/model"
	"suburban/internal/domains/conferencebooking/model/dto"
	"suburban/internal/domains/conferencebooking/repository"
	"suburban/internal/domains/conferencebooking/service"
	gDto "suburban/shared/dto"
	"suburban/shared/failure"
	"suburban/shared/testsuite"
)

func newServices(t *testing.T) (service.ConferenceBooking, conferenceService.Conference) {
	t.Helper()

	env := testsuite.NewEnv(t)

	facilities := conferenceRepo.New(env.DB, env.Otel)
	bookings := repository.New(env.DB, env.Otel)
	allocations := allocationRepo.New(env.DB, env.Otel)

	svc := service.New(bookings, facilities, allocations, env.Transactor, env.Activity, env.Metrics, env.Otel)
	conf := conferenceService.New(facilities, bookings, allocations, env.Transactor, env.Activity, env.Config, env.Cache, env.Otel)

	return svc, conf
}

func createFacility(t *testing.T, conf conferenceService.Conference) conferenceDto.ConferenceResponse {
	t.Helper()

	hourly := decimal.NewFromInt(40)
	daily := decimal.NewFromInt(250)

	res, err := conf.Create(testsuite.StaffContext(), conferenceDto.CreateConferenceRequest{
		Name:       "Hall A",
		HourlyRate: &hourly,
		DailyRate:  &daily,
	})
	require.NoError(t, err)

	return res
}

func slot(facilityID, start, end string) dto.CreateConferenceBookingRequest {
	return dto.CreateConferenceBookingRequest{
		FacilityID: facilityID,
		Name:       "Board meeting",
		Date:       "2024-03-01",
		StartTime:  start,
		EndTime:    end,
	}
}

func TestConferenceBookingService_Create(t *testing.T) {
	svc, conf := newServices(t)
	ctx := testsuite.StaffContext()
	facility := createFacility(t, conf)

	res, err := svc.Create(ctx, slot(facility.ID, "09:00", "11:30"))
	require.NoError(t, err)

	assert.Equal(t, model.StatusReserved, res.Status)
	assert.Equal(t, 1, res.Attendees)
	assert.Equal(t, "Hall A", res.FacilityName)
	assert.True(t, decimal.NewFromInt(100).Equal(res.TotalPrice), "got %s", res.TotalPrice)

	full, err := svc.Create(ctx, dto.CreateConferenceBookingRequest{
		FacilityID: facility.ID,
		Name:       "Workshop",
		Date:       "2024-03-02",
		StartTime:  "08:00",
		EndTime:    "17:00",
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(250).Equal(full.TotalPrice), "eight hours or more is charged the daily rate")

	got, err := svc.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00", got.StartTime)
	assert.Equal(t, "11:30", got.EndTime)
	assert.Equal(t, "Hall A", got.FacilityName)
}

func TestConferenceBookingService_Create_Overlap(t *testing.T) {
	svc, conf := newServices(t)
	ctx := testsuite.StaffContext()
	facility := createFacility(t, conf)

	first, err := svc.Create(ctx, slot(facility.ID, "09:00", "11:00"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		start string
		end   string
		code  int
	}{
		{name: "same slot", start: "09:00", end: "11:00", code: http.StatusConflict},
		{name: "starts inside", start: "10:00", end: "12:00", code: http.StatusConflict},
		{name: "covers it", start: "08:00", end: "12:00", code: http.StatusConflict},
		{name: "touching end is free", start: "11:00", end: "12:00"},
		{name: "touching start is free", start: "08:00", end: "09:00"},
		{name: "end before start", start: "15:00", end: "14:00", code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, slot(facility.ID, tt.start, tt.end))
			if tt.code == 0 {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.code, failure.GetCode(err))
		})
	}

	require.NoError(t, svc.Update(ctx, dto.UpdateConferenceBookingRequest{Status: model.StatusCancelled}, first.ID))

	_, err = svc.Create(ctx, slot(facility.ID, "09:00", "11:00"))
	require.NoError(t, err, "a cancelled booking frees its slot")

	_, err = svc.Create(ctx, slot("missing", "13:00", "14:00"))
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestConferenceBookingService_Create_Concurrent(t *testing.T) {
	svc, conf := newServices(t)
	ctx := testsuite.StaffContext()
	facility := createFacility(t, conf)

	const attempts = 5

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for range attempts {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if _, err := svc.Create(ctx, slot(facility.ID, "14:00", "16:00")); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, succeeded)

	res, err := svc.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Len(t, res.Bookings, 1)
}

func TestConferenceBookingService_Update(t *testing.T) {
	svc, conf := newServices(t)
	ctx := testsuite.StaffContext()
	facility := createFacility(t, conf)

	res, err := svc.Create(ctx, slot(facility.ID, "09:00", "10:00"))
	require.NoError(t, err)

	err = svc.Update(ctx, dto.UpdateConferenceBookingRequest{}, res.ID)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	deposit := decimal.RequireFromString("20.555")
	require.NoError(t, svc.Update(ctx, dto.UpdateConferenceBookingRequest{Status: model.StatusActive, Deposit: &deposit}, res.ID))

	got, err := svc.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, got.Status)
	assert.True(t, decimal.RequireFromString("20.56").Equal(got.Deposit), "got %s", got.Deposit)

	require.NoError(t, svc.Update(ctx, dto.UpdateConferenceBookingRequest{Status: model.StatusCompleted}, res.ID))

	err = svc.Update(ctx, dto.UpdateConferenceBookingRequest{Status: model.StatusReserved}, res.ID)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err), "completed is final")

	err = svc.Update(ctx, dto.UpdateConferenceBookingRequest{Status: model.StatusActive}, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestConferenceBookingService_Delete(t *testing.T) {
	svc, conf := newServices(t)
	ctx := testsuite.StaffContext()
	facility := createFacility(t, conf)

	res, err := svc.Create(ctx, slot(facility.ID, "09:00", "10:00"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, res.ID))

	_, err = svc.Get(ctx, res.ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	err = svc.Delete(ctx, res.ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
