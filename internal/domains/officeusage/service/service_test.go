package service_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	guestModel "suburban/internal/domains/guest/model"
	guestRepo "suburban/internal/domains/guest/repository"
	"suburban/internal/domains/officeusage/model"
	"suburban/internal/domains/officeusage/model/dto"
	"suburban/internal/domains/officeusage/repository"
	"suburban/internal/domains/officeusage/service"
	userDto "suburban/internal/domains/user/model/dto"
	userRepo "suburban/internal/domains/user/repository"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	"suburban/shared/failure"
	sModel "suburban/shared/model"
	"suburban/shared/testsuite"
	"suburban/shared/timezone"
)

func newService(t *testing.T) (service.OfficeUsage, *testsuite.Env) {
	t.Helper()

	env := testsuite.NewEnv(t)

	return service.New(repository.New(env.DB, env.Otel), env.Transactor, env.Activity, env.Otel), env
}

func at(hour int) *time.Time {
	v := time.Date(2024, 8, 1, hour, 0, 0, 0, timezone.GetLocation())

	return &v
}

func TestOfficeUsageService_Create(t *testing.T) {
	svc, env := newService(t)
	ctx := testsuite.StaffContext()

	staff := userDto.Seed{Username: "staff", Role: constant.RoleStaff}.ToModel("hash", timezone.Now())
	require.NoError(t, userRepo.New(env.DB, env.Otel).Insert(ctx, staff))

	guest := guestModel.Guest{ID: "g-1", Name: "Grace", Phone: "0766666666", Metadata: sModel.NewMetadata("staff", timezone.Now())}
	require.NoError(t, guestRepo.New(env.DB, env.Otel).Insert(ctx, guest))

	byStaff, err := svc.Create(ctx, dto.CreateUsageRequest{UserID: staff.ID, UserType: model.UserTypeStaff, StartTime: at(9), Purpose: "reports"})
	require.NoError(t, err)
	assert.Empty(t, byStaff.EndTime, "a stint without an end is open")

	byGuest, err := svc.Create(ctx, dto.CreateUsageRequest{UserID: guest.ID, UserType: model.UserTypeGuest, StartTime: at(10), EndTime: at(11)})
	require.NoError(t, err)

	got, err := svc.Get(ctx, byStaff.ID)
	require.NoError(t, err)
	assert.Equal(t, "staff", got.Username)
	assert.Empty(t, got.GuestName)

	got, err = svc.Get(ctx, byGuest.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.GuestName)
	assert.Empty(t, got.Username)
	assert.NotEmpty(t, got.EndTime)

	list, err := svc.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)
	require.Len(t, list.Usages, 2)
	assert.Equal(t, byGuest.ID, list.Usages[0].ID, "latest start first")

	_, err = svc.Create(ctx, dto.CreateUsageRequest{UserID: staff.ID, UserType: model.UserTypeStaff, StartTime: at(12), EndTime: at(11)})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestOfficeUsageService_Update(t *testing.T) {
	svc, _ := newService(t)
	ctx := testsuite.StaffContext()

	res, err := svc.Create(ctx, dto.CreateUsageRequest{UserID: "u-1", UserType: model.UserTypeAdmin, StartTime: at(9)})
	require.NoError(t, err)

	err = svc.Update(ctx, dto.UpdateUsageRequest{}, res.ID)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	err = svc.Update(ctx, dto.UpdateUsageRequest{EndTime: at(8)}, res.ID)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err), "end before start")

	purpose := "budget review"
	require.NoError(t, svc.Update(ctx, dto.UpdateUsageRequest{EndTime: at(12), Purpose: &purpose}, res.ID))

	got, err := svc.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, purpose, got.Purpose)
	assert.NotEmpty(t, got.EndTime)

	err = svc.Update(ctx, dto.UpdateUsageRequest{Purpose: &purpose}, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestOfficeUsageService_Delete(t *testing.T) {
	svc, _ := newService(t)
	ctx := testsuite.StaffContext()

	res, err := svc.Create(ctx, dto.CreateUsageRequest{UserID: "u-1", UserType: model.UserTypeStaff})
	require.NoError(t, err)
	assert.NotEmpty(t, res.StartTime, "start defaults to now")

	require.NoError(t, svc.Delete(ctx, res.ID))

	_, err = svc.Get(ctx, res.ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	err = svc.Delete(ctx, res.ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
