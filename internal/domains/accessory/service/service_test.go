package service_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suburban/internal/domains/accessory/model/dto"
	"suburban/internal/domains/accessory/repository"
	"suburban/internal/domains/accessory/service"
	allocationRepo "suburban/internal/domains/allocation/repository"
	gDto "suburban/shared/dto"
	"suburban/shared/failure"
	"suburban/shared/testsuite"
)

func newService(t *testing.T) service.Accessory {
	t.Helper()

	env := testsuite.NewEnv(t)

	return service.New(repository.New(env.DB, env.Otel), allocationRepo.New(env.DB, env.Otel), env.Transactor, env.Activity, env.Otel)
}

func intPtr(v int) *int {
	return &v
}

func TestAccessoryService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateAccessoryRequest
		available int
	}{
		{
			name:      "available defaults to total",
			req:       dto.CreateAccessoryRequest{Name: "Projector", TotalStock: 4},
			available: 4,
		},
		{
			name:      "available above total is clamped",
			req:       dto.CreateAccessoryRequest{Name: "Projector", TotalStock: 4, AvailableStock: intPtr(9)},
			available: 4,
		},
		{
			name:      "available below total is kept",
			req:       dto.CreateAccessoryRequest{Name: "Projector", TotalStock: 4, AvailableStock: intPtr(1)},
			available: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t)

			res, err := svc.Create(testsuite.StaffContext(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.available, res.AvailableStock)

			got, err := svc.Get(testsuite.StaffContext(), res.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.available, got.AvailableStock)
		})
	}
}

func TestAccessoryService_Create_Duplicate(t *testing.T) {
	svc := newService(t)
	ctx := testsuite.StaffContext()

	_, err := svc.Create(ctx, dto.CreateAccessoryRequest{Name: "Extension cord", TotalStock: 2})
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.CreateAccessoryRequest{Name: "Extension cord", TotalStock: 2})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestAccessoryService_Update(t *testing.T) {
	svc := newService(t)
	ctx := testsuite.StaffContext()

	res, err := svc.Create(ctx, dto.CreateAccessoryRequest{Name: "Flip chart", TotalStock: 10, PricePerUnit: decimal.NewFromInt(5)})
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, dto.UpdateAccessoryRequest{TotalStock: intPtr(3)}, res.ID))

	got, err := svc.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalStock)
	assert.Equal(t, 3, got.AvailableStock, "shrinking the fleet clamps what is available")

	price := decimal.RequireFromString("7.499")
	require.NoError(t, svc.Update(ctx, dto.UpdateAccessoryRequest{AvailableStock: intPtr(1), PricePerUnit: &price}, res.ID))

	got, err = svc.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.AvailableStock)
	assert.True(t, decimal.RequireFromString("7.50").Equal(got.PricePerUnit), "got %s", got.PricePerUnit)

	err = svc.Update(ctx, dto.UpdateAccessoryRequest{TotalStock: intPtr(1)}, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestAccessoryService_Delete(t *testing.T) {
	svc := newService(t)
	ctx := testsuite.StaffContext()

	res, err := svc.Create(ctx, dto.CreateAccessoryRequest{Name: "Whiteboard", TotalStock: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, res.ID))

	list, err := svc.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Empty(t, list.Accessories)

	err = svc.Delete(ctx, res.ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
