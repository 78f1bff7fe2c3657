package service_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suburban/internal/domains/inventory/model"
	"suburban/internal/domains/inventory/model/dto"
	"suburban/internal/domains/inventory/repository"
	"suburban/internal/domains/inventory/service"
	gDto "suburban/shared/dto"
	"suburban/shared/failure"
	"suburban/shared/testsuite"
)

func newService(t *testing.T) service.Inventory {
	t.Helper()

	env := testsuite.NewEnv(t)

	return service.New(repository.New(env.DB, env.Otel), env.Transactor, env.Activity, env.Config, env.Cache, env.Otel)
}

func intPtr(v int) *int {
	return &v
}

func TestInventoryService_Create(t *testing.T) {
	svc := newService(t)
	ctx := testsuite.StaffContext()

	res, err := svc.Create(ctx, dto.CreateItemRequest{
		Name:         "Towels",
		TotalStock:   100,
		CurrentStock: 40,
		MinLevel:     5,
		PricePerUnit: decimal.RequireFromString("3.456"),
	})
	require.NoError(t, err)

	assert.Equal(t, model.CategoryConsumables, res.Category)
	assert.Equal(t, model.DefaultUnit, res.Unit)
	assert.Equal(t, model.StatusActive, res.Status)
	assert.Equal(t, model.DefaultReorderThreshold, res.ReorderThreshold)
	assert.Equal(t, model.StockOptimal, res.StockStatus)
	assert.True(t, decimal.RequireFromString("3.46").Equal(res.PricePerUnit), "got %s", res.PricePerUnit)

	_, err = svc.Create(ctx, dto.CreateItemRequest{Name: "Towels", TotalStock: 1})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	_, err = svc.Create(ctx, dto.CreateItemRequest{Name: "Soap", TotalStock: 5, CurrentStock: 6})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestInventoryService_Update(t *testing.T) {
	svc := newService(t)
	ctx := testsuite.StaffContext()

	res, err := svc.Create(ctx, dto.CreateItemRequest{Name: "Shampoo", TotalStock: 50, CurrentStock: 30, MinLevel: 5})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  dto.UpdateItemRequest
		code int
	}{
		{name: "current above stored total", req: dto.UpdateItemRequest{CurrentStock: intPtr(51)}, code: http.StatusBadRequest},
		{name: "total below stored current", req: dto.UpdateItemRequest{TotalStock: intPtr(29)}, code: http.StatusBadRequest},
		{name: "both raised together", req: dto.UpdateItemRequest{TotalStock: intPtr(80), CurrentStock: intPtr(70)}},
		{name: "rename", req: dto.UpdateItemRequest{Name: "Body wash"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Update(ctx, tt.req, res.ID)
			if tt.code == 0 {
				require.NoError(t, err)

				return
			}

			assert.Equal(t, tt.code, failure.GetCode(err))
		})
	}

	got, err := svc.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Body wash", got.Name)
	assert.Equal(t, 80, got.TotalStock)
	assert.Equal(t, 70, got.CurrentStock)

	err = svc.Update(ctx, dto.UpdateItemRequest{Name: "x"}, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestInventoryService_ListAlerts(t *testing.T) {
	svc := newService(t)
	ctx := testsuite.StaffContext()

	items := []dto.CreateItemRequest{
		{Name: "Coffee", TotalStock: 20, CurrentStock: 2, MinLevel: 5},
		{Name: "Tea", TotalStock: 20, CurrentStock: 0, MinLevel: 5},
		{Name: "Sugar", TotalStock: 20, CurrentStock: 5, MinLevel: 5},
		{Name: "Milk", TotalStock: 20, CurrentStock: 8, MinLevel: 5},
		{Name: "Cocoa", TotalStock: 20, CurrentStock: 1, MinLevel: 5, Status: model.StatusDiscontinued},
	}

	for _, item := range items {
		_, err := svc.Create(ctx, item)
		require.NoError(t, err)
	}

	first, err := svc.ListAlerts(ctx)
	require.NoError(t, err)

	names := make([]string, len(first.Items))
	for i, item := range first.Items {
		names[i] = item.Name
		assert.Equal(t, model.StockCritical, item.StockStatus)
	}

	assert.Equal(t, []string{"Tea", "Coffee", "Sugar"}, names)

	second, err := svc.ListAlerts(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second, "listing alerts has no side effects")
}

func TestInventoryService_Delete(t *testing.T) {
	svc := newService(t)
	ctx := testsuite.StaffContext()

	res, err := svc.Create(ctx, dto.CreateItemRequest{Name: "Candles", TotalStock: 3, CurrentStock: 3})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, res.ID))

	list, err := svc.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	err = svc.Delete(ctx, res.ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
