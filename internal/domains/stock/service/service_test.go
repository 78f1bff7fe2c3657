package service_test

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventoryDto "suburban/internal/domains/inventory/model/dto"
	inventoryRepo "suburban/internal/domains/inventory/repository"
	inventoryService "suburban/internal/domains/inventory/service"
	"suburban/internal/domains/stock/model"
	"suburban/internal/domains/stock/model/dto"
	"suburban/internal/domains/stock/repository"
	"suburban/internal/domains/stock/service"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	"suburban/shared/failure"
	"suburban/shared/testsuite"
)

func newServices(t *testing.T) (service.Stock, inventoryService.Inventory) {
	t.Helper()

	env := testsuite.NewEnv(t)
	items := inventoryRepo.New(env.DB, env.Otel)

	return service.New(repository.New(env.DB, env.Otel), items, env.Transactor, env.Activity, env.Cache, env.Metrics, env.Otel),
		inventoryService.New(items, env.Transactor, env.Activity, env.Config, env.Cache, env.Otel)
}

func createItem(t *testing.T, inventory inventoryService.Inventory, total, current int) inventoryDto.ItemResponse {
	t.Helper()

	res, err := inventory.Create(testsuite.StaffContext(), inventoryDto.CreateItemRequest{
		Name:         "Toilet paper",
		TotalStock:   total,
		CurrentStock: current,
		MinLevel:     2,
	})
	require.NoError(t, err)

	return res
}

func level(t *testing.T, inventory inventoryService.Inventory, id string) (total, current int) {
	t.Helper()

	res, err := inventory.Get(testsuite.StaffContext(), id)
	require.NoError(t, err)

	return res.TotalStock, res.CurrentStock
}

func TestStockService_Record(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		quantity int
		total    int
		current  int
		code     int
	}{
		{name: "in adds", kind: model.TypeIn, quantity: 5, total: 20, current: 15},
		{name: "in past total raises total", kind: model.TypeIn, quantity: 15, total: 25, current: 25},
		{name: "out removes", kind: model.TypeOut, quantity: 4, total: 20, current: 6},
		{name: "out of everything", kind: model.TypeOut, quantity: 10, total: 20, current: 0},
		{name: "out beyond stock", kind: model.TypeOut, quantity: 15, total: 20, current: 10, code: http.StatusBadRequest},
		{name: "negative adjust", kind: model.TypeAdjust, quantity: -3, total: 20, current: 7},
		{name: "adjust below zero", kind: model.TypeAdjust, quantity: -11, total: 20, current: 10, code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, inventory := newServices(t)
			item := createItem(t, inventory, 20, 10)

			res, err := svc.Record(testsuite.StaffContext(), dto.RecordTransactionRequest{ItemID: item.ID, Type: tt.kind, Quantity: tt.quantity})
			if tt.code != 0 {
				assert.Equal(t, tt.code, failure.GetCode(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.current, res.NewStock)
			}

			total, current := level(t, inventory, item.ID)
			assert.Equal(t, tt.total, total)
			assert.Equal(t, tt.current, current)
		})
	}
}

func TestStockService_Record_Ledger(t *testing.T) {
	svc, inventory := newServices(t)
	ctx := testsuite.StaffContext()
	item := createItem(t, inventory, 20, 10)

	in, err := svc.Record(ctx, dto.RecordTransactionRequest{ItemID: item.ID, Type: model.TypeIn, Quantity: 5, Reason: "delivery"})
	require.NoError(t, err)

	_, err = svc.Record(ctx, dto.RecordTransactionRequest{ItemID: item.ID, Type: model.TypeOut, Quantity: 5})
	require.NoError(t, err)

	_, current := level(t, inventory, item.ID)
	assert.Equal(t, 10, current, "in then out of the same amount is a round trip")

	got, err := svc.Get(ctx, in.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.PreviousStock)
	assert.Equal(t, 15, got.NewStock)
	assert.Equal(t, "delivery", got.Reason)
	assert.Equal(t, "Toilet paper", got.ItemName)
	assert.Equal(t, constant.RoleStaff, got.UserRole)
	assert.Equal(t, "staff", got.CreatedBy)

	list, err := svc.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Len(t, list.Transactions, 2)

	_, err = svc.Record(ctx, dto.RecordTransactionRequest{ItemID: item.ID, Type: model.TypeOut, Quantity: 11})
	require.Error(t, err)

	list, err = svc.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Len(t, list.Transactions, 2, "rejected movements are not recorded")

	_, err = svc.Record(ctx, dto.RecordTransactionRequest{ItemID: "missing", Type: model.TypeIn, Quantity: 1})
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = svc.Get(ctx, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestStockService_Record_Concurrent(t *testing.T) {
	svc, inventory := newServices(t)
	item := createItem(t, inventory, 10, 10)

	const attempts = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for range attempts {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := svc.Record(testsuite.StaffContext(), dto.RecordTransactionRequest{ItemID: item.ID, Type: model.TypeOut, Quantity: 3})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 3, succeeded)

	_, current := level(t, inventory, item.ID)
	assert.Equal(t, 1, current)
}
