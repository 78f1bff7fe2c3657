package shared_test

import (
	"context"
	"suburban/shared"
	"suburban/shared/constant"
	"suburban/shared/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotalPage(t *testing.T) {
	assert.Equal(t, 1, shared.CalculateTotalPage(0, 10))
	assert.Equal(t, 1, shared.CalculateTotalPage(5, 0))
	assert.Equal(t, 3, shared.CalculateTotalPage(21, 10))
}

func TestTransformFields(t *testing.T) {
	capacity := 0

	req := struct {
		Name     string `db:"name"`
		Type     string `db:"type"`
		Capacity *int   `db:"capacity"`
		Skipped  string
	}{
		Name:     "Deluxe 101",
		Capacity: &capacity,
		Skipped:  "ignored",
	}

	fields := shared.TransformFields(req, "admin")

	assert.Equal(t, "Deluxe 101", fields["name"])
	assert.Equal(t, 0, fields["capacity"])
	assert.NotContains(t, fields, "type")
	assert.Equal(t, "admin", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
}

func TestActor(t *testing.T) {
	username, role := shared.Actor(context.Background())
	assert.Equal(t, constant.ContextSystem, username)
	assert.Equal(t, constant.ContextSystem, role)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUsername, "frontdesk")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleStaff)

	username, role = shared.Actor(ctx)
	assert.Equal(t, "frontdesk", username)
	assert.Equal(t, constant.RoleStaff, role)
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "name", SortDir: dto.SortDirAsc}

	first := shared.BuildCacheKeyWithQuery("room:gets", params, dto.And(dto.Eq("rooms", "status", "available")))
	second := shared.BuildCacheKeyWithQuery("room:gets", params, dto.And(dto.Eq("rooms", "status", "available")))
	other := shared.BuildCacheKeyWithQuery("room:gets", params, dto.And(dto.Eq("rooms", "status", "occupied")))

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Equal(t, "room:get:r1", shared.BuildCacheKey("room:get", "r1"))
}
