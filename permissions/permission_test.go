package permissions_test

import (
	"net/http"
	"suburban/permissions"
	"suburban/shared/constant"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name     string
		path     string
		method   string
		wantSkip bool
		wantRole []string
	}{
		{
			name:     "login is public",
			path:     "/v1/auth/login",
			method:   http.MethodPost,
			wantSkip: true,
		},
		{
			name:     "collection pattern with trailing slash",
			path:     "/v1/rooms/",
			method:   http.MethodGet,
			wantRole: []string{constant.RoleAdmin, constant.RoleStaff},
		},
		{
			name:     "room removal is admin only",
			path:     "/v1/rooms/{id}",
			method:   http.MethodDelete,
			wantRole: []string{constant.RoleAdmin},
		},
		{
			name:     "activity log is admin only",
			path:     "/v1/activity-logs",
			method:   http.MethodGet,
			wantRole: []string{constant.RoleAdmin},
		},
		{
			name:   "unknown route",
			path:   "/v1/nowhere",
			method: http.MethodGet,
		},
		{
			name:   "method mismatch",
			path:   "/v1/auth/login",
			method: http.MethodGet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.wantSkip, permission.Skip)
			assert.ElementsMatch(t, tt.wantRole, permission.Permissions)
		})
	}
}
