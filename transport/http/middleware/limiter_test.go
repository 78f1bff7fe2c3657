package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"suburban/config"
	"suburban/infras/metrics"
	otelMocks "suburban/infras/otel/mocks"
	cacheMocks "suburban/shared/cache/mocks"
	"suburban/shared/constant"
	"suburban/transport/http/middleware"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		enable        bool
		setupMock     func(m *cacheMocks.MockRedisCache)
		wantCode      int
		wantRemaining string
		wantLimited   float64
	}{
		{
			name:     "disabled",
			wantCode: http.StatusOK,
		},
		{
			name:   "within the window",
			enable: true,
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Increment(gomock.Any(), "limiter:10.0.0.1:probe", 60).Return(int64(2), nil)
			},
			wantCode:      http.StatusOK,
			wantRemaining: "1",
		},
		{
			name:   "over the limit",
			enable: true,
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(4), nil)
			},
			wantCode:      http.StatusTooManyRequests,
			wantRemaining: "0",
			wantLimited:   1,
		},
		{
			name:   "cache unavailable",
			enable: true,
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(0), errors.New("connection refused"))
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			cacheMock := cacheMocks.NewMockRedisCache(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(cacheMock)
			}

			cfg := &config.Config{}
			cfg.App.RateLimiter.Enable = tt.enable
			cfg.App.RateLimiter.MaxRequests = 3
			cfg.App.RateLimiter.WindowSeconds = 60

			m := metrics.New(cfg)
			app := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, cacheMock, m)

			handler := app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
			req.Header.Set(constant.RequestHeaderForwardedFor, "10.0.0.1, 172.16.0.1")
			req.Header.Set(constant.RequestHeaderUserAgent, "probe")

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
			assert.InDelta(t, tt.wantLimited, testutil.ToFloat64(m.RateLimited), 0)
		})
	}
}
