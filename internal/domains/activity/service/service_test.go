package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"suburban/config"
	kafkaMocks "suburban/infras/kafka/mocks"
	"suburban/infras/metrics"
	"suburban/infras/otel/mocks"
	"suburban/internal/domains/activity/model"
	"suburban/internal/domains/activity/model/dto"
	"suburban/internal/domains/activity/repository"
	"suburban/internal/domains/activity/service"
	"suburban/shared/constant"
	"suburban/shared/testsuite"
)

func newService(t *testing.T, ctrl *gomock.Controller) (service.Activity, *kafkaMocks.MockClient) {
	t.Helper()

	db := testsuite.NewSQLite(t)
	otel := mocks.NewOtel()
	kafka := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.ActivityTopic = "hotel.activity"

	return service.New(repository.New(db, otel), cfg, kafka, metrics.New(cfg), otel), kafka
}

func TestActivityService_RecordAndGetRecent(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, kafka := newService(t, ctrl)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUsername, "admin")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)

	kafka.EXPECT().SendMessages(gomock.Any(), "hotel.activity", gomock.Any(), gomock.Any()).Return(nil)

	svc.Record(ctx,
		dto.Entry{Action: model.ActionCheckIn, EntityType: model.EntityGuest, EntityID: "g-1", Description: "Checked in to room 101"},
		dto.Entry{Action: model.ActionCreate, EntityType: model.EntityBooking, EntityID: "b-1", Description: "Booked room 101"},
	)

	res, err := svc.GetRecent(context.Background(), dto.GetActivityLogsRequest{})
	require.NoError(t, err)
	require.Len(t, res.Logs, 2)

	assert.Equal(t, "b-1", res.Logs[0].EntityID)
	assert.Equal(t, "g-1", res.Logs[1].EntityID)
	assert.Equal(t, constant.RoleAdmin, res.Logs[0].UserRole)
	assert.Equal(t, "admin", res.Logs[0].Username)

	filtered, err := svc.GetRecent(context.Background(), dto.GetActivityLogsRequest{EntityType: model.EntityGuest})
	require.NoError(t, err)
	require.Len(t, filtered.Logs, 1)
	assert.Equal(t, "Checked in to room 101", filtered.Logs[0].Description)
}

func TestActivityService_GetRecentLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, kafka := newService(t, ctrl)

	kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(60)

	for i := range 60 {
		svc.Record(context.Background(), dto.Entry{
			Action:     model.ActionUpdate,
			EntityType: model.EntityRoom,
			EntityID:   fmt.Sprintf("r-%02d", i),
		})
	}

	res, err := svc.GetRecent(context.Background(), dto.GetActivityLogsRequest{})
	require.NoError(t, err)
	assert.Len(t, res.Logs, model.DefaultLimit)
	assert.Equal(t, "r-59", res.Logs[0].EntityID)
	assert.Equal(t, constant.ContextSystem, res.Logs[0].UserRole)

	res, err = svc.GetRecent(context.Background(), dto.GetActivityLogsRequest{Limit: 5})
	require.NoError(t, err)
	assert.Len(t, res.Logs, 5)
}

func TestActivityService_RecordSwallowsPublishFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, kafka := newService(t, ctrl)

	kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)

	svc.Record(context.Background(), dto.Entry{Action: model.ActionDelete, EntityType: model.EntityRoom, EntityID: "r-1"})

	res, err := svc.GetRecent(context.Background(), dto.GetActivityLogsRequest{})
	require.NoError(t, err)
	assert.Len(t, res.Logs, 1)
}

func TestGetActivityLogsRequest_Normalize(t *testing.T) {
	req := dto.GetActivityLogsRequest{Limit: 10_000}
	req.Normalize()
	assert.Equal(t, model.MaxLimit, req.Limit)

	req = dto.GetActivityLogsRequest{}
	req.Normalize()
	assert.Equal(t, model.DefaultLimit, req.Limit)
}
