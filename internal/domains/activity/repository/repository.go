package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"suburban/infras/otel"
	"suburban/infras/sqlite"
	"suburban/internal/domains/activity/model"
	"suburban/shared/constant"
	gRepo "suburban/shared/repository"
)

type Activity interface {
	Insert(ctx context.Context, model model.ActivityLog) error
	GetRecent(ctx context.Context, limit int, entityType, entityID string) ([]model.ActivityLog, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.ActivityLog]
	db   *sqlite.Connection
	otel otel.Otel
}

func New(db *sqlite.Connection, otel otel.Otel) Activity {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ActivityLog](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetRecent returns the newest entries first. Rows sharing a timestamp fall back to insertion order.
func (r *repositoryImpl) GetRecent(ctx context.Context, limit int, entityType, entityID string) (logs []model.ActivityLog, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".activity.GetRecent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	conditions := []string{}
	args := []any{}

	if entityType != constant.Empty {
		conditions = append(conditions, "entity_type = ?")
		args = append(args, entityType)
	}

	if entityID != constant.Empty {
		conditions = append(conditions, "entity_id = ?")
		args = append(args, entityID)
	}

	where := constant.Empty
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(
		"SELECT id, timestamp, user_role, username, action, entity_type, entity_id, description FROM %s %s ORDER BY timestamp DESC, rowid DESC LIMIT ?",
		model.TableName, where,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args = append(args, limit)

	logs = []model.ActivityLog{}
	if err = r.db.Read.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get recent activity: %w", err)
	}

	return logs, nil
}
