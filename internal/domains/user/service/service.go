package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=User=MockUserService

import (
	"context"
	"fmt"
	"suburban/config"
	"suburban/infras/otel"
	"suburban/infras/sqlite"
	"suburban/internal/domains/user/model"
	"suburban/internal/domains/user/model/dto"
	"suburban/internal/domains/user/repository"
	"suburban/shared"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	"suburban/shared/failure"
	"suburban/shared/password"
	"suburban/shared/timezone"

	"github.com/rs/zerolog/log"
)

var sortableFields = []string{model.FieldUsername, model.FieldRole, model.FieldCreatedAt}

type User interface {
	EnsureDefaultUsers(ctx context.Context) error
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.User
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.User, cfg *config.Config, otel otel.Otel) User {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

// EnsureDefaultUsers creates the admin and staff accounts when no user exists yet.
func (s *serviceImpl) EnsureDefaultUsers(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.EnsureDefaultUsers")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !s.cfg.Seed.Enable {
		return nil
	}

	total, err := s.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	if total > 0 {
		return nil
	}

	seeds := []dto.Seed{
		{Username: constant.RoleAdmin, Password: s.cfg.Seed.AdminPassword, Role: constant.RoleAdmin},
		{Username: constant.RoleStaff, Password: s.cfg.Seed.StaffPassword, Role: constant.RoleStaff},
	}

	for _, seed := range seeds {
		hashed, err := password.Hash(seed.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", seed.Username, err)
		}

		if err := s.repo.Insert(ctx, seed.ToModel(hashed, timezone.Now())); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", seed.Username, err)
		}

		log.Info().Str("username", seed.Username).Msg("seeded default user")
	}

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hashed, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	actor, _ := shared.Actor(ctx)
	user := req.ToModel(hashed, actor, timezone.Now())

	if err = s.repo.Insert(ctx, user); err != nil {
		if sqlite.IsUniqueViolation(err) {
			return res, failure.Conflictf("username %s is taken", req.Username) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(model.FieldUsername, gDto.SortDirAsc, sortableFields...)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	users, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(users, total, req.Limit)

	return res, nil
}

// Delete removes an account. Callers cannot remove their own account.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if current, _ := ctx.Value(constant.ContextKeyUserID).(string); current == id {
		return failure.BadRequestFromString("cannot delete the signed-in account") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	user, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
