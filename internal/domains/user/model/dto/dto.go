package dto

import (
	"suburban/internal/domains/user/model"
	"suburban/shared"
	"suburban/shared/constant"
	gDto "suburban/shared/dto"
	gModel "suburban/shared/model"
	"suburban/shared/timezone"
	"time"

	"github.com/google/uuid"
)

// Seed is a default account created on an empty users table.
type Seed struct {
	Username string
	Password string
	Role     string
}

func (s Seed) ToModel(hashedPassword string, now time.Time) model.User {
	return model.User{
		ID:           uuid.NewString(),
		Username:     s.Username,
		PasswordHash: hashedPassword,
		Role:         s.Role,
		Metadata:     gModel.NewMetadata(constant.ContextSystem, now),
	}
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	LastLogin string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Username = model.Username
	r.Role = model.Role
	r.Metadata.FromModel(model.Metadata)

	if model.LastLogin != nil {
		r.LastLogin = timezone.Format(*model.LastLogin, constant.DateFormat)
	}
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role"     validate:"required,oneof=admin staff"`
}

func (c *CreateUserRequest) ToModel(hashedPassword, user string, now time.Time) model.User {
	return model.User{
		ID:           uuid.NewString(),
		Username:     c.Username,
		PasswordHash: hashedPassword,
		Role:         c.Role,
		Metadata:     gModel.NewMetadata(user, now),
	}
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
