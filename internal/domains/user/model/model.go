package model

import (
	"suburban/shared/model"
	"time"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldUsername     = "username"
	FieldPasswordHash = "password_hash"
	FieldRole         = "role"
	FieldLastLogin    = "last_login"
	FieldCreatedAt    = "created_at"
)

type User struct {
	ID           string     `db:"id"`
	Username     string     `db:"username"`
	PasswordHash string     `db:"password_hash"`
	Role         string     `db:"role"`
	LastLogin    *time.Time `db:"last_login"`
	model.Metadata
}
