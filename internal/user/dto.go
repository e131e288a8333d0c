package user

import (
	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/validation"
)

type CreateUserDTO struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Role       string  `json:"role,omitempty"`
	PositionID *string `json:"id_position,omitempty"`
}

func (d CreateUserDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MinLength(2).MaxLength(100)
	v.Field("email", d.Email).Required().Email().MaxLength(100)
	v.Field("password", d.Password).Required().MinLength(6)
	v.Field("role", d.Role).OneOf(RoleEmployee, RoleAdmin, RoleClient)
	v.Field("id_position", d.PositionID).UUID()
	return v.Validate()
}

type UpdateUserDTO struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Password   *string `json:"password,omitempty"`
	Role       *string `json:"role,omitempty"`
	PositionID *string `json:"id_position,omitempty"`
	Status     *string `json:"status,omitempty"`
}

func (d UpdateUserDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).MinLength(2).MaxLength(100)
	v.Field("email", d.Email).Email().MaxLength(100)
	v.Field("password", d.Password).MinLength(6)
	v.Field("role", d.Role).OneOf(RoleEmployee, RoleAdmin, RoleClient)
	v.Field("id_position", d.PositionID).UUID()
	v.Field("status", d.Status).OneOf(StatusActive, StatusInactive)
	return v.Validate()
}

// UpdateProfileDTO is the self-service subset: a user may edit their own name
// and email, nothing else.
type UpdateProfileDTO struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (d UpdateProfileDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).MinLength(2).MaxLength(100)
	v.Field("email", d.Email).Email().MaxLength(100)
	return v.Validate()
}
