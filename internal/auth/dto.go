package auth

import (
	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/user"
	"github.com/hrkit/hr-management/internal/validation"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLength(6)
	return v.Validate()
}

type RegisterDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func (d RegisterDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MinLength(2).MaxLength(100)
	v.Field("email", d.Email).Required().Email().MaxLength(100)
	v.Field("password", d.Password).Required().MinLength(6)
	v.Field("role", d.Role).OneOf(user.RoleEmployee, user.RoleAdmin, user.RoleClient)
	return v.Validate()
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (d ChangePasswordDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("currentPassword", d.CurrentPassword).Required()
	v.Field("newPassword", d.NewPassword).Required().MinLength(6)
	return v.Validate()
}

type VerifyTokenDTO struct {
	Token string `json:"token,omitempty"`
}
