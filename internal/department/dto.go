package department

import (
	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/validation"
)

type CreateDepartmentDTO struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (d CreateDepartmentDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MinLength(2).MaxLength(100)
	v.Field("description", d.Description).MaxLength(500)
	return v.Validate()
}

type UpdateDepartmentDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (d UpdateDepartmentDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).MinLength(2).MaxLength(100)
	v.Field("description", d.Description).MaxLength(500)
	v.Field("status", d.Status).OneOf(StatusActive, StatusInactive)
	return v.Validate()
}
