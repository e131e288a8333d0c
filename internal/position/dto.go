package position

import (
	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/validation"
)

type CreatePositionDTO struct {
	Name         string   `json:"name"`
	Description  *string  `json:"description,omitempty"`
	DepartmentID string   `json:"id_department"`
	BaseSalary   *float64 `json:"base_salary,omitempty"`
}

func (d CreatePositionDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MinLength(2).MaxLength(100)
	v.Field("description", d.Description).MaxLength(500)
	v.Field("id_department", d.DepartmentID).Required().UUID()
	v.Field("base_salary", d.BaseSalary).MinFloat(0)
	return v.Validate()
}

type UpdatePositionDTO struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	DepartmentID *string  `json:"id_department,omitempty"`
	BaseSalary   *float64 `json:"base_salary,omitempty"`
	Status       *string  `json:"status,omitempty"`
}

func (d UpdatePositionDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).MinLength(2).MaxLength(100)
	v.Field("description", d.Description).MaxLength(500)
	v.Field("id_department", d.DepartmentID).UUID()
	v.Field("base_salary", d.BaseSalary).MinFloat(0)
	v.Field("status", d.Status).OneOf(StatusActive, StatusInactive)
	return v.Validate()
}
