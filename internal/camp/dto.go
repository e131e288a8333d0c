package camp

import (
	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/validation"
)

type CreateCampDTO struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	EmployeeID  *string `json:"id_employee,omitempty"`
}

func (d CreateCampDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MinLength(2).MaxLength(100)
	v.Field("description", d.Description).MaxLength(500)
	v.Field("id_employee", d.EmployeeID).UUID()
	return v.Validate()
}

type UpdateCampDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	EmployeeID  *string `json:"id_employee,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (d UpdateCampDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).MinLength(2).MaxLength(100)
	v.Field("description", d.Description).MaxLength(500)
	v.Field("id_employee", d.EmployeeID).UUID()
	v.Field("status", d.Status).OneOf(StatusActive, StatusInactive)
	return v.Validate()
}

type AssignEmployeeDTO struct {
	EmployeeID string `json:"id_employee"`
}

func (d AssignEmployeeDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("id_employee", d.EmployeeID).Required().UUID()
	return v.Validate()
}
