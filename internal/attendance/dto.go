package attendance

import (
	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/validation"
)

type CreateAttendanceDTO struct {
	EmployeeID   string  `json:"id_employee"`
	Date         string  `json:"date"`
	EntryTime    *string `json:"entry_time,omitempty"`
	ExitTime     *string `json:"exit_time,omitempty"`
	Status       string  `json:"status"`
	Observations *string `json:"observations,omitempty"`
}

func (d CreateAttendanceDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("id_employee", d.EmployeeID).Required().UUID()
	v.Field("date", d.Date).Required().DateFormat()
	v.Field("entry_time", d.EntryTime).TimeFormat()
	v.Field("exit_time", d.ExitTime).TimeFormat()
	v.Field("status", d.Status).Required().OneOf(StatusPresent, StatusAbsent, StatusLate, StatusJustified)
	return v.Validate()
}

// RegisterEntryDTO clocks an employee in; a missing date means today.
type RegisterEntryDTO struct {
	EmployeeID string  `json:"id_employee"`
	Date       *string `json:"date,omitempty"`
	EntryTime  string  `json:"entry_time"`
	Status     *string `json:"status,omitempty"`
}

func (d RegisterEntryDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("id_employee", d.EmployeeID).Required().UUID()
	v.Field("date", d.Date).DateFormat()
	v.Field("entry_time", d.EntryTime).Required().TimeFormat()
	v.Field("status", d.Status).OneOf(StatusPresent, StatusLate)
	return v.Validate()
}

type RegisterExitDTO struct {
	ExitTime string `json:"exit_time"`
}

func (d RegisterExitDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("exit_time", d.ExitTime).Required().TimeFormat()
	return v.Validate()
}

// UpdateAttendanceDTO carries a partial update; nil fields are untouched.
type UpdateAttendanceDTO struct {
	Date         *string `json:"date,omitempty"`
	EntryTime    *string `json:"entry_time,omitempty"`
	ExitTime     *string `json:"exit_time,omitempty"`
	Status       *string `json:"status,omitempty"`
	Observations *string `json:"observations,omitempty"`
}

func (d UpdateAttendanceDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("date", d.Date).DateFormat()
	v.Field("entry_time", d.EntryTime).TimeFormat()
	v.Field("exit_time", d.ExitTime).TimeFormat()
	v.Field("status", d.Status).OneOf(StatusPresent, StatusAbsent, StatusLate, StatusJustified)
	return v.Validate()
}

type DateRangeDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (d DateRangeDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("start_date", d.StartDate).Required().DateFormat()
	v.Field("end_date", d.EndDate).Required().DateFormat()
	return v.Validate()
}
