package attendance

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hrkit/hr-management/internal/user"
)

const (
	StatusPresent   = "present"
	StatusAbsent    = "absent"
	StatusLate      = "late"
	StatusJustified = "justified"

	RecordActive   = "active"
	RecordInactive = "inactive"
	RecordDeleted  = "deleted"
)

// Attendance is one employee-day ledger row. At most one row per
// (employee, date) may exist with a non-deleted record status; deletion is a
// record_status transition, never row removal.
type Attendance struct {
	ID           string    `gorm:"column:id_attendance;primaryKey" json:"id_attendance"`
	EmployeeID   string    `gorm:"column:id_employee" json:"id_employee"`
	Date         string    `gorm:"column:date" json:"date"`
	EntryTime    *string   `gorm:"column:entry_time" json:"entry_time"`
	ExitTime     *string   `gorm:"column:exit_time" json:"exit_time"`
	Status       string    `gorm:"column:status" json:"status"`
	Observations *string   `gorm:"column:observations" json:"observations"`
	RecordStatus string    `gorm:"column:record_status" json:"record_status"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`

	Employee    *user.Summary `gorm:"-" json:"employee,omitempty"`
	WorkedHours *WorkedHours  `gorm:"-" json:"worked_hours,omitempty"`
}

func (Attendance) TableName() string {
	return "attendances"
}

func (a *Attendance) HasExit() bool {
	return a.ExitTime != nil && *a.ExitTime != ""
}

// AttachWorkedHours fills the derived duration when both times are set.
func (a *Attendance) AttachWorkedHours() {
	if a.EntryTime != nil && *a.EntryTime != "" && a.HasExit() {
		a.WorkedHours = CalculateWorkedHours(*a.EntryTime, *a.ExitTime)
	}
}

// WorkedHours is the derived duration between entry and exit.
type WorkedHours struct {
	Hours        int    `json:"hours"`
	Minutes      int    `json:"minutes"`
	TotalMinutes int    `json:"total_minutes"`
	TotalHours   string `json:"total_hours"`
}

// CalculateWorkedHours computes exit minus entry in minutes of the day.
// Seconds are parsed but ignored. There is no midnight-crossing handling:
// an exit before entry yields a negative, unclamped result, and guarding
// against that is the caller's job.
func CalculateWorkedHours(entryTime, exitTime string) *WorkedHours {
	entryMinutes, ok := parseMinutesOfDay(entryTime)
	if !ok {
		return nil
	}
	exitMinutes, ok := parseMinutesOfDay(exitTime)
	if !ok {
		return nil
	}

	diff := exitMinutes - entryMinutes

	return &WorkedHours{
		Hours:        int(math.Floor(float64(diff) / 60)),
		Minutes:      diff % 60,
		TotalMinutes: diff,
		TotalHours:   fmt.Sprintf("%.2f", float64(diff)/60),
	}
}

func parseMinutesOfDay(value string) (int, bool) {
	parts := strings.Split(value, ":")
	if len(parts) < 2 {
		return 0, false
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}

	return hours*60 + minutes, true
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPresent, StatusAbsent, StatusLate, StatusJustified:
		return true
	}
	return false
}

// GeneralStats aggregates status counts over non-deleted records.
type GeneralStats struct {
	TotalRecords int64 `gorm:"column:total_records" json:"total_records"`
	Present      int64 `gorm:"column:present" json:"present"`
	Absent       int64 `gorm:"column:absent" json:"absent"`
	Late         int64 `gorm:"column:late" json:"late"`
	Justified    int64 `gorm:"column:justified" json:"justified"`
}

// EmployeeStats aggregates one employee's history; the attendance percentage
// is present over total, two decimals, omitted when there is no history.
type EmployeeStats struct {
	TotalDays            int64  `gorm:"column:total_days" json:"total_days"`
	DaysPresent          int64  `gorm:"column:days_present" json:"days_present"`
	DaysAbsent           int64  `gorm:"column:days_absent" json:"days_absent"`
	DaysLate             int64  `gorm:"column:days_late" json:"days_late"`
	DaysJustified        int64  `gorm:"column:days_justified" json:"days_justified"`
	AttendancePercentage string `gorm:"-" json:"attendance_percentage,omitempty"`
}

// DateStats is one day's status breakdown within a range query.
type DateStats struct {
	Date         string `gorm:"column:date" json:"date"`
	TotalRecords int64  `gorm:"column:total_records" json:"total_records"`
	Present      int64  `gorm:"column:present" json:"present"`
	Absent       int64  `gorm:"column:absent" json:"absent"`
	Late         int64  `gorm:"column:late" json:"late"`
	Justified    int64  `gorm:"column:justified" json:"justified"`
}
