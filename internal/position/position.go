package position

import (
	"time"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDeleted  = "deleted"
)

// Position is a job role inside a department. Names are not unique: two
// departments may both have an "Engineer".
type Position struct {
	ID           string    `gorm:"column:id_position;primaryKey" json:"id_position"`
	Name         string    `gorm:"column:name" json:"name"`
	Description  *string   `gorm:"column:description" json:"description"`
	DepartmentID string    `gorm:"column:id_department" json:"id_department"`
	BaseSalary   float64   `gorm:"column:base_salary" json:"base_salary"`
	Status       string    `gorm:"column:status" json:"status"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`

	Department *DepartmentRef `gorm:"-" json:"department,omitempty"`
}

func (Position) TableName() string {
	return "positions"
}

// DepartmentRef is the short department view embedded in position responses.
type DepartmentRef struct {
	ID   string `gorm:"column:id_department" json:"id_department"`
	Name string `gorm:"column:name" json:"name"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusInactive, StatusDeleted:
		return true
	}
	return false
}
