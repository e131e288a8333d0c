package department

import (
	"time"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDeleted  = "deleted"
)

// Department is an organizational unit. The status enum doubles as the
// soft-delete tombstone; every default read path excludes deleted rows.
type Department struct {
	ID          string    `gorm:"column:id_department;primaryKey" json:"id_department"`
	Name        string    `gorm:"column:name" json:"name"`
	Description *string   `gorm:"column:description" json:"description"`
	Status      string    `gorm:"column:status" json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Department) TableName() string {
	return "departments"
}

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusInactive, StatusDeleted:
		return true
	}
	return false
}

// Stats counts departments per status plus position load per department.
type Stats struct {
	Total            int64            `json:"total"`
	Active           int64            `json:"active"`
	Inactive         int64            `json:"inactive"`
	PositionsPerDept []DepartmentLoad `json:"positions_per_department"`
}

// DepartmentLoad is one department's non-deleted position count.
type DepartmentLoad struct {
	ID        string `gorm:"column:id_department" json:"id_department"`
	Name      string `gorm:"column:name" json:"name"`
	Positions int64  `gorm:"column:positions" json:"positions"`
}
