package camp

import (
	"time"

	"github.com/hrkit/hr-management/internal/user"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Camp is a work site, optionally staffed by one employee. Camps are the one
// entity without a tombstone: delete removes the row.
type Camp struct {
	ID          string    `gorm:"column:id_camp;primaryKey" json:"id_camp"`
	Name        string    `gorm:"column:name" json:"name"`
	Description *string   `gorm:"column:description" json:"description"`
	EmployeeID  *string   `gorm:"column:id_employee" json:"id_employee"`
	Status      string    `gorm:"column:status" json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`

	Employee *user.Summary `gorm:"-" json:"employee,omitempty"`
}

func (Camp) TableName() string {
	return "camps"
}

func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}

// Stats counts camps per status and by staffing.
type Stats struct {
	Total           int64 `gorm:"column:total" json:"total"`
	Active          int64 `gorm:"column:active" json:"active"`
	Inactive        int64 `gorm:"column:inactive" json:"inactive"`
	WithEmployee    int64 `gorm:"column:with_employee" json:"with_employee"`
	WithoutEmployee int64 `gorm:"column:without_employee" json:"without_employee"`
}
