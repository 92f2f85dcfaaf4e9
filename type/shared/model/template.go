package model

import (
	"time"

	"gorm.io/datatypes"
)

const TableNameTemplate = "template"

// Template is the certificate design attached to one event. Config holds the
// JSON encoded renderer.TemplateConfig.
type Template struct {
	ID        string         `gorm:"column:id;primaryKey" json:"id"`
	EventID   string         `gorm:"column:event_id;not null;uniqueIndex" json:"event_id"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Config    datatypes.JSON `gorm:"column:config;type:jsonb;not null" json:"config"`
	CreatedAt time.Time      `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (*Template) TableName() string {
	return TableNameTemplate
}
