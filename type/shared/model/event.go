package model

import "time"

const TableNameEvent = "event"

type Event struct {
	ID        string     `gorm:"column:id;primaryKey" json:"id"`
	Name      string     `gorm:"column:name;not null" json:"name"`
	Date      *time.Time `gorm:"column:date" json:"date"`
	StartTime *time.Time `gorm:"column:start_time" json:"start_time"`
	EndTime   *time.Time `gorm:"column:end_time" json:"end_time"`
	CreatedAt time.Time  `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (*Event) TableName() string {
	return TableNameEvent
}
