package model

import "time"

const TableNameParticipant = "participant"

const (
	RenderStatusPending  = "pending"
	RenderStatusRendered = "rendered"
	RenderStatusFailed   = "failed"
)

// Participant is the Postgres index row of a registration. The registration
// data itself lives in the Mongo collection "participant-<event_id>".
type Participant struct {
	ID             string     `gorm:"column:id;primaryKey" json:"id"`
	EventID        string     `gorm:"column:event_id;not null;index" json:"event_id"`
	CertificateURL string     `gorm:"column:certificate_url" json:"certificate_url"`
	RenderStatus   string     `gorm:"column:render_status;not null;default:pending" json:"render_status"`
	RenderBackend  string     `gorm:"column:render_backend" json:"render_backend"`
	RenderError    string     `gorm:"column:render_error" json:"render_error"`
	RenderedAt     *time.Time `gorm:"column:rendered_at" json:"rendered_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (*Participant) TableName() string {
	return TableNameParticipant
}
