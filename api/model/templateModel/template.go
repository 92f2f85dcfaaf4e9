package templatemodel

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sunthewhat/easy-cert-render/internal/renderer"
	"github.com/sunthewhat/easy-cert-render/type/shared/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TemplateRepository stores one certificate template per event in Postgres.
type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// GetByEventId returns nil, nil when the event has no template.
func (r *TemplateRepository) GetByEventId(eventId string) (*model.Template, error) {
	var template model.Template
	queryErr := r.db.Where("event_id = ?", eventId).First(&template).Error
	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Template GetByEventId", "error", queryErr, "event_id", eventId)
		return nil, queryErr
	}

	return &template, nil
}

// Save creates or replaces the template of an event.
func (r *TemplateRepository) Save(eventId string, name string, config renderer.TemplateConfig) (*model.Template, error) {
	config.EventID = eventId
	encoded, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to encode template config: %w", err)
	}

	template := &model.Template{
		ID:        uuid.NewString(),
		EventID:   eventId,
		Name:      name,
		Config:    datatypes.JSON(encoded),
		UpdatedAt: time.Now(),
	}

	saveErr := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "config", "updated_at"}),
	}).Create(template).Error
	if saveErr != nil {
		slog.Error("Template Save", "error", saveErr, "event_id", eventId)
		return nil, saveErr
	}

	return r.GetByEventId(eventId)
}

// DecodeConfig unpacks the stored JSON into a TemplateConfig. The row's ids
// win over whatever the JSON carries.
func DecodeConfig(template *model.Template) (renderer.TemplateConfig, error) {
	var config renderer.TemplateConfig
	if template == nil {
		return config, fmt.Errorf("template is nil")
	}
	if err := json.Unmarshal(template.Config, &config); err != nil {
		return config, fmt.Errorf("failed to decode template config: %w", err)
	}
	config.ID = template.ID
	config.EventID = template.EventID
	return config, nil
}
