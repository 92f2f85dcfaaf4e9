package eventmodel

import (
	"errors"
	"log/slog"

	"github.com/sunthewhat/easy-cert-render/type/shared/model"
	"gorm.io/gorm"
)

type IEventRepository interface {
	GetById(eventId string) (*model.Event, error)
}

type EventRepository struct {
	db *gorm.DB
}

var _ IEventRepository = (*EventRepository)(nil)

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) GetById(eventId string) (*model.Event, error) {
	var event model.Event
	queryErr := r.db.Where("id = ?", eventId).First(&event).Error
	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Event GetById", "error", queryErr, "event_id", eventId)
		return nil, queryErr
	}

	return &event, nil
}

// MockEventRepository is a mock implementation for testing
type MockEventRepository struct {
	GetByIdFunc func(eventId string) (*model.Event, error)
}

var _ IEventRepository = (*MockEventRepository)(nil)

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{}
}

func (m *MockEventRepository) GetById(eventId string) (*model.Event, error) {
	if m.GetByIdFunc != nil {
		return m.GetByIdFunc(eventId)
	}
	return nil, nil
}
