package templatemodel

import (
	"github.com/sunthewhat/easy-cert-render/internal/renderer"
	"github.com/sunthewhat/easy-cert-render/type/shared/model"
)

// ITemplateRepository defines the interface for template repository operations
type ITemplateRepository interface {
	GetByEventId(eventId string) (*model.Template, error)
	Save(eventId string, name string, config renderer.TemplateConfig) (*model.Template, error)
}

var _ ITemplateRepository = (*TemplateRepository)(nil)

// MockTemplateRepository is a mock implementation for testing
type MockTemplateRepository struct {
	GetByEventIdFunc func(eventId string) (*model.Template, error)
	SaveFunc         func(eventId string, name string, config renderer.TemplateConfig) (*model.Template, error)
}

var _ ITemplateRepository = (*MockTemplateRepository)(nil)

func NewMockTemplateRepository() *MockTemplateRepository {
	return &MockTemplateRepository{}
}

func (m *MockTemplateRepository) GetByEventId(eventId string) (*model.Template, error) {
	if m.GetByEventIdFunc != nil {
		return m.GetByEventIdFunc(eventId)
	}
	return nil, nil
}

func (m *MockTemplateRepository) Save(eventId string, name string, config renderer.TemplateConfig) (*model.Template, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(eventId, name, config)
	}
	return nil, nil
}
