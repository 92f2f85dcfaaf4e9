package participantmodel

// IParticipantRepository defines the interface for participant repository operations
type IParticipantRepository interface {
	GetParticipantsByEventId(eventId string) ([]*CombinedParticipant, error)
	UpdateRenderResult(participantId string, certificateUrl string, backend string) error
	MarkRenderFailed(participantId string, reason string) error
}

// Ensure ParticipantRepository implements IParticipantRepository
var _ IParticipantRepository = (*ParticipantRepository)(nil)

// MockParticipantRepository is a mock implementation for testing
type MockParticipantRepository struct {
	GetParticipantsByEventIdFunc func(eventId string) ([]*CombinedParticipant, error)
	UpdateRenderResultFunc       func(participantId string, certificateUrl string, backend string) error
	MarkRenderFailedFunc         func(participantId string, reason string) error
}

// Ensure MockParticipantRepository implements IParticipantRepository
var _ IParticipantRepository = (*MockParticipantRepository)(nil)

// NewMockParticipantRepository creates a new mock repository
func NewMockParticipantRepository() *MockParticipantRepository {
	return &MockParticipantRepository{}
}

func (m *MockParticipantRepository) GetParticipantsByEventId(eventId string) ([]*CombinedParticipant, error) {
	if m.GetParticipantsByEventIdFunc != nil {
		return m.GetParticipantsByEventIdFunc(eventId)
	}
	return nil, nil
}

func (m *MockParticipantRepository) UpdateRenderResult(participantId string, certificateUrl string, backend string) error {
	if m.UpdateRenderResultFunc != nil {
		return m.UpdateRenderResultFunc(participantId, certificateUrl, backend)
	}
	return nil
}

func (m *MockParticipantRepository) MarkRenderFailed(participantId string, reason string) error {
	if m.MarkRenderFailedFunc != nil {
		return m.MarkRenderFailedFunc(participantId, reason)
	}
	return nil
}
