package participantmodel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sunthewhat/easy-cert-render/type/shared/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ParticipantRepository handles all participant database operations
// It manages both PostgreSQL (for indexes/status) and MongoDB (for dynamic data)
type ParticipantRepository struct {
	q  *gorm.DB        // PostgreSQL
	db *mongo.Database // MongoDB database
}

// CombinedParticipant represents participant data from both databases
type CombinedParticipant struct {
	ID             string         `json:"id"`
	EventID        string         `json:"event_id"`
	CertificateURL string         `json:"certificate_url"`
	RenderStatus   string         `json:"render_status"`
	RenderBackend  string         `json:"render_backend"`
	RenderedAt     *time.Time     `json:"rendered_at"`
	DynamicData    map[string]any `json:"data"`
}

// nameKeys are the registration form fields tried, in order, for the printed name.
var nameKeys = []string{"name", "full_name", "fullName", "fullname", "userName", "username", "display_name"}

// DisplayName is the name printed on the certificate. Registrations that split
// the name fall back to first and last name.
func (p *CombinedParticipant) DisplayName() string {
	for _, key := range nameKeys {
		if value, ok := p.DynamicData[key].(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}

	var parts []string
	for _, key := range []string{"first_name", "firstName", "last_name", "lastName"} {
		if value, ok := p.DynamicData[key].(string); ok && strings.TrimSpace(value) != "" {
			parts = append(parts, strings.TrimSpace(value))
		}
	}
	return strings.Join(parts, " ")
}

func NewParticipantRepository(q *gorm.DB, db *mongo.Database) *ParticipantRepository {
	return &ParticipantRepository{
		q:  q,
		db: db,
	}
}

func collectionName(eventId string) string {
	return "participant-" + eventId
}

// GetParticipantsByEventId joins the Postgres index rows with their Mongo
// registration documents. Rows without a document keep an empty data map.
func (r *ParticipantRepository) GetParticipantsByEventId(eventId string) ([]*CombinedParticipant, error) {
	postgresParticipants, pgErr := r.getParticipantsByPostgres(eventId)
	if pgErr != nil {
		return nil, fmt.Errorf("failed to get PostgreSQL participants: %w", pgErr)
	}

	mongoParticipants, mongoErr := r.getParticipantsByMongo(eventId)
	if mongoErr != nil {
		return nil, fmt.Errorf("failed to get MongoDB participants: %w", mongoErr)
	}

	combined := combineParticipants(postgresParticipants, mongoParticipants)

	slog.Info("ParticipantModel GetParticipantsByEventId",
		"event_id", eventId,
		"postgres_count", len(postgresParticipants),
		"mongo_count", len(mongoParticipants),
		"combined_count", len(combined))

	return combined, nil
}

func combineParticipants(rows []*model.Participant, documents []map[string]any) []*CombinedParticipant {
	mongoDataMap := make(map[string]map[string]any, len(documents))
	for _, document := range documents {
		if id, ok := document["_id"].(string); ok {
			mongoDataMap[id] = document
		}
	}

	combinedParticipants := make([]*CombinedParticipant, 0, len(rows))
	for _, row := range rows {
		combined := &CombinedParticipant{
			ID:             row.ID,
			EventID:        row.EventID,
			CertificateURL: row.CertificateURL,
			RenderStatus:   row.RenderStatus,
			RenderBackend:  row.RenderBackend,
			RenderedAt:     row.RenderedAt,
			DynamicData:    make(map[string]any),
		}

		if mongoData, exists := mongoDataMap[row.ID]; exists {
			for key, value := range mongoData {
				if key != "_id" && key != "event_id" {
					combined.DynamicData[key] = value
				}
			}
		}

		combinedParticipants = append(combinedParticipants, combined)
	}
	return combinedParticipants
}

func (r *ParticipantRepository) UpdateRenderResult(participantId string, certificateUrl string, backend string) error {
	now := time.Now()
	updateErr := r.q.Model(&model.Participant{}).Where("id = ?", participantId).Updates(map[string]any{
		"certificate_url": certificateUrl,
		"render_status":   model.RenderStatusRendered,
		"render_backend":  backend,
		"render_error":    "",
		"rendered_at":     now,
		"updated_at":      now,
	}).Error
	if updateErr != nil {
		slog.Error("ParticipantModel UpdateRenderResult failed", "error", updateErr, "participant_id", participantId)
		return updateErr
	}
	return nil
}

func (r *ParticipantRepository) MarkRenderFailed(participantId string, reason string) error {
	updateErr := r.q.Model(&model.Participant{}).Where("id = ?", participantId).Updates(map[string]any{
		"render_status": model.RenderStatusFailed,
		"render_error":  reason,
		"updated_at":    time.Now(),
	}).Error
	if updateErr != nil {
		slog.Error("ParticipantModel MarkRenderFailed failed", "error", updateErr, "participant_id", participantId)
		return updateErr
	}
	return nil
}

func (r *ParticipantRepository) getParticipantsByPostgres(eventId string) ([]*model.Participant, error) {
	var participants []*model.Participant
	if err := r.q.Where("event_id = ?", eventId).Order("created_at").Find(&participants).Error; err != nil {
		slog.Error("ParticipantModel GetParticipantsByPostgres failed", "error", err, "event_id", eventId)
		return nil, err
	}

	slog.Info("ParticipantModel GetParticipantsByPostgres", "event_id", eventId, "count", len(participants))
	return participants, nil
}

func (r *ParticipantRepository) getParticipantsByMongo(eventId string) ([]map[string]any, error) {
	collection := r.db.Collection(collectionName(eventId))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := collection.Find(ctx, bson.M{"event_id": eventId})
	if err != nil {
		slog.Error("ParticipantModel GetParticipantsByMongo find failed", "error", err, "event_id", eventId)
		return nil, err
	}
	defer cursor.Close(ctx)

	var participants []map[string]any
	if err = cursor.All(ctx, &participants); err != nil {
		slog.Error("ParticipantModel GetParticipantsByMongo cursor failed", "error", err, "event_id", eventId)
		return nil, err
	}

	slog.Info("ParticipantModel GetParticipantsByMongo", "event_id", eventId, "count", len(participants))
	return participants, nil
}
