package activity

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/mashop/storefront/internal/events"
	"github.com/mashop/storefront/internal/logging"
	"github.com/mashop/storefront/internal/models"
)

const Topic = "activity_events"

// Recorder appends structured event records to the persisted log. The log
// is append-only, read newest-first, and grows without eviction. Each record
// is also published to kafka best-effort; a publish failure is logged and
// never surfaced.
type Recorder struct {
	DB       *gorm.DB
	Producer *events.Producer
}

func (r *Recorder) Record(ctx context.Context, actor, typ, message string, details any) (models.ActivityRecord, error) {
	var payload string
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			logging.FromContext(ctx).Warn("activity: encode details", "type", typ, "err", err)
		} else {
			payload = string(data)
		}
	}

	rec := models.ActivityRecord{
		Actor:   actor,
		Type:    typ,
		Message: message,
		Details: payload,
		Version: models.SchemaVersion,
	}
	if err := r.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return models.ActivityRecord{}, err
	}

	if err := r.Producer.PublishEvent(ctx, Topic, actor, rec); err != nil {
		logging.FromContext(ctx).Warn("activity: publish failed", "type", typ, "err", err)
	}
	return rec, nil
}

// Filter selects records by type substring or exact actor. Zero values
// apply no filtering.
type Filter struct {
	Type  string
	Actor string
	Limit int
}

// Query returns matching records newest-first, leaving the log untouched.
func (r *Recorder) Query(ctx context.Context, f Filter) ([]models.ActivityRecord, error) {
	q := r.DB.WithContext(ctx).
		Model(&models.ActivityRecord{}).
		Where("version = ?", models.SchemaVersion)
	if f.Type != "" {
		q = q.Where("type LIKE ?", "%"+f.Type+"%")
	}
	if f.Actor != "" {
		q = q.Where("actor = ?", f.Actor)
	}
	q = q.Order("created_at DESC, id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var recs []models.ActivityRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
