package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dmarkov/verascope/internal/model"
)

// AnalysisRecord is the persisted row shape. List fields are flattened to
// JSON columns. Rows are insert-only: immutability of assembled results is
// enforced by never exposing an update path.
type AnalysisRecord struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Kind      string    `json:"kind" gorm:"index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	Score        int    `json:"score"`
	Confidence   int    `json:"confidence"`
	Status       string `json:"status"`
	Authenticity string `json:"authenticity"`
	Leaning      string `json:"leaning"`
	Tone         string `json:"tone"`

	IndicatorsJSON      string `json:"indicators_json"`
	FlagsJSON           string `json:"flags_json"`
	SourcesJSON         string `json:"sources_json"`
	RecommendationsJSON string `json:"recommendations_json"`

	Narrative string `json:"narrative"`
	SourceURL string `json:"source_url"`
}

// Metrics is the admin aggregate view.
type Metrics struct {
	TotalResults  int64            `json:"total_results"`
	CountsByKind  map[string]int64 `json:"counts_by_kind"`
	AverageScore  float64          `json:"average_score"`
	LatestCreated *time.Time       `json:"latest_created,omitempty"`
}

// Store persists assembled results through gorm.
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at dsn and migrates the schema.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, &model.StorageError{Err: err}
	}
	if err := db.AutoMigrate(&AnalysisRecord{}); err != nil {
		return nil, &model.StorageError{Err: err}
	}
	return &Store{db: db}, nil
}

// NewStore wraps an existing gorm connection (used by tests).
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Save inserts one result and returns its identifier. Inserts are not
// retried: without a deduplication key a blind retry could double-write.
func (s *Store) Save(ctx context.Context, result model.AnalysisResult) (string, error) {
	record := toRecord(result)
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", &model.StorageError{Err: err}
	}
	return record.ID, nil
}

// Get fetches one result by identifier. A missing row returns (nil, nil).
func (s *Store) Get(ctx context.Context, id string) (*model.AnalysisResult, error) {
	var record AnalysisRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &model.StorageError{Err: err}
	}
	result := fromRecord(record)
	return &result, nil
}

// List returns the newest results, optionally filtered by kind.
func (s *Store) List(ctx context.Context, kind model.AnalysisKind, limit int) ([]model.AnalysisResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := s.db.WithContext(ctx).Model(&AnalysisRecord{}).Order("created_at DESC").Limit(limit)
	if kind != "" {
		query = query.Where("kind = ?", string(kind))
	}

	var records []AnalysisRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, &model.StorageError{Err: err}
	}

	results := make([]model.AnalysisResult, len(records))
	for i, r := range records {
		results[i] = fromRecord(r)
	}
	return results, nil
}

// Aggregate computes the admin metrics view.
func (s *Store) Aggregate(ctx context.Context) (*Metrics, error) {
	metrics := &Metrics{CountsByKind: make(map[string]int64)}

	db := s.db.WithContext(ctx).Model(&AnalysisRecord{})
	if err := db.Count(&metrics.TotalResults).Error; err != nil {
		return nil, &model.StorageError{Err: err}
	}

	type kindCount struct {
		Kind  string
		Count int64
	}
	var counts []kindCount
	if err := s.db.WithContext(ctx).Model(&AnalysisRecord{}).
		Select("kind, count(*) as count").Group("kind").Scan(&counts).Error; err != nil {
		return nil, &model.StorageError{Err: err}
	}
	for _, c := range counts {
		metrics.CountsByKind[c.Kind] = c.Count
	}

	if metrics.TotalResults > 0 {
		if err := s.db.WithContext(ctx).Model(&AnalysisRecord{}).
			Select("avg(score)").Scan(&metrics.AverageScore).Error; err != nil {
			return nil, &model.StorageError{Err: err}
		}
		var latest AnalysisRecord
		if err := s.db.WithContext(ctx).Order("created_at DESC").First(&latest).Error; err == nil {
			metrics.LatestCreated = &latest.CreatedAt
		}
	}

	return metrics, nil
}

func toRecord(r model.AnalysisResult) AnalysisRecord {
	return AnalysisRecord{
		ID:                  r.ID,
		Kind:                string(r.Kind),
		CreatedAt:           r.CreatedAt,
		Score:               r.Score,
		Confidence:          r.Confidence,
		Status:              string(r.Status),
		Authenticity:        string(r.Authenticity),
		Leaning:             string(r.Leaning),
		Tone:                string(r.Tone),
		IndicatorsJSON:      marshalList(r.Indicators),
		FlagsJSON:           marshalList(r.Flags),
		SourcesJSON:         marshalList(r.Sources),
		RecommendationsJSON: marshalList(r.Recommendations),
		Narrative:           r.Narrative,
		SourceURL:           r.SourceURL,
	}
}

func fromRecord(r AnalysisRecord) model.AnalysisResult {
	return model.AnalysisResult{
		ID:              r.ID,
		Kind:            model.AnalysisKind(r.Kind),
		CreatedAt:       r.CreatedAt,
		Score:           r.Score,
		Confidence:      r.Confidence,
		Status:          model.VerificationStatus(r.Status),
		Authenticity:    model.Authenticity(r.Authenticity),
		Leaning:         model.Leaning(r.Leaning),
		Tone:            model.Tone(r.Tone),
		Indicators:      unmarshalList(r.IndicatorsJSON),
		Flags:           unmarshalList(r.FlagsJSON),
		Sources:         unmarshalList(r.SourcesJSON),
		Recommendations: unmarshalList(r.RecommendationsJSON),
		Narrative:       r.Narrative,
		SourceURL:       r.SourceURL,
	}
}

func marshalList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func unmarshalList(data string) []string {
	var items []string
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil
	}
	if len(items) == 0 {
		return nil
	}
	return items
}
