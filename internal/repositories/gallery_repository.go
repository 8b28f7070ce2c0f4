package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// GalleryCandidate is one nearest-neighbor hit from the event's face gallery.
type GalleryCandidate struct {
	AttendantID string  `gorm:"column:attendant_id"`
	Distance    float64 `gorm:"column:distance"`
}

type GalleryRepository interface {
	// Nearest returns up to k gallery entries ordered by Euclidean distance to
	// the probe, ties broken by attendant id so results are deterministic.
	Nearest(ctx context.Context, eventID uuid.UUID, probe pgvector.Vector, k int) ([]GalleryCandidate, error)
}

type galleryRepository struct {
	db *gorm.DB
}

func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) Nearest(ctx context.Context, eventID uuid.UUID, probe pgvector.Vector, k int) ([]GalleryCandidate, error) {
	var results []GalleryCandidate

	query := `
        SELECT id::text AS attendant_id, (face_embedding <-> $1) AS distance
        FROM attendants
        WHERE event_id = $2
          AND face_embedding IS NOT NULL
          AND deleted_at IS NULL
        ORDER BY face_embedding <-> $1, id
        LIMIT $3
    `

	err := r.db.WithContext(ctx).Raw(query, probe.String(), eventID, k).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
