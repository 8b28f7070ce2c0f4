package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"eventgate/internal/models/db_models"
	"eventgate/internal/repositories"
	"eventgate/pkg/utils"
)

// DefaultMatchThreshold is the Euclidean distance above which a probe is
// treated as unknown (face-api.js descriptor convention).
const DefaultMatchThreshold = 0.6

// matchCandidates bounds the nearest-neighbor fetch; ties beyond the first
// hit only matter within this window.
const matchCandidates = 8

// tieTolerance is the float window within which two gallery distances count
// as equal; the lexicographically smaller attendant id then wins, so matching
// stays deterministic.
const tieTolerance = 1e-9

type MatchResult struct {
	AttendantID string
	Distance    float64
}

type MatcherServiceInterface interface {
	// Match returns nil when no gallery entry is within the threshold.
	Match(ctx context.Context, eventID uuid.UUID, probe []float32) (*MatchResult, error)
}

type MatcherService struct {
	gallery   repositories.GalleryRepository
	threshold float64
}

func NewMatcherService(gallery repositories.GalleryRepository, threshold float64) MatcherServiceInterface {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return &MatcherService{
		gallery:   gallery,
		threshold: threshold,
	}
}

func (m *MatcherService) Match(ctx context.Context, eventID uuid.UUID, probe []float32) (*MatchResult, error) {
	if len(probe) != db_models.EmbeddingDim {
		return nil, utils.ErrEmbeddingDimension
	}

	candidates, err := m.gallery.Nearest(ctx, eventID, pgvector.NewVector(probe), matchCandidates)
	if err != nil {
		log.Printf("Error querying face gallery: %v", err)
		return nil, utils.ErrDatabaseError
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Distance-best.Distance <= tieTolerance && c.AttendantID < best.AttendantID {
			best = c
		}
	}

	if best.Distance > m.threshold {
		return nil, nil
	}

	return &MatchResult{AttendantID: best.AttendantID, Distance: best.Distance}, nil
}
