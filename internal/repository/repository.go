package repository

import (
	"context"
	"time"

	"github.com/nvieira/go-asteroid-watch/internal/engine"
	"github.com/nvieira/go-asteroid-watch/internal/models"
)

type Filter struct {
	Limit        int
	Offset       int
	Since        *time.Time
	Source       *string
	Severity     *engine.Severity
	MinSeverity  *engine.Severity // >= this tier (e.g. severe includes severe and catastrophic)
	MinYieldTons *float64
	Continental  *bool
}

type AssessmentRepository interface {
	Add(ctx context.Context, a *models.Assessment) error
	GetByID(ctx context.Context, id string) (*models.Assessment, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListAssessments(ctx context.Context, opts Filter) ([]models.Assessment, error)
}
