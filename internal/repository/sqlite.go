package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/nvieira/go-asteroid-watch/internal/engine"
	"github.com/nvieira/go-asteroid-watch/internal/models"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS assessments (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			name TEXT,
			diameter_m REAL NOT NULL,
			velocity_kms REAL NOT NULL,
			impact_angle_deg REAL NOT NULL,
			composition TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			is_continental INTEGER NOT NULL,
			yield_tons REAL NOT NULL,
			crater_km REAL NOT NULL,
			fireball_km REAL NOT NULL,
			blast_km REAL NOT NULL,
			seismic_magnitude REAL NOT NULL,
			tsunami_height_m REAL NOT NULL,
			tsunami_risk TEXT NOT NULL,
			severity TEXT NOT NULL,
			severity_rank INTEGER NOT NULL,
			casualties_known INTEGER NOT NULL,
			casualties_estimated INTEGER NOT NULL,
			raw BLOB,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at);
		CREATE INDEX IF NOT EXISTS idx_assessments_severity_rank ON assessments(severity_rank);
		CREATE INDEX IF NOT EXISTS idx_assessments_yield ON assessments(yield_tons);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func (s *SQLiteDB) Add(ctx context.Context, a *models.Assessment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assessments (
			id, source, name,
			diameter_m, velocity_kms, impact_angle_deg, composition,
			latitude, longitude,
			is_continental, yield_tons, crater_km, fireball_km, blast_km,
			seismic_magnitude, tsunami_height_m, tsunami_risk,
			severity, severity_rank, casualties_known, casualties_estimated,
			raw, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		a.ID, a.Source, a.Name,
		a.DiameterM, a.VelocityKMS, a.ImpactAngleDeg, a.Composition,
		a.Latitude, a.Longitude,
		a.IsContinental, a.ExplosiveYieldTons, a.CraterDiameterKm, a.FireballRadiusKm, a.BlastRadiusKm,
		a.SeismicMagnitude, a.TsunamiHeightM, a.TsunamiRisk,
		a.Severity, a.SeverityRank, a.CasualtiesKnown, a.CasualtiesEstimated,
		a.Raw, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting assessment: %w", err)
	}
	return nil
}

func (s *SQLiteDB) GetByID(ctx context.Context, id string) (*models.Assessment, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` FROM assessments WHERE id = ?`, id)

	a, err := scanAssessment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching assessment: %w", err)
	}
	return a, nil
}

func (s *SQLiteDB) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM assessments WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("error checking existence: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteDB) ListAssessments(ctx context.Context, opts Filter) ([]models.Assessment, error) {
	var (
		conds []string
		args  []any
	)

	if opts.Since != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, *opts.Since)
	}
	if opts.Source != nil {
		conds = append(conds, "source = ?")
		args = append(args, *opts.Source)
	}
	if opts.Severity != nil {
		conds = append(conds, "severity = ?")
		args = append(args, string(*opts.Severity))
	}
	if opts.MinSeverity != nil {
		conds = append(conds, "severity_rank >= ?")
		args = append(args, opts.MinSeverity.Rank())
	}
	if opts.MinYieldTons != nil {
		conds = append(conds, "yield_tons >= ?")
		args = append(args, *opts.MinYieldTons)
	}
	if opts.Continental != nil {
		conds = append(conds, "is_continental = ?")
		args = append(args, *opts.Continental)
	}

	query := selectColumns + ` FROM assessments`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}
	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing assessments: %w", err)
	}
	defer rows.Close()

	var results []models.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning assessment: %w", err)
		}
		results = append(results, *a)
	}
	return results, rows.Err()
}

const selectColumns = `SELECT
	id, source, name,
	diameter_m, velocity_kms, impact_angle_deg, composition,
	latitude, longitude,
	is_continental, yield_tons, crater_km, fireball_km, blast_km,
	seismic_magnitude, tsunami_height_m, tsunami_risk,
	severity, severity_rank, casualties_known, casualties_estimated,
	raw, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (*models.Assessment, error) {
	var (
		a        models.Assessment
		severity string
	)
	err := row.Scan(
		&a.ID, &a.Source, &a.Name,
		&a.DiameterM, &a.VelocityKMS, &a.ImpactAngleDeg, &a.Composition,
		&a.Latitude, &a.Longitude,
		&a.IsContinental, &a.ExplosiveYieldTons, &a.CraterDiameterKm, &a.FireballRadiusKm, &a.BlastRadiusKm,
		&a.SeismicMagnitude, &a.TsunamiHeightM, &a.TsunamiRisk,
		&severity, &a.SeverityRank, &a.CasualtiesKnown, &a.CasualtiesEstimated,
		&a.Raw, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Severity = engine.Severity(severity)
	return &a, nil
}
