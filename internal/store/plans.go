package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// timeNow is a package-level var to allow test injection.
var timeNow = time.Now

// createdLayout is fixed-width so created_at sorts lexically.
const createdLayout = "2006-01-02T15:04:05.000000Z"

// PlanRecord is one linearized reasoning plan kept for audit.
type PlanRecord struct {
	ID           string `json:"id"`
	Project      string `json:"project,omitempty"`
	Goal         string `json:"goal,omitempty"`
	Kind         string `json:"kind,omitempty"`
	PlanJSON     string `json:"plan_json"`
	AnalysisJSON string `json:"analysis_json"`
	CreatedAt    string `json:"created_at"`
}

// NewPlanRecord encodes plan and analysis as JSON into a record ready for
// SavePlan.
func NewPlanRecord(project, goal, kind string, plan, analysis any) (PlanRecord, error) {
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return PlanRecord{}, fmt.Errorf("store: marshal plan: %w", err)
	}
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return PlanRecord{}, fmt.Errorf("store: marshal analysis: %w", err)
	}
	return PlanRecord{
		Project:      project,
		Goal:         goal,
		Kind:         kind,
		PlanJSON:     string(planJSON),
		AnalysisJSON: string(analysisJSON),
	}, nil
}

const planColumns = `id, project, goal, kind, plan_json, analysis_json, created_at`

// SavePlan stores p. An empty ID is filled with a new UUID and an empty
// CreatedAt with the current UTC time. A non-empty Project must name an
// existing project. Returns the stored ID.
func (s *Store) SavePlan(p PlanRecord) (string, error) {
	if p.PlanJSON == "" {
		return "", fmt.Errorf("store: plan_json is required")
	}
	if p.Project != "" {
		if _, err := s.GetProject(p.Project); err != nil {
			return "", err
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt == "" {
		p.CreatedAt = timeNow().UTC().Format(createdLayout)
	}
	if p.AnalysisJSON == "" {
		p.AnalysisJSON = "{}"
	}

	_, err := s.db.Exec(
		`INSERT INTO plans (`+planColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Project, p.Goal, p.Kind, p.PlanJSON, p.AnalysisJSON, p.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("store: save plan: %w", err)
	}
	s.log.Debug("plan recorded", zap.String("id", p.ID), zap.String("kind", p.Kind), zap.String("project", p.Project))
	return p.ID, nil
}

// GetPlan retrieves a plan by ID.
func (s *Store) GetPlan(id string) (*PlanRecord, error) {
	row := s.db.QueryRow(`SELECT `+planColumns+` FROM plans WHERE id = ?`, id)
	p, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// RecentPlans returns up to limit plans, newest first.
func (s *Store) RecentPlans(limit int) ([]PlanRecord, error) {
	return s.ProjectPlans("", limit)
}

// ProjectPlans returns up to limit plans tagged with project, newest
// first. An empty project matches every plan.
func (s *Store) ProjectPlans(project string, limit int) ([]PlanRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT ` + planColumns + ` FROM plans`
	var args []any
	if project != "" {
		query += ` WHERE project = ?`
		args = append(args, project)
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: recent plans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	results := []PlanRecord{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *p)
	}
	return results, rows.Err()
}

func scanPlan(sc scanner) (*PlanRecord, error) {
	var p PlanRecord
	if err := sc.Scan(&p.ID, &p.Project, &p.Goal, &p.Kind, &p.PlanJSON, &p.AnalysisJSON, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
