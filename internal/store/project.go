// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/oklog/ulid/v2"

	"datcloude/internal/models"
)

const projectColumns = `id, title, description, category, tags, thumbnail_url, media_url,
	tools, status, price::float8, client, live_url, github_url, date`

// ProjectStore handles all portfolio project database operations.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	var (
		p           models.Project
		tags, tools []byte
		price       sql.NullFloat64
	)
	if err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Category, &tags, &p.ThumbnailURL, &p.MediaURL,
		&tools, &p.Status, &price, &p.Client, &p.LiveURL, &p.GithubURL, &p.Date,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &p.Tags); err != nil || p.Tags == nil {
		p.Tags = []string{}
	}
	if err := json.Unmarshal(tools, &p.Tools); err != nil || p.Tools == nil {
		p.Tools = []string{}
	}
	if price.Valid {
		v := price.Float64
		p.Price = &v
	}
	return &p, nil
}

// List returns every project, newest first.
func (s *ProjectStore) List(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// Create inserts a project, assigning a new ID and creation date. Defaults
// are applied to missing fields before the insert.
func (s *ProjectStore) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	p.ApplyDefaults()
	p.ID = ulid.Make().String()

	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}
	tools, err := json.Marshal(p.Tools)
	if err != nil {
		return nil, fmt.Errorf("marshal tools: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO projects (id, title, description, category, tags, thumbnail_url,
			media_url, tools, status, price, client, live_url, github_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING date
	`, p.ID, p.Title, p.Description, p.Category, string(tags), p.ThumbnailURL,
		p.MediaURL, string(tools), p.Status, nullable(p.Price), p.Client, p.LiveURL, p.GithubURL,
	).Scan(&p.Date)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

// Update applies a partial update. Only non-nil patch fields change, and a
// blank category or status keeps the stored value. Returns false when no project has the given ID.
func (s *ProjectStore) Update(ctx context.Context, id string, patch *models.ProjectPatch) (bool, error) {
	tags, err := jsonOrNil(patch.Tags)
	if err != nil {
		return false, fmt.Errorf("marshal tags: %w", err)
	}
	tools, err := jsonOrNil(patch.Tools)
	if err != nil {
		return false, fmt.Errorf("marshal tools: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE projects SET
			title         = COALESCE($1::text, title),
			description   = COALESCE($2::text, description),
			category      = COALESCE(NULLIF($3::text, ''), category),
			tags          = COALESCE($4::jsonb, tags),
			thumbnail_url = COALESCE($5::text, thumbnail_url),
			media_url     = COALESCE($6::text, media_url),
			tools         = COALESCE($7::jsonb, tools),
			status        = COALESCE(NULLIF($8::text, ''), status),
			price         = COALESCE($9::numeric, price),
			client        = COALESCE($10::text, client),
			live_url      = COALESCE($11::text, live_url),
			github_url    = COALESCE($12::text, github_url)
		WHERE id = $13
	`, nullable(patch.Title), nullable(patch.Description), nullable(patch.Category),
		tags, nullable(patch.ThumbnailURL), nullable(patch.MediaURL), tools,
		nullable(patch.Status), nullable(patch.Price), nullable(patch.Client),
		nullable(patch.LiveURL), nullable(patch.GithubURL), id,
	)
	if err != nil {
		return false, fmt.Errorf("update project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update project rows: %w", err)
	}
	return n > 0, nil
}

// Delete removes a project permanently. Returns false when nothing matched.
func (s *ProjectStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete project rows: %w", err)
	}
	return n > 0, nil
}

// nullable turns a nil pointer into SQL NULL and dereferences the rest.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func jsonOrNil(v *[]string) (any, error) {
	if v == nil {
		return nil, nil
	}
	list := *v
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
