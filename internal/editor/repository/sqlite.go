package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"floorplan-editor/internal/editor/models"
)

// ============================================================
// SQLite Repository
// ============================================================

// ErrNotFound — проект с таким id отсутствует.
var ErrNotFound = errors.New("project not found")

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init запускает миграции.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// ============================================================
// CRUD
// ============================================================

// Create сохраняет новый проект; пустой id заполняется uuid.
func (r *Repository) Create(ctx context.Context, p *models.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.View.Zoom == 0 {
		p.View.Zoom = 1
	}
	now := time.Now().UTC().Format(time.RFC3339)
	p.CreatedAt = now
	p.UpdatedAt = now

	shapes, doors, view, err := marshalGeometry(p)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO projects (id, name, current_step, shapes, doors, view_transform, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `, p.ID, p.Name, p.CurrentStep, shapes, doors, view, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID читает проект.
func (r *Repository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, current_step, shapes, doors, view_transform, created_at, updated_at
        FROM projects
        WHERE id = ?
    `, id)
	return scanProject(row)
}

// List возвращает все проекты, свежие первыми.
func (r *Repository) List(ctx context.Context) ([]models.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, current_step, shapes, doors, view_transform, created_at, updated_at
        FROM projects
        ORDER BY updated_at DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// UpdateParams — частичное обновление: nil-поля не трогаются.
type UpdateParams struct {
	Name        *string
	CurrentStep *int
	Shapes      *[]models.Shape
	Doors       *[]models.Door
	View        *models.ViewTransform
}

// Update накладывает частичное обновление поверх текущей записи.
func (r *Repository) Update(ctx context.Context, id string, params UpdateParams) (*models.Project, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		p.Name = *params.Name
	}
	if params.CurrentStep != nil {
		p.CurrentStep = *params.CurrentStep
	}
	if params.Shapes != nil {
		p.Shapes = *params.Shapes
	}
	if params.Doors != nil {
		p.Doors = *params.Doors
	}
	if params.View != nil {
		p.View = *params.View
	}
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	shapes, doors, view, err := marshalGeometry(p)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx, `
        UPDATE projects
        SET name = ?, current_step = ?, shapes = ?, doors = ?, view_transform = ?, updated_at = ?
        WHERE id = ?
    `, p.Name, p.CurrentStep, shapes, doors, view, p.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return p, nil
}

// Delete удаляет проект.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ============================================================
// Row mapping
// ============================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	var shapes, doors, view string

	if err := row.Scan(&p.ID, &p.Name, &p.CurrentStep, &shapes, &doors, &view, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(shapes), &p.Shapes); err != nil {
		return nil, fmt.Errorf("decode shapes: %w", err)
	}
	if err := json.Unmarshal([]byte(doors), &p.Doors); err != nil {
		return nil, fmt.Errorf("decode doors: %w", err)
	}
	if err := json.Unmarshal([]byte(view), &p.View); err != nil {
		return nil, fmt.Errorf("decode view transform: %w", err)
	}
	return &p, nil
}

func marshalGeometry(p *models.Project) (string, string, string, error) {
	if p.Shapes == nil {
		p.Shapes = []models.Shape{}
	}
	if p.Doors == nil {
		p.Doors = []models.Door{}
	}

	shapes, err := json.Marshal(p.Shapes)
	if err != nil {
		return "", "", "", fmt.Errorf("encode shapes: %w", err)
	}
	doors, err := json.Marshal(p.Doors)
	if err != nil {
		return "", "", "", fmt.Errorf("encode doors: %w", err)
	}
	view, err := json.Marshal(p.View)
	if err != nil {
		return "", "", "", fmt.Errorf("encode view transform: %w", err)
	}
	return string(shapes), string(doors), string(view), nil
}

// ============================================================
// Connection
// ============================================================

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
