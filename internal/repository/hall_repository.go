package repository

import (
	"context"
	"database/sql"

	"github.com/kovil/hall-booking/internal/model"
)

// HallRepo reads the hall directory.  Halls are created and edited by
// an external administration tool, so only lookups are exposed here;
// availability logic never depends on anything in this repository
// beyond the hall IDs themselves.
type HallRepo struct {
	db *sql.DB
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{db: db}
}

// List returns every active hall with its ordered images.  Images are
// loaded in a second query and stitched in by hall ID.
func (r *HallRepo) List(ctx context.Context) ([]model.Hall, error) {
	const q = `SELECT id, name, description, is_active, created_at, updated_at
	           FROM halls
	           WHERE is_active = 1
	           ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	halls := make([]model.Hall, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var h model.Hall
		var desc sql.NullString
		if err := rows.Scan(&h.ID, &h.Name, &desc, &h.IsActive, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			d := desc.String
			h.Description = &d
		}
		h.Images = []string{}
		index[h.ID] = len(halls)
		halls = append(halls, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(halls) == 0 {
		return halls, nil
	}
	const imgQ = `SELECT hall_id, url FROM hall_images ORDER BY hall_id, position`
	irows, err := r.db.QueryContext(ctx, imgQ)
	if err != nil {
		return nil, err
	}
	defer irows.Close()
	for irows.Next() {
		var hallID uint64
		var url string
		if err := irows.Scan(&hallID, &url); err != nil {
			return nil, err
		}
		if idx, ok := index[hallID]; ok {
			halls[idx].Images = append(halls[idx].Images, url)
		}
	}
	if err := irows.Err(); err != nil {
		return nil, err
	}
	return halls, nil
}

// GetByID returns a single hall with its images.  ErrHallNotFound is
// returned when no active hall matches the ID.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	const q = `SELECT id, name, description, is_active, created_at, updated_at
	           FROM halls
	           WHERE id = ? AND is_active = 1`
	var h model.Hall
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(&h.ID, &h.Name, &desc, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrHallNotFound
	}
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		h.Description = &d
	}
	h.Images = []string{}
	const imgQ = `SELECT url FROM hall_images WHERE hall_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, imgQ, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		h.Images = append(h.Images, url)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &h, nil
}
