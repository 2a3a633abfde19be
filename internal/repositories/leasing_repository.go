package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4"

	"github.com/leasingsys/leasing-service/internal/models"
	"github.com/leasingsys/leasing-service/internal/utils"
)

/* ───────────── public interface ───────────── */

// LeasingRepository owns canonical leasing persistence and identity
// assignment. GetByID and FindByName report absence as (nil, nil): "not
// found" is a valid result the callers turn into HTTP semantics, not an
// error.
type LeasingRepository interface {
	List(ctx context.Context) ([]*models.Leasing, error)
	GetByID(ctx context.Context, id int64) (*models.Leasing, error)
	FindByName(ctx context.Context, name string) (*models.Leasing, error)

	Create(ctx context.Context, l *models.Leasing) error
	Update(ctx context.Context, id int64, changes models.LeasingChangeSet) error
	Delete(ctx context.Context, id int64) error

	Ping(ctx context.Context) error
}

/* ───────────── implementation ───────────── */

type leasingRepo struct {
	db DB
}

func NewLeasingRepository(db DB) LeasingRepository {
	return &leasingRepo{db: db}
}

/* ---------- create ---------- */

func (r *leasingRepo) Create(ctx context.Context, l *models.Leasing) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO leasings (
			name, details, image_url, amenity, occupancy, square_footage, rate,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, l.Name, l.Details, l.ImageURL, l.Amenity, l.Occupancy, l.SquareFootage, l.Rate)
	return row.Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

/* ---------- reads ---------- */

func (r *leasingRepo) List(ctx context.Context) ([]*models.Leasing, error) {
	rows, err := r.db.Query(ctx, baseSelectLeasing()+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanLeasings(rows)
}

func (r *leasingRepo) GetByID(ctx context.Context, id int64) (*models.Leasing, error) {
	row := r.db.QueryRow(ctx, baseSelectLeasing()+" WHERE id=$1", id)
	return r.scanLeasing(row)
}

func (r *leasingRepo) FindByName(ctx context.Context, name string) (*models.Leasing, error) {
	row := r.db.QueryRow(ctx, baseSelectLeasing()+" WHERE LOWER(name)=LOWER($1) LIMIT 1", name)
	return r.scanLeasing(row)
}

/* ---------- update / delete ---------- */

// Update writes exactly the columns the change set names, plus updated_at.
func (r *leasingRepo) Update(ctx context.Context, id int64, ch models.LeasingChangeSet) error {
	var (
		set  []string
		args []interface{}
	)
	add := func(col string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s=$%d", col, len(args)))
	}

	if ch.Name != nil {
		add("name", *ch.Name)
	}
	if ch.Details != nil {
		add("details", *ch.Details)
	}
	if ch.ImageURL != nil {
		add("image_url", *ch.ImageURL)
	}
	if ch.Amenity != nil {
		add("amenity", *ch.Amenity)
	}
	if ch.Occupancy != nil {
		add("occupancy", *ch.Occupancy)
	}
	if ch.SquareFootage != nil {
		add("square_footage", *ch.SquareFootage)
	}
	if ch.Rate != nil {
		add("rate", *ch.Rate)
	}
	set = append(set, "updated_at=NOW()")

	args = append(args, id)
	q := fmt.Sprintf("UPDATE leasings SET %s WHERE id=$%d", strings.Join(set, ", "), len(args))

	tag, err := r.db.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNoRowsUpdated
	}
	return nil
}

func (r *leasingRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM leasings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNoRowsDeleted
	}
	return nil
}

/* ---------- health ---------- */

func (r *leasingRepo) Ping(ctx context.Context) error {
	var one int
	return r.db.QueryRow(ctx, `SELECT 1`).Scan(&one)
}

/* ---------- internals ---------- */

func baseSelectLeasing() string {
	return `
		SELECT id, name, details, image_url, amenity, occupancy, square_footage, rate,
		created_at, updated_at
		FROM leasings`
}

func (r *leasingRepo) scanLeasing(row pgx.Row) (*models.Leasing, error) {
	var l models.Leasing
	if err := row.Scan(
		&l.ID, &l.Name, &l.Details, &l.ImageURL, &l.Amenity,
		&l.Occupancy, &l.SquareFootage, &l.Rate,
		&l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *leasingRepo) scanLeasings(rows pgx.Rows) ([]*models.Leasing, error) {
	var out []*models.Leasing
	for rows.Next() {
		l, err := r.scanLeasing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
