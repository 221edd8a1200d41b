package promotion

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const promoCols = `id, title, description, discount_pct, valid_from, valid_until, active, created_at, updated_at`

func scanPromo(row pgx.Row) (*Promotion, error) {
	var p Promotion
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.DiscountPct,
		&p.ValidFrom, &p.ValidUntil, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Promotion) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO promotion (id, title, description, discount_pct, valid_from, valid_until, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.Title, p.Description, p.DiscountPct, p.ValidFrom, p.ValidUntil, p.Active)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Promotion, error) {
	return scanPromo(r.pool.QueryRow(ctx, `SELECT `+promoCols+` FROM promotion WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Promotion) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE promotion SET title=$2, description=$3, discount_pct=$4,
			valid_from=$5, valid_until=$6, active=$7, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Title, p.Description, p.DiscountPct, p.ValidFrom, p.ValidUntil, p.Active)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM promotion WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Promotion, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM promotion`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+promoCols+` FROM promotion ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Promotion
	for rows.Next() {
		p, err := scanPromo(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}
