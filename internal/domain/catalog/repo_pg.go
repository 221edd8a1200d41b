package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) List(ctx context.Context) ([]TreatmentDefinition, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, label, category, price, applies_to, updated_at
		FROM treatment_catalog ORDER BY label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TreatmentDefinition
	for rows.Next() {
		var d TreatmentDefinition
		if err := rows.Scan(&d.ID, &d.Label, &d.Category, &d.Price, &d.AppliesTo, &d.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *repoPG) Upsert(ctx context.Context, d *TreatmentDefinition) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO treatment_catalog (id, label, category, price, applies_to)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET
			label = EXCLUDED.label, category = EXCLUDED.category,
			price = EXCLUDED.price, applies_to = EXCLUDED.applies_to,
			updated_at = NOW()`,
		d.ID, d.Label, d.Category, d.Price, d.AppliesTo)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id TreatmentID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM treatment_catalog WHERE id = $1`, id)
	return err
}
