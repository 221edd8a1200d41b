package catalog

import "context"

// Repository stores clinic-specific treatment definitions that override or
// extend the built-in catalog.
type Repository interface {
	List(ctx context.Context) ([]TreatmentDefinition, error)
	Upsert(ctx context.Context, d *TreatmentDefinition) error
	Delete(ctx context.Context, id TreatmentID) error
}
