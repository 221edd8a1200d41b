package catalog

import "time"

// TargetType says what part of a tooth a treatment is applied to.
type TargetType string

const (
	TargetSurface    TargetType = "surface"
	TargetWholeTooth TargetType = "whole_tooth"
	TargetRoot       TargetType = "root"
)

// Valid reports whether t is one of the known target types.
func (t TargetType) Valid() bool {
	switch t {
	case TargetSurface, TargetWholeTooth, TargetRoot:
		return true
	}
	return false
}

// TreatmentID identifies a treatment definition. The built-in catalog uses
// the constants below; clinics may add their own ids via the catalog API.
type TreatmentID string

const (
	Caries     TreatmentID = "caries"
	Fracture   TreatmentID = "fracture"
	Filling    TreatmentID = "filling"
	Sealant    TreatmentID = "sealant"
	Veneer     TreatmentID = "veneer"
	Crown      TreatmentID = "crown"
	RootCanal  TreatmentID = "root_canal"
	PostCore   TreatmentID = "post_core"
	Extraction TreatmentID = "extraction"
	Implant    TreatmentID = "implant"
	Whitening  TreatmentID = "whitening"
)

// TreatmentDefinition is immutable reference data; every finding condition
// and applied treatment must resolve to one of these.
type TreatmentDefinition struct {
	ID        TreatmentID `db:"id" json:"id"`
	Label     string      `db:"label" json:"label"`
	Category  string      `db:"category" json:"category"`
	Price     float64     `db:"price" json:"price"`
	AppliesTo TargetType  `db:"applies_to" json:"applies_to"`
	UpdatedAt time.Time   `db:"updated_at" json:"updated_at,omitempty"`
}

// builtin is the compile-time catalog. Order is the toolbar display order.
var builtin = []TreatmentDefinition{
	{ID: Caries, Label: "Caries", Category: "diagnosis", Price: 0, AppliesTo: TargetSurface},
	{ID: Fracture, Label: "Fracture", Category: "diagnosis", Price: 0, AppliesTo: TargetSurface},
	{ID: Filling, Label: "Composite filling", Category: "restorative", Price: 120, AppliesTo: TargetSurface},
	{ID: Sealant, Label: "Sealant", Category: "preventive", Price: 45, AppliesTo: TargetSurface},
	{ID: Veneer, Label: "Veneer", Category: "cosmetic", Price: 350, AppliesTo: TargetSurface},
	{ID: Crown, Label: "Crown", Category: "prosthetics", Price: 1000, AppliesTo: TargetSurface},
	{ID: RootCanal, Label: "Root canal", Category: "endodontics", Price: 450, AppliesTo: TargetRoot},
	{ID: PostCore, Label: "Post and core", Category: "endodontics", Price: 220, AppliesTo: TargetRoot},
	{ID: Extraction, Label: "Extraction", Category: "surgery", Price: 150, AppliesTo: TargetWholeTooth},
	{ID: Implant, Label: "Implant", Category: "surgery", Price: 2500, AppliesTo: TargetWholeTooth},
	{ID: Whitening, Label: "Whitening", Category: "cosmetic", Price: 200, AppliesTo: TargetWholeTooth},
}

// Catalog is a resolved treatment table: the built-in definitions with any
// clinic-specific overrides and additions merged in.
type Catalog struct {
	defs []TreatmentDefinition
	byID map[TreatmentID]int
}

// Default returns the built-in catalog with no overrides.
func Default() *Catalog {
	return New(nil)
}

// New builds a catalog from the built-in table plus overrides. An override
// with a known id replaces the built-in row; unknown ids are appended.
func New(overrides []TreatmentDefinition) *Catalog {
	c := &Catalog{byID: make(map[TreatmentID]int, len(builtin))}
	for _, d := range builtin {
		c.byID[d.ID] = len(c.defs)
		c.defs = append(c.defs, d)
	}
	for _, d := range overrides {
		if i, ok := c.byID[d.ID]; ok {
			c.defs[i] = d
			continue
		}
		c.byID[d.ID] = len(c.defs)
		c.defs = append(c.defs, d)
	}
	return c
}

// Resolve looks a definition up by id.
func (c *Catalog) Resolve(id TreatmentID) (TreatmentDefinition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return TreatmentDefinition{}, false
	}
	return c.defs[i], true
}

// Price returns the price for id, or 0 if the id is unknown.
func (c *Catalog) Price(id TreatmentID) float64 {
	d, ok := c.Resolve(id)
	if !ok {
		return 0
	}
	return d.Price
}

// List returns all definitions in display order.
func (c *Catalog) List() []TreatmentDefinition {
	out := make([]TreatmentDefinition, len(c.defs))
	copy(out, c.defs)
	return out
}
