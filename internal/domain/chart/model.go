// Package chart is the odontogram state engine: per-tooth clinical findings,
// applied-treatment projections, and the surface fill derivation used by the
// rendering shell. It performs no I/O; the record service persists whole
// chart snapshots around every mutation.
package chart

import (
	"github.com/google/uuid"

	"github.com/dentalink/clinic/internal/domain/catalog"
)

// Surface is one of the six per-tooth targets. SurfaceWhole is the
// pseudo-target used when a whole-tooth treatment is selected.
type Surface string

const (
	SurfaceBuccal   Surface = "buccal"
	SurfaceLingual  Surface = "lingual"
	SurfaceOcclusal Surface = "occlusal"
	SurfaceDistal   Surface = "distal"
	SurfaceMesial   Surface = "mesial"
	SurfaceRoot     Surface = "root"
	SurfaceWhole    Surface = "whole"
)

// CrownSurfaces are the surfaces a crown covers: everything except the root.
var CrownSurfaces = []Surface{
	SurfaceBuccal, SurfaceLingual, SurfaceOcclusal, SurfaceDistal, SurfaceMesial,
}

// AllSurfaces are the projection slots of a tooth, in rendering order.
var AllSurfaces = []Surface{
	SurfaceBuccal, SurfaceLingual, SurfaceOcclusal, SurfaceDistal, SurfaceMesial, SurfaceRoot,
}

// Valid reports whether s names a real surface or the whole-tooth target.
func (s Surface) Valid() bool {
	if s == SurfaceWhole {
		return true
	}
	for _, k := range AllSurfaces {
		if s == k {
			return true
		}
	}
	return false
}

// Dentition selects one of a patient's two odontograms.
type Dentition string

const (
	Permanent Dentition = "permanent"
	Deciduous Dentition = "deciduous"
)

// permanentTeeth holds the 32 FDI adult tooth numbers, quadrant by quadrant.
var permanentTeeth = buildTeeth(1, 8)

// deciduousTeeth holds the 20 FDI primary tooth numbers.
var deciduousTeeth = buildTeeth(5, 5)

func buildTeeth(firstQuadrant, perQuadrant int) []int {
	var teeth []int
	for q := firstQuadrant; q < firstQuadrant+4; q++ {
		for n := 1; n <= perQuadrant; n++ {
			teeth = append(teeth, q*10+n)
		}
	}
	return teeth
}

// Teeth returns the tooth numbers of a dentition.
func (d Dentition) Teeth() []int {
	if d == Deciduous {
		return deciduousTeeth
	}
	return permanentTeeth
}

// Contains reports whether toothID belongs to this dentition.
func (d Dentition) Contains(toothID int) bool {
	q := toothID / 10
	n := toothID % 10
	if d == Deciduous {
		return q >= 5 && q <= 8 && n >= 1 && n <= 5
	}
	return q >= 1 && q <= 4 && n >= 1 && n <= 8
}

// TreatmentStatus is the two-state lifecycle of a scheduled treatment.
type TreatmentStatus string

const (
	StatusProposed  TreatmentStatus = "proposed"
	StatusCompleted TreatmentStatus = "completed"
)

// Toggled returns the opposite status.
func (s TreatmentStatus) Toggled() TreatmentStatus {
	if s == StatusCompleted {
		return StatusProposed
	}
	return StatusCompleted
}

// ClinicalFinding is an unscheduled observation: this tooth surface needs
// this treatment. It lives in the tooth's findings list until it is deleted
// or absorbed into a treatment-plan session.
type ClinicalFinding struct {
	ID        uuid.UUID           `json:"id"`
	ToothID   int                 `json:"tooth_id"`
	Surface   Surface             `json:"surface"`
	Condition catalog.TreatmentID `json:"condition"`
}

// AppliedTreatment is a finding that has been scheduled into a session. The
// session's copy is authoritative; the copies inside ToothState are a
// projection rewritten on every status change.
type AppliedTreatment struct {
	ID          uuid.UUID           `json:"id"`
	TreatmentID catalog.TreatmentID `json:"treatment_id"`
	ToothID     int                 `json:"tooth_id"`
	Surface     Surface             `json:"surface"`
	Status      TreatmentStatus     `json:"status"`
	SessionID   uuid.UUID           `json:"session_id"`
}

// ToothState is the per-tooth record: treatment projections per surface, the
// whole-tooth slot, and the unassigned findings.
type ToothState struct {
	Surfaces map[Surface][]AppliedTreatment `json:"surfaces"`
	Whole    []AppliedTreatment             `json:"whole"`
	Findings []ClinicalFinding              `json:"findings"`
}

// NewToothState returns an empty tooth record with all surface slots present.
func NewToothState() *ToothState {
	t := &ToothState{Surfaces: make(map[Surface][]AppliedTreatment, len(AllSurfaces))}
	for _, s := range AllSurfaces {
		t.Surfaces[s] = nil
	}
	return t
}

// Odontogram is the full tooth chart of one dentition.
type Odontogram map[int]*ToothState

// NewOdontogram materializes an empty chart for every tooth of a dentition.
func NewOdontogram(d Dentition) Odontogram {
	o := make(Odontogram)
	for _, n := range d.Teeth() {
		o[n] = NewToothState()
	}
	return o
}

// Chart bundles a patient's two odontograms. Lookups that take a tooth or
// finding id search the permanent dentition first, then the deciduous one.
type Chart struct {
	Permanent Odontogram `json:"permanent"`
	Deciduous Odontogram `json:"deciduous"`
}

// NewChart returns a chart with both dentitions fully materialized.
func NewChart() *Chart {
	return &Chart{
		Permanent: NewOdontogram(Permanent),
		Deciduous: NewOdontogram(Deciduous),
	}
}

// Tooth resolves a tooth number to its state, permanent dentition first.
func (c *Chart) Tooth(toothID int) (*ToothState, bool) {
	if Permanent.Contains(toothID) {
		t, ok := c.Permanent[toothID]
		return t, ok
	}
	if Deciduous.Contains(toothID) {
		t, ok := c.Deciduous[toothID]
		return t, ok
	}
	return nil, false
}

// Normalize repairs a chart rehydrated from an older snapshot: missing
// odontograms, teeth, or surface slots are re-materialized empty.
func (c *Chart) Normalize() {
	if c.Permanent == nil {
		c.Permanent = NewOdontogram(Permanent)
	}
	if c.Deciduous == nil {
		c.Deciduous = NewOdontogram(Deciduous)
	}
	normalizeOdontogram(c.Permanent, Permanent)
	normalizeOdontogram(c.Deciduous, Deciduous)
}

func normalizeOdontogram(o Odontogram, d Dentition) {
	for _, n := range d.Teeth() {
		t, ok := o[n]
		if !ok || t == nil {
			o[n] = NewToothState()
			continue
		}
		if t.Surfaces == nil {
			t.Surfaces = make(map[Surface][]AppliedTreatment, len(AllSurfaces))
		}
		for _, s := range AllSurfaces {
			if _, ok := t.Surfaces[s]; !ok {
				t.Surfaces[s] = nil
			}
		}
	}
}
