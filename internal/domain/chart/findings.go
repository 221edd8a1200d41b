package chart

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dentalink/clinic/internal/domain/catalog"
)

// compatible reports whether a treatment's target type may be recorded
// against the given surface parameter.
func compatible(target catalog.TargetType, surface Surface) bool {
	switch target {
	case catalog.TargetWholeTooth:
		return surface == SurfaceWhole
	case catalog.TargetRoot:
		return surface == SurfaceRoot
	case catalog.TargetSurface:
		return surface != SurfaceWhole && surface != SurfaceRoot
	}
	return false
}

// AddFinding records a clinical observation on a tooth surface. Adding a
// finding that already exists on the tooth (same surface and condition) is
// an idempotent no-op. Unknown tooth, unknown condition, or an incompatible
// surface/target pairing is an error: the UI only offers valid options, so
// these indicate a caller bug.
func (c *Chart) AddFinding(cat *catalog.Catalog, condition catalog.TreatmentID, toothID int, surface Surface) error {
	def, ok := cat.Resolve(condition)
	if !ok {
		return fmt.Errorf("unknown treatment: %s", condition)
	}
	if !surface.Valid() {
		return fmt.Errorf("unknown surface: %s", surface)
	}
	if !compatible(def.AppliesTo, surface) {
		return fmt.Errorf("treatment %s does not apply to surface %s", condition, surface)
	}
	tooth, ok := c.Tooth(toothID)
	if !ok {
		return fmt.Errorf("unknown tooth: %d", toothID)
	}
	for _, f := range tooth.Findings {
		if f.Surface == surface && f.Condition == condition {
			return nil
		}
	}
	tooth.Findings = append(tooth.Findings, ClinicalFinding{
		ID:        uuid.New(),
		ToothID:   toothID,
		Surface:   surface,
		Condition: condition,
	})
	return nil
}

// EditFinding replaces the condition of an existing finding in place,
// under the same target-compatibility rule as AddFinding. An edit that
// would duplicate an existing (surface, condition) pair on the tooth
// collapses into the survivor: the edited finding is dropped. A finding id
// that matches nothing is silently ignored: stale references self-heal on
// the next render. An unknown condition is still an error.
func (c *Chart) EditFinding(cat *catalog.Catalog, findingID uuid.UUID, condition catalog.TreatmentID) error {
	def, ok := cat.Resolve(condition)
	if !ok {
		return fmt.Errorf("unknown treatment: %s", condition)
	}
	for _, o := range []Odontogram{c.Permanent, c.Deciduous} {
		for _, tooth := range o {
			for i := range tooth.Findings {
				if tooth.Findings[i].ID != findingID {
					continue
				}
				surface := tooth.Findings[i].Surface
				if !compatible(def.AppliesTo, surface) {
					return fmt.Errorf("treatment %s does not apply to surface %s", condition, surface)
				}
				for j, other := range tooth.Findings {
					if j != i && other.Surface == surface && other.Condition == condition {
						tooth.Findings = append(tooth.Findings[:i], tooth.Findings[i+1:]...)
						return nil
					}
				}
				tooth.Findings[i].Condition = condition
				return nil
			}
		}
	}
	return nil
}

// DeleteFinding removes a finding from whichever odontogram holds it.
// Finding ids are unique across both dentitions, so at most one entry is
// removed. Returns true if a finding was removed.
func (c *Chart) DeleteFinding(findingID uuid.UUID) bool {
	for _, o := range []Odontogram{c.Permanent, c.Deciduous} {
		for _, tooth := range o {
			for i := range tooth.Findings {
				if tooth.Findings[i].ID == findingID {
					tooth.Findings = append(tooth.Findings[:i], tooth.Findings[i+1:]...)
					return true
				}
			}
		}
	}
	return false
}

// UnassignedFindings collects every finding across both dentitions, in tooth
// number order (permanent first).
func (c *Chart) UnassignedFindings() []ClinicalFinding {
	var out []ClinicalFinding
	for _, d := range []Dentition{Permanent, Deciduous} {
		o := c.Permanent
		if d == Deciduous {
			o = c.Deciduous
		}
		for _, n := range d.Teeth() {
			if tooth, ok := o[n]; ok {
				out = append(out, tooth.Findings...)
			}
		}
	}
	return out
}

// TakeFinding removes and returns the finding with the given id, searching
// the permanent dentition first. Used by the plan builder to absorb a
// finding into a session as a single operation.
func (c *Chart) TakeFinding(findingID uuid.UUID) (ClinicalFinding, bool) {
	for _, o := range []Odontogram{c.Permanent, c.Deciduous} {
		for _, tooth := range o {
			for i := range tooth.Findings {
				if tooth.Findings[i].ID == findingID {
					f := tooth.Findings[i]
					tooth.Findings = append(tooth.Findings[:i], tooth.Findings[i+1:]...)
					return f, true
				}
			}
		}
	}
	return ClinicalFinding{}, false
}
