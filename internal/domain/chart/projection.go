package chart

import "github.com/dentalink/clinic/internal/domain/catalog"

// upsert replaces the entry with the same treatment id, else appends.
// Projections are keyed by AppliedTreatment.ID so a status toggle rewrites
// the existing entry instead of accumulating duplicates.
func upsert(list []AppliedTreatment, t AppliedTreatment) []AppliedTreatment {
	for i := range list {
		if list[i].ID == t.ID {
			list[i] = t
			return list
		}
	}
	return append(list, t)
}

// Project writes a treatment into its tooth's projection slots according to
// the definition's target type:
//
//   - whole_tooth: the whole slot; all surface slots are cleared because
//     whole-tooth treatments are mutually exclusive with surface work.
//   - root: the root slot only.
//   - surface, crown: every non-root surface (a crown covers the whole
//     visible tooth).
//   - surface, otherwise: the treatment's own surface.
//
// The treatment is stored by value, so the session copy and the projection
// never alias.
func (c *Chart) Project(cat *catalog.Catalog, t AppliedTreatment) {
	tooth, ok := c.Tooth(t.ToothID)
	if !ok {
		return
	}
	def, ok := cat.Resolve(t.TreatmentID)
	if !ok {
		return
	}
	switch def.AppliesTo {
	case catalog.TargetWholeTooth:
		tooth.Whole = upsert(tooth.Whole, t)
		for _, s := range AllSurfaces {
			tooth.Surfaces[s] = nil
		}
	case catalog.TargetRoot:
		tooth.Surfaces[SurfaceRoot] = upsert(tooth.Surfaces[SurfaceRoot], t)
	default:
		if t.TreatmentID == catalog.Crown {
			for _, s := range CrownSurfaces {
				tooth.Surfaces[s] = upsert(tooth.Surfaces[s], t)
			}
			return
		}
		tooth.Surfaces[t.Surface] = upsert(tooth.Surfaces[t.Surface], t)
	}
}
