package chart

import "github.com/dentalink/clinic/internal/domain/catalog"

// FillState is the visual state of one tooth surface. The rendering shell
// maps it to colors: FillProposed is red, FillCompleted is blue.
type FillState string

const (
	FillHealthy   FillState = "healthy"
	FillProposed  FillState = "proposed"
	FillCompleted FillState = "completed"
)

// Fill derives the visual state of a surface. Precedence, in order:
//
//  1. An unresolved finding on this surface — red, findings beat everything
//     because the visible state is not final yet.
//  2. A crown anywhere on the tooth, for any non-root surface — crowns
//     visually dominate per-surface work.
//  3. The most recently projected treatment on this surface.
//  4. Healthy.
func Fill(tooth *ToothState, surface Surface) FillState {
	if tooth == nil {
		return FillHealthy
	}
	for _, f := range tooth.Findings {
		if f.Surface == surface {
			return FillProposed
		}
	}
	if t, ok := pick(tooth, surface); ok {
		if t.Status == StatusCompleted {
			return FillCompleted
		}
		return FillProposed
	}
	return FillHealthy
}

// pick selects the treatment that decides a surface's fill.
func pick(tooth *ToothState, surface Surface) (AppliedTreatment, bool) {
	if surface != SurfaceRoot {
		for _, s := range AllSurfaces {
			for _, t := range tooth.Surfaces[s] {
				if t.TreatmentID == catalog.Crown {
					return t, true
				}
			}
		}
	}
	list := tooth.Surfaces[surface]
	if len(list) == 0 {
		return AppliedTreatment{}, false
	}
	return list[len(list)-1], true
}

// WholeFill derives the fill of the whole-tooth slot (extractions, implants).
func WholeFill(tooth *ToothState) FillState {
	if tooth == nil {
		return FillHealthy
	}
	for _, f := range tooth.Findings {
		if f.Surface == SurfaceWhole {
			return FillProposed
		}
	}
	if len(tooth.Whole) == 0 {
		return FillHealthy
	}
	if tooth.Whole[len(tooth.Whole)-1].Status == StatusCompleted {
		return FillCompleted
	}
	return FillProposed
}
