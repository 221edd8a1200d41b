package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentalink/clinic/internal/domain/billing"
	"github.com/dentalink/clinic/internal/domain/catalog"
	"github.com/dentalink/clinic/internal/domain/chart"
	"github.com/dentalink/clinic/internal/domain/plan"
)

// ErrPlanExists is returned when a plan save is attempted while the patient
// already has sessions; a saved plan switches the workflow to display and
// toggle, it is never rebuilt in place.
var ErrPlanExists = errors.New("patient already has a treatment plan")

// ErrUnassignedFindings is returned when a plan save would leave findings
// outside every proposed session and the caller has not confirmed. Nothing
// is lost: leftover findings stay available for a future save.
var ErrUnassignedFindings = errors.New("unassigned findings remain; confirmation required")

type Service struct {
	repo    Repository
	catalog *catalog.Service
	policy  billing.Policy
}

func NewService(repo Repository, cat *catalog.Service, policy billing.Policy) *Service {
	if !policy.Valid() {
		policy = billing.PolicyBillPlanned
	}
	return &Service{repo: repo, catalog: cat, policy: policy}
}

// Record returns the patient's record, materializing an empty one on the
// first consultation-room visit.
func (s *Service) Record(ctx context.Context, patientID uuid.UUID) (*PatientRecord, error) {
	rec, err := s.repo.Get(ctx, patientID)
	if errors.Is(err, ErrNotFound) {
		rec = NewPatientRecord(patientID)
		if err := s.repo.Create(ctx, rec); err != nil {
			return nil, err
		}
		return rec, nil
	}
	return rec, err
}

// update runs one clinical mutation as a load-mutate-save step. The
// snapshot is only written when fn succeeds, so multi-structure changes
// (plan save, status toggle) commit atomically or not at all.
func (s *Service) update(ctx context.Context, patientID uuid.UUID, fn func(rec *PatientRecord, cat *catalog.Catalog) error) (*PatientRecord, error) {
	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := s.Record(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if err := fn(rec, cat); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// -- Findings --

func (s *Service) AddFinding(ctx context.Context, patientID uuid.UUID, condition catalog.TreatmentID, toothID int, surface chart.Surface) (*PatientRecord, error) {
	return s.update(ctx, patientID, func(rec *PatientRecord, cat *catalog.Catalog) error {
		return rec.Chart.AddFinding(cat, condition, toothID, surface)
	})
}

func (s *Service) EditFinding(ctx context.Context, patientID, findingID uuid.UUID, condition catalog.TreatmentID) (*PatientRecord, error) {
	return s.update(ctx, patientID, func(rec *PatientRecord, cat *catalog.Catalog) error {
		return rec.Chart.EditFinding(cat, findingID, condition)
	})
}

func (s *Service) DeleteFinding(ctx context.Context, patientID, findingID uuid.UUID) (*PatientRecord, error) {
	return s.update(ctx, patientID, func(rec *PatientRecord, _ *catalog.Catalog) error {
		rec.Chart.DeleteFinding(findingID)
		return nil
	})
}

// PlanDraft is the plan builder's working set: the unassigned findings and
// their estimated cost.
type PlanDraft struct {
	Findings      []chart.ClinicalFinding `json:"findings"`
	EstimatedCost float64                 `json:"estimated_cost"`
	PlanExists    bool                    `json:"plan_exists"`
}

func (s *Service) PlanDraft(ctx context.Context, patientID uuid.UUID) (*PlanDraft, error) {
	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := s.Record(ctx, patientID)
	if err != nil {
		return nil, err
	}
	findings := rec.Chart.UnassignedFindings()
	return &PlanDraft{
		Findings:      findings,
		EstimatedCost: plan.Cost(findings, cat),
		PlanExists:    len(rec.Sessions) > 0,
	}, nil
}

// SavePlan absorbs the proposed sessions' findings into real sessions. It
// refuses while a plan exists, and when unreferenced findings would remain
// it requires confirmed=true before proceeding.
func (s *Service) SavePlan(ctx context.Context, patientID uuid.UUID, proposals []plan.ProposedSession, confirmed bool) (*PatientRecord, error) {
	if len(proposals) == 0 {
		return nil, fmt.Errorf("at least one session is required")
	}
	return s.update(ctx, patientID, func(rec *PatientRecord, cat *catalog.Catalog) error {
		if len(rec.Sessions) > 0 {
			return ErrPlanExists
		}
		referenced := make(map[uuid.UUID]bool)
		for _, p := range proposals {
			for _, fid := range p.FindingIDs {
				referenced[fid] = true
			}
		}
		if !confirmed {
			for _, f := range rec.Chart.UnassignedFindings() {
				if !referenced[f.ID] {
					return ErrUnassignedFindings
				}
			}
		}
		sessions, err := plan.Build(rec.Chart, cat, proposals)
		if err != nil {
			return err
		}
		rec.Sessions = sessions
		return nil
	})
}

// ToggleTreatment flips one session treatment between proposed and
// completed. Missing ids are a silent no-op per the stale-reference rule,
// but the snapshot is still saved only when something changed.
func (s *Service) ToggleTreatment(ctx context.Context, patientID, sessionID, treatmentID uuid.UUID) (*PatientRecord, error) {
	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := s.Record(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !plan.Toggle(rec.Sessions, rec.Chart, cat, sessionID, treatmentID) {
		return rec, nil
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// -- Sessions --

func (s *Service) UpdateSessionNotes(ctx context.Context, patientID, sessionID uuid.UUID, notes string) (*PatientRecord, error) {
	return s.update(ctx, patientID, func(rec *PatientRecord, _ *catalog.Catalog) error {
		sess, ok := rec.Session(sessionID)
		if !ok {
			return fmt.Errorf("session %s not found", sessionID)
		}
		sess.Notes = notes
		return nil
	})
}

func (s *Service) AttachDocument(ctx context.Context, patientID, sessionID uuid.UUID, name, url string) (*PatientRecord, error) {
	if name == "" {
		return nil, fmt.Errorf("document name is required")
	}
	return s.update(ctx, patientID, func(rec *PatientRecord, _ *catalog.Catalog) error {
		sess, ok := rec.Session(sessionID)
		if !ok {
			return fmt.Errorf("session %s not found", sessionID)
		}
		sess.Documents = append(sess.Documents, plan.DocumentRef{
			ID:         uuid.New(),
			Name:       name,
			URL:        url,
			UploadedAt: time.Now().UTC(),
		})
		return nil
	})
}

func (s *Service) DetachDocument(ctx context.Context, patientID, sessionID, documentID uuid.UUID) (*PatientRecord, error) {
	return s.update(ctx, patientID, func(rec *PatientRecord, _ *catalog.Catalog) error {
		sess, ok := rec.Session(sessionID)
		if !ok {
			return fmt.Errorf("session %s not found", sessionID)
		}
		for i := range sess.Documents {
			if sess.Documents[i].ID == documentID {
				sess.Documents = append(sess.Documents[:i], sess.Documents[i+1:]...)
				break
			}
		}
		return nil
	})
}

// -- Payments & statement --

func (s *Service) RecordPayment(ctx context.Context, patientID uuid.UUID, amount float64, method, note string) (*PatientRecord, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive")
	}
	return s.update(ctx, patientID, func(rec *PatientRecord, _ *catalog.Catalog) error {
		rec.Payments = append(rec.Payments, billing.Payment{
			ID:     uuid.New(),
			Amount: amount,
			Method: method,
			PaidAt: time.Now().UTC(),
			Note:   note,
		})
		return nil
	})
}

func (s *Service) DeletePayment(ctx context.Context, patientID, paymentID uuid.UUID) (*PatientRecord, error) {
	return s.update(ctx, patientID, func(rec *PatientRecord, _ *catalog.Catalog) error {
		for i := range rec.Payments {
			if rec.Payments[i].ID == paymentID {
				rec.Payments = append(rec.Payments[:i], rec.Payments[i+1:]...)
				break
			}
		}
		return nil
	})
}

// Statement computes the billing view from a single record snapshot.
func (s *Service) Statement(ctx context.Context, patientID uuid.UUID) (*billing.Statement, error) {
	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := s.Record(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return billing.BuildStatement(rec.Sessions, rec.Payments, cat, s.policy), nil
}

// -- Alerts, prescriptions, consents --

func (s *Service) AddAlert(ctx context.Context, patientID uuid.UUID, text string) (*PatientRecord, error) {
	if text == "" {
		return nil, fmt.Errorf("alert text is required")
	}
	return s.update(ctx, patientID, func(rec *PatientRecord, _ *catalog.Catalog) error {
		rec.MedicalAlerts = append(rec.MedicalAlerts, MedicalAlert{
			ID: uuid.New(), Text: text, CreatedAt: time.Now().UTC(),
		})
		return nil
	})
}

func (s *Service) RemoveAlert(ctx context.Context, patientID, alertID uuid.UUID) (*PatientRecord, error) {
	return s.update(ctx, patientID, func(rec *PatientRecord, _ *catalog.Catalog) error {
		for i := range rec.MedicalAlerts {
			if rec.MedicalAlerts[i].ID == alertID {
				rec.MedicalAlerts = append(rec.MedicalAlerts[:i], rec.MedicalAlerts[i+1:]...)
				break
			}
		}
		return nil
	})
}

func (s *Service) AddPrescription(ctx context.Context, patientID uuid.UUID, medication, instructions string) (*PatientRecord, error) {
	if medication == "" {
		return nil, fmt.Errorf("medication is required")
	}
	return s.update(ctx, patientID, func(rec *PatientRecord, _ *catalog.Catalog) error {
		rec.Prescriptions = append(rec.Prescriptions, Prescription{
			ID: uuid.New(), Medication: medication, Instructions: instructions, IssuedAt: time.Now().UTC(),
		})
		return nil
	})
}

func (s *Service) RemovePrescription(ctx context.Context, patientID, prescriptionID uuid.UUID) (*PatientRecord, error) {
	return s.update(ctx, patientID, func(rec *PatientRecord, _ *catalog.Catalog) error {
		for i := range rec.Prescriptions {
			if rec.Prescriptions[i].ID == prescriptionID {
				rec.Prescriptions = append(rec.Prescriptions[:i], rec.Prescriptions[i+1:]...)
				break
			}
		}
		return nil
	})
}

func (s *Service) AddConsent(ctx context.Context, patientID uuid.UUID, title, url string) (*PatientRecord, error) {
	if title == "" {
		return nil, fmt.Errorf("consent title is required")
	}
	return s.update(ctx, patientID, func(rec *PatientRecord, _ *catalog.Catalog) error {
		rec.Consents = append(rec.Consents, Consent{
			ID: uuid.New(), Title: title, URL: url, SignedAt: time.Now().UTC(),
		})
		return nil
	})
}

func (s *Service) RemoveConsent(ctx context.Context, patientID, consentID uuid.UUID) (*PatientRecord, error) {
	return s.update(ctx, patientID, func(rec *PatientRecord, _ *catalog.Catalog) error {
		for i := range rec.Consents {
			if rec.Consents[i].ID == consentID {
				rec.Consents = append(rec.Consents[:i], rec.Consents[i+1:]...)
				break
			}
		}
		return nil
	})
}

// FillView is the render-ready fill state of one dentition: per tooth, one
// entry per surface plus the whole-tooth slot.
type FillView map[int]map[chart.Surface]chart.FillState

// Fills derives the fill view for both dentitions from the current record.
func (s *Service) Fills(ctx context.Context, patientID uuid.UUID) (permanent, deciduous FillView, err error) {
	rec, err := s.Record(ctx, patientID)
	if err != nil {
		return nil, nil, err
	}
	return fillView(rec.Chart.Permanent), fillView(rec.Chart.Deciduous), nil
}

func fillView(o chart.Odontogram) FillView {
	view := make(FillView, len(o))
	for n, tooth := range o {
		fills := make(map[chart.Surface]chart.FillState, len(chart.AllSurfaces)+1)
		for _, surf := range chart.AllSurfaces {
			fills[surf] = chart.Fill(tooth, surf)
		}
		fills[chart.SurfaceWhole] = chart.WholeFill(tooth)
		view[n] = fills
	}
	return view
}
