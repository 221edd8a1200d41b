package record

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dentalink/clinic/internal/domain/catalog"
	"github.com/dentalink/clinic/internal/domain/chart"
	"github.com/dentalink/clinic/internal/domain/plan"
	"github.com/dentalink/clinic/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	clinical := api.Group("/patients/:id", auth.RequireRole("admin", "doctor"))

	clinical.GET("/record", h.GetRecord)
	clinical.GET("/chart/fills", h.GetFills)

	clinical.POST("/findings", h.AddFinding)
	clinical.PUT("/findings/:findingId", h.EditFinding)
	clinical.DELETE("/findings/:findingId", h.DeleteFinding)

	clinical.GET("/plan/draft", h.GetPlanDraft)
	clinical.POST("/plan", h.SavePlan)
	clinical.POST("/sessions/:sessionId/treatments/:treatmentId/toggle", h.ToggleTreatment)
	clinical.PUT("/sessions/:sessionId/notes", h.UpdateNotes)
	clinical.POST("/sessions/:sessionId/documents", h.AttachDocument)
	clinical.DELETE("/sessions/:sessionId/documents/:documentId", h.DetachDocument)

	clinical.POST("/alerts", h.AddAlert)
	clinical.DELETE("/alerts/:alertId", h.RemoveAlert)
	clinical.POST("/prescriptions", h.AddPrescription)
	clinical.DELETE("/prescriptions/:prescriptionId", h.RemovePrescription)
	clinical.POST("/consents", h.AddConsent)
	clinical.DELETE("/consents/:consentId", h.RemoveConsent)

	accounts := api.Group("/patients/:id", auth.RequireRole("admin", "doctor", "receptionist"))
	accounts.GET("/statement", h.GetStatement)
	accounts.POST("/payments", h.RecordPayment)
	accounts.DELETE("/payments/:paymentId", h.DeletePayment)
}

func patientID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	return id, nil
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func respond(c echo.Context, rec *PatientRecord, err error) error {
	if err != nil {
		switch {
		case errors.Is(err, ErrPlanExists), errors.Is(err, ErrUnassignedFindings), errors.Is(err, ErrVersionConflict):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) GetRecord(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.Record(c.Request().Context(), pid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) GetFills(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	permanent, deciduous, err := h.svc.Fills(c.Request().Context(), pid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]FillView{
		"permanent": permanent,
		"deciduous": deciduous,
	})
}

// -- Findings --

type addFindingRequest struct {
	Condition catalog.TreatmentID `json:"condition"`
	ToothID   int                 `json:"tooth_id"`
	Surface   chart.Surface       `json:"surface"`
}

func (h *Handler) AddFinding(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	var req addFindingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.svc.AddFinding(c.Request().Context(), pid, req.Condition, req.ToothID, req.Surface)
	return respond(c, rec, err)
}

type editFindingRequest struct {
	Condition catalog.TreatmentID `json:"condition"`
}

func (h *Handler) EditFinding(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	fid, err := pathUUID(c, "findingId")
	if err != nil {
		return err
	}
	var req editFindingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.svc.EditFinding(c.Request().Context(), pid, fid, req.Condition)
	return respond(c, rec, err)
}

func (h *Handler) DeleteFinding(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	fid, err := pathUUID(c, "findingId")
	if err != nil {
		return err
	}
	rec, err := h.svc.DeleteFinding(c.Request().Context(), pid, fid)
	return respond(c, rec, err)
}

// -- Plan --

func (h *Handler) GetPlanDraft(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	draft, err := h.svc.PlanDraft(c.Request().Context(), pid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, draft)
}

type savePlanRequest struct {
	Sessions []plan.ProposedSession `json:"sessions"`
}

func (h *Handler) SavePlan(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	var req savePlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	confirmed := c.QueryParam("confirm") == "true"
	rec, err := h.svc.SavePlan(c.Request().Context(), pid, req.Sessions, confirmed)
	return respond(c, rec, err)
}

func (h *Handler) ToggleTreatment(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	sid, err := pathUUID(c, "sessionId")
	if err != nil {
		return err
	}
	tid, err := pathUUID(c, "treatmentId")
	if err != nil {
		return err
	}
	rec, err := h.svc.ToggleTreatment(c.Request().Context(), pid, sid, tid)
	return respond(c, rec, err)
}

type notesRequest struct {
	Notes string `json:"notes"`
}

func (h *Handler) UpdateNotes(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	sid, err := pathUUID(c, "sessionId")
	if err != nil {
		return err
	}
	var req notesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.svc.UpdateSessionNotes(c.Request().Context(), pid, sid, req.Notes)
	return respond(c, rec, err)
}

type documentRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (h *Handler) AttachDocument(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	sid, err := pathUUID(c, "sessionId")
	if err != nil {
		return err
	}
	var req documentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.svc.AttachDocument(c.Request().Context(), pid, sid, req.Name, req.URL)
	return respond(c, rec, err)
}

func (h *Handler) DetachDocument(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	sid, err := pathUUID(c, "sessionId")
	if err != nil {
		return err
	}
	did, err := pathUUID(c, "documentId")
	if err != nil {
		return err
	}
	rec, err := h.svc.DetachDocument(c.Request().Context(), pid, sid, did)
	return respond(c, rec, err)
}

// -- Payments & statement --

type paymentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
	Note   string  `json:"note"`
}

func (h *Handler) RecordPayment(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.svc.RecordPayment(c.Request().Context(), pid, req.Amount, req.Method, req.Note)
	return respond(c, rec, err)
}

func (h *Handler) DeletePayment(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	payID, err := pathUUID(c, "paymentId")
	if err != nil {
		return err
	}
	rec, err := h.svc.DeletePayment(c.Request().Context(), pid, payID)
	return respond(c, rec, err)
}

func (h *Handler) GetStatement(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	st, err := h.svc.Statement(c.Request().Context(), pid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, st)
}

// -- Alerts, prescriptions, consents --

type alertRequest struct {
	Text string `json:"text"`
}

func (h *Handler) AddAlert(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	var req alertRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.svc.AddAlert(c.Request().Context(), pid, req.Text)
	return respond(c, rec, err)
}

func (h *Handler) RemoveAlert(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	aid, err := pathUUID(c, "alertId")
	if err != nil {
		return err
	}
	rec, err := h.svc.RemoveAlert(c.Request().Context(), pid, aid)
	return respond(c, rec, err)
}

type prescriptionRequest struct {
	Medication   string `json:"medication"`
	Instructions string `json:"instructions"`
}

func (h *Handler) AddPrescription(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	var req prescriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.svc.AddPrescription(c.Request().Context(), pid, req.Medication, req.Instructions)
	return respond(c, rec, err)
}

func (h *Handler) RemovePrescription(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	prid, err := pathUUID(c, "prescriptionId")
	if err != nil {
		return err
	}
	rec, err := h.svc.RemovePrescription(c.Request().Context(), pid, prid)
	return respond(c, rec, err)
}

type consentRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (h *Handler) AddConsent(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	var req consentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.svc.AddConsent(c.Request().Context(), pid, req.Title, req.URL)
	return respond(c, rec, err)
}

func (h *Handler) RemoveConsent(c echo.Context) error {
	pid, err := patientID(c)
	if err != nil {
		return err
	}
	cid, err := pathUUID(c, "consentId")
	if err != nil {
		return err
	}
	rec, err := h.svc.RemoveConsent(c.Request().Context(), pid, cid)
	return respond(c, rec, err)
}
