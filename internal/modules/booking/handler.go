package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"serenityspa/internal/middleware"
	"serenityspa/internal/notify"
	"serenityspa/internal/pkg/response"
	"serenityspa/internal/pkg/validator"
	"serenityspa/internal/repository"
	"serenityspa/internal/storage"
)

// Handler keeps each session's wizard draft in a client slot keyed by
// session id, so an in-progress booking survives page reloads but
// never outlives the session.
type Handler struct {
	kv        storage.KV
	branches  *repository.BranchRepository
	services  *repository.ServiceRepository
	notifier  notify.Notifier
	closedDay time.Weekday
	now       func() time.Time
	log       zerolog.Logger
}

func NewHandler(kv storage.KV, branches *repository.BranchRepository, services *repository.ServiceRepository, notifier notify.Notifier, closedDay time.Weekday, log zerolog.Logger) *Handler {
	return &Handler{
		kv:        kv,
		branches:  branches,
		services:  services,
		notifier:  notifier,
		closedDay: closedDay,
		now:       time.Now,
		log:       log,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	booking := rg.Group("/booking")
	{
		booking.GET("", h.GetWizard)
		booking.PUT("/service", h.SetService)
		booking.PUT("/date", h.SetDate)
		booking.PUT("/time", h.SetTime)
		booking.PUT("/branch", h.SetBranch)
		booking.POST("/continue", h.Continue)
		booking.POST("/back", h.Back)
		booking.POST("/confirm", h.Confirm)
		booking.DELETE("", h.Reset)
	}
}

func bookingKey(sessionID string) string { return "booking:" + sessionID }

// load returns the session's draft, starting a fresh wizard at the
// default branch when the slot is missing or unreadable.
func (h *Handler) load(ctx context.Context, sessionID string) (*Wizard, error) {
	raw, ok, err := h.kv.Get(ctx, bookingKey(sessionID))
	if err != nil {
		return nil, err
	}
	if ok {
		var w Wizard
		if err := json.Unmarshal(raw, &w); err == nil {
			return &w, nil
		}
		h.log.Warn().Str("key", bookingKey(sessionID)).Msg("discarding corrupt booking slot")
		if err := h.kv.Delete(ctx, bookingKey(sessionID)); err != nil {
			return nil, err
		}
	}

	branch, err := h.branches.First(ctx)
	if err != nil {
		return nil, err
	}
	var branchID int64
	if branch != nil {
		branchID = branch.ID
	}
	return NewWizard(branchID), nil
}

func (h *Handler) persist(ctx context.Context, sessionID string, w *Wizard) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return err
	}
	return h.kv.Put(ctx, bookingKey(sessionID), raw)
}

func (h *Handler) GetWizard(c *gin.Context) {
	sessionID := c.GetString(middleware.CtxSessionID)

	w, err := h.load(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "BOOKING_LOAD_FAILED", "Could not load booking")
		return
	}
	response.Success(c, http.StatusOK, toWizardResponse(w))
}

func (h *Handler) SetService(c *gin.Context) {
	sessionID := c.GetString(middleware.CtxSessionID)

	var req SetServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.FieldErrors(c, http.StatusBadRequest, "Invalid booking input", fields)
		return
	}

	exists, err := h.services.ExistsByName(c.Request.Context(), req.Service)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "BOOKING_UPDATE_FAILED", "Could not update booking")
		return
	}
	if !exists {
		response.Error(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Unknown spa service")
		return
	}

	h.mutate(c, sessionID, func(w *Wizard) error {
		w.SetService(req.Service)
		return nil
	})
}

func (h *Handler) SetDate(c *gin.Context) {
	sessionID := c.GetString(middleware.CtxSessionID)

	var req SetDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	h.mutate(c, sessionID, func(w *Wizard) error {
		w.SetDate(req.Date)
		return nil
	})
}

func (h *Handler) SetTime(c *gin.Context) {
	sessionID := c.GetString(middleware.CtxSessionID)

	var req SetTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	h.mutate(c, sessionID, func(w *Wizard) error {
		return w.SetTime(req.TimeSlot)
	})
}

func (h *Handler) SetBranch(c *gin.Context) {
	sessionID := c.GetString(middleware.CtxSessionID)

	var req SetBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	branch, err := h.branches.GetByID(c.Request.Context(), req.BranchID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "BOOKING_UPDATE_FAILED", "Could not update booking")
		return
	}
	if branch == nil {
		response.Error(c, http.StatusNotFound, "BRANCH_NOT_FOUND", "Unknown branch")
		return
	}

	h.mutate(c, sessionID, func(w *Wizard) error {
		w.SetBranch(branch.ID)
		return nil
	})
}

// Continue runs the current step's guard. A blocked guard leaves the
// draft unchanged and tells the user what is missing.
func (h *Handler) Continue(c *gin.Context) {
	sessionID := c.GetString(middleware.CtxSessionID)
	userID := c.GetInt64(middleware.CtxUserID)

	w, err := h.load(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "BOOKING_LOAD_FAILED", "Could not load booking")
		return
	}

	if err := w.Continue(h.now(), h.closedDay); err != nil {
		h.pushGuardToast(userID, err)
		response.Error(c, http.StatusUnprocessableEntity, guardCode(err), err.Error())
		return
	}

	if err := h.persist(c.Request.Context(), sessionID, w); err != nil {
		response.Error(c, http.StatusInternalServerError, "BOOKING_UPDATE_FAILED", "Could not update booking")
		return
	}
	response.Success(c, http.StatusOK, toWizardResponse(w))
}

func (h *Handler) Back(c *gin.Context) {
	sessionID := c.GetString(middleware.CtxSessionID)

	h.mutate(c, sessionID, func(w *Wizard) error {
		w.Back()
		return nil
	})
}

// Confirm submits the finished draft, announces the appointment and
// drops the slot.
func (h *Handler) Confirm(c *gin.Context) {
	sessionID := c.GetString(middleware.CtxSessionID)
	userID := c.GetInt64(middleware.CtxUserID)

	w, err := h.load(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "BOOKING_LOAD_FAILED", "Could not load booking")
		return
	}

	conf, err := w.Submit(h.now(), h.closedDay)
	if err != nil {
		h.pushGuardToast(userID, err)
		response.Error(c, http.StatusUnprocessableEntity, guardCode(err), err.Error())
		return
	}

	if err := h.kv.Delete(c.Request.Context(), bookingKey(sessionID)); err != nil {
		response.Error(c, http.StatusInternalServerError, "BOOKING_UPDATE_FAILED", "Could not finish booking")
		return
	}

	h.notifier.Push(userID, notify.Toast{
		Title:       "Appointment Booked",
		Description: conf.Service + " on " + conf.Date + " at " + conf.TimeSlot,
	})
	response.Success(c, http.StatusCreated, conf)
}

func (h *Handler) Reset(c *gin.Context) {
	sessionID := c.GetString(middleware.CtxSessionID)

	if err := h.kv.Delete(c.Request.Context(), bookingKey(sessionID)); err != nil {
		response.Error(c, http.StatusInternalServerError, "BOOKING_UPDATE_FAILED", "Could not reset booking")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) mutate(c *gin.Context, sessionID string, fn func(*Wizard) error) {
	w, err := h.load(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "BOOKING_LOAD_FAILED", "Could not load booking")
		return
	}

	if err := fn(w); err != nil {
		if errors.Is(err, ErrUnknownTimeSlot) {
			response.Error(c, http.StatusBadRequest, "UNKNOWN_TIME_SLOT", "Time slot is not on the schedule")
			return
		}
		response.Error(c, http.StatusInternalServerError, "BOOKING_UPDATE_FAILED", "Could not update booking")
		return
	}

	if err := h.persist(c.Request.Context(), sessionID, w); err != nil {
		response.Error(c, http.StatusInternalServerError, "BOOKING_UPDATE_FAILED", "Could not update booking")
		return
	}
	response.Success(c, http.StatusOK, toWizardResponse(w))
}

func (h *Handler) pushGuardToast(userID int64, err error) {
	switch {
	case errors.Is(err, ErrServiceRequired):
		h.notifier.Push(userID, notify.Toast{
			Title:       "Service Required",
			Description: "Please select a service to continue",
			Variant:     notify.VariantDestructive,
		})
	case errors.Is(err, ErrDateRequired), errors.Is(err, ErrInvalidDate):
		h.notifier.Push(userID, notify.Toast{
			Title:       "Date Required",
			Description: "Please pick an available date to continue",
			Variant:     notify.VariantDestructive,
		})
	case errors.Is(err, ErrTimeRequired):
		h.notifier.Push(userID, notify.Toast{
			Title:       "Time Required",
			Description: "Please pick a time slot to continue",
			Variant:     notify.VariantDestructive,
		})
	}
}

func guardCode(err error) string {
	switch {
	case errors.Is(err, ErrServiceRequired):
		return "SERVICE_REQUIRED"
	case errors.Is(err, ErrDateRequired):
		return "DATE_REQUIRED"
	case errors.Is(err, ErrInvalidDate):
		return "INVALID_DATE"
	case errors.Is(err, ErrTimeRequired):
		return "TIME_REQUIRED"
	case errors.Is(err, ErrNotReady):
		return "BOOKING_INCOMPLETE"
	default:
		return "BOOKING_UPDATE_FAILED"
	}
}
