package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"vrajamarii/internal/evaluation"
	"vrajamarii/internal/metrics"
	"vrajamarii/internal/repository"
)

// DraftStore keeps evaluation forms between requests.
type DraftStore interface {
	Load(ctx context.Context, userID uuid.UUID) (*evaluation.Form, bool, error)
	Save(ctx context.Context, form *evaluation.Form) error
	Delete(ctx context.Context, userID uuid.UUID) error
	AcquireSubmitLock(ctx context.Context, userID uuid.UUID, ttl time.Duration) (bool, error)
	ReleaseSubmitLock(ctx context.Context, userID uuid.UUID) error
}

type EvaluationController struct {
	evaluations   repository.EvaluationRepository
	waitlist      repository.WaitlistRepository
	profiles      repository.UserProfileRepository
	drafts        DraftStore
	metrics       *metrics.Collector
	logger        *zap.Logger
	submitLockTTL time.Duration
}

func NewEvaluationController(
	evaluations repository.EvaluationRepository,
	waitlist repository.WaitlistRepository,
	profiles repository.UserProfileRepository,
	drafts DraftStore,
	metrics *metrics.Collector,
	logger *zap.Logger,
	submitLockTTL time.Duration,
) *EvaluationController {
	return &EvaluationController{
		evaluations:   evaluations,
		waitlist:      waitlist,
		profiles:      profiles,
		drafts:        drafts,
		metrics:       metrics,
		logger:        logger,
		submitLockTTL: submitLockTTL,
	}
}

// GetEvaluation godoc
// @Summary Get submitted evaluation
// @Description Retrieve the authenticated user's submitted evaluation (read-only)
// @Tags evaluation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Evaluation retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Evaluation not found"
// @Router /evaluation [get]
func (ec *EvaluationController) GetEvaluation(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	rec, err := ec.evaluations.FindByUserID(c.Request.Context(), userID)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Evaluation not found", "No evaluation submitted yet")
		return
	}
	if err != nil {
		ec.logger.Error("failed to load evaluation", zap.String("user_id", userID.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to load evaluation", "Internal error")
		return
	}

	values, err := evaluation.FromRecord(rec)
	if err != nil {
		ec.logger.Error("failed to convert evaluation", zap.String("user_id", userID.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to load evaluation", "Internal error")
		return
	}

	respondSuccess(c, http.StatusOK, "Evaluation retrieved successfully", gin.H{
		"values":       values,
		"submitted_at": rec.UpdatedAt,
	})
}

// StartDraft godoc
// @Summary Start or resume the evaluation
// @Description Opens the evaluation draft. Requires a waitlist registration for the account email and no submitted evaluation.
// @Tags evaluation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Draft resumed"
// @Success 201 {object} map[string]interface{} "Draft created"
// @Failure 403 {object} map[string]interface{} "Not on waitlist"
// @Failure 409 {object} map[string]interface{} "Evaluation already submitted"
// @Router /evaluation/draft [post]
func (ec *EvaluationController) StartDraft(c *gin.Context) {
	userID, email, ok := currentUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if _, err := ec.waitlist.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusForbidden, "Not on waitlist", "not_on_waitlist")
			return
		}
		ec.internalError(c, "failed to look up waitlist entry", userID, err)
		return
	}

	exists, err := ec.evaluations.ExistsForUser(ctx, userID)
	if err != nil {
		ec.internalError(c, "failed to check evaluation", userID, err)
		return
	}
	if exists {
		respondError(c, http.StatusConflict, "Evaluation already submitted", "already_completed")
		return
	}

	form, found, err := ec.drafts.Load(ctx, userID)
	if err != nil {
		ec.internalError(c, "failed to load draft", userID, err)
		return
	}
	if found {
		respondSuccess(c, http.StatusOK, "Draft resumed", form.View())
		return
	}

	seed := evaluation.Values{}
	profile, err := ec.profiles.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		if profile.FirstName != nil {
			seed["first_name"] = *profile.FirstName
		}
		if profile.LastName != nil {
			seed["last_name"] = *profile.LastName
		}
	case !errors.Is(err, repository.ErrNotFound):
		ec.internalError(c, "failed to load profile", userID, err)
		return
	}

	form, err = evaluation.NewForm(userID, seed)
	if err != nil {
		ec.internalError(c, "failed to create draft", userID, err)
		return
	}
	if err := ec.drafts.Save(ctx, form); err != nil {
		ec.internalError(c, "failed to save draft", userID, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "Draft created", form.View())
}

// GetDraft godoc
// @Summary Get the evaluation draft
// @Tags evaluation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Draft retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Draft not found"
// @Router /evaluation/draft [get]
func (ec *EvaluationController) GetDraft(c *gin.Context) {
	_, form, ok := ec.loadDraft(c)
	if !ok {
		return
	}
	respondSuccess(c, http.StatusOK, "Draft retrieved successfully", form.View())
}

// UpdateDraft godoc
// @Summary Set evaluation answers
// @Description Applies a map of field name to value. A blank value clears the field.
// @Tags evaluation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param changes body map[string]interface{} true "Field values"
// @Success 200 {object} map[string]interface{} "Draft updated"
// @Failure 400 {object} map[string]interface{} "Unknown field"
// @Failure 409 {object} map[string]interface{} "Evaluation already submitted"
// @Failure 422 {object} map[string]interface{} "Invalid values"
// @Router /evaluation/draft [patch]
func (ec *EvaluationController) UpdateDraft(c *gin.Context) {
	var changes map[string]any
	if err := c.ShouldBindJSON(&changes); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	userID, form, ok := ec.loadDraft(c)
	if !ok {
		return
	}

	err := form.Apply(changes)
	var verrs evaluation.ValidationErrors
	switch {
	case errors.Is(err, evaluation.ErrUnknownField):
		respondError(c, http.StatusBadRequest, "Unknown field", err.Error())
		return
	case errors.Is(err, evaluation.ErrReadOnly):
		respondError(c, http.StatusConflict, "Evaluation already submitted", err.Error())
		return
	case err != nil && !errors.As(err, &verrs):
		ec.internalError(c, "failed to apply changes", userID, err)
		return
	}

	if !ec.saveDraft(c, form) {
		return
	}
	if len(verrs) > 0 {
		ec.respondInvalid(c, form, verrs)
		return
	}
	respondSuccess(c, http.StatusOK, "Draft updated", form.View())
}

// AdvanceDraft godoc
// @Summary Go to the next step
// @Description Validates the current step and moves forward when it passes.
// @Tags evaluation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Moved to next step"
// @Failure 409 {object} map[string]interface{} "Already on the last step"
// @Failure 422 {object} map[string]interface{} "Step has invalid fields"
// @Router /evaluation/draft/advance [post]
func (ec *EvaluationController) AdvanceDraft(c *gin.Context) {
	userID, form, ok := ec.loadDraft(c)
	if !ok {
		return
	}

	step := evaluation.StepName(form.Step)
	err := form.Advance()
	var verrs evaluation.ValidationErrors
	switch {
	case err == nil:
		ec.metrics.RecordStepTransition(step, "ok")
	case errors.As(err, &verrs):
		ec.metrics.RecordStepTransition(step, "invalid")
	case errors.Is(err, evaluation.ErrNoNextStep), errors.Is(err, evaluation.ErrReadOnly):
		respondError(c, http.StatusConflict, "Cannot advance", err.Error())
		return
	default:
		ec.internalError(c, "failed to advance", userID, err)
		return
	}

	if !ec.saveDraft(c, form) {
		return
	}
	if len(verrs) > 0 {
		ec.respondInvalid(c, form, verrs)
		return
	}
	respondSuccess(c, http.StatusOK, "Moved to next step", form.View())
}

// RetreatDraft godoc
// @Summary Go to the previous step
// @Tags evaluation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Moved to previous step"
// @Router /evaluation/draft/retreat [post]
func (ec *EvaluationController) RetreatDraft(c *gin.Context) {
	_, form, ok := ec.loadDraft(c)
	if !ok {
		return
	}

	form.Retreat()
	if !ec.saveDraft(c, form) {
		return
	}
	respondSuccess(c, http.StatusOK, "Moved to previous step", form.View())
}

// ClearSubsection godoc
// @Summary Answer "no" to a whole medical history subsection
// @Tags evaluation
// @Produce json
// @Security BearerAuth
// @Param name path string true "Subsection" Enums(neurological, cardiovascular, pulmonary, hepatic_gastric, hematological, other)
// @Success 200 {object} map[string]interface{} "Subsection cleared"
// @Failure 404 {object} map[string]interface{} "Unknown subsection"
// @Router /evaluation/draft/subsections/{name}/clear [post]
func (ec *EvaluationController) ClearSubsection(c *gin.Context) {
	userID, form, ok := ec.loadDraft(c)
	if !ok {
		return
	}

	err := form.ClearSubsection(c.Param("name"))
	var verrs evaluation.ValidationErrors
	switch {
	case errors.Is(err, evaluation.ErrUnknownSubsection):
		respondError(c, http.StatusNotFound, "Unknown subsection", err.Error())
		return
	case errors.Is(err, evaluation.ErrReadOnly):
		respondError(c, http.StatusConflict, "Evaluation already submitted", err.Error())
		return
	case err != nil && !errors.As(err, &verrs):
		ec.internalError(c, "failed to clear subsection", userID, err)
		return
	}

	if !ec.saveDraft(c, form) {
		return
	}
	if len(verrs) > 0 {
		ec.respondInvalid(c, form, verrs)
		return
	}
	respondSuccess(c, http.StatusOK, "Subsection cleared", form.View())
}

// SubmitDraft godoc
// @Summary Submit the evaluation
// @Description Validates every step and stores the evaluation. Only possible from the last step.
// @Tags evaluation
// @Produce json
// @Security BearerAuth
// @Success 201 {object} map[string]interface{} "Evaluation submitted"
// @Failure 409 {object} map[string]interface{} "Not on the last step or submission in progress"
// @Failure 422 {object} map[string]interface{} "Evaluation has invalid fields"
// @Failure 502 {object} map[string]interface{} "Evaluation could not be saved"
// @Router /evaluation/draft/submit [post]
func (ec *EvaluationController) SubmitDraft(c *gin.Context) {
	userID, form, ok := ec.loadDraft(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	locked, err := ec.drafts.AcquireSubmitLock(ctx, userID, ec.submitLockTTL)
	if err != nil {
		ec.internalError(c, "failed to acquire submit lock", userID, err)
		return
	}
	if !locked {
		respondError(c, http.StatusConflict, "Submission in progress", evaluation.ErrSubmissionInFlight.Error())
		return
	}
	defer func() {
		if err := ec.drafts.ReleaseSubmitLock(context.WithoutCancel(ctx), userID); err != nil {
			ec.logger.Warn("failed to release submit lock", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}()

	err = form.Submit(ctx, ec.evaluations)
	var verrs evaluation.ValidationErrors
	switch {
	case err == nil:
		ec.metrics.RecordSubmission("saved")
		if err := ec.drafts.Delete(ctx, userID); err != nil {
			ec.logger.Warn("failed to delete submitted draft", zap.String("user_id", userID.String()), zap.Error(err))
		}
		respondSuccess(c, http.StatusCreated, "Evaluation submitted", form.View())

	case errors.As(err, &verrs):
		ec.metrics.RecordSubmission("invalid")
		if ec.saveDraft(c, form) {
			ec.respondInvalid(c, form, verrs)
		}

	case errors.Is(err, evaluation.ErrSubmissionFailed):
		ec.metrics.RecordSubmission("failed")
		ec.logger.Error("failed to store evaluation", zap.String("user_id", userID.String()), zap.Error(err))
		if ec.saveDraft(c, form) {
			respondError(c, http.StatusBadGateway, form.SubmitError, "submission_failed")
		}

	case errors.Is(err, evaluation.ErrNotFinalStep),
		errors.Is(err, evaluation.ErrSubmissionInFlight),
		errors.Is(err, evaluation.ErrReadOnly):
		respondError(c, http.StatusConflict, "Cannot submit", err.Error())

	default:
		ec.internalError(c, "failed to submit evaluation", userID, err)
	}
}

func (ec *EvaluationController) loadDraft(c *gin.Context) (uuid.UUID, *evaluation.Form, bool) {
	userID, _, ok := currentUser(c)
	if !ok {
		return uuid.Nil, nil, false
	}

	form, found, err := ec.drafts.Load(c.Request.Context(), userID)
	if err != nil {
		ec.internalError(c, "failed to load draft", userID, err)
		return uuid.Nil, nil, false
	}
	if !found {
		respondError(c, http.StatusNotFound, "Draft not found", "Start the evaluation first")
		return uuid.Nil, nil, false
	}
	return userID, form, true
}

func (ec *EvaluationController) saveDraft(c *gin.Context, form *evaluation.Form) bool {
	if err := ec.drafts.Save(c.Request.Context(), form); err != nil {
		ec.internalError(c, "failed to save draft", form.UserID, err)
		return false
	}
	return true
}

func (ec *EvaluationController) respondInvalid(c *gin.Context, form *evaluation.Form, verrs evaluation.ValidationErrors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"status":  "error",
		"message": "Some answers need attention",
		"error":   "validation_failed",
		"fields":  verrs.ByField(),
		"data":    form.View(),
	})
}

func (ec *EvaluationController) internalError(c *gin.Context, msg string, userID uuid.UUID, err error) {
	ec.logger.Error(msg, zap.String("user_id", userID.String()), zap.Error(err))
	respondError(c, http.StatusInternalServerError, "Internal server error", "Please try again later")
}
