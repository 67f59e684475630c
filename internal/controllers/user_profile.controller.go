package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vrajamarii/internal/evaluation"
	"vrajamarii/internal/models"
	"vrajamarii/internal/repository"
)

// Waitlist status of an account, as shown on the profile page.
const (
	WaitlistNone      = "none"
	WaitlistPending   = "pending"
	WaitlistConfirmed = "confirmed"
	WaitlistEvaluated = "evaluated"
)

// WaitlistStatus derives the status from the account's waitlist entry (nil
// when not registered) and whether an evaluation was submitted.
func WaitlistStatus(entry *models.WaitlistEntry, evaluated bool) string {
	switch {
	case entry == nil:
		return WaitlistNone
	case evaluated:
		return WaitlistEvaluated
	case entry.BookingConfirmed:
		return WaitlistConfirmed
	default:
		return WaitlistPending
	}
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" example:"Ana"`
	LastName  string `json:"last_name" example:"Pop"`
	Phone     string `json:"phone" example:"0722000000"`
	County    string `json:"county" example:"Constanta"`
	City      string `json:"city" example:"Mangalia"`
}

type UserProfileController struct {
	profiles    repository.UserProfileRepository
	waitlist    repository.WaitlistRepository
	evaluations repository.EvaluationRepository
	logger      *zap.Logger
}

func NewUserProfileController(
	profiles repository.UserProfileRepository,
	waitlist repository.WaitlistRepository,
	evaluations repository.EvaluationRepository,
	logger *zap.Logger,
) *UserProfileController {
	return &UserProfileController{
		profiles:    profiles,
		waitlist:    waitlist,
		evaluations: evaluations,
		logger:      logger,
	}
}

// GetUserProfile godoc
// @Summary Get user profile
// @Description Retrieve the authenticated user's profile, waitlist status and evaluation summary
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "User profile retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /profile [get]
func (pc *UserProfileController) GetUserProfile(c *gin.Context) {
	userID, email, ok := currentUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	profile, err := pc.profiles.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		profile, err = &models.UserProfile{ID: userID}, nil
	}
	if err != nil {
		pc.fail(c, "failed to load profile", err)
		return
	}

	entry, err := pc.waitlist.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		entry, err = nil, nil
	}
	if err != nil {
		pc.fail(c, "failed to load waitlist entry", err)
		return
	}

	var summary evaluation.Values
	rec, err := pc.evaluations.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		if summary, err = evaluation.FromRecord(rec); err != nil {
			pc.fail(c, "failed to convert evaluation", err)
			return
		}
	case !errors.Is(err, repository.ErrNotFound):
		pc.fail(c, "failed to load evaluation", err)
		return
	}

	respondSuccess(c, http.StatusOK, "User profile retrieved successfully", gin.H{
		"profile":         profile,
		"email":           email,
		"waitlist_status": WaitlistStatus(entry, rec != nil),
		"evaluation":      summary,
	})
}

// UpdateUserProfile godoc
// @Summary Update user profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateProfileRequest true "Profile data"
// @Success 200 {object} map[string]interface{} "Profile updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Failed to update profile"
// @Router /profile [put]
func (pc *UserProfileController) UpdateUserProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	profile := &models.UserProfile{
		ID:        userID,
		FirstName: optional(req.FirstName),
		LastName:  optional(req.LastName),
		Phone:     optional(req.Phone),
		County:    optional(req.County),
		City:      optional(req.City),
	}
	if err := pc.profiles.Upsert(c.Request.Context(), profile); err != nil {
		pc.logger.Error("failed to update profile", zap.String("user_id", userID.String()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to update profile", "Please try again later")
		return
	}

	respondSuccess(c, http.StatusOK, "Profile updated successfully", profile)
}

func (pc *UserProfileController) fail(c *gin.Context, msg string, err error) {
	pc.logger.Error(msg, zap.Error(err))
	respondError(c, http.StatusInternalServerError, "Failed to load profile", "Please try again later")
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
