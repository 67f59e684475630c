package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vrajamarii/internal/models"
	"vrajamarii/internal/repository"
)

type WaitlistRequest struct {
	FirstName      string   `json:"firstName" binding:"required" example:"Ana"`
	LastName       string   `json:"lastName" binding:"required" example:"Pop"`
	Email          string   `json:"email" binding:"required,email" example:"ana@example.com"`
	Phone          string   `json:"phone" example:"0722000000"`
	AgeInterval    string   `json:"ageInterval" binding:"required" example:"25-34"`
	PreferredMonth string   `json:"preferredMonth" binding:"required" example:"june"`
	SelectedOffers []string `json:"selectedOffers" binding:"required,min=1,dive,required"`
	GDPRConsent    bool     `json:"gdprConsent" binding:"required"`
}

type WaitlistController struct {
	repo   repository.WaitlistRepository
	logger *zap.Logger
}

func NewWaitlistController(repo repository.WaitlistRepository, logger *zap.Logger) *WaitlistController {
	return &WaitlistController{repo: repo, logger: logger}
}

// JoinWaitlist godoc
// @Summary Join the waitlist
// @Tags waitlist
// @Accept json
// @Produce json
// @Param request body WaitlistRequest true "Registration"
// @Success 201 {object} map[string]interface{} "Registered"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 409 {object} map[string]interface{} "Email already registered"
// @Failure 500 {object} map[string]interface{} "Registration failed"
// @Router /waitlist [post]
func (wc *WaitlistController) JoinWaitlist(c *gin.Context) {
	var req WaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}
	ctx := c.Request.Context()

	_, err := wc.repo.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		respondError(c, http.StatusConflict, "Email already registered", "already_registered")
		return
	case !errors.Is(err, repository.ErrNotFound):
		wc.logger.Error("failed to look up waitlist entry", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Registration failed", "generic")
		return
	}

	entry := &models.WaitlistEntry{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          req.Email,
		AgeInterval:    req.AgeInterval,
		PreferredMonth: req.PreferredMonth,
		SelectedOffers: req.SelectedOffers,
		GDPRConsent:    req.GDPRConsent,
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		entry.Phone = &phone
	}

	if err := wc.repo.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			respondError(c, http.StatusConflict, "Email already registered", "already_registered")
			return
		}
		wc.logger.Error("failed to create waitlist entry", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Registration failed", "generic")
		return
	}

	respondSuccess(c, http.StatusCreated, "Registered on the waitlist", entry)
}
