package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vrajamarii/internal/mail"
	"vrajamarii/internal/metrics"
	"vrajamarii/internal/repository"
)

// BookingWebhookRequest documents the payload the booking system posts.
type BookingWebhookRequest struct {
	Email     string `json:"email" example:"ana@example.com"`
	Confirmed bool   `json:"confirmed" example:"true"`
}

type WebhookController struct {
	waitlist repository.WaitlistRepository
	mailer   mail.Mailer
	metrics  *metrics.Collector
	logger   *zap.Logger
	from     string
	siteURL  string
}

func NewWebhookController(
	waitlist repository.WaitlistRepository,
	mailer mail.Mailer,
	metrics *metrics.Collector,
	logger *zap.Logger,
	from, siteURL string,
) *WebhookController {
	return &WebhookController{
		waitlist: waitlist,
		mailer:   mailer,
		metrics:  metrics,
		logger:   logger,
		from:     from,
		siteURL:  strings.TrimRight(siteURL, "/"),
	}
}

// BookingStatus godoc
// @Summary Booking status webhook
// @Description Called by the booking system when a waitlist booking is confirmed or cancelled. Sends the booking confirmation email on confirmation.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param x-api-key header string true "Shared webhook secret"
// @Param request body BookingWebhookRequest true "Booking status"
// @Success 200 {object} map[string]interface{} "Booking status updated"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Waitlist entry not found"
// @Failure 500 {object} map[string]interface{} "Failed to update booking status"
// @Router /api/webhooks/bitmanager [post]
func (wc *WebhookController) BookingStatus(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		wc.metrics.RecordWebhookEvent("bad_request")
		respondError(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	// Wrong types count as missing.
	email, emailOK := body["email"].(string)
	confirmed, confirmedOK := body["confirmed"].(bool)
	if !emailOK || strings.TrimSpace(email) == "" || !confirmedOK {
		wc.metrics.RecordWebhookEvent("bad_request")
		respondError(c, http.StatusBadRequest, "Missing required fields: email (string), confirmed (boolean)", "invalid_payload")
		return
	}
	ctx := c.Request.Context()

	entry, err := wc.waitlist.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			wc.logger.Error("failed to look up waitlist entry", zap.Error(err))
		}
		wc.metrics.RecordWebhookEvent("not_found")
		respondError(c, http.StatusNotFound, "Waitlist entry not found", "not_found")
		return
	}

	if err := wc.waitlist.SetBookingConfirmed(ctx, entry.ID, confirmed); err != nil {
		wc.logger.Error("failed to update booking status", zap.Uint("waitlist_id", entry.ID), zap.Error(err))
		wc.metrics.RecordWebhookEvent("error")
		respondError(c, http.StatusInternalServerError, "Failed to update booking status", "update_failed")
		return
	}

	if confirmed {
		wc.sendBookingConfirmed(ctx, entry.Email, entry.FirstName)
		wc.metrics.RecordWebhookEvent("confirmed")
	} else {
		wc.metrics.RecordWebhookEvent("unconfirmed")
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Booking status updated",
		"success": true,
	})
}

// sendBookingConfirmed never fails the webhook: the booking is already
// recorded, so delivery problems are only logged.
func (wc *WebhookController) sendBookingConfirmed(ctx context.Context, to, firstName string) {
	subject, html, text, err := mail.BookingConfirmed("ro", firstName, wc.siteURL+"/evaluation")
	if err != nil {
		wc.logger.Error("failed to render confirmation email", zap.Error(err))
		wc.metrics.RecordEmail(mail.TemplateBookingConfirmed, "failed")
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
	defer cancel()

	err = wc.mailer.Send(ctx, mail.Message{
		From:    wc.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		wc.logger.Error("failed to send confirmation email", zap.String("to", to), zap.Error(err))
		wc.metrics.RecordEmail(mail.TemplateBookingConfirmed, "failed")
		return
	}
	wc.metrics.RecordEmail(mail.TemplateBookingConfirmed, "sent")
}
