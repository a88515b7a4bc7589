package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"go-storefront/models"
	"go-storefront/utils"
)

// ContactController handles the contact form
type ContactController struct {
	EmailService *utils.EmailService
	Validate     *validator.Validate
	Logger       zerolog.Logger
}

// NewContactController creates a new ContactController
func NewContactController(emailService *utils.EmailService, validate *validator.Validate, logger zerolog.Logger) *ContactController {
	return &ContactController{
		EmailService: emailService,
		Validate:     validate,
		Logger:       logger,
	}
}

// SubmitContact emails a contact form submission to the shop
func (cc *ContactController) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var msg models.ContactMessage
	if err := decodeJSON(w, r, &msg); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := cc.Validate.Struct(msg); err != nil {
		http.Error(w, utils.ValidationMessage(err), http.StatusBadRequest)
		return
	}

	if err := cc.EmailService.SendContactMessage(r.Context(), msg); err != nil {
		cc.Logger.Error().Err(err).Str("email", msg.Email).Msg("contact message not sent")
		http.Error(w, "Could not send your message, please try again later", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"message": "Thank you, your message has been sent"})
}
