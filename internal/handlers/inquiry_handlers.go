package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trendovo/trendovo-golang/internal/mail"
)

type InquiryInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// SubmitInquiry is the public handler for POST /v1/inquiry.
// Forwards the contact form to the shop inbox.
func (h *Handlers) SubmitInquiry(c *gin.Context) {
	var input InquiryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subject, body := mail.InquiryMessage(input.Name, input.Email, input.Message)
	if err := h.Mailer.Send(h.Cfg.InquiryRecipient, subject, body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send inquiry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Inquiry sent"})
}
