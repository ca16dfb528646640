package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobdesk-dev/jobdesk/internal/mailer"
)

// Mail relays contact-form messages; nil when SMTP is not configured.
var Mail *mailer.Mailer

type ContactRequest struct {
	Email   string `form:"email" json:"email" binding:"required,email"`
	Subject string `form:"subject" json:"subject" binding:"required"`
	Message string `form:"message" json:"message" binding:"required"`
}

func ContactForm(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"title":  "Contact",
		"layout": "guest",
	})
}

func Contact(ctx *gin.Context) {
	var req ContactRequest

	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"alert":      "Please provide a valid email, a subject and a message.",
			"alert_type": "danger",
		})
		return
	}

	if Mail == nil {
		log.Printf("Contact message dropped: mailer is not configured")
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"alert":      "An error occurred while sending your message. Please try again later.",
			"alert_type": "danger",
		})
		return
	}

	if err := Mail.SendContactMessage(req.Email, req.Subject, req.Message); err != nil {
		log.Printf("Failed to send contact message: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"alert":      "An error occurred while sending your message. Please try again later.",
			"alert_type": "danger",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"alert":      "Your message has been sent successfully!",
		"alert_type": "success",
	})
}
