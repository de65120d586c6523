package controllers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/milaanpub/bookhouse-api/cache"
	"github.com/milaanpub/bookhouse-api/models"
	"github.com/milaanpub/bookhouse-api/utils"
)

// Pending submissions live in memory until payment is verified; an
// entry not verified within a day is swept away.
var submissions = cache.NewSubmissionStore(24*time.Hour, time.Hour)

// SubmitPoetry uploads a poetry manuscript and parks the submission
// until its payment is verified.
func SubmitPoetry(ctx *gin.Context) {
	fullName := ctx.PostForm("fullName")
	email := ctx.PostForm("email")
	phoneNumber := ctx.PostForm("phoneNumber")
	language := ctx.PostForm("language")
	file, fileErr := ctx.FormFile("pdf")

	if fullName == "" || email == "" || phoneNumber == "" || language == "" || fileErr != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "All fields are required")
		return
	}
	if !emailPattern.MatchString(email) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidEmail)
		return
	}
	if !models.ValidPhone(phoneNumber) {
		sendErrorResponse(ctx, http.StatusBadRequest, models.ErrInvalidPhone.Error())
		return
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		sendErrorResponse(ctx, http.StatusBadRequest, "Only PDF files are accepted")
		return
	}

	pdfURL, err := utils.UploadFile(ctx.Request.Context(), file, "poetry")
	if err != nil {
		log.Println("PDF upload error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	submissionID := uuid.NewString()
	submissions.Put(submissionID, cache.Submission{
		FullName:    fullName,
		Email:       email,
		PhoneNumber: phoneNumber,
		Language:    language,
		PDFURL:      pdfURL,
	})

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":       "Success",
		"message":      "Submission received. Please complete the payment to finish.",
		"submissionId": submissionID,
	})
}

// VerifyPayment attaches a payment screenshot to a pending submission
// and mails both sides. Both emails must go out before the entry is
// dropped from the cache.
func VerifyPayment(ctx *gin.Context) {
	submissionID := ctx.PostForm("submissionId")
	transactionID := ctx.PostForm("transactionId")
	file, fileErr := ctx.FormFile("screenshot")
	if submissionID == "" || fileErr != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "All fields are required")
		return
	}

	submission, found := submissions.Get(submissionID)
	if !found {
		sendErrorResponse(ctx, http.StatusNotFound, "Submission not found or expired")
		return
	}

	screenshotURL, err := utils.UploadFile(ctx.Request.Context(), file, "poetry-payments")
	if err != nil {
		log.Println("Screenshot upload error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	adminData := utils.EmailData{
		Name:    submission.FullName,
		Message: "A poetry submission payment has been verified.",
		Details: []utils.EmailDetail{
			{Label: "Name", Value: submission.FullName},
			{Label: "Email", Value: submission.Email},
			{Label: "Phone", Value: submission.PhoneNumber},
			{Label: "Language", Value: submission.Language},
			{Label: "Manuscript", Value: submission.PDFURL},
			{Label: "Payment Screenshot", Value: screenshotURL},
		},
	}
	if transactionID != "" {
		adminData.Details = append(adminData.Details,
			utils.EmailDetail{Label: "Transaction ID", Value: transactionID})
	}
	if err := utils.SendEmail(os.Getenv("OPERATOR_EMAIL"), "New Poetry Submission",
		adminData, filepath.Join("templates", "poetry_submission_admin.html")); err != nil {
		log.Println("Error sending submission email:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to send email.")
		return
	}

	submitterData := utils.EmailData{
		Name:    submission.FullName,
		Message: "We have received your poetry submission and payment. Our team will get back to you soon.",
	}
	if err := utils.SendEmail(submission.Email, "Poetry Submission Received",
		submitterData, filepath.Join("templates", "poetry_received.html")); err != nil {
		log.Println("Error sending acknowledgement email:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to send email.")
		return
	}

	submissions.Delete(submissionID)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Payment verified. Submission completed.",
	})
}
