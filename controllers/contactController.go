package controllers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/milaanpub/bookhouse-api/models"
	"github.com/milaanpub/bookhouse-api/utils"
)

// Contact forwards a visitor message to the operator mailbox. The email
// is the whole point of the request, so a send failure fails it.
func Contact(ctx *gin.Context) {
	var body struct {
		Name    string `json:"name"`
		Mobile  string `json:"mobile"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if body.Name == "" || body.Mobile == "" || body.Email == "" || body.Message == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "All fields are required")
		return
	}

	data := utils.EmailData{
		Name:    body.Name,
		Message: body.Message,
		Details: []utils.EmailDetail{
			{Label: "Name", Value: body.Name},
			{Label: "Mobile", Value: body.Mobile},
			{Label: "Email", Value: body.Email},
		},
	}
	if err := utils.SendEmail(os.Getenv("OPERATOR_EMAIL"), "Contact Us: "+body.Name,
		data, filepath.Join("templates", "contact_us.html")); err != nil {
		log.Println("Error sending contact email:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to send email.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "message": "Message sent successfully"})
}

// SendPackageInquiry mails a publishing package inquiry to the
// operator.
func SendPackageInquiry(ctx *gin.Context) {
	var body struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		MobileNo    string `json:"mobileNo"`
		AboutBook   string `json:"aboutBook"`
		PackageName string `json:"packageName"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if body.Name == "" || body.Email == "" || body.MobileNo == "" ||
		body.AboutBook == "" || body.PackageName == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "All fields are required")
		return
	}
	if !emailPattern.MatchString(body.Email) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidEmail)
		return
	}
	if !models.ValidPhone(body.MobileNo) {
		sendErrorResponse(ctx, http.StatusBadRequest, models.ErrInvalidPhone.Error())
		return
	}

	data := utils.EmailData{
		Name:    body.Name,
		Message: "A new package inquiry has been submitted.",
		Details: []utils.EmailDetail{
			{Label: "Name", Value: body.Name},
			{Label: "Email", Value: body.Email},
			{Label: "Mobile", Value: body.MobileNo},
			{Label: "About the Book", Value: body.AboutBook},
			{Label: "Package", Value: body.PackageName},
		},
	}
	if err := utils.SendEmail(os.Getenv("OPERATOR_EMAIL"), "Package Inquiry: "+body.PackageName,
		data, filepath.Join("templates", "package_inquiry.html")); err != nil {
		log.Println("Error sending inquiry email:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to send email.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "message": "Inquiry sent successfully"})
}
