package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/milaanpub/bookhouse-api/initializers"
	"github.com/milaanpub/bookhouse-api/models"
	"github.com/milaanpub/bookhouse-api/utils"
)

// AddCategory creates a book category with an uploaded cover image.
// Titles are unique case-insensitively.
func AddCategory(ctx *gin.Context) {
	title := ctx.PostForm("title")
	file, err := ctx.FormFile("image")
	if title == "" || err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "All fields are required")
		return
	}

	exists, dbErr := categoryExists(title)
	if dbErr != nil {
		log.Println("Database error:", dbErr)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if exists {
		sendErrorResponse(ctx, http.StatusBadRequest, "Category with this name already exists")
		return
	}

	imageURL, err := utils.UploadFile(ctx.Request.Context(), file, "categories")
	if err != nil {
		log.Println("Image upload error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	category := models.Category{Title: title, Image: imageURL}
	if result := initializers.DB.Create(&category); result.Error != nil {
		log.Println("Category creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create category")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Category created successfully",
		"data":    category,
	})
}

// GetCategories lists all book categories.
func GetCategories(ctx *gin.Context) {
	var categories []models.Category
	if result := initializers.DB.Find(&categories); result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "data": categories})
}
