package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/milaanpub/bookhouse-api/initializers"
	"github.com/milaanpub/bookhouse-api/models"
	"github.com/milaanpub/bookhouse-api/utils"
	"gorm.io/gorm"
)

// CreateEventCategory creates an event category with an uploaded image.
func CreateEventCategory(ctx *gin.Context) {
	title := ctx.PostForm("title")
	description := ctx.PostForm("description")
	file, err := ctx.FormFile("image")
	if title == "" || description == "" || err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "All fields are required")
		return
	}

	imageURL, err := utils.UploadFile(ctx.Request.Context(), file, "event-categories")
	if err != nil {
		log.Println("Image upload error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	category := models.EventCategory{Title: title, Description: description, Image: imageURL}
	if result := initializers.DB.Create(&category); result.Error != nil {
		log.Println("Event category creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create event category")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Event category created successfully",
		"data":    category,
	})
}

// GetEventCategories lists all event categories.
func GetEventCategories(ctx *gin.Context) {
	var categories []models.EventCategory
	if result := initializers.DB.Find(&categories); result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "data": categories})
}

// UpdateEventCategory edits a category; the image is replaced only when
// a new file is attached.
func UpdateEventCategory(ctx *gin.Context) {
	categoryID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse categoryId")
		return
	}

	var category models.EventCategory
	if result := initializers.DB.First(&category, categoryID); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Event category not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	if title := ctx.PostForm("title"); title != "" {
		category.Title = title
	}
	if description := ctx.PostForm("description"); description != "" {
		category.Description = description
	}
	if file, err := ctx.FormFile("image"); err == nil {
		imageURL, err := utils.UploadFile(ctx.Request.Context(), file, "event-categories")
		if err != nil {
			log.Println("Image upload error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to upload image")
			return
		}
		category.Image = imageURL
	}

	if result := initializers.DB.Save(&category); result.Error != nil {
		log.Println("Event category update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update event category")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Event category updated successfully",
		"data":    category,
	})
}

// DeleteEventCategory removes a category.
func DeleteEventCategory(ctx *gin.Context) {
	categoryID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse categoryId")
		return
	}

	var category models.EventCategory
	if result := initializers.DB.First(&category, categoryID); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Event category not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	if result := initializers.DB.Delete(&category); result.Error != nil {
		log.Println("Event category delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "message": "Event category deleted successfully"})
}

// GetEventsOfCategory returns a category's events grouped into
// upcoming, live and past buckets.
func GetEventsOfCategory(ctx *gin.Context) {
	categoryID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse categoryId")
		return
	}

	var category models.EventCategory
	if result := initializers.DB.First(&category, categoryID); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Event category not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	var events []models.Event
	result := initializers.DB.Where("category_id = ?", categoryID).
		Order("start_date asc").
		Find(&events)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	upcoming := make([]models.Event, 0)
	live := make([]models.Event, 0)
	past := make([]models.Event, 0)
	for _, event := range events {
		switch event.Bucket {
		case models.BucketLive:
			live = append(live, event)
		case models.BucketPast:
			past = append(past, event)
		default:
			upcoming = append(upcoming, event)
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status": "Success",
		"data": gin.H{
			"category":       category,
			"upcomingEvents": upcoming,
			"liveEvents":     live,
			"pastEvents":     past,
		},
	})
}
