package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/milaanpub/bookhouse-api/initializers"
	"github.com/milaanpub/bookhouse-api/models"
	"github.com/milaanpub/bookhouse-api/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func parseEventDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func fetchEvent(ctx *gin.Context, eventID int) (models.Event, bool) {
	var event models.Event
	if result := initializers.DB.First(&event, eventID); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Event not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return models.Event{}, false
	}
	return event, true
}

// CreateEvent creates an event with an uploaded banner. New events
// always land in the upcoming bucket.
func CreateEvent(ctx *gin.Context) {
	title := ctx.PostForm("title")
	description := ctx.PostForm("description")
	categoryStr := ctx.PostForm("category")
	startDateStr := ctx.PostForm("startDate")
	endDateStr := ctx.PostForm("endDate")
	file, fileErr := ctx.FormFile("image")

	if title == "" || description == "" || categoryStr == "" ||
		startDateStr == "" || endDateStr == "" || fileErr != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "All fields are required")
		return
	}

	categoryID, err := strconv.Atoi(categoryStr)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse category")
		return
	}

	startDate, err := parseEventDate(startDateStr)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse startDate")
		return
	}
	endDate, err := parseEventDate(endDateStr)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse endDate")
		return
	}

	if err := models.ValidateEventWindow(startDate, endDate, time.Now()); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
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

	imageURL, err := utils.UploadFile(ctx.Request.Context(), file, "events")
	if err != nil {
		log.Println("Image upload error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	event := models.Event{
		Title:       title,
		Image:       imageURL,
		Description: description,
		IsLive:      false,
		CategoryID:  uint(categoryID),
		StartDate:   startDate,
		EndDate:     endDate,
		Bucket:      models.BucketUpcoming,
	}
	if result := initializers.DB.Create(&event); result.Error != nil {
		log.Println("Event creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create event")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Event created successfully",
		"data":    event,
	})
}

// GetAllEvents lists every event, newest first.
func GetAllEvents(ctx *gin.Context) {
	var events []models.Event
	if result := initializers.DB.Order("created_at desc").Find(&events); result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "data": events})
}

// GetSingleEvent returns one event; once the event is no longer live
// the leaderboard rides along when it exists.
func GetSingleEvent(ctx *gin.Context) {
	eventID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse eventId")
		return
	}

	event, ok := fetchEvent(ctx, eventID)
	if !ok {
		return
	}

	data := gin.H{"event": event}
	if !event.IsLive {
		var leaderboard models.EventLeaderboard
		result := initializers.DB.Where("event_id = ?", event.ID).First(&leaderboard)
		if result.Error == nil {
			data["leaderboard"] = leaderboard
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Println("Database error:", result.Error)
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "data": data})
}

// UpdateEvent edits an event and reclassifies it from the submitted
// live flag. Going live requires a registration form to exist first.
func UpdateEvent(ctx *gin.Context) {
	eventID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse eventId")
		return
	}

	event, ok := fetchEvent(ctx, eventID)
	if !ok {
		return
	}

	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		IsLive      bool   `json:"isLive"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if body.IsLive {
		var count int64
		if err := initializers.DB.Model(&models.EventRegistrationForm{}).
			Where("event_id = ?", event.ID).
			Count(&count).Error; err != nil {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		if count == 0 {
			sendErrorResponse(ctx, http.StatusBadRequest, "Please create registration form")
			return
		}
	}

	if body.Title != "" {
		event.Title = body.Title
	}
	if body.Description != "" {
		event.Description = body.Description
	}
	event.IsLive = body.IsLive
	event.Bucket = models.ClassifyEvent(body.IsLive)

	if result := initializers.DB.Save(&event); result.Error != nil {
		log.Println("Event update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update event")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Event updated successfully",
		"data":    event,
	})
}

// UpsertRegistrationForm creates or replaces the registration form of
// an event. Every field needs a label, name and type.
func UpsertRegistrationForm(ctx *gin.Context) {
	eventID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse eventId")
		return
	}

	event, ok := fetchEvent(ctx, eventID)
	if !ok {
		return
	}

	var body struct {
		FormFields []models.FormField `json:"formFields"`
	}
	// An empty list is a valid form; only a missing or non-list value
	// is rejected.
	if err := ctx.ShouldBindJSON(&body); err != nil || body.FormFields == nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid form fields.")
		return
	}
	for _, field := range body.FormFields {
		if field.Label == "" || field.Name == "" || field.Type == "" {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid form fields.")
			return
		}
	}

	raw, err := json.Marshal(body.FormFields)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var form models.EventRegistrationForm
	result := initializers.DB.Where("event_id = ?", event.ID).First(&form)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		form = models.EventRegistrationForm{EventID: event.ID, FormFields: datatypes.JSON(raw)}
		if result := initializers.DB.Create(&form); result.Error != nil {
			log.Println("Form creation error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save registration form")
			return
		}
	} else {
		form.FormFields = datatypes.JSON(raw)
		if result := initializers.DB.Save(&form); result.Error != nil {
			log.Println("Form update error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save registration form")
			return
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Registration form saved successfully",
		"data":    form,
	})
}

// GetRegistrationForm returns the form fields of an event.
func GetRegistrationForm(ctx *gin.Context) {
	eventID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse eventId")
		return
	}

	var form models.EventRegistrationForm
	if result := initializers.DB.Where("event_id = ?", eventID).First(&form); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Form not found for this event")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "data": form})
}

// RegisterForEvent stores a registration payload against an event. The
// payload is checked against the form's required fields only.
func RegisterForEvent(ctx *gin.Context) {
	eventID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse eventId")
		return
	}

	event, ok := fetchEvent(ctx, eventID)
	if !ok {
		return
	}

	var payload map[string]any
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var form models.EventRegistrationForm
	if result := initializers.DB.Where("event_id = ?", event.ID).First(&form); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Form not found for this event")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	fields, err := form.Fields()
	if err != nil {
		log.Println("Form decode error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if missing := models.MissingRequiredFields(fields, payload); len(missing) > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	registration := models.EventRegistration{EventID: event.ID, FormData: datatypes.JSON(raw)}
	if result := initializers.DB.Create(&registration); result.Error != nil {
		log.Println("Registration error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to register for event")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Registered for event successfully",
	})
}

// GetEventRegistrations lists the registrations of an event.
func GetEventRegistrations(ctx *gin.Context) {
	eventID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse eventId")
		return
	}

	var registrations []models.EventRegistration
	result := initializers.DB.Where("event_id = ?", eventID).
		Order("created_at desc").
		Find(&registrations)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "data": registrations})
}

// CreateLeaderboard records the final standings of an ended event. The
// unique index on event_id rejects a second leaderboard.
func CreateLeaderboard(ctx *gin.Context) {
	eventID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse eventId")
		return
	}

	event, ok := fetchEvent(ctx, eventID)
	if !ok {
		return
	}

	if !event.Ended(time.Now()) {
		sendErrorResponse(ctx, http.StatusBadRequest, models.ErrLeaderboardEarly.Error())
		return
	}

	var body struct {
		Entries []models.LeaderboardEntry `json:"entries"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || len(body.Entries) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	raw, err := json.Marshal(body.Entries)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	leaderboard := models.EventLeaderboard{EventID: event.ID, Entries: datatypes.JSON(raw)}
	if result := initializers.DB.Create(&leaderboard); result.Error != nil {
		log.Println("Leaderboard creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create leaderboard")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Leaderboard created successfully",
		"data":    leaderboard,
	})
}
