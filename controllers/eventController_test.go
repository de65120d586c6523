package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/milaanpub/bookhouse-api/models"
	"github.com/stretchr/testify/assert"
)

func eventColumns() []string {
	return []string{"id", "title", "image", "description", "is_live", "category_id", "start_date", "end_date", "bucket"}
}

func TestUpdateEventRequiresFormBeforeGoingLive(t *testing.T) {
	mock := setupMockDB(t)
	start := time.Now().Add(24 * time.Hour)
	end := start.Add(48 * time.Hour)
	eventRows := sqlmock.NewRows(eventColumns()).
		AddRow(3, "Poetry Slam", "img", "desc", false, 1, start, end, string(models.BucketUpcoming))
	mock.ExpectQuery("SELECT (.+) FROM `events`").WillReturnRows(eventRows)
	mock.ExpectQuery("SELECT count(.+) FROM `event_registration_forms`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	ctx, w := newTestContext(t, http.MethodPut, "/event/3", gin.H{
		"title":  "Poetry Slam",
		"isLive": true,
	})
	ctx.Params = gin.Params{{Key: "id", Value: "3"}}

	UpdateEvent(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please create registration form", responseMessage(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEventReclassifiesFromLiveFlag(t *testing.T) {
	mock := setupMockDB(t)
	start := time.Now().Add(24 * time.Hour)
	end := start.Add(48 * time.Hour)
	eventRows := sqlmock.NewRows(eventColumns()).
		AddRow(3, "Poetry Slam", "img", "desc", true, 1, start, end, string(models.BucketLive))
	mock.ExpectQuery("SELECT (.+) FROM `events`").WillReturnRows(eventRows)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `events` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Taking a live event off air drops it into the past bucket.
	ctx, w := newTestContext(t, http.MethodPut, "/event/3", gin.H{
		"isLive": false,
	})
	ctx.Params = gin.Params{{Key: "id", Value: "3"}}

	UpdateEvent(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(models.BucketPast))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateLeaderboardBeforeEventEnds(t *testing.T) {
	mock := setupMockDB(t)
	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)
	eventRows := sqlmock.NewRows(eventColumns()).
		AddRow(3, "Poetry Slam", "img", "desc", true, 1, start, end, string(models.BucketLive))
	mock.ExpectQuery("SELECT (.+) FROM `events`").WillReturnRows(eventRows)

	ctx, w := newTestContext(t, http.MethodPost, "/event/3/leaderboard", gin.H{
		"entries": []gin.H{{"name": "Asha", "score": 98}},
	})
	ctx.Params = gin.Params{{Key: "id", Value: "3"}}

	CreateLeaderboard(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrLeaderboardEarly.Error(), responseMessage(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateLeaderboardMissingEvent(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM `events`").
		WillReturnRows(sqlmock.NewRows(eventColumns()))

	ctx, w := newTestContext(t, http.MethodPost, "/event/9/leaderboard", nil)
	ctx.Params = gin.Params{{Key: "id", Value: "9"}}

	CreateLeaderboard(ctx)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Event not found", responseMessage(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRegistrationFormMissing(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM `event_registration_forms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "form_fields"}))

	ctx, w := newTestContext(t, http.MethodGet, "/event/3/form", nil)
	ctx.Params = gin.Params{{Key: "id", Value: "3"}}

	GetRegistrationForm(ctx)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Form not found for this event", responseMessage(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterForEventMissingRequiredField(t *testing.T) {
	mock := setupMockDB(t)
	start := time.Now().Add(-48 * time.Hour)
	end := time.Now().Add(48 * time.Hour)
	eventRows := sqlmock.NewRows(eventColumns()).
		AddRow(3, "Poetry Slam", "img", "desc", true, 1, start, end, string(models.BucketLive))
	mock.ExpectQuery("SELECT (.+) FROM `events`").WillReturnRows(eventRows)
	formRows := sqlmock.NewRows([]string{"id", "event_id", "form_fields"}).
		AddRow(1, 3, `[{"label":"Full Name","name":"fullName","type":"text","required":true}]`)
	mock.ExpectQuery("SELECT (.+) FROM `event_registration_forms`").WillReturnRows(formRows)

	ctx, w := newTestContext(t, http.MethodPost, "/event/3/register", gin.H{
		"email": "asha@example.com",
	})
	ctx.Params = gin.Params{{Key: "id", Value: "3"}}

	RegisterForEvent(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields: fullName", responseMessage(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertRegistrationFormAcceptsEmptyList(t *testing.T) {
	mock := setupMockDB(t)
	start := time.Now().Add(24 * time.Hour)
	end := start.Add(48 * time.Hour)
	eventRows := sqlmock.NewRows(eventColumns()).
		AddRow(3, "Poetry Slam", "img", "desc", false, 1, start, end, string(models.BucketUpcoming))
	mock.ExpectQuery("SELECT (.+) FROM `events`").WillReturnRows(eventRows)
	mock.ExpectQuery("SELECT (.+) FROM `event_registration_forms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "form_fields"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `event_registration_forms`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	ctx, w := newTestContext(t, http.MethodPost, "/event/3/form", gin.H{
		"formFields": []gin.H{},
	})
	ctx.Params = gin.Params{{Key: "id", Value: "3"}}

	UpsertRegistrationForm(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Registration form saved successfully", responseMessage(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertRegistrationFormRejectsIncompleteFields(t *testing.T) {
	mock := setupMockDB(t)
	start := time.Now().Add(24 * time.Hour)
	end := start.Add(48 * time.Hour)
	eventRows := sqlmock.NewRows(eventColumns()).
		AddRow(3, "Poetry Slam", "img", "desc", false, 1, start, end, string(models.BucketUpcoming))
	mock.ExpectQuery("SELECT (.+) FROM `events`").WillReturnRows(eventRows)

	ctx, w := newTestContext(t, http.MethodPost, "/event/3/form", gin.H{
		"formFields": []gin.H{{"label": "Full Name", "type": "text"}},
	})
	ctx.Params = gin.Params{{Key: "id", Value: "3"}}

	UpsertRegistrationForm(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid form fields.", responseMessage(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}
