package controllers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSignupRejectsShortUsername(t *testing.T) {
	ctx, w := newTestContext(t, http.MethodPost, "/signup", gin.H{
		"username": "ab",
		"email":    "ab@example.com",
		"password": "secret1",
	})

	Signup(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgUsernameTooShort, responseMessage(t, w))
}

func TestSignupRejectsInvalidEmail(t *testing.T) {
	ctx, w := newTestContext(t, http.MethodPost, "/signup", gin.H{
		"username": "asha",
		"email":    "not-an-email",
		"password": "secret1",
	})

	Signup(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgInvalidEmail, responseMessage(t, w))
}

func TestSignupRejectsShortPassword(t *testing.T) {
	ctx, w := newTestContext(t, http.MethodPost, "/signup", gin.H{
		"username": "asha",
		"email":    "asha@example.com",
		"password": "short",
	})

	Signup(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgPasswordTooShort, responseMessage(t, w))
}

func TestSignupRejectsTakenUsername(t *testing.T) {
	mock := setupMockDB(t)
	rows := sqlmock.NewRows(userColumns()).
		AddRow(1, "asha", "other@example.com", "hash", "[]", "[]", "{}", "", "user")
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(rows)

	ctx, w := newTestContext(t, http.MethodPost, "/signup", gin.H{
		"username": "asha",
		"email":    "asha@example.com",
		"password": "secret1",
	})

	Signup(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgUsernameExists, responseMessage(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownUser(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	ctx, w := newTestContext(t, http.MethodPost, "/login", gin.H{
		"usernameOrEmail": "ghost",
		"password":        "whatever",
	})

	Login(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgInvalidCredentials, responseMessage(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetPasswordReadsTokenFromPath(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WithArgs("tok123", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	ctx, w := newTestContext(t, http.MethodPost, "/reset-password/tok123", gin.H{
		"password": "newsecret",
	})
	ctx.Params = gin.Params{{Key: "resetToken", Value: "tok123"}}

	ResetPassword(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgResetLinkExpired, responseMessage(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetPasswordRequiresToken(t *testing.T) {
	ctx, w := newTestContext(t, http.MethodPost, "/reset-password", gin.H{
		"password": "newsecret",
	})

	ResetPassword(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgInvalidInput, responseMessage(t, w))
}

func TestGetUserDataRequiresIDHeader(t *testing.T) {
	ctx, w := newTestContext(t, http.MethodGet, "/user", nil)

	GetUserData(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgInvalidInput, responseMessage(t, w))
}

func TestUpdateUserAddress(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ctx, w := newTestContext(t, http.MethodPut, "/user/address", gin.H{
		"address": []string{"12 Baker St"},
	})
	ctx.Request.Header.Set("id", "1")

	UpdateUserAddress(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, msgAddressUpdated, responseMessage(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}
