package controllers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func userRowWithCart(mock sqlmock.Sqlmock, cart string) {
	rows := sqlmock.NewRows(userColumns()).
		AddRow(1, "asha", "asha@example.com", "hash", "[]", "[]", cart, "", "user")
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(rows)
}

func expectCartWrite(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestAddToCartRequiresBookIDHeader(t *testing.T) {
	ctx, w := newTestContext(t, http.MethodPost, "/cart", nil)
	ctx.Request.Header.Set("id", "1")

	AddToCart(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Book ID is required", responseMessage(t, w))
}

func TestAddToCartIncrementsExistingLine(t *testing.T) {
	mock := setupMockDB(t)
	userRowWithCart(mock, `{"books":[{"bookId":2,"quantity":1}],"address":""}`)
	expectCartWrite(mock)

	ctx, w := newTestContext(t, http.MethodPost, "/cart", nil)
	ctx.Request.Header.Set("id", "1")
	ctx.Request.Header.Set("bookid", "2")

	AddToCart(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Book quantity updated in cart", responseMessage(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCartAppendsNewLine(t *testing.T) {
	mock := setupMockDB(t)
	userRowWithCart(mock, `{"books":[],"address":""}`)
	expectCartWrite(mock)

	ctx, w := newTestContext(t, http.MethodPost, "/cart", nil)
	ctx.Request.Header.Set("id", "1")
	ctx.Request.Header.Set("bookid", "2")

	AddToCart(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Book added to cart", responseMessage(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCartRejectsZeroQuantity(t *testing.T) {
	ctx, w := newTestContext(t, http.MethodPut, "/cart", gin.H{"bookId": 2, "quantity": 0})
	ctx.Request.Header.Set("id", "1")

	UpdateCart(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Quantity must be at least 1", responseMessage(t, w))
}

func TestUpdateCartMissingLine(t *testing.T) {
	mock := setupMockDB(t)
	userRowWithCart(mock, `{"books":[{"bookId":1,"quantity":1}],"address":""}`)

	ctx, w := newTestContext(t, http.MethodPut, "/cart", gin.H{"bookId": 9, "quantity": 3})
	ctx.Request.Header.Set("id", "1")

	UpdateCart(ctx)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Book not found in cart", responseMessage(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveFromCartAbsentBookStillSucceeds(t *testing.T) {
	mock := setupMockDB(t)
	userRowWithCart(mock, `{"books":[{"bookId":1,"quantity":1}],"address":""}`)
	expectCartWrite(mock)

	ctx, w := newTestContext(t, http.MethodDelete, "/cart/9", nil)
	ctx.Request.Header.Set("id", "1")
	ctx.Params = gin.Params{{Key: "bookId", Value: "9"}}

	RemoveFromCart(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Book removed from cart", responseMessage(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserCartEmpty(t *testing.T) {
	mock := setupMockDB(t)
	userRowWithCart(mock, `{"books":[],"address":""}`)

	ctx, w := newTestContext(t, http.MethodGet, "/cart", nil)
	ctx.Request.Header.Set("id", "1")

	GetUserCart(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cart is empty", responseMessage(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}
