package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMultipartContext(t *testing.T, target string, fields map[string]string, fileField, fileName string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte("file-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodPost, target, body)
	ctx.Request.Header.Set("Content-Type", writer.FormDataContentType())
	return ctx, w
}

func TestAddCategoryRequiresTitleAndImage(t *testing.T) {
	ctx, w := newMultipartContext(t, "/category", map[string]string{}, "", "")

	AddCategory(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required", responseMessage(t, w))
}

func TestAddCategoryRejectsDuplicateTitleCaseInsensitive(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery("SELECT count(.+) FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ctx, w := newMultipartContext(t, "/category",
		map[string]string{"title": "FICTION"}, "image", "cover.png")

	AddCategory(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category with this name already exists", responseMessage(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}
