package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/milaanpub/bookhouse-api/initializers"
	"github.com/milaanpub/bookhouse-api/models"
	"gorm.io/gorm"
)

type bookInput struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Price       float64  `json:"price"`
	Description string   `json:"desc"`
	Language    string   `json:"language"`
	URLs        []string `json:"urls"`
	Category    string   `json:"category"`
}

func (in bookInput) validate() (string, bool) {
	if in.Title == "" || in.Author == "" || in.Description == "" || in.Language == "" || in.Category == "" {
		return "All fields are required", false
	}
	if in.Price <= 0 {
		return "Price must be greater than zero", false
	}
	if len(in.URLs) == 0 {
		return "At least one image URL is required", false
	}
	return "", true
}

func categoryExists(title string) (bool, error) {
	var count int64
	err := initializers.DB.Model(&models.Category{}).
		Where("LOWER(title) = LOWER(?)", title).
		Count(&count).Error
	return count > 0, err
}

// AddBook creates a catalog entry. The category must already exist.
func AddBook(ctx *gin.Context) {
	var input bookInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if message, ok := input.validate(); !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, message)
		return
	}

	exists, err := categoryExists(input.Category)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if !exists {
		sendErrorResponse(ctx, http.StatusBadRequest, "Category not found")
		return
	}

	images, err := marshalStringList(input.URLs)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	book := models.Book{
		Title:       input.Title,
		Author:      input.Author,
		Price:       input.Price,
		Description: input.Description,
		Language:    input.Language,
		Images:      images,
		Category:    input.Category,
	}
	if result := initializers.DB.Create(&book); result.Error != nil {
		log.Println("Book creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to add book")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Book added successfully!",
		"data":    book,
	})
}

// UpdateBook replaces a book's fields with the submitted values.
func UpdateBook(ctx *gin.Context) {
	bookID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse bookId")
		return
	}

	var input bookInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if message, ok := input.validate(); !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, message)
		return
	}

	var book models.Book
	if result := initializers.DB.First(&book, bookID); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Book not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	images, err := marshalStringList(input.URLs)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	book.Title = input.Title
	book.Author = input.Author
	book.Price = input.Price
	book.Description = input.Description
	book.Language = input.Language
	book.Images = images
	book.Category = input.Category

	if result := initializers.DB.Save(&book); result.Error != nil {
		log.Println("Book update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update book")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Book updated successfully",
		"data":    book,
	})
}

// DeleteBook removes a book from the catalog.
func DeleteBook(ctx *gin.Context) {
	bookID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse bookId")
		return
	}

	result := initializers.DB.Delete(&models.Book{}, bookID)
	if result.Error != nil {
		log.Println("Book delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Book not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "message": "Book deleted successfully"})
}

// GetAllBooks lists the full catalog, newest first.
func GetAllBooks(ctx *gin.Context) {
	var books []models.Book
	if result := initializers.DB.Order("created_at desc").Find(&books); result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "data": books})
}

// GetRecentBooks returns the four most recently added books.
func GetRecentBooks(ctx *gin.Context) {
	var books []models.Book
	result := initializers.DB.Order("created_at desc").Limit(4).Find(&books)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "data": books})
}

// GetBookByID returns one book.
func GetBookByID(ctx *gin.Context) {
	bookID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse bookId")
		return
	}

	var book models.Book
	if result := initializers.DB.First(&book, bookID); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Book not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "data": book})
}

// SearchBooks matches the query against the title, case-insensitive
// substring.
func SearchBooks(ctx *gin.Context) {
	query := ctx.Query("book")
	if query == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Search query is required")
		return
	}

	var books []models.Book
	result := initializers.DB.
		Where("title LIKE ?", "%"+query+"%").
		Find(&books)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "data": books})
}

// GetBooksByCategory lists books whose category matches the path param.
func GetBooksByCategory(ctx *gin.Context) {
	category := ctx.Param("category")

	var books []models.Book
	result := initializers.DB.Where("category = ?", category).Find(&books)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "data": books})
}

func parseBookIDHeader(ctx *gin.Context) (uint, bool) {
	bookID, err := strconv.Atoi(ctx.GetHeader("bookid"))
	if err != nil || bookID <= 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Book ID is required")
		return 0, false
	}
	return uint(bookID), true
}

// AddBookToFavourite appends a book id to the caller's favourites.
// Adding a book twice is a no-op.
func AddBookToFavourite(ctx *gin.Context) {
	bookID, ok := parseBookIDHeader(ctx)
	if !ok {
		return
	}

	userID, ok := actingUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, ok := fetchUser(ctx, userID)
	if !ok {
		return
	}

	favourites := user.FavouriteIDs()
	for _, id := range favourites {
		if id == bookID {
			sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "message": "Book is already in favourites"})
			return
		}
	}
	favourites = append(favourites, bookID)

	if err := user.SetFavouriteIDs(favourites); err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result := initializers.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("favourites", user.Favourites); result.Error != nil {
		log.Println("Favourites update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "message": "Book added to favourites"})
}

// RemoveBookFromFavourite drops a book id from the caller's favourites.
func RemoveBookFromFavourite(ctx *gin.Context) {
	bookID, err := strconv.Atoi(ctx.Param("bookId"))
	if err != nil || bookID <= 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Book ID is required")
		return
	}

	userID, ok := actingUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, ok := fetchUser(ctx, userID)
	if !ok {
		return
	}

	favourites := user.FavouriteIDs()
	kept := make([]uint, 0, len(favourites))
	for _, id := range favourites {
		if id != uint(bookID) {
			kept = append(kept, id)
		}
	}

	if err := user.SetFavouriteIDs(kept); err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result := initializers.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("favourites", user.Favourites); result.Error != nil {
		log.Println("Favourites update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "message": "Book removed from favourites"})
}

// GetFavouriteBooks resolves the caller's favourite ids into books.
func GetFavouriteBooks(ctx *gin.Context) {
	userID, ok := actingUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, ok := fetchUser(ctx, userID)
	if !ok {
		return
	}

	ids := user.FavouriteIDs()
	if len(ids) == 0 {
		sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "data": []models.Book{}})
		return
	}

	var books []models.Book
	if result := initializers.DB.Where("id IN ?", ids).Find(&books); result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "data": books})
}
