package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/milaanpub/bookhouse-api/initializers"
	"github.com/milaanpub/bookhouse-api/models"
)

func fetchUser(ctx *gin.Context, userID uint) (models.User, bool) {
	var user models.User
	if result := initializers.DB.First(&user, userID); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return models.User{}, false
	}
	return user, true
}

func saveCart(userID uint, cart models.Cart) error {
	raw, err := cart.ToJSON()
	if err != nil {
		return err
	}
	return initializers.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("cart", raw).Error
}

// AddToCart increments an existing line's quantity by one or appends a
// new line. The response message reports which happened.
func AddToCart(ctx *gin.Context) {
	bookIDStr := ctx.GetHeader("bookid")
	if bookIDStr == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Book ID is required")
		return
	}
	bookID, err := strconv.Atoi(bookIDStr)
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

	cart := models.NormalizeCart(user.Cart)
	existing := cart.AddBook(uint(bookID))

	if err := saveCart(userID, cart); err != nil {
		log.Println("Cart update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	message := "Book added to cart"
	if existing {
		message = "Book quantity updated in cart"
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "message": message})
}

// UpdateCart sets the quantity of an existing cart line.
func UpdateCart(ctx *gin.Context) {
	userID, ok := actingUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var body struct {
		BookID   uint `json:"bookId"`
		Quantity int  `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if body.Quantity < 1 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	user, ok := fetchUser(ctx, userID)
	if !ok {
		return
	}

	cart := models.NormalizeCart(user.Cart)
	if !cart.SetQuantity(body.BookID, body.Quantity) {
		sendErrorResponse(ctx, http.StatusNotFound, "Book not found in cart")
		return
	}

	if err := saveCart(userID, cart); err != nil {
		log.Println("Cart update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Cart updated successfully",
		"cart":    cart.Books,
	})
}

// RemoveFromCart drops a line from the cart. Removing an absent book is
// a no-op that still reports success.
func RemoveFromCart(ctx *gin.Context) {
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

	cart := models.NormalizeCart(user.Cart)
	cart.RemoveBook(uint(bookID))

	if err := saveCart(userID, cart); err != nil {
		log.Println("Cart update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Book removed from cart",
		"cart":    cart,
	})
}

// GetUserCart returns the cart lines joined with current book details,
// most recently added first, plus the draft address.
func GetUserCart(ctx *gin.Context) {
	userID, ok := actingUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, ok := fetchUser(ctx, userID)
	if !ok {
		return
	}

	cart := models.NormalizeCart(user.Cart)
	if len(cart.Books) == 0 {
		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"status":  "Success",
			"data":    []gin.H{},
			"message": "Cart is empty",
		})
		return
	}

	ids := make([]uint, 0, len(cart.Books))
	for _, line := range cart.Books {
		ids = append(ids, line.BookID)
	}

	var books []models.Book
	if result := initializers.DB.Where("id IN ?", ids).Find(&books); result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	byID := make(map[uint]models.Book, len(books))
	for _, book := range books {
		byID[book.ID] = book
	}

	// Latest additions first.
	lines := make([]gin.H, 0, len(cart.Books))
	for i := len(cart.Books) - 1; i >= 0; i-- {
		line := cart.Books[i]
		item := gin.H{"bookId": line.BookID, "quantity": line.Quantity}
		if book, found := byID[line.BookID]; found {
			item["book"] = book
		}
		lines = append(lines, item)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status": "Success",
		"data": gin.H{
			"books":   lines,
			"address": cart.Address,
		},
	})
}
