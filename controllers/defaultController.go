package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Bookhouse API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/api/v1/signup" - Create user account
- POST "/api/v1/login" - Access user account
- POST "/api/v1/forgot-password" - Request password reset
- POST "/api/v1/reset-password/:resetToken" - Reset user password
- GET "/api/v1/user" - Get user profile
- PUT "/api/v1/user/address" - Update delivery address

BOOK
- POST "/api/v1/book" - Add a book
- GET "/api/v1/book" - Get all books
- GET "/api/v1/book/recent" - Get recently added books
- GET "/api/v1/book/search" - Search books by title or author
- GET "/api/v1/book/details/:id" - Get book by ID
- GET "/api/v1/book/category/:category" - Get books of a category

CART
- POST "/api/v1/cart" - Add book to cart
- PUT "/api/v1/cart" - Update cart quantity
- DELETE "/api/v1/cart/:bookId" - Remove book from cart
- GET "/api/v1/cart" - Get user cart

ORDER
- POST "/api/v1/order" - Place an order
- POST "/api/v1/order/:orderId/manual-payment" - Confirm manual payment
- GET "/api/v1/order/history" - Get order history
- GET "/api/v1/order/details/:orderId" - Get order details

EVENT
- GET "/api/v1/event" - Get all events
- GET "/api/v1/event/:id" - Get event details
- POST "/api/v1/event/:id/register" - Register for an event`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
