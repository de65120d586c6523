package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/milaanpub/bookhouse-api/initializers"
	"github.com/milaanpub/bookhouse-api/models"
	"github.com/milaanpub/bookhouse-api/utils"
	"gorm.io/gorm"
)

// PlaceOrder snapshots the submitted cart lines into a new order. The
// cart itself is left untouched: it is cleared when the manual payment
// is confirmed, not at placement.
func PlaceOrder(ctx *gin.Context) {
	userID, ok := actingUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var input models.PlaceOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := input.Validate(); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	ids := make([]uint, 0, len(input.Order))
	for _, line := range input.Order {
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

	order := models.Order{
		UserID:        userID,
		Name:          input.Name,
		Phone:         input.Phone,
		Address:       input.Address,
		Total:         input.Total,
		Status:        models.OrderStatusNotPlaced,
		PaymentStatus: models.PaymentStatusNotDone,
	}

	tx := initializers.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		log.Println("Order creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
		return
	}

	for _, line := range input.Order {
		item := models.OrderItem{
			OrderID:  order.ID,
			BookID:   line.BookID,
			Quantity: line.Quantity,
		}
		if book, found := byID[line.BookID]; found {
			item.Title = book.Title
			item.Price = book.Price
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			log.Println("Order item creation error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order items")
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save order")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Order placed successfully",
		"orderId": order.ID,
	})
}

func sendPaymentEmails(order models.Order, user models.User) {
	items := make([]utils.EmailItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, utils.EmailItem{Title: item.Title, Quantity: item.Quantity, Price: item.Price})
	}

	buyerData := utils.EmailData{
		Name:    user.Username,
		Message: "We have received your payment confirmation. Your order is now in progress.",
		Items:   items,
		Total:   order.Total,
		Details: []utils.EmailDetail{
			{Label: "Order ID", Value: fmt.Sprint(order.ID)},
			{Label: "Transaction ID", Value: order.TransactionID},
		},
	}
	if err := utils.SendEmail(user.Email, "Payment Confirmation",
		buyerData, filepath.Join("templates", "payment_confirmation.html")); err != nil {
		log.Println("Error sending payment confirmation email:", err)
	}

	operatorData := utils.EmailData{
		Name:    user.Username,
		Message: "A customer confirmed a manual payment.",
		Items:   items,
		Total:   order.Total,
		Details: []utils.EmailDetail{
			{Label: "Order ID", Value: fmt.Sprint(order.ID)},
			{Label: "Customer", Value: user.Username},
			{Label: "Email", Value: user.Email},
			{Label: "Phone", Value: order.Phone},
			{Label: "Transaction ID", Value: order.TransactionID},
		},
	}
	if err := utils.SendEmail(os.Getenv("OPERATOR_EMAIL"), "Manual Payment Received",
		operatorData, filepath.Join("templates", "payment_notification.html")); err != nil {
		log.Println("Error sending payment notification email:", err)
	}
}

// ManualPaymentDone records an out-of-band payment confirmed by
// transaction id: both statuses move to "In progress", the caller's
// cart is cleared and confirmation emails go out best-effort.
func ManualPaymentDone(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	userID, ok := actingUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var body struct {
		TransactionID string `json:"transactionId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var order models.Order
	if result := initializers.DB.Preload("Items").First(&order, orderID); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	if order.UserID != userID {
		sendErrorResponse(ctx, http.StatusForbidden, "You are not allowed to update this order")
		return
	}

	if result := initializers.DB.Model(&order).Updates(map[string]any{
		"status":         models.OrderStatusInProgress,
		"payment_status": models.PaymentStatusInProgress,
		"manual_payment": true,
		"transaction_id": body.TransactionID,
	}); result.Error != nil {
		log.Println("Order update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	order.TransactionID = body.TransactionID

	if err := saveCart(userID, models.Cart{}); err != nil {
		log.Println("Cart clear error:", err)
	}

	// Notification is best-effort: the status change has committed and
	// is not rolled back on email failure.
	var user models.User
	if result := initializers.DB.First(&user, userID); result.Error == nil {
		sendPaymentEmails(order, user)
	} else {
		log.Println("Database error:", result.Error)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Payment recorded. Your order is now in progress.",
	})
}

// GetOrderHistory returns the caller's manually-paid orders, newest
// first.
func GetOrderHistory(ctx *gin.Context) {
	userID, ok := actingUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var orders []models.Order
	result := initializers.DB.Preload("Items").
		Where("user_id = ? AND manual_payment = ?", userID, true).
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "data": orders})
}

// GetOrderDetails returns one order; the caller must own it.
func GetOrderDetails(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	userID, ok := actingUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var order models.Order
	if result := initializers.DB.Preload("Items").First(&order, orderID); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	if order.UserID != userID {
		sendErrorResponse(ctx, http.StatusForbidden, "You are not allowed to view this order")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "data": order})
}

// GetAllOrders returns every order with buyer details, newest first.
func GetAllOrders(ctx *gin.Context) {
	var orders []models.Order
	result := initializers.DB.Preload("Items").
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	userIDs := make([]uint, 0, len(orders))
	for _, order := range orders {
		userIDs = append(userIDs, order.UserID)
	}

	usersByID := make(map[uint]models.User)
	if len(userIDs) > 0 {
		var users []models.User
		if result := initializers.DB.Where("id IN ?", userIDs).Find(&users); result.Error != nil {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		for _, user := range users {
			usersByID[user.ID] = user
		}
	}

	data := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		entry := gin.H{"order": order}
		if user, found := usersByID[order.UserID]; found {
			entry["user"] = gin.H{"username": user.Username, "email": user.Email}
		}
		data = append(data, entry)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "data": data})
}

// UpdateOrderStatus sets the order status directly. Transitions are
// unguarded; only the value set is checked.
func UpdateOrderStatus(ctx *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	if !models.ValidOrderStatus(body.Status) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order status")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	result := initializers.DB.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", body.Status)
	if result.Error != nil {
		log.Println("Order status update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "message": "Status updated successfully"})
}

// UpdatePaymentStatus sets the payment status directly, same unguarded
// semantics as UpdateOrderStatus.
func UpdatePaymentStatus(ctx *gin.Context) {
	var body struct {
		PaymentStatus string `json:"paymentStatus"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	if !models.ValidPaymentStatus(body.PaymentStatus) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid payment status")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	result := initializers.DB.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("payment_status", body.PaymentStatus)
	if result.Error != nil {
		log.Println("Payment status update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "message": "Payment status updated successfully"})
}
