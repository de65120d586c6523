package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/milaanpub/bookhouse-api/initializers"
	"github.com/milaanpub/bookhouse-api/models"
	"gorm.io/gorm"
)

func getGatewayAccessToken() (string, error) {
	consumerKey := os.Getenv("PESAPAL_CONSUMER_KEY")
	consumerSecret := os.Getenv("PESAPAL_CONSUMER_SECRET")

	if consumerKey == "" || consumerSecret == "" {
		return "", fmt.Errorf("pesapal consumer credentials are not set")
	}

	requestBody := map[string]string{
		"consumer_key":    consumerKey,
		"consumer_secret": consumerSecret,
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(requestBody).
		Post("https://pay.pesapal.com/v3/api/Auth/RequestToken")

	if err != nil {
		return "", err
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("pesapal token request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var response map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}

	token, ok := response["token"].(string)
	if !ok || token == "" {
		return "", fmt.Errorf("token not found in response: %v", response)
	}

	return token, nil
}

// InitiatePayment submits an existing order to the gateway and returns
// the redirect URL the buyer completes payment on.
func InitiatePayment(ctx *gin.Context) {
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
	if result := initializers.DB.First(&order, orderID); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	if order.UserID != userID {
		sendErrorResponse(ctx, http.StatusForbidden, "You are not allowed to pay for this order")
		return
	}

	user, ok := fetchUser(ctx, userID)
	if !ok {
		return
	}

	token, err := getGatewayAccessToken()
	if err != nil {
		log.Println("Gateway auth error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Payment authentication failed")
		return
	}

	notificationID := os.Getenv("PESAPAL_NOTIFICATION_ID")
	if notificationID == "" {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Missing payment configuration")
		return
	}

	gatewayOrder := map[string]any{
		"id":              fmt.Sprintf("ORDER-%d", order.ID),
		"currency":        os.Getenv("PAYMENT_CURRENCY"),
		"amount":          order.Total,
		"description":     fmt.Sprintf("Payment for order #%d", order.ID),
		"callback_url":    os.Getenv("FRONTEND_URL") + "/payment/callback",
		"notification_id": notificationID,
		"billing_address": map[string]any{
			"email_address": user.Email,
			"phone_number":  order.Phone,
			"first_name":    order.Name,
			"line_1":        order.Address,
		},
	}

	resp, err := resty.New().SetTimeout(30 * time.Second).
		R().
		SetHeaders(map[string]string{
			"Authorization": "Bearer " + token,
			"Accept":        "application/json",
			"Content-Type":  "application/json",
		}).
		SetBody(gatewayOrder).
		Post("https://pay.pesapal.com/v3/api/Transactions/SubmitOrderRequest")

	if err != nil || resp.StatusCode() != 200 {
		log.Printf("Gateway error: %v, response: %s", err, resp.Body())
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to initiate payment")
		return
	}

	var gatewayResp map[string]any
	if err := json.Unmarshal(resp.Body(), &gatewayResp); err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Invalid response from payment gateway")
		return
	}

	redirectURL, rOK := gatewayResp["redirect_url"].(string)
	trackingID, tOK := gatewayResp["order_tracking_id"].(string)
	if !rOK || !tOK || redirectURL == "" || trackingID == "" {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Incomplete response from payment gateway")
		return
	}

	if err := initializers.DB.Model(&order).Updates(map[string]any{
		"tracking_id":    trackingID,
		"payment_status": models.PaymentStatusInProgress,
	}).Error; err != nil {
		log.Printf("Order %d submitted, but tracking ID not saved: %s", order.ID, trackingID)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":      "Success",
		"message":     "Redirect user to payment.",
		"redirectUrl": redirectURL,
		"orderId":     order.ID,
		"trackingId":  trackingID,
	})
}

func paymentStatusFromGateway(description string) string {
	switch description {
	case "Completed":
		return models.PaymentStatusSuccess
	case "Failed", "Invalid", "Reversed":
		return models.PaymentStatusFailed
	default:
		return models.PaymentStatusInProgress
	}
}

// HandlePaymentIPN confirms a gateway notification by querying the
// transaction status back and records the mapped payment status.
func HandlePaymentIPN(ctx *gin.Context) {
	var trackingID, merchantRef string

	if ctx.Request.Method == http.MethodPost {
		var payload struct {
			OrderTrackingId        string `json:"OrderTrackingId"`
			OrderMerchantReference string `json:"OrderMerchantReference"`
		}
		if err := ctx.BindJSON(&payload); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		trackingID = payload.OrderTrackingId
		merchantRef = payload.OrderMerchantReference
	} else {
		trackingID = ctx.Query("orderTrackingId")
		merchantRef = ctx.Query("orderMerchantReference")
	}

	if trackingID == "" || merchantRef == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing parameters"})
		return
	}

	token, err := getGatewayAccessToken()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication with payment gateway failed"})
		return
	}

	statusURL := "https://pay.pesapal.com/v3/api/Transactions/GetTransactionStatus?orderTrackingId=" + trackingID

	resp, err := resty.New().R().
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("Accept", "application/json").
		Get(statusURL)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check payment status"})
		return
	}

	var statusResp map[string]any
	if err := json.Unmarshal(resp.Body(), &statusResp); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid response from payment gateway"})
		return
	}

	if errObj, exists := statusResp["error"]; exists && errObj != nil {
		if errMap, ok := errObj.(map[string]interface{}); ok {
			if errMap["code"] != nil || errMap["message"] != nil || errMap["error_type"] != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error in transaction response"})
				return
			}
		}
	}

	statusDesc := fmt.Sprint(statusResp["payment_status_description"])

	if err := initializers.DB.Model(&models.Order{}).
		Where("tracking_id = ?", trackingID).
		Update("payment_status", paymentStatusFromGateway(statusDesc)).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"orderNotificationType":  "IPNCHANGE",
		"orderTrackingId":        trackingID,
		"orderMerchantReference": merchantRef,
		"status":                 200,
	})
}
