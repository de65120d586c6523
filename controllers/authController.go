package controllers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/milaanpub/bookhouse-api/initializers"
	"github.com/milaanpub/bookhouse-api/models"
	"github.com/milaanpub/bookhouse-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Standard response messages
	msgInvalidInput        = "invalid input"
	msgUsernameTooShort    = "Username must have atleast 4 characters."
	msgInvalidEmail        = "Invalid email format. Please enter a valid email address."
	msgPasswordTooShort    = "Password must be 6 characters long"
	msgUsernameExists      = "Username already exists"
	msgEmailExists         = "Email already exists"
	msgSignupSuccess       = "Signup successfully!"
	msgInvalidCredentials  = "Invalid Credentials"
	msgInternalServerError = "Internal server error"
	msgUserNotFound        = "User not found"
	msgResetLinkSent       = "Password reset link sent to your email"
	msgResetLinkExpired    = "Reset link expired. Please request a new one."
	msgResetSuccess        = "Password reset successfully."
	msgResetEmailFailed    = "Something went wrong. Please try again."
	msgAddressUpdated      = "Address updated successfully"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// actingUserID reads the caller's id from the header-delivered
// user-id/token pair.
func actingUserID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(ctx.GetHeader("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"jti":      uuid.NewString(),
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour * 24 * 30).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

func findUserByIdentifier(identifier string) (models.User, error) {
	var user models.User
	result := initializers.DB.Where("email = ? OR username = ?", identifier, identifier).First(&user)
	return user, result.Error
}

func findUserByEmail(email string) (models.User, error) {
	var user models.User
	result := initializers.DB.Where("email = ?", email).First(&user)
	return user, result.Error
}

func marshalStringList(list []string) (datatypes.JSON, error) {
	if list == nil {
		list = []string{}
	}
	raw, err := datatypes.NewJSONType(list).MarshalJSON()
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// Send a password reset email
func sendPasswordResetEmail(user models.User, resetToken string) error {
	emailData := utils.EmailData{
		Name:      user.Username,
		Message:   "You requested a password reset. Click the button below to reset your password. If you did not request this, please ignore this email.",
		ActionURL: os.Getenv("FRONTEND_URL") + "/reset-password/" + resetToken,
	}

	templatePath := filepath.Join("templates", "reset_password.html")
	return utils.SendEmail(user.Email, "Password Reset", emailData, templatePath)
}

// Signup handles user registration
func Signup(ctx *gin.Context) {
	var signUpData struct {
		Username string   `json:"username"`
		Email    string   `json:"email"`
		Password string   `json:"password"`
		Address  []string `json:"address"`
	}
	if err := ctx.ShouldBindJSON(&signUpData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if len(signUpData.Username) < 4 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUsernameTooShort)
		return
	}
	if !emailPattern.MatchString(signUpData.Email) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidEmail)
		return
	}
	if len(signUpData.Password) < 6 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgPasswordTooShort)
		return
	}

	var existing models.User
	if result := initializers.DB.Where("username = ?", signUpData.Username).First(&existing); result.Error == nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUsernameExists)
		return
	}
	if result := initializers.DB.Where("email = ?", signUpData.Email).First(&existing); result.Error == nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgEmailExists)
		return
	}

	hashedPassword, err := hashPassword(signUpData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	emptyCart, err := models.Cart{}.ToJSON()
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	addresses, err := marshalStringList(signUpData.Address)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	user := models.User{
		Username:   signUpData.Username,
		Email:      signUpData.Email,
		Password:   hashedPassword,
		Addresses:  addresses,
		Avatar:     models.DefaultAvatar,
		Role:       "user",
		Favourites: datatypes.JSON([]byte("[]")),
		Cart:       emptyCart,
	}

	if result := initializers.DB.Create(&user); result.Error != nil {
		log.Println("User creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "message": msgSignupSuccess})
}

// Login handles user authentication
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByIdentifier(loginData.UsernameOrEmail)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"_id":   user.ID,
		"role":  user.Role,
		"token": tokenString,
	})
}

// ForgotPassword stores a one-hour reset token and mails the reset
// link. The email is the requested action, so a send failure fails the
// request.
func ForgotPassword(ctx *gin.Context) {
	var forgotPasswordData struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := ctx.ShouldBindJSON(&forgotPasswordData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByEmail(forgotPasswordData.Email)
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	resetToken, err := utils.GenerateCode(32)
	if err != nil {
		log.Println("Reset token generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if result := initializers.DB.Model(&models.User{}).
		Where("email = ?", forgotPasswordData.Email).
		Updates(map[string]any{
			"reset_password_token":   resetToken,
			"reset_password_expires": time.Now().Add(time.Hour),
		}); result.Error != nil {
		log.Println("Error saving reset token:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if err := sendPasswordResetEmail(user, resetToken); err != nil {
		log.Println("Error sending password reset email:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgResetEmailFailed)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgResetLinkSent})
}

// ResetPassword resets a user's password using an unexpired reset
// token. The token arrives in the URL; older clients send it in the
// body instead.
func ResetPassword(ctx *gin.Context) {
	var resetPasswordData struct {
		Token    string `json:"token"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := ctx.ShouldBindJSON(&resetPasswordData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	resetToken := ctx.Param("resetToken")
	if resetToken == "" {
		resetToken = resetPasswordData.Token
	}
	if resetToken == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	result := initializers.DB.
		Where("reset_password_token = ? AND reset_password_expires > ?", resetToken, time.Now()).
		First(&user)
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgResetLinkExpired)
		return
	}

	hashedPassword, err := hashPassword(resetPasswordData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if result := initializers.DB.Model(&user).Updates(map[string]any{
		"password":               hashedPassword,
		"reset_password_token":   "",
		"reset_password_expires": time.Time{},
	}); result.Error != nil {
		log.Println("Error resetting password:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgResetSuccess})
}

// GetUserData returns the caller's profile; the password hash and reset
// token fields never serialize.
func GetUserData(ctx *gin.Context) {
	userID, ok := actingUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	if result := initializers.DB.First(&user, userID); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "data": user})
}

// UpdateUserAddress replaces the caller's saved address list.
func UpdateUserAddress(ctx *gin.Context) {
	userID, ok := actingUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var body struct {
		Address []string `json:"address"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	addresses, err := marshalStringList(body.Address)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if result := initializers.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("addresses", addresses); result.Error != nil {
		log.Println("Address update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "Success", "message": msgAddressUpdated})
}
