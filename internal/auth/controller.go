package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campus-api/internal/audit"
	"campus-api/internal/listing"
	"campus-api/internal/middlewares"
	"campus-api/internal/util"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type AuthController struct {
	AuthService AuthServiceAPI
	LS          LogServiceAPI
	Secret      string
	Revoker     *RevocationStore
}

type SignUpRequest struct {
	FirstName string  `json:"firstname" binding:"required"`
	LastName  string  `json:"lastname" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=6"`
	Role      string  `json:"role" binding:"omitempty,oneof=admin teacher student parent vendor"`
	SchoolID  *string `json:"school_id"`
}

func (ac *AuthController) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	password, err := util.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	user := User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  password,
		Role:      req.Role,
		SchoolID:  req.SchoolID,
	}

	newUser, err := ac.AuthService.CreateUser(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	entry := audit.Entry{
		Level:    "INFO",
		Service:  "auth",
		Action:   "SIGNUP",
		Message:  "Account created with email " + newUser.Email,
		UserID:   &newUser.ID,
		SchoolID: newUser.SchoolID,
	}
	if err := ac.LS.Log(entry, nil); err != nil {
		log.Printf("failed to insert audit log: %v", err)
	}

	c.JSON(http.StatusCreated, newUser)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := ac.AuthService.GetUser(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	if err := util.VerifyPassword(req.Password, user.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	access, _, err := ac.signToken(user, accessTokenTTL, "access")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to issue token"})
		return
	}
	refresh, _, err := ac.signToken(user, refreshTokenTTL, "refresh")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to issue token"})
		return
	}

	entry := audit.Entry{
		Level:    "INFO",
		Service:  "auth",
		Action:   "LOGIN",
		Message:  "User logged in: " + user.Email,
		UserID:   &user.ID,
		SchoolID: user.SchoolID,
	}
	if err := ac.LS.Log(entry, nil); err != nil {
		log.Printf("failed to insert audit log: %v", err)
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:        access,
		RefreshToken: refresh,
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		Role:         user.Role,
		SchoolID:     user.SchoolID,
	})
}

func (ac *AuthController) signToken(user *User, ttl time.Duration, typ string) (string, string, error) {
	jti := uuid.NewString()
	schoolID := ""
	if user.SchoolID != nil {
		schoolID = *user.SchoolID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   user.ID,
		"role":      user.Role,
		"school_id": schoolID,
		"typ":       typ,
		"jti":       jti,
		"exp":       time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(ac.Secret))
	return signed, jti, err
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (ac *AuthController) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	token, err := jwt.Parse(req.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(ac.Secret), nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired refresh token"})
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != "refresh" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired refresh token"})
		return
	}

	userID, _ := claims["user_id"].(string)
	user, err := ac.AuthService.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired refresh token"})
		return
	}

	access, _, err := ac.signToken(user, accessTokenTTL, "access")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": access})
}

// Logout revokes the presented access token for the rest of its lifetime.
// Without a revocation store it is a no-op acknowledged with 204.
func (ac *AuthController) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && header[:7] == "Bearer " && ac.Revoker != nil {
		token, err := jwt.Parse(header[7:], func(token *jwt.Token) (interface{}, error) {
			return []byte(ac.Secret), nil
		})
		if err == nil && token.Valid {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				jti, _ := claims["jti"].(string)
				if exp, err := claims.GetExpirationTime(); err == nil && jti != "" {
					ttl := time.Until(exp.Time)
					if err := ac.Revoker.Revoke(c.Request.Context(), jti, ttl); err != nil {
						log.Printf("failed to revoke token: %v", err)
					}
				}
			}
		}
	}
	c.Status(http.StatusNoContent)
}

func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user ID not found"})
		return
	}

	user, err := ac.AuthService.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, _, err := ac.AuthService.SendOTP(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	entry := audit.Entry{
		Level:    "INFO",
		Service:  "auth",
		Action:   "SEND_OTP",
		Message:  "Password reset OTP sent to " + user.Email,
		UserID:   &user.ID,
		SchoolID: user.SchoolID,
	}
	if err := ac.LS.Log(entry, nil); err != nil {
		log.Printf("failed to insert audit log: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := ac.AuthService.ResetPassword(req.Email, req.OTP, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	entry := audit.Entry{
		Level:    "INFO",
		Service:  "auth",
		Action:   "RESET_PASSWORD",
		Message:  "Password reset for " + user.Email,
		UserID:   &user.ID,
		SchoolID: user.SchoolID,
	}
	if err := ac.LS.Log(entry, nil); err != nil {
		log.Printf("failed to insert audit log: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func (ac *AuthController) ListUsers(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "school scope not found"})
		return
	}

	filters := ListFilters{
		Role:   c.Query("role"),
		Search: c.Query("search"),
	}

	res, err := ac.AuthService.ListUsers(schoolID, filters, listing.FromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (ac *AuthController) UpdateUser(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "school scope not found"})
		return
	}

	var in UpdateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := ac.AuthService.UpdateUser(schoolID, c.Param("id"), in)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (ac *AuthController) DeleteUser(c *gin.Context) {
	schoolID, ok := middlewares.SchoolID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "school scope not found"})
		return
	}

	if err := ac.AuthService.DeleteUser(schoolID, c.Param("id")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"message": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
