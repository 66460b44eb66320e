package handlers

import (
	"net/http"
	"time"

	"github.com/academix/academix-api/internal/config"
	"github.com/academix/academix-api/internal/models"
	"github.com/academix/academix-api/internal/services"
	"github.com/academix/academix-api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

func Login(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": err.Error(),
				},
			})
			return
		}

		// Find user
		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid credentials",
				},
			})
			return
		}

		// Verify password
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid credentials",
				},
			})
			return
		}

		// Generate tokens
		accessToken, _ := generateToken(user.ID, user.Role, cfg.JWTSecret, cfg.JWTAccessExpiry)
		refreshToken, _ := generateToken(user.ID, user.Role, cfg.JWTSecret, cfg.JWTRefreshExpiry)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": AuthResponse{
				User:         &user,
				AccessToken:  accessToken,
				RefreshToken: refreshToken,
			},
		})
	}
}

func GetCurrentUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "User not found",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    user,
		})
	}
}

func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		// In a full implementation, we would add the token to a blacklist in Redis
		c.JSON(http.StatusNoContent, nil)
	}
}

// ForgotPassword issues a password reset token and emails it to the user.
// Runs behind the per-email rate limiter, which has already parsed the
// body and stored the email in the context.
func ForgotPassword(db *gorm.DB, cfg *config.Config, emailService *services.EmailService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("rate_limit_email")
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Email is required",
				},
			})
			return
		}

		// Always respond 200 so the endpoint does not reveal which emails
		// have accounts.
		respond := func() {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": "If the email exists, a reset link has been sent",
			})
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			respond()
			return
		}

		token, err := utils.GenerateSecureToken(32)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to generate reset token",
				},
			})
			return
		}

		hashedToken, err := utils.HashToken(token)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to generate reset token",
				},
			})
			return
		}

		expiry, err := time.ParseDuration(cfg.PasswordResetExpiry)
		if err != nil {
			expiry = time.Hour
		}

		now := time.Now()
		expiresAt := now.Add(expiry)
		user.PasswordResetToken = &hashedToken
		user.PasswordResetSentAt = &now
		user.PasswordResetExpiresAt = &expiresAt

		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to store reset token",
				},
			})
			return
		}

		if err := emailService.SendPasswordResetEmail(user.Email, token); err != nil {
			_ = c.Error(err)
		}

		respond()
	}
}

// ResetPassword consumes a reset token and sets a new password.
func ResetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": err.Error(),
				},
			})
			return
		}

		var users []models.User
		if err := db.Where("password_reset_token IS NOT NULL").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to look up reset token",
				},
			})
			return
		}

		// Tokens are stored bcrypt-hashed, so matching requires comparing
		// against each outstanding token.
		var user *models.User
		for i := range users {
			if utils.VerifyToken(*users[i].PasswordResetToken, req.Token) {
				user = &users[i]
				break
			}
		}

		if user == nil || user.PasswordResetExpiresAt == nil || time.Now().After(*user.PasswordResetExpiresAt) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Reset token is invalid or expired",
				},
			})
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to hash password",
				},
			})
			return
		}

		user.PasswordHash = string(hashedPassword)
		user.PasswordResetToken = nil
		user.PasswordResetSentAt = nil
		user.PasswordResetExpiresAt = nil

		if err := db.Save(user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to update password",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Password updated successfully",
		})
	}
}

func generateToken(userID uuid.UUID, role models.UserRole, secret string, expiry string) (string, error) {
	duration, err := time.ParseDuration(expiry)
	if err != nil {
		duration = 15 * time.Minute
	}

	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"exp":     time.Now().Add(duration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
