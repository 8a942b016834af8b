package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Soulinho/pandawok-project/internal/config"
	"github.com/Soulinho/pandawok-project/internal/httperr"
	"github.com/Soulinho/pandawok-project/internal/middleware"
	"github.com/Soulinho/pandawok-project/internal/models"
	"github.com/Soulinho/pandawok-project/internal/validators"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register creates an account. On an empty database anyone may register and
// becomes admin; afterwards only an admin may add staff.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if h.config.CheckEmailDomain && !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "Email domain does not look valid.")
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		httperr.Internal(c, "internal_error", "Internal error.")
		return
	}
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "Email already registered.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Internal error.")
		return
	}

	// --------------------------------------------------
	// Open signup only bootstraps the first admin
	// --------------------------------------------------
	var total int64
	if err := h.db.Model(&models.User{}).Count(&total).Error; err != nil {
		httperr.Internal(c, "internal_error", "Internal error.")
		return
	}

	role := RoleAdmin
	createdByAdmin := c.GetString(middleware.ContextUserRole) == RoleAdmin
	if total > 0 {
		if !createdByAdmin {
			httperr.Write(c, http.StatusForbidden, "registration_closed", "Ask an admin to create your account.")
			return
		}
		role = RoleStaff
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "email_already_exists", "Email already registered.")
			return
		}
		httperr.Internal(c, "failed_to_create_user", "Internal error.")
		return
	}

	if createdByAdmin {
		c.JSON(http.StatusCreated, gin.H{"user": userJSON(&user)})
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Internal error.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  userJSON(&user),
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
			return
		}
		httperr.Internal(c, "internal_error", "Internal error.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	now := time.Now().UTC()
	if err := h.db.Model(&user).Update("last_login_at", now).Error; err != nil {
		httperr.Internal(c, "internal_error", "Internal error.")
		return
	}
	user.LastLoginAt = &now

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Internal error.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  userJSON(&user),
		"token": token,
	})
}

// Me returns the account behind the bearer token.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := actorID(c)
	if userID == nil {
		httperr.Unauthorized(c, "user_not_in_context", "Not authenticated.")
		return
	}

	var user models.User
	if err := h.db.First(&user, *userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userJSON(&user)})
}

func userJSON(u *models.User) gin.H {
	return gin.H{
		"id":            u.ID,
		"name":          u.Name,
		"email":         u.Email,
		"phone":         u.Phone,
		"role":          u.Role,
		"can_edit_map":  u.Role == RoleAdmin,
		"last_login_at": u.LastLoginAt,
	}
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
