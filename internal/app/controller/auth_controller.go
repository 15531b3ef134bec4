package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matmarket/matmarket-backend/internal/app/model"
	"github.com/matmarket/matmarket-backend/internal/app/service"
	apperrors "github.com/matmarket/matmarket-backend/internal/errors"
	"github.com/matmarket/matmarket-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type RegisterCustomerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}

type RegisterCompanyRequest struct {
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required,min=6"`
	Name               string `json:"name" binding:"required"`
	Phone              string `json:"phone"`
	CompanyName        string `json:"company_name" binding:"required"`
	RegistrationNumber string `json:"registration_number" binding:"required"`
	VATNumber          string `json:"vat_number"`
	PurchaseAlso       bool   `json:"purchase_also"`
}

type RegisterAdminRequest struct {
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=6"`
	Name             string `json:"name" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyAdminCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func userPayload(user *model.User) gin.H {
	payload := gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"name":     user.Name,
		"phone":    user.Phone,
		"role":     user.Role,
		"verified": user.Verified,
	}
	if user.CompanyName != "" {
		payload["company_name"] = user.CompanyName
		payload["registration_number"] = user.RegistrationNumber
		payload["vat_number"] = user.VATNumber
	}
	return payload
}

// RegisterCustomer handles buyer registration
// POST /api/v1/auth/register/customer
func (ctrl *AuthController) RegisterCustomer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid registration details")
		return
	}

	user, tokens, err := ctrl.authService.RegisterCustomer(req.Email, req.Password, req.Name, req.Phone)
	if err != nil {
		ctrl.respondRegistrationError(c, err, req.Email)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    userPayload(user),
		"tokens":  tokens,
	})
}

// RegisterCompany handles seller registration
// POST /api/v1/auth/register/company
func (ctrl *AuthController) RegisterCompany(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid company registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid registration details")
		return
	}

	user, tokens, err := ctrl.authService.RegisterCompany(req.Email, req.Password, req.Name, req.Phone,
		service.CompanyDetails{
			CompanyName:        req.CompanyName,
			RegistrationNumber: req.RegistrationNumber,
			VATNumber:          req.VATNumber,
			PurchaseAlso:       req.PurchaseAlso,
		})
	if err != nil {
		ctrl.respondRegistrationError(c, err, req.Email)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Company registered successfully",
		"user":    userPayload(user),
		"tokens":  tokens,
	})
}

// RegisterAdmin handles admin registration with a confirmation code
// POST /api/v1/auth/register/admin
func (ctrl *AuthController) RegisterAdmin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid admin registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid registration details")
		return
	}

	user, tokens, err := ctrl.authService.RegisterAdmin(req.Email, req.Password, req.Name, req.ConfirmationCode)
	if err != nil {
		if errors.Is(err, service.ErrAdminCodeInvalid) {
			apperrors.BadRequest(c, apperrors.AuthAdminCodeInvalid, "Confirmation code is invalid or already used")
			return
		}
		ctrl.respondRegistrationError(c, err, req.Email)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Admin registered successfully",
		"user":    userPayload(user),
		"tokens":  tokens,
	})
}

func (ctrl *AuthController) respondRegistrationError(c *gin.Context, err error, email string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrEmailAlreadyExists):
		apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "This email is already registered")
	case errors.Is(err, service.ErrWeakPassword):
		apperrors.BadRequest(c, apperrors.AuthWeakPassword, "Password must be at least 6 characters")
	default:
		log.Error("Registration failed", err, map[string]interface{}{
			"email": email,
		})
		info := apperrors.ParseError(err, "register")
		status := http.StatusInternalServerError
		if info.Code == apperrors.AuthEmailAlreadyExists {
			status = http.StatusConflict
		}
		apperrors.RespondWithError(c, status, info.Code, info.Message)
	}
}

// Login handles user login
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Email and password are required")
		return
	}

	user, tokens, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid email or password")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    userPayload(user),
		"tokens":  tokens,
	})
}

// VerifyAdminCode checks a confirmation code without consuming it
// POST /api/v1/auth/verify-admin-code
func (ctrl *AuthController) VerifyAdminCode(c *gin.Context) {
	var req VerifyAdminCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Code is required")
		return
	}

	valid, err := ctrl.authService.VerifyAdminCode(req.Code)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": valid})
}

// GenerateAdminCode mints a new single-use confirmation code (admin only)
// POST /api/v1/auth/admin-codes
func (ctrl *AuthController) GenerateAdminCode(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	code, err := ctrl.authService.GenerateAdminCode()
	if err != nil {
		log.Error("Failed to generate admin code", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"code": code})
}

// Me returns the authenticated user's profile
// GET /api/v1/auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userPayload(user)})
}

// UpdateProfile updates the authenticated user's profile
// PUT /api/v1/auth/me
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid profile details")
		return
	}

	user, err := ctrl.authService.UpdateProfile(userID, req.Name, req.Phone)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    userPayload(user),
	})
}
