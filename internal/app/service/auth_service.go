package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/matmarket/matmarket-backend/internal/app/model"
	"github.com/matmarket/matmarket-backend/internal/app/repository"
	"github.com/matmarket/matmarket-backend/pkg/logger"
	"github.com/matmarket/matmarket-backend/pkg/util"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrAdminCodeInvalid   = errors.New("admin confirmation code is invalid or already used")
)

const minPasswordLength = 6

// CompanyDetails carries the extra registration fields for company accounts.
type CompanyDetails struct {
	CompanyName        string
	RegistrationNumber string
	VATNumber          string
	// PurchaseAlso upgrades the account to the hybrid role so it can
	// buy as well as sell.
	PurchaseAlso bool
}

type AuthService interface {
	RegisterCustomer(email, password, name, phone string) (*model.User, *util.TokenPair, error)
	RegisterCompany(email, password, name, phone string, details CompanyDetails) (*model.User, *util.TokenPair, error)
	RegisterAdmin(email, password, name, confirmationCode string) (*model.User, *util.TokenPair, error)
	Login(email, password string) (*model.User, *util.TokenPair, error)
	GetUserByID(id uint) (*model.User, error)
	UpdateProfile(userID uint, name, phone string) (*model.User, error)
	VerifyAdminCode(code string) (bool, error)
	GenerateAdminCode() (string, error)
}

type authService struct {
	userRepo      repository.UserRepository
	adminCodeRepo repository.AdminCodeRepository
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	adminCodeRepo repository.AdminCodeRepository,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		adminCodeRepo: adminCodeRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *authService) RegisterCustomer(email, password, name, phone string) (*model.User, *util.TokenPair, error) {
	return s.register(&model.User{
		Email: email,
		Name:  name,
		Phone: phone,
		Role:  model.RoleCustomer,
	}, password)
}

func (s *authService) RegisterCompany(email, password, name, phone string, details CompanyDetails) (*model.User, *util.TokenPair, error) {
	role := model.RoleCompany
	if details.PurchaseAlso {
		role = model.RoleHybrid
	}
	return s.register(&model.User{
		Email:              email,
		Name:               name,
		Phone:              phone,
		Role:               role,
		CompanyName:        details.CompanyName,
		RegistrationNumber: details.RegistrationNumber,
		VATNumber:          details.VATNumber,
	}, password)
}

// RegisterAdmin requires a valid confirmation code. The code is
// consumed before the account exists; a failed create does not return
// the code to the pool.
func (s *authService) RegisterAdmin(email, password, name, confirmationCode string) (*model.User, *util.TokenPair, error) {
	if err := s.adminCodeRepo.Consume(confirmationCode); err != nil {
		if errors.Is(err, repository.ErrCodeInvalid) {
			logger.Warn("Admin registration rejected: bad confirmation code", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrAdminCodeInvalid
		}
		return nil, nil, err
	}

	return s.register(&model.User{
		Email:    email,
		Name:     name,
		Role:     model.RoleAdmin,
		Verified: true,
	}, password)
}

func (s *authService) register(user *model.User, password string) (*model.User, *util.TokenPair, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"email": user.Email,
		"role":  user.Role,
	})

	if len(password) < minPasswordLength {
		return nil, nil, ErrWeakPassword
	}

	// Check if user already exists
	existingUser, err := s.userRepo.FindByEmail(user.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": user.Email,
		})
		return nil, nil, err
	}
	if existingUser != nil {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": user.Email,
		})
		return nil, nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": user.Email,
		})
		return nil, nil, err
	}
	user.PasswordHash = hashedPassword

	if err := s.userRepo.Create(user); err != nil {
		return nil, nil, err
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	})

	return user, tokens, nil
}

func (s *authService) Login(email, password string) (*model.User, *util.TokenPair, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"email":   email,
			"user_id": user.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})

	return user, tokens, nil
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(userID uint, name, phone string) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.Phone = phone
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("User profile updated", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

// VerifyAdminCode checks a code without consuming it, so the client can
// validate the form before submitting the full registration.
func (s *authService) VerifyAdminCode(code string) (bool, error) {
	return s.adminCodeRepo.IsValid(code)
}

// GenerateAdminCode mints a new single-use confirmation code.
func (s *authService) GenerateAdminCode() (string, error) {
	code, err := util.GenerateRandomCode(16)
	if err != nil {
		return "", err
	}
	record := &model.AdminConfirmationCode{Code: code}
	if err := s.adminCodeRepo.Create(record); err != nil {
		return "", err
	}

	logger.Info("Admin confirmation code generated", map[string]interface{}{
		"code_id": record.ID,
	})
	return code, nil
}
