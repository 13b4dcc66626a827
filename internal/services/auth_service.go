package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"fullcolombiano/internal/apperrors"
	"fullcolombiano/internal/models"
	"fullcolombiano/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for accounts and authentication.
type AuthService struct {
	userRepo   repositories.UserRepository
	vendorRepo repositories.VendorRepository
	events     EventPublisher
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, vendorRepo repositories.VendorRepository, events EventPublisher, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		vendorRepo: vendorRepo,
		events:     events,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// RegisterInput carries the fields accepted on registration.
type RegisterInput struct {
	Email           string
	Username        string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
	Phone           string
}

// ProfileUpdateInput carries the optional fields of a partial profile
// update. Nil fields are left untouched; email and password cannot be
// changed through this path.
type ProfileUpdateInput struct {
	Username  *string
	FirstName *string
	LastName  *string
	Phone     *string
}

// Register creates a new user account with a hashed password and emits a
// user.registered event.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	if input.Password != input.PasswordConfirm {
		return nil, apperrors.NewValidationError("password_confirm", "passwords do not match")
	}
	if len(input.Password) < 8 {
		return nil, apperrors.NewValidationError("password", "password must be at least 8 characters")
	}

	if existing, err := s.userRepo.GetByEmail(input.Email); err == nil && existing != nil {
		return nil, apperrors.NewValidationError("email", fmt.Sprintf("email '%s' already registered", input.Email))
	}
	if existing, err := s.userRepo.GetByUsername(input.Username); err == nil && existing != nil {
		return nil, apperrors.NewValidationError("username", fmt.Sprintf("username '%s' already taken", input.Username))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:     input.Email,
		Username:  input.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Password:  string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		// A concurrent registration can still hit the unique index; the
		// repository surfaces that as a ValidationError already.
		var vErr *apperrors.ValidationError
		if errors.As(err, &vErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	publishEvent(s.events, "user.registered", map[string]interface{}{
		"userID":   user.ID,
		"email":    user.Email,
		"username": user.Username,
	})
	return user, nil
}

// Login authenticates a user by email and returns a signed JWT plus the
// account on success.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email exists
		return "", nil, apperrors.NewAuthError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.NewAuthError("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, user, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, apperrors.NewAuthError("invalid or expired token")
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, apperrors.NewAuthError("invalid token")
}

// Profile returns the user plus their vendor profile when one exists. The
// vendor is nil for non-vendor accounts.
func (s *AuthService) Profile(userID string) (*models.User, *models.Vendor, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, nil, err
	}
	vendor, err := s.vendorRepo.GetByUserID(userID)
	if err != nil {
		var nfErr *apperrors.NotFoundError
		if errors.As(err, &nfErr) {
			return user, nil, nil
		}
		return nil, nil, err
	}
	return user, vendor, nil
}

// UpdateProfile applies a partial update to the actor's own account.
func (s *AuthService) UpdateProfile(userID string, input ProfileUpdateInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
