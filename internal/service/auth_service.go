package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"doc-catalog/internal/domain"
	"doc-catalog/internal/repository"
)

// AuthService coordina autenticación por contraseña, las credenciales
// legacy de respaldo y la reconciliación de identidades sociales.
type AuthService struct {
	logger      *zap.Logger
	users       repository.UserRepository
	tokens      *TokenService
	adminEmails []string

	// Secretos legacy: rutas de login que no tocan la base.
	adminFallbackPassword string
	userFallbackPassword  string
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUser      = errors.New("a user with the same email already exists")
	ErrUserNotFound       = errors.New("user not found")
)

const defaultAvatar = "assets/default-avatar.svg"

func NewAuthService(
	logger *zap.Logger,
	users repository.UserRepository,
	tokens *TokenService,
	adminEmails []string,
	adminFallbackPassword string,
	userFallbackPassword string,
) *AuthService {
	return &AuthService{
		logger:                logger,
		users:                 users,
		tokens:                tokens,
		adminEmails:           adminEmails,
		adminFallbackPassword: adminFallbackPassword,
		userFallbackPassword:  userFallbackPassword,
	}
}

// UserSummary es la vista del usuario devuelta junto al token.
type UserSummary struct {
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	PhotoURL  string     `json:"photoUrl"`
	IsAdmin   bool       `json:"isAdmin"`
	LastLogin *time.Time `json:"lastLogin"`
}

// AuthResult es el resultado de una autenticación exitosa.
type AuthResult struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
	PhotoURL string
}

// Register crea una identidad con contraseña. Email duplicado es conflicto.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	email := normalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)
	if email == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PhotoURL:     strings.TrimSpace(input.PhotoURL),
		PasswordHash: string(hashBytes),
		IsAdmin:      s.isAdminEmail(email),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.logger.Warn("duplicate email on register", zap.String("email", email))
			return domain.User{}, ErrDuplicateUser
		}
		return domain.User{}, err
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Authenticate evalúa, en orden: registro real con bcrypt, respaldo de
// admin (lista + secreto admin) y respaldo de usuario (solo secreto).
// El orden importa: un email de la lista de admins con el secreto de
// usuario cae hasta la rama de usuario y entra como no-admin.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil {
			now := time.Now().UTC()
			if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
				return AuthResult{}, err
			}
			user.LastLogin = &now
			return s.authResult(user)
		}
	case !errors.Is(err, pgx.ErrNoRows):
		return AuthResult{}, err
	}

	if s.adminFallbackPassword != "" && s.isAdminEmail(email) && password == s.adminFallbackPassword {
		return s.fallbackResult(email, true, "Admin User")
	}
	if s.userFallbackPassword != "" && password == s.userFallbackPassword {
		return s.fallbackResult(email, false, "Regular User")
	}

	return AuthResult{}, ErrInvalidCredentials
}

type SocialLoginInput struct {
	Email      string
	Name       string
	PhotoURL   string
	Provider   string
	ProviderID string
}

// AuthenticateSocial reconcilia una identidad social: primero por
// (provider, providerId), después por email (vinculando el proveedor) y
// como último recurso crea la identidad. Una violación de unicidad en la
// persistencia se reporta como conflicto, sin reintentos.
func (s *AuthService) AuthenticateSocial(ctx context.Context, input SocialLoginInput) (AuthResult, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	provider := strings.ToLower(strings.TrimSpace(input.Provider))
	providerID := strings.TrimSpace(input.ProviderID)
	if email == "" || provider == "" || providerID == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()

	user, err := s.users.GetByProvider(ctx, provider, providerID)
	if err == nil {
		if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
			return AuthResult{}, err
		}
		user.LastLogin = &now
		return s.authResult(user)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return AuthResult{}, err
	}

	user, err = s.users.GetByEmail(ctx, email)
	if err == nil {
		user.Provider = provider
		user.ProviderID = providerID
		user.Name = name
		if input.PhotoURL != "" {
			user.PhotoURL = input.PhotoURL
		}
		user.LastLogin = &now
		if err := s.users.Update(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				s.logger.Warn("duplicate email on provider link", zap.String("email", email))
				return AuthResult{}, ErrDuplicateUser
			}
			return AuthResult{}, err
		}
		return s.authResult(user)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return AuthResult{}, err
	}

	// Las cuentas sociales nunca se autentican por contraseña; el hash
	// sintético solo satisface la columna not-null.
	hashBytes, err := bcrypt.GenerateFromPassword(
		[]byte(fmt.Sprintf("social-login-%d", now.UnixMilli())), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}
	user = domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PhotoURL:     input.PhotoURL,
		PasswordHash: string(hashBytes),
		IsAdmin:      s.isAdminEmail(email),
		Provider:     provider,
		ProviderID:   providerID,
		CreatedAt:    now,
		LastLogin:    &now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return AuthResult{}, ErrDuplicateUser
		}
		return AuthResult{}, err
	}
	return s.authResult(user)
}

// ValidateToken delega en el codec; cualquier falla se propaga tal cual.
func (s *AuthService) ValidateToken(token string) (Claims, error) {
	return s.tokens.Parse(token)
}

// UserLogin es la vista reducida del listado de usuarios.
type UserLogin struct {
	Email     string     `json:"email"`
	LastLogin *time.Time `json:"lastLogin"`
}

func (s *AuthService) ListUsers(ctx context.Context) ([]UserLogin, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	logins := make([]UserLogin, 0, len(users))
	for _, u := range users {
		logins = append(logins, UserLogin{Email: u.Email, LastLogin: u.LastLogin})
	}
	return logins, nil
}

func (s *AuthService) authResult(user domain.User) (AuthResult, error) {
	token, err := s.tokens.Issue(user.Email, user.IsAdmin)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{
		Token: token,
		User: UserSummary{
			Email:     user.Email,
			Name:      user.Name,
			PhotoURL:  user.PhotoURL,
			IsAdmin:   user.IsAdmin,
			LastLogin: user.LastLogin,
		},
	}, nil
}

func (s *AuthService) fallbackResult(email string, isAdmin bool, name string) (AuthResult, error) {
	token, err := s.tokens.Issue(email, isAdmin)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{
		Token: token,
		User: UserSummary{
			Email:    email,
			Name:     name,
			PhotoURL: defaultAvatar,
			IsAdmin:  isAdmin,
		},
	}, nil
}

func (s *AuthService) isAdminEmail(email string) bool {
	for _, adminEmail := range s.adminEmails {
		if strings.EqualFold(adminEmail, email) {
			return true
		}
	}
	return false
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
