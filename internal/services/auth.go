package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/velmark/marketops-backend/internal/domain"
	"github.com/velmark/marketops-backend/internal/platform/logger"
	"github.com/velmark/marketops-backend/internal/repos"
	"github.com/velmark/marketops-backend/internal/requestdata"
	"github.com/velmark/marketops-backend/internal/types"
)

// AuthService is the identity collaborator: it authenticates route callers
// and puts the actor id on the request context so mutations can record
// changed_by. The lifecycle core itself never authorizes anything.
type AuthService interface {
	Register(ctx context.Context, user *types.User) (*types.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	users        repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(db *gorm.DB, baseLog *logger.Logger, users repos.UserRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
	return &authService{
		db:           db,
		log:          baseLog.With("service", "AuthService"),
		users:        users,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (s *authService) Register(ctx context.Context, user *types.User) (*types.User, error) {
	if user == nil {
		return nil, domain.NewError(domain.CodeInvalidArgument, "AuthService.Register", "user payload is required", nil)
	}
	user.Email = strings.TrimSpace(strings.ToLower(user.Email))
	if user.Email == "" {
		return nil, domain.NewError(domain.CodeInvalidArgument, "AuthService.Register", "email is required", nil)
	}
	if user.Password == "" {
		return nil, domain.NewError(domain.CodeInvalidArgument, "AuthService.Register", "password is required", nil)
	}

	exists, err := s.users.EmailExists(ctx, nil, user.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewError(domain.CodeConflict, "AuthService.Register", "email is already in use", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.Wrap(domain.CodeStorage, "AuthService.Register", err)
	}
	user.Password = string(hashed)

	created, err := s.users.Create(ctx, nil, user)
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", "user_id", created.ID)
	return created, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", domain.NewError(domain.CodeInvalidArgument, "AuthService.Login", "email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, nil, email)
	if domain.IsCode(err, domain.CodeNotFound) {
		return "", domain.NewError(domain.CodeForbidden, "AuthService.Login", "invalid credentials", nil)
	}
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", domain.NewError(domain.CodeForbidden, "AuthService.Login", "invalid credentials", nil)
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecretKey))
	if err != nil {
		return "", domain.Wrap(domain.CodeStorage, "AuthService.Login", err)
	}
	return token, nil
}

func (s *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.NewError(domain.CodeForbidden, "AuthService.SetContextFromToken", "unexpected signing method", nil)
		}
		return []byte(s.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, domain.NewError(domain.CodeForbidden, "AuthService.SetContextFromToken", "invalid token", err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, domain.NewError(domain.CodeForbidden, "AuthService.SetContextFromToken", "invalid token subject", err)
	}

	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
	}), nil
}
