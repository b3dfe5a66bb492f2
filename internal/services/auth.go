package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/data/repos"
	"github.com/yungbote/ecotrack-backend/internal/domain/user"
	"github.com/yungbote/ecotrack-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/ecotrack-backend/internal/pkg/errors"
	"github.com/yungbote/ecotrack-backend/internal/platform/ctxutil"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

const minPasswordLength = 6

type JWTClaims struct {
	jwt.RegisteredClaims
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
	Region    string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*user.User, string, error)
	Login(ctx context.Context, email, password string) (*user.User, string, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
	now          func() time.Time
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		now:          time.Now,
	}
}

func (as *authService) Register(ctx context.Context, in RegisterInput) (*user.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	role := user.Role(strings.ToLower(strings.TrimSpace(in.Role)))

	if firstName == "" || lastName == "" || email == "" || in.Password == "" || role == "" {
		return nil, "", fmt.Errorf("first name, last name, email, password and role are required: %w", pkgerrors.ErrInvalidArgument)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", fmt.Errorf("invalid email: %w", pkgerrors.ErrInvalidArgument)
	}
	if len(in.Password) < minPasswordLength {
		return nil, "", fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, pkgerrors.ErrInvalidArgument)
	}
	if !role.Valid() {
		return nil, "", fmt.Errorf("unknown role %q: %w", in.Role, pkgerrors.ErrInvalidArgument)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  string(hashed),
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
		// Students finish registration once a school is chosen.
		IsRegistrationComplete: role != user.RoleStudent,
	}
	if region := strings.ToLower(strings.TrimSpace(in.Region)); region != "" {
		u.Region = &region
	}

	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		exists, err := as.userRepo.EmailExists(dbc, email)
		if err != nil {
			return persistenceErr("check email", err)
		}
		if exists {
			return fmt.Errorf("email already registered: %w", pkgerrors.ErrConflict)
		}
		if _, err := as.userRepo.Create(dbc, u); err != nil {
			return persistenceErr("create user", err)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	token, err := as.generateAccessToken(u)
	if err != nil {
		return nil, "", err
	}
	as.log.Info("user registered", "user_id", u.ID, "role", u.Role)
	return u, token, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("email and password are required: %w", pkgerrors.ErrInvalidArgument)
	}

	u, err := as.userRepo.GetByEmail(dbctx.From(ctx), email)
	if err != nil {
		return nil, "", persistenceErr("lookup user", err)
	}
	if u == nil {
		return nil, "", fmt.Errorf("invalid email or password: %w", pkgerrors.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid email or password: %w", pkgerrors.ErrUnauthorized)
	}

	token, err := as.generateAccessToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (as *authService) generateAccessToken(u *user.User) (string, error) {
	now := as.now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, fmt.Errorf("missing token: %w", pkgerrors.ErrUnauthorized)
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(as.now),
	)
	if err != nil {
		return ctx, fmt.Errorf("parse token: %w: %w", pkgerrors.ErrUnauthorized, err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, fmt.Errorf("invalid or expired token: %w", pkgerrors.ErrUnauthorized)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", pkgerrors.ErrUnauthorized)
	}
	rd := &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      userID,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
