package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/semsolhan1/todo-api202306/internal/models"
	"github.com/semsolhan1/todo-api202306/internal/repository"
	"github.com/semsolhan1/todo-api202306/pkg/logger"
)

var (
	// ErrDuplicateEmail is returned when signing up with an email that is
	// already registered.
	ErrDuplicateEmail = errors.New("email is already registered")
	// ErrInvalidCredentials is returned on a failed sign-in.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// TokenClaims are the JWT claims carried by an access token: the user id as
// subject plus the role.
type TokenClaims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserService handles account registration, sign-in, token issuance, and
// profile image uploads.
type UserService struct {
	users      repository.UserRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
	uploadRoot string
}

// NewUserService wires a user service.
func NewUserService(users repository.UserRepository, jwtSecret string, tokenTTL time.Duration, uploadRoot string) *UserService {
	return &UserService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		uploadRoot: uploadRoot,
	}
}

// SignUp registers a new COMMON-role account. Duplicate emails are rejected.
func (s *UserService) SignUp(ctx context.Context, req *models.UserSignUpRequest) (*models.UserResponse, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:        uuid.New().String(),
		Email:     req.Email,
		UserName:  req.UserName,
		Password:  string(hashed),
		Role:      models.RoleCommon,
		CreatedAt: time.Now(),
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	logger.Info(ctx, "User registered", "id", user.ID, "email", user.Email)
	resp := models.NewUserResponse(user)
	return &resp, nil
}

// SignIn verifies credentials and issues an access token.
func (s *UserService) SignIn(ctx context.Context, req *models.UserSignInRequest) (*models.SignInResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &models.SignInResponse{Token: token, UserResponse: models.NewUserResponse(user)}, nil
}

// IssueToken signs an HS256 access token for the given user.
func (s *UserService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// UploadProfileImage stores the uploaded image under the upload root with a
// unique name and records it on the user. Returns the stored file name.
func (s *UserService) UploadProfileImage(ctx context.Context, userID, originalName string, src io.Reader) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrNoSuchUser
	}
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.uploadRoot, 0o755); err != nil {
		return "", err
	}
	name := uuid.New().String() + "_" + filepath.Base(originalName)
	dst, err := os.Create(filepath.Join(s.uploadRoot, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	user.ProfileImg = name
	if err := s.users.Save(ctx, user); err != nil {
		return "", err
	}
	logger.Info(ctx, "Profile image stored", "user", userID, "file", name)
	return name, nil
}
