package services

import (
	"context"
	"errors"
	"strings"

	"hotelbooking/authz"
	"hotelbooking/constants"
	"hotelbooking/dto"
	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/repository"
	"hotelbooking/services/logger"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

// GoogleVerifier kiểm tra Google ID token; mặc định là idtoken.Validate
type GoogleVerifier func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

type AuthService struct {
	store          repository.Store
	tokens         *TokenService
	googleClientID string
	verifyGoogle   GoogleVerifier
	log            logger.Logger
}

func NewAuthService(store repository.Store, tokens *TokenService, googleClientID string, log logger.Logger) *AuthService {
	return &AuthService{
		store:          store,
		tokens:         tokens,
		googleClientID: googleClientID,
		verifyGoogle:   idtoken.Validate,
		log:            log,
	}
}

// WithGoogleVerifier thay hàm kiểm tra Google token, dùng trong test
func (s *AuthService) WithGoogleVerifier(v GoogleVerifier) *AuthService {
	s.verifyGoogle = v
	return s
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// Register tạo tài khoản khách
func (s *AuthService) Register(ctx context.Context, input dto.RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, apperrors.Validation("email and password are required")
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUserExists, "email "+email+" is already registered", nil)
	} else if !errors.Is(err, apperrors.ErrRecordNotFound) {
		return nil, storeError(err, "user")
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, apperrors.Internal("could not hash password", err)
	}

	user := &models.User{
		Username: input.Username,
		Email:    email,
		Password: hashed,
		Phone:    input.Phone,
		Country:  input.Country,
		City:     input.City,
		Role:     constants.RoleGuest,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateRecord) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeUserExists, "email "+email+" is already registered", err)
		}
		return nil, storeError(err, "user")
	}
	s.log.Info("user %d registered", user.ID)
	return user, nil
}

// Login kiểm tra mật khẩu và cấp access token
func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (*dto.UserLoginResponse, error) {
	user, err := s.store.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrRecordNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, storeError(err, "user")
	}
	if user.Password == "" {
		return nil, apperrors.Unauthorized("account uses Google sign-in")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidPassword, "invalid email or password", nil)
	}
	return s.issue(ctx, user)
}

// LoginWithGoogle đăng nhập bằng Google ID token, tạo user nếu chưa có
func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (*dto.UserLoginResponse, error) {
	payload, err := s.verifyGoogle(ctx, idToken, s.googleClientID)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "invalid Google token", err)
	}

	user, err := s.store.GetUserByGoogleID(ctx, payload.Subject)
	if err == nil {
		return s.issue(ctx, user)
	}
	if !errors.Is(err, apperrors.ErrRecordNotFound) {
		return nil, storeError(err, "user")
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, apperrors.Validation("Google account has no email")
	}
	if existing, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return s.issue(ctx, existing)
	}

	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	user = &models.User{
		Username: name,
		Email:    email,
		Img:      picture,
		GoogleID: payload.Subject,
		Role:     constants.RoleGuest,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, storeError(err, "user")
	}
	s.log.Info("user %d created from Google sign-in", user.ID)
	return s.issue(ctx, user)
}

// Me trả về user hiện tại
func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, storeError(err, "user")
	}
	return user, nil
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*dto.UserLoginResponse, error) {
	info := UserInfo{UserId: user.ID, Role: user.Role}
	role := authz.Role(user.Role)
	if role == authz.RoleModerator {
		mod, err := s.store.GetModeratorByUser(ctx, user.ID)
		switch {
		case err == nil:
			if !mod.IsActive {
				return nil, apperrors.Forbidden("moderator account is disabled")
			}
			info.Moderator = &authz.ModeratorFlags{
				CanManageWorkers: mod.CanManageWorkers,
				CanManageRooms:   mod.CanManageRooms,
				CanViewBookings:  mod.CanViewBookings,
			}
		case errors.Is(err, apperrors.ErrRecordNotFound):
			info.Moderator = &authz.ModeratorFlags{}
		default:
			return nil, storeError(err, "moderator")
		}
	}

	token, err := s.tokens.GenerateToken(info)
	if err != nil {
		return nil, apperrors.Internal("could not sign token", err)
	}
	actor := authz.NewActor(user.ID, role, info.Moderator)
	return &dto.UserLoginResponse{
		User:         dto.NewUserResponse(user, role.String()),
		AccessToken:  token,
		Capabilities: actor.Caps.Names(),
	}, nil
}
