package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"product-compare/cmd/api/apperr"
	"product-compare/cmd/api/auth"
	"product-compare/cmd/api/trace"
	"product-compare/internal/logger"
	"product-compare/eventbus"
	"product-compare/events"
	"product-compare/models"
	"product-compare/repositories"
)

const (
	MsgMissingFields      = "Missing fields"
	MsgEmailRegistered    = "Email already registered"
	MsgInvalidCredentials = "Invalid credentials"
	MsgUserNotExist       = "User does not exist"
	MsgUserDeleted        = "User Deleted"
	MsgServerError        = "Server error"
)

// UserStore 는 계정 저장소다. *repositories.UserRepository 가 구현한다.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// TokenIssuer 는 사용자 ID 로 접근 토큰을 발급한다. *auth.JWTManager 가 구현한다.
type TokenIssuer interface {
	Sign(userID string) (string, error)
}

// AuthService 는 이메일/비밀번호 계정의 가입, 로그인, 조회, 탈퇴를 담당한다.
type AuthService struct {
	users     UserStore
	summaries SummaryStore
	tokens    TokenIssuer
	bus       eventbus.Publisher
	topic     string
}

func NewAuthService(users UserStore, summaries SummaryStore, tokens TokenIssuer, bus eventbus.Publisher, topic string) *AuthService {
	if bus == nil {
		bus = eventbus.NoopBus{}
	}
	if topic == "" {
		topic = eventbus.DefaultTopic
	}
	return &AuthService{
		users:     users,
		summaries: summaries,
		tokens:    tokens,
		bus:       bus,
		topic:     topic,
	}
}

// Register 는 계정을 만들고 바로 사용할 수 있는 토큰을 함께 반환한다.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, "", apperr.New(apperr.KindValidation, MsgMissingFields)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", apperr.New(apperr.KindValidation, MsgEmailRegistered)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, "", apperr.Wrap(apperr.KindServer, MsgServerError, err)
	}

	hash, err := auth.HashPassword(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, "", apperr.Wrap(apperr.KindValidation, "Password is too long", err)
	}
	if err != nil {
		return nil, "", apperr.Wrap(apperr.KindServer, MsgServerError, err)
	}

	user := &models.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.users.Insert(ctx, user); err != nil {
		// 동시 가입으로 unique 인덱스에 걸린 경우
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, "", apperr.Wrap(apperr.KindValidation, MsgEmailRegistered, err)
		}
		return nil, "", apperr.Wrap(apperr.KindServer, MsgServerError, err)
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}
	logger.InfoWithFields("user registered", trace.LogFields(ctx, logger.Fields{"user_id": user.ID.Hex()}))
	return user, token, nil
}

// Login 은 존재하지 않는 이메일과 틀린 비밀번호를 구분하지 않는다.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", apperr.New(apperr.KindValidation, MsgMissingFields)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, "", apperr.New(apperr.KindValidation, MsgInvalidCredentials)
	}
	if err != nil {
		return nil, "", apperr.Wrap(apperr.KindServer, MsgServerError, err)
	}
	if !auth.ComparePassword(user.PasswordHash, password) {
		return nil, "", apperr.New(apperr.KindValidation, MsgInvalidCredentials)
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.Wrap(apperr.KindValidation, MsgUserNotExist, err)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindServer, MsgServerError, err)
	}
	return user, nil
}

// DeleteUser 는 사용자의 요약을 모두 지운 뒤 계정을 삭제하고 삭제된 요약 수를 반환한다.
func (s *AuthService) DeleteUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	ctx = context.WithoutCancel(ctx)

	if _, err := s.GetProfile(ctx, userID); err != nil {
		return 0, err
	}

	deleted, err := s.summaries.DeleteAllByOwner(ctx, userID)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindServer, MsgServerError, err)
	}
	if err := s.users.DeleteByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return deleted, apperr.Wrap(apperr.KindValidation, MsgUserNotExist, err)
		}
		return deleted, apperr.Wrap(apperr.KindServer, MsgServerError, err)
	}

	logger.InfoWithFields("user deleted", trace.LogFields(ctx, logger.Fields{
		"user_id":           userID.Hex(),
		"deleted_summaries": deleted,
	}))
	evt := events.UserDeletedEvent{
		BaseEvent:        events.NewBaseEvent(events.UserDeleted),
		UserID:           userID,
		DeletedSummaries: deleted,
	}
	if err := eventbus.PublishDomainEvent(ctx, s.bus, s.topic, userID.Hex(), evt); err != nil {
		logger.ErrorWithFields("failed to publish event", trace.LogFields(ctx, logger.Fields{
			"topic": s.topic,
			"error": err.Error(),
		}))
	}
	return deleted, nil
}

func (s *AuthService) issue(user *models.User) (string, error) {
	token, err := s.tokens.Sign(user.ID.Hex())
	if err != nil {
		return "", apperr.Wrap(apperr.KindServer, MsgServerError, err)
	}
	return token, nil
}
