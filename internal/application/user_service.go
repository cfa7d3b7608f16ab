package application

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/askstack/askstack-api/internal/domain/entity"
	"github.com/askstack/askstack-api/internal/domain/query"
	"github.com/askstack/askstack-api/internal/domain/repository"
	"github.com/askstack/askstack-api/pkg/apierr"
	"github.com/askstack/askstack-api/pkg/helpers"
	"github.com/askstack/askstack-api/pkg/mailer"
)

// EmailPublisher queues an email job for the worker. Satisfied by
// helpers.RabbitPublisher.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserService handles registration, authentication and user queries.
type UserService struct {
	Repo      repository.UserRepository
	JWT       *helpers.JWTManager
	Redis     *redis.Client
	Logger    *logrus.Logger
	Emails    EmailPublisher
	GCS       *storage.Client
	GCSBucket string
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func NewUserService(repo repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, emails EmailPublisher, gcs *storage.Client, gcsBucket string) *UserService {
	return &UserService{
		Repo:      repo,
		JWT:       jwt,
		Redis:     rdb,
		Logger:    logger,
		Emails:    emails,
		GCS:       gcs,
		GCSBucket: gcsBucket,
	}
}

type RegisterInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register creates a new user. Username/email availability is pre-checked
// for friendly per-field errors; the unique constraints remain the
// authoritative backstop against concurrent registrations.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := strings.ToLower(in.Email)
	username := strings.ToLower(in.Username)

	if existing, err := s.Repo.FindOne(ctx, query.Filter{All: []query.Cond{{Column: "email", Value: email}}}); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apierr.Conflict("That email address is not available!", "email", "body", email)
	}
	if existing, err := s.Repo.FindOne(ctx, query.Filter{All: []query.Cond{{Column: "username", Value: username}}}); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apierr.Conflict("That username is not available!", "username", "body", username)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apierr.Storage("There was an error saving the user", err)
	}

	u := &entity.User{
		ID:        uuid.NewString(),
		Username:  username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     email,
		Password:  hash,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.publishWelcomeEmail(ctx, u)
	return u, nil
}

func (s *UserService) publishWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Emails == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data: map[string]any{
			"Username": u.Username,
			"FullName": u.FullName(),
		},
	}
	if err := s.Emails.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email publish failed")
	}
}

// Login authenticates by email or username and issues a token pair plus
// a redis session.
func (s *UserService) Login(ctx context.Context, login, password string) (*entity.User, TokenPair, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	column := "username"
	if strings.Contains(login, "@") {
		column = "email"
	}

	u, err := s.Repo.FindOne(ctx, query.Filter{All: []query.Cond{{Column: column, Value: login}}})
	if err != nil {
		return nil, TokenPair{}, err
	}
	if u == nil {
		return nil, TokenPair{}, apierr.NotFound("User not found!", "login", "body", login)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, TokenPair{}, apierr.NotFound("The username or password you have provided is invalid", "password", "body", "")
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

func (s *UserService) issueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"username":   u.Username,
			"email":      u.Email,
			"name":       u.FullName(),
			"logged_in":  true,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the token pair for a still-valid refresh token.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", apierr.Unauthorized("invalid refresh token")
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", apierr.Unauthorized("invalid refresh token")
	}
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

// Logout drops the redis session.
func (s *UserService) Logout(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, sessionKey(userID)).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("session delete failed")
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, apierr.NotFound("User not found!", "userId", "param", userID)
	}
	return u, nil
}

// List returns users ordered per the caller's sort keys with the
// default most-recent-registration ordering as tie-break.
func (s *UserService) List(ctx context.Context, page, limit int, orderBy []query.OrderBy) ([]*entity.User, error) {
	plan := query.Build(query.Users, query.Filter{}, page, limit, orderBy)
	return s.Repo.List(ctx, plan)
}

// Search matches users whose username, first or last name contains the
// text, returning the page of matches and the total match count.
func (s *UserService) Search(ctx context.Context, text string, page, limit int, orderBy []query.OrderBy) ([]*entity.User, int64, error) {
	plan, filter, err := query.Search(query.Users, text, page, limit, orderBy)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	users, err := s.Repo.List(ctx, plan)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UploadAvatar stores the avatar in GCS and records its public URL on
// the profile.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", apierr.Storage("avatar storage not configured", nil)
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return "", apierr.NotFound("User not found!", "userId", "param", userID)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", apierr.Storage("There was an error uploading the avatar", err)
	}

	u.AvatarURL = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", err
	}
	return url, nil
}
