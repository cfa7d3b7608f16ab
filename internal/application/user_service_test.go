package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askstack/askstack-api/internal/domain/entity"
	"github.com/askstack/askstack-api/pkg/apierr"
	"github.com/askstack/askstack-api/pkg/helpers"
	"github.com/askstack/askstack-api/pkg/mailer"
)

func newUserService(repo *fakeUserRepo, pub *fakePublisher) *UserService {
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	return NewUserService(repo, jwt, nil, nil, pub, nil, "")
}

func registerInput() RegisterInput {
	return RegisterInput{
		Username:  "Ada",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "Ada@Example.com",
		Password:  "Sup3rSecret",
	}
}

func TestRegisterNormalizesAndHashes(t *testing.T) {
	repo := &fakeUserRepo{}
	pub := &fakePublisher{}
	svc := newUserService(repo, pub)

	u, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	assert.Equal(t, "ada", u.Username)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "Sup3rSecret", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "Sup3rSecret"))
}

func TestRegisterQueuesWelcomeEmail(t *testing.T) {
	repo := &fakeUserRepo{}
	pub := &fakePublisher{}
	svc := newUserService(repo, pub)

	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	require.Len(t, pub.jobs, 1)
	job, ok := pub.jobs[0].(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", job.To)
	assert.Equal(t, mailer.TemplateWelcome, job.Template)
	assert.Equal(t, "Ada Lovelace", job.Data["FullName"])
}

func TestRegisterPublishFailureDoesNotFailRegistration(t *testing.T) {
	repo := &fakeUserRepo{}
	pub := &fakePublisher{err: apierr.Storage("amqp down", nil)}
	svc := newUserService(repo, pub)

	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	assert.Len(t, repo.created, 1)
}

func TestRegisterEmailTaken(t *testing.T) {
	repo := &fakeUserRepo{users: []*entity.User{{ID: "u1", Username: "other", Email: "ada@example.com"}}}
	svc := newUserService(repo, &fakePublisher{})

	_, err := svc.Register(context.Background(), registerInput())
	require.Error(t, err)
	ae := apierr.From(err)
	assert.Equal(t, apierr.KindConflict, ae.Kind)
	assert.Equal(t, "That email address is not available!", ae.Items[0].Msg)
	assert.Equal(t, "email", ae.Items[0].Param)
	assert.Empty(t, repo.created)
}

func TestRegisterUsernameTaken(t *testing.T) {
	repo := &fakeUserRepo{users: []*entity.User{{ID: "u1", Username: "ada", Email: "other@example.com"}}}
	svc := newUserService(repo, &fakePublisher{})

	_, err := svc.Register(context.Background(), registerInput())
	require.Error(t, err)
	ae := apierr.From(err)
	assert.Equal(t, apierr.KindConflict, ae.Kind)
	assert.Equal(t, "That username is not available!", ae.Items[0].Msg)
}

func TestLoginByEmailAndUsername(t *testing.T) {
	hash, err := helpers.HashPassword("Sup3rSecret")
	require.NoError(t, err)
	repo := &fakeUserRepo{users: []*entity.User{{
		ID: "u1", Username: "ada", Email: "ada@example.com", Password: hash,
	}}}
	svc := newUserService(repo, &fakePublisher{})

	for _, login := range []string{"ada@example.com", "ADA@example.com", "ada", "  Ada "} {
		u, pair, err := svc.Login(context.Background(), login, "Sup3rSecret")
		require.NoError(t, err, "login %q", login)
		assert.Equal(t, "u1", u.ID)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.True(t, pair.AccessTokenExpiry.Before(pair.RefreshTokenExpiry))
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newUserService(&fakeUserRepo{}, &fakePublisher{})

	_, _, err := svc.Login(context.Background(), "ghost", "whatever")
	require.Error(t, err)
	ae := apierr.From(err)
	assert.Equal(t, apierr.KindNotFound, ae.Kind)
	assert.Equal(t, "User not found!", ae.Items[0].Msg)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := helpers.HashPassword("right-password")
	require.NoError(t, err)
	repo := &fakeUserRepo{users: []*entity.User{{
		ID: "u1", Username: "ada", Email: "ada@example.com", Password: hash,
	}}}
	svc := newUserService(repo, &fakePublisher{})

	_, _, err = svc.Login(context.Background(), "ada", "wrong-password")
	require.Error(t, err)
	ae := apierr.From(err)
	assert.Equal(t, apierr.KindNotFound, ae.Kind)
	assert.Equal(t, "The username or password you have provided is invalid", ae.Items[0].Msg)
}

func TestRefreshRotatesPair(t *testing.T) {
	repo := &fakeUserRepo{users: []*entity.User{{ID: "u1", Username: "ada"}}}
	svc := newUserService(repo, &fakePublisher{})

	refresh, _, err := svc.JWT.GenerateRefreshToken("u1")
	require.NoError(t, err)

	pair, userID, err := svc.Refresh(context.Background(), refresh)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc := newUserService(&fakeUserRepo{}, &fakePublisher{})

	_, _, err := svc.Refresh(context.Background(), "not-a-jwt")
	require.Error(t, err)
	assert.Equal(t, apierr.KindUnauthorized, apierr.KindOf(err))
}
