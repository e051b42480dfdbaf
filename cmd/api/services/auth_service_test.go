package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"product-compare/cmd/api/apperr"
	"product-compare/cmd/api/services/servicestest"
	"product-compare/events"
)

func newAuthFixture() (*AuthService, *servicestest.UserStore, *servicestest.SummaryStore, *servicestest.Bus) {
	users := &servicestest.UserStore{}
	summaries := &servicestest.SummaryStore{}
	bus := &servicestest.Bus{}
	return NewAuthService(users, summaries, servicestest.Tokens{}, bus, "test.topic"), users, summaries, bus
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "Kim", "Kim@Example.com", "pw1234")
	require.NoError(t, err)
	assert.Equal(t, "token-"+user.ID.Hex(), token)
	assert.NotEqual(t, "pw1234", user.PasswordHash)

	loggedIn, token, err := svc.Login(ctx, "kim@example.com", "pw1234")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Equal(t, "token-"+user.ID.Hex(), token)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "", "a@b.c", "pw")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, MsgMissingFields, apperr.PublicMessage(err, ""))

	_, _, err = svc.Register(ctx, "A", "a@b.c", "pw")
	require.NoError(t, err)
	_, _, err = svc.Register(ctx, "B", "a@b.c", "pw2")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, MsgEmailRegistered, apperr.PublicMessage(err, ""))
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "A", "a@b.c", "right")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@b.c", "wrong")
	assert.Equal(t, MsgInvalidCredentials, apperr.PublicMessage(err, ""))

	_, _, err = svc.Login(ctx, "nobody@b.c", "right")
	assert.Equal(t, MsgInvalidCredentials, apperr.PublicMessage(err, ""))

	_, _, err = svc.Login(ctx, "a@b.c", "")
	assert.Equal(t, MsgMissingFields, apperr.PublicMessage(err, ""))
}

func TestGetProfileMissingUser(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, err := svc.GetProfile(context.Background(), primitive.NewObjectID())
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, MsgUserNotExist, apperr.PublicMessage(err, ""))
}

func TestDeleteUserCascadesSummaries(t *testing.T) {
	svc, users, summaries, bus := newAuthFixture()
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "A", "a@b.c", "pw")
	require.NoError(t, err)

	an := &servicestest.Analyzer{AnalyzeResults: []servicestest.Result{{Text: "# one summary"}, {Text: "# two summary"}, {Text: "# other summary"}}}
	summarySvc := NewSummaryService(summaries, an, &servicestest.Extractor{}, bus, "test.topic")
	_, err = summarySvc.CreateSummary(ctx, user.ID, "one")
	require.NoError(t, err)
	_, err = summarySvc.CreateSummary(ctx, user.ID, "two")
	require.NoError(t, err)
	stranger := primitive.NewObjectID()
	_, err = summarySvc.CreateSummary(ctx, stranger, "other")
	require.NoError(t, err)

	deleted, err := svc.DeleteUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	left, err := summarySvc.ListSummaries(ctx, user.ID, "")
	require.NoError(t, err)
	assert.Empty(t, left)
	strangers, err := summarySvc.ListSummaries(ctx, stranger, "")
	require.NoError(t, err)
	assert.Len(t, strangers, 1)

	_, err = users.FindByID(ctx, user.ID)
	assert.Error(t, err)
	assert.Contains(t, bus.Types(), string(events.UserDeleted))

	_, err = svc.DeleteUser(ctx, user.ID)
	assert.Equal(t, MsgUserNotExist, apperr.PublicMessage(err, ""))
}
