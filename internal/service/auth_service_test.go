package service

import (
	"testing"

	"keepnotes/internal/contract"
	"keepnotes/internal/domain/entity"
	"keepnotes/internal/infrastructure/storage"
	"keepnotes/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupCreatesUserAndProfile(t *testing.T) {
	env := newTestEnv(t)

	session, apierr := env.auth.Signup(&contract.SignupRequest{
		Username:  "alice",
		Password:  "pw1",
		Password2: "pw1",
		FirstName: "Alice",
		LastName:  "Doe",
	})
	require.Nil(t, apierr)
	require.NotEmpty(t, session.Token)
	assert.Equal(t, "alice", session.User.Username)

	// The caller leaves authenticated.
	tokenData, err := utils.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, tokenData.UserID)

	var userCount, profileCount int64
	env.db.Model(&entity.User{}).Where("username = ?", "alice").Count(&userCount)
	env.db.Model(&entity.Profile{}).Where("user_id = ?", session.User.ID).Count(&profileCount)
	assert.EqualValues(t, 1, userCount)
	assert.EqualValues(t, 1, profileCount)

	// The generated avatar landed in the blob store under the seed's name.
	var profile entity.Profile
	require.NoError(t, env.db.Where("user_id = ?", session.User.ID).First(&profile).Error)
	assert.Equal(t, storage.PathAvatars+"alice_avatar.svg", profile.ImageKey)
	assert.Contains(t, env.blobs.objects, profile.ImageKey)

	// The password is never stored in the clear.
	var user entity.User
	require.NoError(t, env.db.First(&user, session.User.ID).Error)
	assert.NotEqual(t, "pw1", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestSignupPasswordMismatchCreatesNothing(t *testing.T) {
	env := newTestEnv(t)

	_, apierr := env.auth.Signup(&contract.SignupRequest{
		Username:  "alice",
		Password:  "pw1",
		Password2: "different",
	})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())

	var count int64
	env.db.Model(&entity.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestSignupMissingFieldsAreRejected(t *testing.T) {
	env := newTestEnv(t)

	_, apierr := env.auth.Signup(&contract.SignupRequest{Username: "alice"})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())

	_, apierr = env.auth.Signup(&contract.SignupRequest{Password: "pw1", Password2: "pw1"})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
}

func TestSignupDuplicateUsernameKeepsExistingUser(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice", "pw1")

	_, apierr := env.auth.Signup(&contract.SignupRequest{
		Username:  "alice",
		Password:  "other",
		Password2: "other",
	})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())

	var count int64
	env.db.Model(&entity.User{}).Where("username = ?", "alice").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSignupSucceedsWhenAvatarStorageIsDown(t *testing.T) {
	env := newTestEnv(t)
	env.blobs.failPut = true

	session, apierr := env.auth.Signup(&contract.SignupRequest{
		Username:  "alice",
		Password:  "pw1",
		Password2: "pw1",
	})
	require.Nil(t, apierr, "avatar failures must never block account creation")
	require.NotEmpty(t, session.Token)

	// The profile row exists, just without a picture.
	var profile entity.Profile
	require.NoError(t, env.db.Where("user_id = ?", session.User.ID).First(&profile).Error)
	assert.Empty(t, profile.ImageKey)
}

func TestLoginWithValidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice", "pw1")

	session, apierr := env.auth.Login(&contract.LoginRequest{Username: "alice", Password: "pw1"})
	require.Nil(t, apierr)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "alice", session.User.Username)
}

func TestLoginRejectsBadCredentialsUniformly(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice", "pw1")

	_, wrongPwd := env.auth.Login(&contract.LoginRequest{Username: "alice", Password: "nope"})
	require.NotNil(t, wrongPwd)

	_, unknownUser := env.auth.Login(&contract.LoginRequest{Username: "nobody", Password: "pw1"})
	require.NotNil(t, unknownUser)

	// Wrong password and unknown username must be indistinguishable.
	assert.Equal(t, wrongPwd, unknownUser)
}
