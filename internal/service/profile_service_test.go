package service

import (
	"testing"

	"keepnotes/internal/contract"
	"keepnotes/internal/domain/entity"
	"keepnotes/internal/infrastructure/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvisionIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice", "pw1")

	first, err := env.profiles.Provision(alice)
	require.NoError(t, err)
	second, err := env.profiles.Provision(alice)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var count int64
	env.db.Model(&entity.Profile{}).Where("user_id = ?", alice.ID).Count(&count)
	assert.EqualValues(t, 1, count, "re-provisioning must not create a duplicate profile")
}

func TestProvisionRetriesAvatarOnNextAccess(t *testing.T) {
	env := newTestEnv(t)
	env.blobs.failPut = true
	alice := env.signup(t, "alice", "pw1")

	// Signup left the profile pictureless. Once the store is back, the next
	// provisioning access fills it in.
	env.blobs.failPut = false
	profile, err := env.profiles.Provision(alice)
	require.NoError(t, err)

	assert.Equal(t, storage.PathAvatars+"alice_avatar.svg", profile.ImageKey)
	assert.Contains(t, env.blobs.objects, profile.ImageKey)
}

func TestGetProfileProvisionsLazily(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice", "pw1")

	// Drop the signup-time profile to simulate an account predating profiles.
	require.NoError(t, env.db.Where("user_id = ?", alice.ID).Delete(&entity.Profile{}).Error)

	resp, apierr := env.profiles.GetProfile(alice)
	require.Nil(t, apierr)
	assert.Equal(t, alice.ID, resp.UserID)
	assert.Equal(t, "/media/"+storage.PathAvatars+"alice_avatar.svg", resp.ImageURL)
}

func TestUpdateProfileNames(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice", "pw1")

	resp, apierr := env.profiles.UpdateProfile(alice, &contract.UpdateProfileRequest{
		FirstName: strPtr("Alice"),
		LastName:  strPtr("Doe"),
	}, nil)
	require.Nil(t, apierr)
	assert.Equal(t, "Alice", resp.FirstName)
	assert.Equal(t, "Doe", resp.LastName)

	var user entity.User
	require.NoError(t, env.db.First(&user, alice.ID).Error)
	assert.Equal(t, "Alice", user.FirstName)
	assert.Equal(t, "Doe", user.LastName)
}

func TestUpdateProfileReplacesImage(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice", "pw1")

	generatedKey := storage.PathAvatars + "alice_avatar.svg"
	require.Contains(t, env.blobs.objects, generatedKey)

	upload := makeFileHeader(t, "me.png", []byte("not really a png"))
	resp, apierr := env.profiles.UpdateProfile(alice, &contract.UpdateProfileRequest{}, upload)
	require.Nil(t, apierr)

	assert.Equal(t, "me.png", resp.ImageName)
	assert.NotContains(t, env.blobs.objects, generatedKey, "the replaced blob is cleaned up")

	var profile entity.Profile
	require.NoError(t, env.db.Where("user_id = ?", alice.ID).First(&profile).Error)
	assert.NotEqual(t, generatedKey, profile.ImageKey)
	assert.Contains(t, env.blobs.objects, profile.ImageKey)
}

func TestUpdateProfileRejectsBadUploads(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice", "pw1")

	exe := makeFileHeader(t, "malware.exe", []byte("nope"))
	_, apierr := env.profiles.UpdateProfile(alice, &contract.UpdateProfileRequest{}, exe)
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
}
