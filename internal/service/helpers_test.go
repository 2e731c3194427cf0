package service

import (
	"bytes"
	"errors"
	"mime/multipart"
	"testing"

	"keepnotes/internal/contract"
	"keepnotes/internal/domain/entity"
	"keepnotes/internal/domain/sqlite"
	"keepnotes/internal/domain/sqlite/repository"
	"keepnotes/internal/utils"
	"keepnotes/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memBlobStore is an in-memory BlobStore. With failPut set it refuses every
// upload, simulating an unreachable media store.
type memBlobStore struct {
	objects map[string][]byte
	failPut bool
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{objects: map[string][]byte{}}
}

func (m *memBlobStore) Put(data []byte, key string) (string, error) {
	if m.failPut {
		return "", errors.New("blob store unavailable")
	}
	m.objects[key] = data
	return key, nil
}

func (m *memBlobStore) Delete(key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memBlobStore) URL(key string) string {
	return "/media/" + key
}

type testEnv struct {
	db       *gorm.DB
	blobs    *memBlobStore
	notes    *DefaultNoteService
	auth     *AuthService
	profiles *ProfileService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	require.NoError(t, utils.InitJWT("test-secret"))

	db, err := sqlite.Init(":memory:")
	require.NoError(t, err)

	validate := validator.New()
	require.NoError(t, validate.RegisterValidation("nospaces", validators.NoWhiteSpaces))

	noteRepo := repository.NewNoteRepository(db)
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	blobs := newMemBlobStore()
	profiles := NewProfileService(profileRepo, userRepo, blobs, validate)

	return &testEnv{
		db:       db,
		blobs:    blobs,
		notes:    NewNoteService(noteRepo, validate),
		auth:     NewAuthService(userRepo, profiles, validate),
		profiles: profiles,
	}
}

func (e *testEnv) signup(t *testing.T, username, password string) *entity.User {
	t.Helper()
	session, apierr := e.auth.Signup(&contract.SignupRequest{
		Username:  username,
		Password:  password,
		Password2: password,
	})
	require.Nil(t, apierr)
	require.NotEmpty(t, session.Token)

	var user entity.User
	require.NoError(t, e.db.Where("username = ?", username).First(&user).Error)
	return &user
}

func (e *testEnv) createNote(t *testing.T, owner *entity.User, title, content string) *contract.NoteResponse {
	t.Helper()
	note, apierr := e.notes.CreateNote(owner, &contract.CreateNoteRequest{
		Title:   title,
		Content: strPtr(content),
	})
	require.Nil(t, apierr)
	return note
}

func (e *testEnv) noteByID(t *testing.T, id int64) *entity.Note {
	t.Helper()
	var note entity.Note
	require.NoError(t, e.db.First(&note, id).Error)
	return &note
}

func strPtr(s string) *string {
	return &s
}

func makeFileHeader(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(int64(len(data)) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}
