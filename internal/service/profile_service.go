package service

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"keepnotes/internal/avatar"
	"keepnotes/internal/contract"
	"keepnotes/internal/domain/entity"
	"keepnotes/internal/infrastructure/storage"
	"keepnotes/internal/utils"
	"keepnotes/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type ProfileRepository interface {
	FindByUserID(userID int64) (*entity.Profile, error)
	Save(profile *entity.Profile) error
}

type ProfileService struct {
	ProfileRepo ProfileRepository
	UserRepo    UserRepository
	Blobs       storage.BlobStore
	Validate    *validator.Validate
}

func NewProfileService(
	profileRepo ProfileRepository,
	userRepo UserRepository,
	blobs storage.BlobStore,
	validate *validator.Validate,
) *ProfileService {
	return &ProfileService{
		ProfileRepo: profileRepo,
		UserRepo:    userRepo,
		Blobs:       blobs,
		Validate:    validate,
	}
}

// Provision returns the user's profile, creating it on first call. Calling it
// again for the same user is a no-op lookup, never a duplicate row.
//
// A profile with no image gets the generated avatar attached. That step is
// best effort: on failure the profile simply stays pictureless and the error
// goes to the log only.
func (p *ProfileService) Provision(user *entity.User) (*entity.Profile, error) {
	profile, err := p.ProfileRepo.FindByUserID(user.ID)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		now := utils.NowUTC()
		profile = &entity.Profile{
			UserID:    user.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err = p.ProfileRepo.Save(profile); err != nil {
			return nil, err
		}
	}

	if profile.ImageKey == "" {
		if aerr := p.attachGeneratedAvatar(user, profile); aerr != nil {
			log.Errorf("failed to attach generated avatar for user %d: %v", user.ID, aerr)
		}
	}
	return profile, nil
}

// GetProfile resolves the actor's own profile, provisioning it lazily when it
// does not exist yet.
func (p *ProfileService) GetProfile(actor *entity.User) (*contract.ProfileResponse, apierror.ErrorResponse) {
	profile, err := p.Provision(actor)
	if err != nil {
		log.Errorf("failed to fetch profile for user %d: %v", actor.ID, err)
		return nil, apierror.InternalServerError
	}
	return p.toProfileResponse(actor, profile), nil
}

// UpdateProfile edits the display names and, when a file is supplied,
// replaces the profile image with the upload.
func (p *ProfileService) UpdateProfile(actor *entity.User, req *contract.UpdateProfileRequest, fileHeader *multipart.FileHeader) (*contract.ProfileResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := p.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	profile, err := p.Provision(actor)
	if err != nil {
		log.Errorf("failed to fetch profile for user %d: %v", actor.ID, err)
		return nil, apierror.InternalServerError
	}

	dirty := false
	if req.FirstName != nil {
		actor.FirstName = *req.FirstName
		dirty = true
	}
	if req.LastName != nil {
		actor.LastName = *req.LastName
		dirty = true
	}

	if dirty {
		actor.UpdatedAt = utils.NowUTC()
		if err = p.UserRepo.Save(actor); err != nil {
			log.Errorf("failed to update user %d: %v", actor.ID, err)
			return nil, apierror.InternalServerError
		}
	}

	if fileHeader != nil {
		if apierr := p.replaceProfileImage(profile, fileHeader); apierr != nil {
			return nil, apierr
		}
	}
	return p.toProfileResponse(actor, profile), nil
}

func (p *ProfileService) replaceProfileImage(profile *entity.Profile, fileHeader *multipart.FileHeader) apierror.ErrorResponse {
	if apierr := checkProfileImage(fileHeader); apierr != nil {
		return apierr
	}

	data, apierr := readImageFile(fileHeader)
	if apierr != nil {
		return apierr
	}

	ext := filepath.Ext(fileHeader.Filename)
	key, err := p.Blobs.Put(data, storage.PathAvatars+uuid.NewString()+ext)
	if err != nil {
		log.Errorf("failed to store profile image: %v", err)
		return apierror.InternalServerError
	}

	// The previous blob is already unreferenced; a failed cleanup only
	// leaks storage, so it must not fail the request.
	if profile.ImageKey != "" && profile.ImageKey != key {
		if derr := p.Blobs.Delete(profile.ImageKey); derr != nil {
			log.Warnf("failed to delete old profile image %s: %v", profile.ImageKey, derr)
		}
	}

	profile.ImageKey = key
	profile.ImageName = fileHeader.Filename
	profile.UpdatedAt = utils.NowUTC()

	if err = p.ProfileRepo.Save(profile); err != nil {
		log.Errorf("failed to save profile %d: %v", profile.ID, err)
		return apierror.InternalServerError
	}
	return nil
}

func (p *ProfileService) attachGeneratedAvatar(user *entity.User, profile *entity.Profile) error {
	hint := user.FirstName
	if hint == "" {
		hint = user.Username
	}

	av, err := avatar.Generate(user.Username, hint)
	if err != nil {
		return err
	}

	key, err := p.Blobs.Put(av.Bytes, storage.PathAvatars+av.Filename)
	if err != nil {
		return err
	}

	profile.ImageKey = key
	profile.ImageName = av.Filename
	profile.UpdatedAt = utils.NowUTC()
	return p.ProfileRepo.Save(profile)
}

func (p *ProfileService) toProfileResponse(user *entity.User, profile *entity.Profile) *contract.ProfileResponse {
	resp := &contract.ProfileResponse{
		UserID:    user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		ImageName: profile.ImageName,
	}

	if profile.ImageKey != "" {
		resp.ImageURL = p.Blobs.URL(profile.ImageKey)
	}
	return resp
}

func checkProfileImage(fileHeader *multipart.FileHeader) apierror.ErrorResponse {
	if fileHeader.Size > contract.MaxProfileImageSizeBytes {
		return apierror.NewImageTooLargeError(contract.MaxProfileImageSizeBytes)
	}

	if strings.TrimSpace(fileHeader.Filename) == "" {
		return apierror.MissingImageFileError
	}

	if ext, ok := utils.CheckFileExt(fileHeader.Filename, contract.ValidImageFileTypes); !ok {
		return apierror.NewInvalidFileExtError(ext)
	}
	return nil
}

func readImageFile(fileHeader *multipart.FileHeader) ([]byte, apierror.ErrorResponse) {
	file, err := fileHeader.Open()
	if err != nil {
		log.Errorf("failed to open file: %v", err)
		return nil, apierror.InternalServerError
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("failed to read file: %v", err)
		return nil, apierror.InternalServerError
	}
	return data, nil
}
