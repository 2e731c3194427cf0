package service

import (
	"time"

	"keepnotes/internal/contract"
	"keepnotes/internal/domain/entity"
	"keepnotes/internal/utils"
	"keepnotes/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

const sessionValidity = 24 * time.Hour

type UserRepository interface {
	FindByID(id int64) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	ExistsByUsername(username string) (bool, error)
	Save(user *entity.User) error
}

type AuthService struct {
	UserRepo UserRepository
	Profiles *ProfileService
	Validate *validator.Validate
}

func NewAuthService(userRepo UserRepository, profiles *ProfileService, validate *validator.Validate) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Profiles: profiles,
		Validate: validate,
	}
}

// Signup creates the user, provisions their profile and signs them in, all in
// one call. The profile/avatar step is best effort and never fails a signup.
func (a *AuthService) Signup(req *contract.SignupRequest) (*contract.SessionResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := a.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	taken, err := a.UserRepo.ExistsByUsername(req.Username)
	if err != nil {
		log.Errorf("failed to check if username is taken: %v", err)
		return nil, apierror.InternalServerError
	}

	if taken {
		return nil, apierror.NewUsernameTakenError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	user := &entity.User{
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err = a.UserRepo.Save(user); err != nil {
		log.Errorf("failed to create user: %v", err)
		return nil, apierror.InternalServerError
	}

	// Synchronous, best effort. The error is deliberately only logged: the
	// account exists and must stay usable even with no profile picture.
	if _, perr := a.Profiles.Provision(user); perr != nil {
		log.Errorf("failed to provision profile for user %d: %v", user.ID, perr)
	}

	return a.startSession(user)
}

// Login verifies the credentials. Unknown usernames and wrong passwords
// produce the same answer.
func (a *AuthService) Login(req *contract.LoginRequest) (*contract.SessionResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := a.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	user, err := a.UserRepo.FindByUsername(req.Username)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return nil, apierror.InternalServerError
	}

	if user == nil {
		return nil, apierror.CredentialsMismatchError
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apierror.CredentialsMismatchError
	}

	return a.startSession(user)
}

func (a *AuthService) startSession(user *entity.User) (*contract.SessionResponse, apierror.ErrorResponse) {
	token, err := utils.IssueToken(user.ID, sessionValidity)
	if err != nil {
		log.Errorf("failed to issue session token for user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	return &contract.SessionResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func toUserResponse(user *entity.User) *contract.UserResponse {
	return &contract.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: utils.FormatEpoch(user.CreatedAt),
		UpdatedAt: utils.FormatEpoch(user.UpdatedAt),
	}
}
