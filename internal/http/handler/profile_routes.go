package handler

import (
	"mime/multipart"
	"net/http"

	"keepnotes/internal/contract"
	"keepnotes/internal/domain/entity"
	"keepnotes/internal/utils"
	"keepnotes/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type ProfileService interface {
	GetProfile(actor *entity.User) (*contract.ProfileResponse, apierror.ErrorResponse)
	UpdateProfile(actor *entity.User, req *contract.UpdateProfileRequest, fileHeader *multipart.FileHeader) (*contract.ProfileResponse, apierror.ErrorResponse)
}

type DefaultProfileRoute struct {
	ProfileService ProfileService
}

func NewProfileDefault(profileService ProfileService) *DefaultProfileRoute {
	return &DefaultProfileRoute{ProfileService: profileService}
}

func (p *DefaultProfileRoute) GetProfile(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	resp, apierr := p.ProfileService.GetProfile(user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateProfile accepts JSON for name-only edits, or a multipart form with an
// optional "image" file part.
func (p *DefaultProfileRoute) UpdateProfile(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		fileHeader = nil
	}

	resp, apierr := p.ProfileService.UpdateProfile(user, &req, fileHeader)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}
