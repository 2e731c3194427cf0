package contract

const MaxProfileImageSizeBytes = 5 * 1024 * 1024

var ValidImageFileTypes = []string{"png", "jpg", "jpeg", "webp", "gif", "svg"}

type ProfileResponse struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	ImageName string `json:"image_name,omitempty"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" form:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" form:"last_name" validate:"omitempty,max=150"`
}
