package models

type User struct {
	ID               string  `json:"_id"`
	Username         string  `json:"username"`
	Email            string  `json:"email"`
	College          string  `json:"college"`
	Role             string  `json:"role,omitempty"`
	ProfilePhotoPath *string `json:"profilePhotoPath,omitempty"`
	Bio              *string `json:"description,omitempty"`
	Stars            int     `json:"stars"`
	Semester         *int    `json:"semester,omitempty"`
}
