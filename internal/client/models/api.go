package models

// Request payloads.

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	College  string `json:"college"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries a partial update: nil fields are omitted from
// the JSON body and left untouched by the server.
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	College  *string `json:"college,omitempty"`
	Bio      *string `json:"description,omitempty"`
	Semester *int    `json:"semester,omitempty"`
}

// Response envelopes. Every backend reply carries a success flag and, on
// failure, a human-readable message.

type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
	Message string `json:"message"`
}

type NotesResponse struct {
	Success bool   `json:"success"`
	Notes   []Note `json:"notes"`
}

// NoteDetailsResponse returns one note plus two URL lists index-aligned
// with the note's attachments.
type NoteDetailsResponse struct {
	Success      bool     `json:"success"`
	Note         Note     `json:"note"`
	DownloadURLs []string `json:"downloadUrls"`
	ViewURLs     []string `json:"viewUrls"`
}

type StarResponse struct {
	Success bool   `json:"success"`
	Note    *Note  `json:"note"`
	Message string `json:"message"`
}

type ProfileResponse struct {
	Success bool   `json:"success"`
	User    *User  `json:"user"`
	Message string `json:"message"`
}

type ProfilePhotoResponse struct {
	Success          bool    `json:"success"`
	Message          string  `json:"message"`
	ProfilePhotoPath *string `json:"profilePhotoPath"`
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
