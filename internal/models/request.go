package models

import (
	"strings"
)

type CreateJobRequest struct {
	Address       string `json:"address" example:"12 Harbour View Rd"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email,omitempty"`
	// Status defaults to "booked" when omitted
	Status string `json:"status,omitempty"`
}

func (r *CreateJobRequest) Validate() error {
	if strings.TrimSpace(r.Address) == "" {
		return ValidationErrorf("address is required")
	}
	if strings.TrimSpace(r.CustomerName) == "" {
		return ValidationErrorf("customer_name is required")
	}
	if r.Status != "" && !IsValidJobStatus(r.Status) {
		return ValidationErrorf("unknown job status %q", r.Status)
	}
	return nil
}

type CreateOrderRequest struct {
	// JobID is optional - an order may exist before it is attached to a job
	JobID string `json:"job_id,omitempty"`
	// MaxRevisionRounds falls back to the partner's default when omitted
	MaxRevisionRounds *int   `json:"max_revision_rounds,omitempty" example:"2"`
	Status            string `json:"status,omitempty"`
}

func (r *CreateOrderRequest) Validate() error {
	if r.MaxRevisionRounds != nil && *r.MaxRevisionRounds < 0 {
		return ValidationErrorf("max_revision_rounds must be non-negative")
	}
	return nil
}

type UpdateRevisionSettingsRequest struct {
	MaxRevisionRounds int `json:"max_revision_rounds"`
}

func (r *UpdateRevisionSettingsRequest) Validate() error {
	if r.MaxRevisionRounds < 0 {
		return ValidationErrorf("max_revision_rounds must be non-negative")
	}
	return nil
}

type CreateFolderRequest struct {
	// ParentPath empty means a root-level folder
	ParentPath string `json:"parent_path,omitempty" example:"Photos"`
	Name       string `json:"name" example:"High Res"`
}

type UpdateFolderRequest struct {
	FolderPath string `json:"folder_path" example:"Photos/High Res"`
	// PartnerFolderName renames the display alias; folder_path never changes
	PartnerFolderName *string `json:"partner_folder_name,omitempty"`
	IsVisible         *bool   `json:"is_visible,omitempty"`
}

func (r *UpdateFolderRequest) Validate() error {
	if strings.TrimSpace(r.FolderPath) == "" {
		return ValidationErrorf("folder_path is required")
	}
	if r.PartnerFolderName == nil && r.IsVisible == nil {
		return ValidationErrorf("nothing to update")
	}
	if r.PartnerFolderName != nil && strings.TrimSpace(*r.PartnerFolderName) == "" {
		return ValidationErrorf("partner_folder_name must not be empty")
	}
	return nil
}

type RegisterFileRequest struct {
	FileName     string `json:"file_name"`
	OriginalName string `json:"original_name"`
	FileSize     int64  `json:"file_size,omitempty"`
	MimeType     string `json:"mime_type"`
	// DownloadURL comes from the storage collaborator; only non-emptiness
	// is checked here
	DownloadURL string `json:"download_url"`
	FolderPath  string `json:"folder_path,omitempty"`
}

func (r *RegisterFileRequest) Validate() error {
	if strings.TrimSpace(r.FileName) == "" {
		return ValidationErrorf("file_name is required")
	}
	if strings.TrimSpace(r.DownloadURL) == "" {
		return ValidationErrorf("download_url is required")
	}
	return nil
}

type UpdateFileNotesRequest struct {
	Notes string `json:"notes"`
}

type RevisionRequestInput struct {
	OrderID  string   `json:"order_id"`
	FileIDs  []string `json:"file_ids"`
	Comments string   `json:"comments"`
}

func (r *RevisionRequestInput) Validate() error {
	if strings.TrimSpace(r.OrderID) == "" {
		return ValidationErrorf("order_id is required")
	}
	if len(r.FileIDs) == 0 {
		return ValidationErrorf("at least one file must be selected")
	}
	if len(strings.TrimSpace(r.Comments)) < MinRevisionCommentLength {
		return ValidationErrorf("comments must be at least %d characters", MinRevisionCommentLength)
	}
	return nil
}

type CreateCommentRequest struct {
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
	AuthorRole string `json:"author_role" example:"client"`
	Message    string `json:"message"`
}

func (r *CreateCommentRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return ValidationErrorf("message must not be empty")
	}
	if strings.TrimSpace(r.AuthorName) == "" {
		return ValidationErrorf("author_name is required")
	}
	if !IsValidAuthorRole(r.AuthorRole) {
		return ValidationErrorf("unknown author role %q", r.AuthorRole)
	}
	return nil
}

type UpdateCommentStatusRequest struct {
	Status string `json:"status" example:"resolved"`
}

func (r *UpdateCommentStatusRequest) Validate() error {
	if !IsValidCommentStatus(r.Status) {
		return ValidationErrorf("unknown comment status %q", r.Status)
	}
	return nil
}

type SubmitReviewRequest struct {
	Rating           int    `json:"rating" example:"5"`
	Review           string `json:"review,omitempty"`
	SubmittedBy      string `json:"submitted_by"`
	SubmittedByEmail string `json:"submitted_by_email,omitempty"`
}

func (r *SubmitReviewRequest) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ValidationErrorf("rating must be between 1 and 5")
	}
	if len(r.Review) > MaxReviewLength {
		return ValidationErrorf("review must be at most %d characters", MaxReviewLength)
	}
	if strings.TrimSpace(r.SubmittedBy) == "" {
		return ValidationErrorf("submitted_by is required")
	}
	return nil
}

type UpdatePartnerSettingsRequest struct {
	DefaultRevisionRounds int `json:"default_revision_rounds"`
}

func (r *UpdatePartnerSettingsRequest) Validate() error {
	if r.DefaultRevisionRounds < 0 {
		return ValidationErrorf("default_revision_rounds must be non-negative")
	}
	return nil
}
