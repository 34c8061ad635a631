package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type JobResponse struct {
	ID            string    `json:"job_id"`
	Address       string    `json:"address"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	DeliveryToken string    `json:"delivery_token,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type JobListResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

type OrderResponse struct {
	ID                 string    `json:"order_id"`
	JobID              string    `json:"job_id,omitempty"`
	Status             string    `json:"status"`
	MaxRevisionRounds  int       `json:"max_revision_rounds"`
	UsedRevisionRounds int       `json:"used_revision_rounds"`
	RemainingRounds    int       `json:"remaining_rounds"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// RevisionStatus is the per-order ledger summary on the delivery payload.
type RevisionStatus struct {
	OrderID         string `json:"order_id"`
	MaxRounds       int    `json:"max_rounds"`
	UsedRounds      int    `json:"used_rounds"`
	RemainingRounds int    `json:"remaining_rounds"`
}

type FolderResponse struct {
	FolderPath        string    `json:"folder_path"`
	DisplayName       string    `json:"display_name"`
	EditorFolderName  string    `json:"editor_folder_name"`
	PartnerFolderName string    `json:"partner_folder_name,omitempty"`
	IsVisible         bool      `json:"is_visible"`
	CreatedAt         time.Time `json:"created_at"`
}

type FolderListResponse struct {
	Folders []FolderResponse `json:"folders"`
}

type FileResponse struct {
	ID           string    `json:"id"`
	FileName     string    `json:"file_name"`
	OriginalName string    `json:"original_name"`
	FileSize     int64     `json:"file_size"`
	MimeType     string    `json:"mime_type"`
	DownloadURL  string    `json:"download_url"`
	FolderPath   string    `json:"folder_path,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// FolderGroup is one entry of the by-folder view.
type FolderGroup struct {
	Folder FolderResponse `json:"folder"`
	Files  []FileResponse `json:"files"`
}

// OrderGroup is one entry of the by-order view.
type OrderGroup struct {
	OrderID string         `json:"order_id"`
	Files   []FileResponse `json:"files"`
}

type DeliveryResponse struct {
	Job            JobResponse      `json:"job"`
	CompletedFiles []FileResponse   `json:"completed_files"`
	Folders        []FolderGroup    `json:"folders"`
	Orders         []OrderGroup     `json:"orders"`
	RevisionStatus []RevisionStatus `json:"revision_status"`
	JobReview      *ReviewResponse  `json:"job_review,omitempty"`
}

// DeliverablesResponse is the internal dashboard view: both projections,
// invisible folders included.
type DeliverablesResponse struct {
	Folders []FolderGroup `json:"folders"`
	Orders  []OrderGroup  `json:"orders"`
}

type RevisionRequestResponse struct {
	ID              string    `json:"id"`
	OrderID         string    `json:"order_id"`
	FileIDs         []string  `json:"file_ids"`
	Comments        string    `json:"comments"`
	RemainingRounds int       `json:"remaining_rounds"`
	CreatedAt       time.Time `json:"created_at"`
}

type CommentResponse struct {
	ID         string    `json:"id"`
	FileID     string    `json:"file_id"`
	AuthorID   string    `json:"author_id,omitempty"`
	AuthorName string    `json:"author_name"`
	AuthorRole string    `json:"author_role"`
	Message    string    `json:"message"`
	Status     string    `json:"status,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type CommentListResponse struct {
	Comments      []CommentResponse `json:"comments"`
	HasUnresolved bool              `json:"has_unresolved"`
}

type ReviewResponse struct {
	JobID       string    `json:"job_id"`
	Rating      int       `json:"rating"`
	Review      string    `json:"review,omitempty"`
	SubmittedBy string    `json:"submitted_by"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type DeliveryLinkResponse struct {
	JobID         string `json:"job_id"`
	DeliveryToken string `json:"delivery_token"`
	DeliveryURL   string `json:"delivery_url"`
	Status        string `json:"status"`
}

type PartnerSettingsResponse struct {
	DefaultRevisionRounds int       `json:"default_revision_rounds"`
	UpdatedAt             time.Time `json:"updated_at"`
}
