package models

// Response constructors. Handlers and projections share these so the wire
// shape of each entity is defined in exactly one place.

func NewJobResponse(job *Job) JobResponse {
	resp := JobResponse{
		ID:           job.ID.String(),
		Address:      job.Address,
		Status:       job.Status,
		CustomerName: job.CustomerName,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
	}
	if job.CustomerEmail.Valid {
		resp.CustomerEmail = job.CustomerEmail.String
	}
	if job.DeliveryToken.Valid {
		resp.DeliveryToken = job.DeliveryToken.String
	}
	return resp
}

// NewPublicJobResponse omits the delivery token: the client already holds
// it, and echoing capabilities back out is one copy too many.
func NewPublicJobResponse(job *Job) JobResponse {
	resp := NewJobResponse(job)
	resp.DeliveryToken = ""
	return resp
}

func NewOrderResponse(order *Order) OrderResponse {
	resp := OrderResponse{
		ID:                 order.ID.String(),
		Status:             order.Status,
		MaxRevisionRounds:  order.MaxRevisionRounds,
		UsedRevisionRounds: order.UsedRevisionRounds,
		RemainingRounds:    order.RemainingRevisionRounds(),
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
	if order.JobID.Valid {
		resp.JobID = order.JobID.UUID.String()
	}
	return resp
}

func NewRevisionStatus(order *Order) RevisionStatus {
	return RevisionStatus{
		OrderID:         order.ID.String(),
		MaxRounds:       order.MaxRevisionRounds,
		UsedRounds:      order.UsedRevisionRounds,
		RemainingRounds: order.RemainingRevisionRounds(),
	}
}

func NewFolderResponse(folder *Folder) FolderResponse {
	resp := FolderResponse{
		FolderPath:       folder.FolderPath,
		DisplayName:      folder.DisplayName(),
		EditorFolderName: folder.EditorFolderName,
		IsVisible:        folder.IsVisible,
		CreatedAt:        folder.CreatedAt,
	}
	if folder.PartnerFolderName.Valid {
		resp.PartnerFolderName = folder.PartnerFolderName.String
	}
	return resp
}

func NewFileResponse(file *File) FileResponse {
	resp := FileResponse{
		ID:           file.ID.String(),
		FileName:     file.FileName,
		OriginalName: file.OriginalName,
		MimeType:     file.MimeType,
		DownloadURL:  file.DownloadURL,
		UploadedAt:   file.UploadedAt,
	}
	if file.FileSize.Valid {
		resp.FileSize = file.FileSize.Int64
	}
	if file.FolderPath.Valid {
		resp.FolderPath = file.FolderPath.String
	}
	if file.Notes.Valid {
		resp.Notes = file.Notes.String
	}
	return resp
}

func NewCommentResponse(comment *FileComment) CommentResponse {
	resp := CommentResponse{
		ID:         comment.ID.String(),
		FileID:     comment.FileID.String(),
		AuthorID:   comment.AuthorID,
		AuthorName: comment.AuthorName,
		AuthorRole: comment.AuthorRole,
		Message:    comment.Message,
		CreatedAt:  comment.CreatedAt,
	}
	if comment.Status.Valid {
		resp.Status = comment.Status.String
	}
	return resp
}

func NewReviewResponse(review *ClientReview) ReviewResponse {
	resp := ReviewResponse{
		JobID:       review.JobID.String(),
		Rating:      review.Rating,
		SubmittedBy: review.SubmittedBy,
		SubmittedAt: review.SubmittedAt,
	}
	if review.Review.Valid {
		resp.Review = review.Review.String
	}
	return resp
}

func NewRevisionRequestResponse(request *RevisionRequest, order *Order) RevisionRequestResponse {
	fileIDs := make([]string, len(request.FileIDs))
	for i, id := range request.FileIDs {
		fileIDs[i] = id.String()
	}
	return RevisionRequestResponse{
		ID:              request.ID.String(),
		OrderID:         request.OrderID.String(),
		FileIDs:         fileIDs,
		Comments:        request.Comments,
		RemainingRounds: order.RemainingRevisionRounds(),
		CreatedAt:       request.CreatedAt,
	}
}
