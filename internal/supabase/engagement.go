package supabase

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"photo-delivery-backend/internal/models"
)

const commentColumns = "id, file_id, author_id, author_name, author_role, message, status, created_at"

func scanComment(row interface{ Scan(...interface{}) error }) (*models.FileComment, error) {
	var comment models.FileComment
	err := row.Scan(
		&comment.ID, &comment.FileID, &comment.AuthorID, &comment.AuthorName,
		&comment.AuthorRole, &comment.Message, &comment.Status, &comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// CreateFileComment appends to a file's thread. Threads are append-only;
// only the status field may change later.
func (d *DatabaseClient) CreateFileComment(fileID uuid.UUID, authorID, authorName, authorRole, message string) (*models.FileComment, error) {
	row := d.db.QueryRow(`
		INSERT INTO file_comments (file_id, author_id, author_name, author_role, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+commentColumns+`
	`, fileID, authorID, authorName, authorRole, message)

	comment, err := scanComment(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// GetFileComments returns the thread ascending by creation time.
func (d *DatabaseClient) GetFileComments(fileID uuid.UUID) ([]models.FileComment, error) {
	rows, err := d.db.Query(`
		SELECT `+commentColumns+`
		FROM file_comments
		WHERE file_id = $1
		ORDER BY created_at ASC, id ASC
	`, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.FileComment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, *comment)
	}

	return comments, rows.Err()
}

// UpdateCommentStatus moves a comment between open, in_progress and
// resolved, scoped to the partner owning the underlying order.
func (d *DatabaseClient) UpdateCommentStatus(commentID, userID uuid.UUID, status string) (*models.FileComment, error) {
	row := d.db.QueryRow(`
		UPDATE file_comments c
		SET status = $1
		FROM files f
		JOIN orders o ON f.order_id = o.id
		WHERE c.id = $2 AND c.file_id = f.id AND o.user_id = $3
		RETURNING c.id, c.file_id, c.author_id, c.author_name, c.author_role, c.message, c.status, c.created_at
	`, status, commentID, userID)

	comment, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFoundErrorf("comment %s", commentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update comment status: %w", err)
	}
	return comment, nil
}

const reviewColumns = "job_id, rating, review, submitted_by, submitted_by_email, submitted_at"

func scanReview(row interface{ Scan(...interface{}) error }) (*models.ClientReview, error) {
	var review models.ClientReview
	err := row.Scan(
		&review.JobID, &review.Rating, &review.Review,
		&review.SubmittedBy, &review.SubmittedByEmail, &review.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// UpsertClientReview keeps at most one review per job: a second submission
// replaces rating, text and timestamp instead of inserting a new row.
func (d *DatabaseClient) UpsertClientReview(jobID uuid.UUID, rating int, reviewText, submittedBy, submittedByEmail string) (*models.ClientReview, error) {
	row := d.db.QueryRow(`
		INSERT INTO client_reviews (job_id, rating, review, submitted_by, submitted_by_email, submitted_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NOW())
		ON CONFLICT (job_id) DO UPDATE
		SET rating = EXCLUDED.rating,
		    review = EXCLUDED.review,
		    submitted_by = EXCLUDED.submitted_by,
		    submitted_by_email = EXCLUDED.submitted_by_email,
		    submitted_at = NOW()
		RETURNING `+reviewColumns+`
	`, jobID, rating, reviewText, submittedBy, submittedByEmail)

	review, err := scanReview(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert review: %w", err)
	}
	return review, nil
}

// GetClientReview returns nil without error when the job has no review yet.
func (d *DatabaseClient) GetClientReview(jobID uuid.UUID) (*models.ClientReview, error) {
	row := d.db.QueryRow(`
		SELECT `+reviewColumns+`
		FROM client_reviews
		WHERE job_id = $1
	`, jobID)

	review, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}
