package supabase

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"photo-delivery-backend/internal/models"
)

const fileColumns = "id, order_id, file_name, original_name, file_size, mime_type, download_url, folder_path, notes, uploaded_at"

// Qualified variant for joins against orders, where "id" alone is ambiguous.
const fileColumnsQualified = "f.id, f.order_id, f.file_name, f.original_name, f.file_size, f.mime_type, f.download_url, f.folder_path, f.notes, f.uploaded_at"

func scanFile(row interface{ Scan(...interface{}) error }) (*models.File, error) {
	var file models.File
	err := row.Scan(
		&file.ID, &file.OrderID, &file.FileName, &file.OriginalName,
		&file.FileSize, &file.MimeType, &file.DownloadURL,
		&file.FolderPath, &file.Notes, &file.UploadedAt,
	)
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// RegisterFile records an upload made through the storage collaborator.
// When folderPath is set, the folder must exist on the order's job so no
// file ever references a dangling path.
func (d *DatabaseClient) RegisterFile(orderID uuid.UUID, req *models.RegisterFileRequest) (*models.File, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if req.FolderPath != "" {
		var jobID uuid.NullUUID
		err = tx.QueryRow(`SELECT job_id FROM orders WHERE id = $1`, orderID).Scan(&jobID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NotFoundErrorf("order %s", orderID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to check order: %w", err)
		}
		if !jobID.Valid {
			return nil, models.ValidationErrorf("order %s has no job; folder assignment requires one", orderID)
		}

		var folderID uuid.UUID
		err = tx.QueryRow(`
			SELECT id FROM folders WHERE job_id = $1 AND folder_path = $2
		`, jobID.UUID, req.FolderPath).Scan(&folderID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NotFoundErrorf("folder %q", req.FolderPath)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to check folder: %w", err)
		}
	}

	row := tx.QueryRow(`
		INSERT INTO files (order_id, file_name, original_name, file_size, mime_type, download_url, folder_path)
		VALUES ($1, $2, $3, NULLIF($4, 0), $5, $6, NULLIF($7, ''))
		RETURNING `+fileColumns+`
	`, orderID, req.FileName, req.OriginalName, req.FileSize, req.MimeType, req.DownloadURL, req.FolderPath)

	file, err := scanFile(row)
	if err != nil {
		return nil, fmt.Errorf("failed to register file: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit file: %w", err)
	}

	return file, nil
}

func (d *DatabaseClient) GetFile(fileID uuid.UUID) (*models.File, error) {
	row := d.db.QueryRow(`
		SELECT `+fileColumns+`
		FROM files
		WHERE id = $1
	`, fileID)

	file, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFoundErrorf("file %s", fileID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return file, nil
}

// GetJobFile returns a file only if it belongs to one of the job's orders.
// Token-scoped handlers use this so a capability for one job can never
// touch another job's files.
func (d *DatabaseClient) GetJobFile(jobID, fileID uuid.UUID) (*models.File, error) {
	row := d.db.QueryRow(`
		SELECT `+fileColumnsQualified+`
		FROM files f
		JOIN orders o ON f.order_id = o.id
		WHERE f.id = $1 AND o.job_id = $2
	`, fileID, jobID)

	file, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFoundErrorf("file %s", fileID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job file: %w", err)
	}
	return file, nil
}

// GetJobFiles returns every file uploaded against the job's orders, oldest
// upload first so both projections inherit a stable base order.
func (d *DatabaseClient) GetJobFiles(jobID uuid.UUID) ([]models.File, error) {
	rows, err := d.db.Query(`
		SELECT `+fileColumnsQualified+`
		FROM files f
		JOIN orders o ON f.order_id = o.id
		WHERE o.job_id = $1
		ORDER BY f.uploaded_at ASC, f.id ASC
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job files: %w", err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, *file)
	}

	return files, rows.Err()
}

// UpdateFileNotes is the only mutation allowed on a registered file.
func (d *DatabaseClient) UpdateFileNotes(fileID, userID uuid.UUID, notes string) (*models.File, error) {
	row := d.db.QueryRow(`
		UPDATE files f
		SET notes = NULLIF($1, '')
		FROM orders o
		WHERE f.id = $2 AND f.order_id = o.id AND o.user_id = $3
		RETURNING f.id, f.order_id, f.file_name, f.original_name, f.file_size,
		          f.mime_type, f.download_url, f.folder_path, f.notes, f.uploaded_at
	`, notes, fileID, userID)

	file, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFoundErrorf("file %s", fileID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update file notes: %w", err)
	}
	return file, nil
}
