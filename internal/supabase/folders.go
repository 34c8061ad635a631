package supabase

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"photo-delivery-backend/internal/folderpath"
	"photo-delivery-backend/internal/models"
)

const folderColumns = "id, job_id, folder_path, editor_folder_name, partner_folder_name, is_visible, created_at, updated_at"

func scanFolder(row interface{ Scan(...interface{}) error }) (*models.Folder, error) {
	var folder models.Folder
	err := row.Scan(
		&folder.ID, &folder.JobID, &folder.FolderPath,
		&folder.EditorFolderName, &folder.PartnerFolderName,
		&folder.IsVisible, &folder.CreatedAt, &folder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// CreateFolder inserts one folder node. The parent must already exist
// unless the new folder sits at depth 1; a sibling with the same resulting
// path fails with ErrDuplicateFolder. Parent check and insert share one
// transaction so a concurrent parent delete cannot orphan the new node.
func (d *DatabaseClient) CreateFolder(jobID uuid.UUID, parentPath, name string) (*models.Folder, error) {
	path, err := folderpath.Join(parentPath, name)
	if err != nil {
		return nil, models.ValidationErrorf("invalid folder name %q", name)
	}
	// Store the same trimmed form Join put into the path, so the editor
	// name always equals the path's last segment.
	name = strings.TrimSpace(name)

	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if !folderpath.IsRoot(path) {
		parent, err := folderpath.Parent(path)
		if err != nil {
			return nil, models.ValidationErrorf("invalid folder path %q", path)
		}

		var parentID uuid.UUID
		err = tx.QueryRow(`
			SELECT id FROM folders WHERE job_id = $1 AND folder_path = $2
		`, jobID, parent).Scan(&parentID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NotFoundErrorf("parent folder %q", parent)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to check parent folder: %w", err)
		}
	}

	row := tx.QueryRow(`
		INSERT INTO folders (job_id, folder_path, editor_folder_name)
		VALUES ($1, $2, $3)
		RETURNING `+folderColumns+`
	`, jobID, path, name)

	folder, err := scanFolder(row)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %q", models.ErrDuplicateFolder, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit folder: %w", err)
	}

	return folder, nil
}

func (d *DatabaseClient) GetFolder(jobID uuid.UUID, path string) (*models.Folder, error) {
	row := d.db.QueryRow(`
		SELECT `+folderColumns+`
		FROM folders
		WHERE job_id = $1 AND folder_path = $2
	`, jobID, path)

	folder, err := scanFolder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFoundErrorf("folder %q", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}
	return folder, nil
}

// UpdateFolder applies a display rename and/or visibility toggle as one
// statement, so a request carrying both can never half-apply. folder_path
// is identity and never changes, so no file row needs re-keying. Nil
// pointers leave the corresponding column untouched.
func (d *DatabaseClient) UpdateFolder(jobID uuid.UUID, path string, partnerFolderName *string, isVisible *bool) (*models.Folder, error) {
	row := d.db.QueryRow(`
		UPDATE folders
		SET partner_folder_name = COALESCE($1, partner_folder_name),
		    is_visible = COALESCE($2, is_visible),
		    updated_at = NOW()
		WHERE job_id = $3 AND folder_path = $4
		RETURNING `+folderColumns+`
	`, partnerFolderName, isVisible, jobID, path)

	folder, err := scanFolder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFoundErrorf("folder %q", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update folder: %w", err)
	}
	return folder, nil
}

// DeleteFolderTree removes the folder, every descendant folder and all of
// their files in a single transaction. It returns the storage keys of the
// deleted files so the caller can clean up object storage after commit.
func (d *DatabaseClient) DeleteFolderTree(jobID uuid.UUID, path string) ([]string, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var folderID uuid.UUID
	err = tx.QueryRow(`
		SELECT id FROM folders WHERE job_id = $1 AND folder_path = $2
	`, jobID, path).Scan(&folderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFoundErrorf("folder %q", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find folder: %w", err)
	}

	// Files first, while the folder rows still pin the paths
	rows, err := tx.Query(`
		DELETE FROM files f
		USING orders o
		WHERE f.order_id = o.id
		  AND o.job_id = $1
		  AND (f.folder_path = $2 OR starts_with(f.folder_path, $2 || '/'))
		RETURNING f.file_name
	`, jobID, path)
	if err != nil {
		return nil, fmt.Errorf("failed to delete folder files: %w", err)
	}

	var deletedFileNames []string
	for rows.Next() {
		var fileName string
		if err := rows.Scan(&fileName); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan deleted file: %w", err)
		}
		deletedFileNames = append(deletedFileNames, fileName)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read deleted files: %w", err)
	}

	_, err = tx.Exec(`
		DELETE FROM folders
		WHERE job_id = $1
		  AND (folder_path = $2 OR starts_with(folder_path, $2 || '/'))
	`, jobID, path)
	if err != nil {
		return nil, fmt.Errorf("failed to delete folders: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit folder delete: %w", err)
	}

	return deletedFileNames, nil
}

// ListChildFolders returns direct children only; an empty parentPath lists
// the root-level folders.
func (d *DatabaseClient) ListChildFolders(jobID uuid.UUID, parentPath string) ([]models.Folder, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if parentPath == "" {
		rows, err = d.db.Query(`
			SELECT `+folderColumns+`
			FROM folders
			WHERE job_id = $1 AND strpos(folder_path, '/') = 0
			ORDER BY folder_path ASC
		`, jobID)
	} else {
		rows, err = d.db.Query(`
			SELECT `+folderColumns+`
			FROM folders
			WHERE job_id = $1
			  AND starts_with(folder_path, $2 || '/')
			  AND strpos(substr(folder_path, char_length($2) + 2), '/') = 0
			ORDER BY folder_path ASC
		`, jobID, parentPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list child folders: %w", err)
	}
	defer rows.Close()

	return collectFolders(rows)
}

// ListDescendantFolders returns every folder beneath ancestorPath, any depth.
func (d *DatabaseClient) ListDescendantFolders(jobID uuid.UUID, ancestorPath string) ([]models.Folder, error) {
	rows, err := d.db.Query(`
		SELECT `+folderColumns+`
		FROM folders
		WHERE job_id = $1 AND starts_with(folder_path, $2 || '/')
		ORDER BY folder_path ASC
	`, jobID, ancestorPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list descendant folders: %w", err)
	}
	defer rows.Close()

	return collectFolders(rows)
}

// GetJobFolders returns all folders of a job.
func (d *DatabaseClient) GetJobFolders(jobID uuid.UUID) ([]models.Folder, error) {
	rows, err := d.db.Query(`
		SELECT `+folderColumns+`
		FROM folders
		WHERE job_id = $1
		ORDER BY folder_path ASC
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job folders: %w", err)
	}
	defer rows.Close()

	return collectFolders(rows)
}

func collectFolders(rows *sql.Rows) ([]models.Folder, error) {
	var folders []models.Folder
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, *folder)
	}
	return folders, rows.Err()
}
