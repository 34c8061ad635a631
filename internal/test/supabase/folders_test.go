package supabase_test

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"photo-delivery-backend/internal/models"
	"photo-delivery-backend/internal/supabase"
)

var folderCols = []string{"id", "job_id", "folder_path", "editor_folder_name", "partner_folder_name", "is_visible", "created_at", "updated_at"}

func folderRow(jobID uuid.UUID, path, editorName string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(folderCols).
		AddRow(uuid.New().String(), jobID.String(), path, editorName, nil, true, now, now)
}

func TestCreateFolder_TrimsStoredName(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	client := supabase.NewDatabaseClientFromDB(db)

	jobID := uuid.New()

	// The stored editor name must be the same trimmed form that became the
	// path segment.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO folders")).
		WithArgs(jobID, "High Res", "High Res").
		WillReturnRows(folderRow(jobID, "High Res", "High Res"))
	mock.ExpectCommit()

	folder, err := client.CreateFolder(jobID, "", " High Res ")
	assert.NoError(t, err)
	assert.Equal(t, "High Res", folder.FolderPath)
	assert.Equal(t, "High Res", folder.EditorFolderName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFolder_SiblingCollision(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	client := supabase.NewDatabaseClientFromDB(db)

	jobID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO folders")).
		WithArgs(jobID, "Interior", "Interior").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err = client.CreateFolder(jobID, "", "Interior")
	assert.ErrorIs(t, err, models.ErrDuplicateFolder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFolder_MissingParent(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	client := supabase.NewDatabaseClientFromDB(db)

	jobID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM folders")).
		WithArgs(jobID, "Interior").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err = client.CreateFolder(jobID, "Interior", "Kitchen")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFolder_SingleStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	client := supabase.NewDatabaseClientFromDB(db)

	jobID := uuid.New()
	newName := "Final Selects"
	visible := false

	// Rename and visibility arrive together: one UPDATE, never two, so a
	// failure cannot leave the folder half-updated.
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE folders SET partner_folder_name = COALESCE($1, partner_folder_name), is_visible = COALESCE($2, is_visible)")).
		WithArgs(&newName, &visible, jobID, "Photos/High Res").
		WillReturnRows(sqlmock.NewRows(folderCols).
			AddRow(uuid.New().String(), jobID.String(), "Photos/High Res", "High Res", newName, visible, time.Now(), time.Now()))

	folder, err := client.UpdateFolder(jobID, "Photos/High Res", &newName, &visible)
	assert.NoError(t, err)
	assert.Equal(t, "Final Selects", folder.DisplayName())
	assert.False(t, folder.IsVisible)
	assert.Equal(t, "Photos/High Res", folder.FolderPath, "rename never re-keys the path")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFolderTree_Cascade(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	client := supabase.NewDatabaseClientFromDB(db)

	jobID := uuid.New()

	// One transaction: files of the folder and every descendant go first,
	// then the folder rows themselves.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM folders")).
		WithArgs(jobID, "Interior").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM files")).
		WithArgs(jobID, "Interior").
		WillReturnRows(sqlmock.NewRows([]string{"file_name"}).
			AddRow("kitchen.jpg").AddRow("detail/sink.jpg"))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM folders")).
		WithArgs(jobID, "Interior").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	deleted, err := client.DeleteFolderTree(jobID, "Interior")
	assert.NoError(t, err)
	assert.Equal(t, []string{"kitchen.jpg", "detail/sink.jpg"}, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFolderTree_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	client := supabase.NewDatabaseClientFromDB(db)

	jobID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM folders")).
		WithArgs(jobID, "Nope").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err = client.DeleteFolderTree(jobID, "Nope")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
