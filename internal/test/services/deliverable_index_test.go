package services_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"photo-delivery-backend/internal/models"
	"photo-delivery-backend/internal/services"
)

func makeFolder(jobID uuid.UUID, path string, visible bool) models.Folder {
	return models.Folder{
		ID:               uuid.New(),
		JobID:            jobID,
		FolderPath:       path,
		EditorFolderName: path,
		IsVisible:        visible,
	}
}

func makeFile(orderID uuid.UUID, name, folderPath string, uploadedAt time.Time) models.File {
	file := models.File{
		ID:           uuid.New(),
		OrderID:      orderID,
		FileName:     name,
		OriginalName: name,
		MimeType:     "image/jpeg",
		DownloadURL:  "https://cdn.example.com/" + name,
		UploadedAt:   uploadedAt,
	}
	if folderPath != "" {
		file.FolderPath = sql.NullString{String: folderPath, Valid: true}
	}
	return file
}

func collectFileIDs(groups []models.FolderGroup) map[string]bool {
	ids := make(map[string]bool)
	for _, g := range groups {
		for _, f := range g.Files {
			ids[f.ID] = true
		}
	}
	return ids
}

func collectOrderFileIDs(groups []models.OrderGroup) map[string]bool {
	ids := make(map[string]bool)
	for _, g := range groups {
		for _, f := range g.Files {
			ids[f.ID] = true
		}
	}
	return ids
}

func TestBuildFolderView_GroupsByPath(t *testing.T) {
	jobID := uuid.New()
	orderID := uuid.New()
	now := time.Now()

	folders := []models.Folder{
		makeFolder(jobID, "Interior", true),
		makeFolder(jobID, "Exterior", true),
	}
	files := []models.File{
		makeFile(orderID, "kitchen.jpg", "Interior", now),
		makeFile(orderID, "front.jpg", "Exterior", now.Add(time.Minute)),
		makeFile(orderID, "living.jpg", "Interior", now.Add(2*time.Minute)),
	}

	groups := services.BuildFolderView(folders, files, false)

	assert.Len(t, groups, 2)
	// Path-ordered: Exterior before Interior
	assert.Equal(t, "Exterior", groups[0].Folder.FolderPath)
	assert.Len(t, groups[0].Files, 1)
	assert.Equal(t, "Interior", groups[1].Folder.FolderPath)
	assert.Len(t, groups[1].Files, 2)
}

func TestBuildFolderView_EmptyFolderStillListed(t *testing.T) {
	jobID := uuid.New()
	folders := []models.Folder{makeFolder(jobID, "Drone", true)}

	groups := services.BuildFolderView(folders, nil, false)

	assert.Len(t, groups, 1)
	assert.NotNil(t, groups[0].Files)
	assert.Empty(t, groups[0].Files)
}

func TestBuildFolderView_UnfiledFilesGetPseudoGroup(t *testing.T) {
	orderID := uuid.New()
	files := []models.File{makeFile(orderID, "loose.jpg", "", time.Now())}

	groups := services.BuildFolderView(nil, files, false)

	assert.Len(t, groups, 1)
	assert.Equal(t, services.UnfiledFolderName, groups[0].Folder.DisplayName)
	assert.Len(t, groups[0].Files, 1)
}

func TestBuildFolderView_PublicHidesInvisibleFolders(t *testing.T) {
	jobID := uuid.New()
	orderID := uuid.New()
	now := time.Now()

	folders := []models.Folder{
		makeFolder(jobID, "Interior", true),
		makeFolder(jobID, "Raw Brackets", false),
	}
	files := []models.File{
		makeFile(orderID, "kitchen.jpg", "Interior", now),
		makeFile(orderID, "bracket-001.jpg", "Raw Brackets", now),
	}

	public := services.BuildFolderView(folders, files, true)
	assert.Len(t, public, 1)
	assert.Equal(t, "Interior", public[0].Folder.FolderPath)

	internal := services.BuildFolderView(folders, files, false)
	assert.Len(t, internal, 2)
}

func TestBuildFolderView_PublicHidesNotReadyFiles(t *testing.T) {
	jobID := uuid.New()
	orderID := uuid.New()
	now := time.Now()

	folders := []models.Folder{makeFolder(jobID, "Interior", true)}

	staged := makeFile(orderID, ".staging-kitchen.jpg", "Interior", now)
	noURL := makeFile(orderID, "pending.jpg", "Interior", now)
	noURL.DownloadURL = ""
	ready := makeFile(orderID, "kitchen.jpg", "Interior", now)

	files := []models.File{staged, noURL, ready}

	public := services.BuildFolderView(folders, files, true)
	assert.Len(t, public, 1)
	assert.Len(t, public[0].Files, 1)
	assert.Equal(t, "kitchen.jpg", public[0].Files[0].FileName)

	internal := services.BuildFolderView(folders, files, false)
	assert.Len(t, internal[0].Files, 3)
}

func TestBuildOrderView_GroupsByOrder(t *testing.T) {
	orderA := uuid.New()
	orderB := uuid.New()
	now := time.Now()

	files := []models.File{
		makeFile(orderA, "a1.jpg", "", now),
		makeFile(orderB, "b1.jpg", "", now),
		makeFile(orderA, "a2.jpg", "", now.Add(time.Minute)),
	}

	groups := services.BuildOrderView(nil, files, false)

	assert.Len(t, groups, 2)
	total := 0
	for _, g := range groups {
		total += len(g.Files)
	}
	assert.Equal(t, 3, total)
}

func TestViews_CoverSameFileSet(t *testing.T) {
	jobID := uuid.New()
	orderA := uuid.New()
	orderB := uuid.New()
	now := time.Now()

	folders := []models.Folder{
		makeFolder(jobID, "Interior", true),
		makeFolder(jobID, "Raw Brackets", false),
	}
	hidden := makeFile(orderB, ".tmp.jpg", "Interior", now)
	files := []models.File{
		makeFile(orderA, "kitchen.jpg", "Interior", now),
		makeFile(orderA, "bracket.jpg", "Raw Brackets", now),
		makeFile(orderB, "loose.jpg", "", now),
		hidden,
	}

	for _, publicOnly := range []bool{true, false} {
		folderIDs := collectFileIDs(services.BuildFolderView(folders, files, publicOnly))
		orderIDs := collectOrderFileIDs(services.BuildOrderView(folders, files, publicOnly))
		assert.Equal(t, folderIDs, orderIDs, "publicOnly=%v", publicOnly)
	}
}

func TestBuildFolderView_FilesSortedByUploadTime(t *testing.T) {
	jobID := uuid.New()
	orderID := uuid.New()
	base := time.Now()

	folders := []models.Folder{makeFolder(jobID, "Interior", true)}
	files := []models.File{
		makeFile(orderID, "third.jpg", "Interior", base.Add(2*time.Hour)),
		makeFile(orderID, "first.jpg", "Interior", base),
		makeFile(orderID, "second.jpg", "Interior", base.Add(time.Hour)),
	}

	groups := services.BuildFolderView(folders, files, false)

	assert.Len(t, groups[0].Files, 3)
	assert.Equal(t, "first.jpg", groups[0].Files[0].FileName)
	assert.Equal(t, "second.jpg", groups[0].Files[1].FileName)
	assert.Equal(t, "third.jpg", groups[0].Files[2].FileName)
}

func TestBuildFolderView_IsIdempotent(t *testing.T) {
	jobID := uuid.New()
	orderID := uuid.New()
	now := time.Now()

	folders := []models.Folder{
		makeFolder(jobID, "Interior", true),
		makeFolder(jobID, "Exterior", true),
	}
	files := []models.File{
		makeFile(orderID, "kitchen.jpg", "Interior", now),
		makeFile(orderID, "front.jpg", "Exterior", now),
	}

	first := services.BuildFolderView(folders, files, true)
	second := services.BuildFolderView(folders, files, true)
	assert.Equal(t, first, second)
}

func TestCompletedFiles_FlatPublicList(t *testing.T) {
	jobID := uuid.New()
	orderID := uuid.New()
	base := time.Now()

	folders := []models.Folder{
		makeFolder(jobID, "Interior", true),
		makeFolder(jobID, "Raw Brackets", false),
	}
	files := []models.File{
		makeFile(orderID, "later.jpg", "Interior", base.Add(time.Hour)),
		makeFile(orderID, "earlier.jpg", "", base),
		makeFile(orderID, "bracket.jpg", "Raw Brackets", base),
		makeFile(orderID, ".staged.jpg", "Interior", base),
	}

	completed := services.CompletedFiles(folders, files)

	assert.Len(t, completed, 2)
	assert.Equal(t, "earlier.jpg", completed[0].FileName)
	assert.Equal(t, "later.jpg", completed[1].FileName)
}
