// Package services holds the pure pieces of the delivery workflow: the
// deliverable projections and the token generator. Nothing here touches
// the database, which is what keeps the projections testable and
// idempotent.
package services

import (
	"sort"

	"photo-delivery-backend/internal/models"
)

// UnfiledFolderName labels the pseudo-group carrying files that have no
// folder assignment, so the by-folder and by-order views always cover the
// same file set.
const UnfiledFolderName = "Unfiled"

// includeFile applies the public-page filters: not-yet-ready files (dot
// prefix or missing download URL) never reach the end client, and neither
// do files sitting in an invisible folder. Internal mode shows everything.
func includeFile(file *models.File, foldersByPath map[string]*models.Folder, publicOnly bool) bool {
	if !publicOnly {
		return true
	}
	if !file.IsDeliverable() {
		return false
	}
	if file.FolderPath.Valid {
		folder, ok := foldersByPath[file.FolderPath.String]
		if !ok || !folder.IsVisible {
			return false
		}
	}
	return true
}

func indexFolders(folders []models.Folder) map[string]*models.Folder {
	byPath := make(map[string]*models.Folder, len(folders))
	for i := range folders {
		byPath[folders[i].FolderPath] = &folders[i]
	}
	return byPath
}

func sortFilesByUpload(files []models.FileResponse) {
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].UploadedAt.Before(files[j].UploadedAt)
	})
}

// BuildFolderView groups a job's files by folder path. Folders are emitted
// in path order, each with its files sorted by upload time ascending.
// Files without a folder land in a trailing pseudo-group so no file is
// invisible to this view. The function is a pure projection: rebuilding it
// from the same inputs yields the same output.
func BuildFolderView(folders []models.Folder, files []models.File, publicOnly bool) []models.FolderGroup {
	byPath := indexFolders(folders)

	filesByPath := make(map[string][]models.FileResponse)
	var unfiled []models.FileResponse
	for i := range files {
		file := &files[i]
		if !includeFile(file, byPath, publicOnly) {
			continue
		}
		if file.FolderPath.Valid {
			if _, ok := byPath[file.FolderPath.String]; ok {
				filesByPath[file.FolderPath.String] = append(filesByPath[file.FolderPath.String], models.NewFileResponse(file))
				continue
			}
		}
		unfiled = append(unfiled, models.NewFileResponse(file))
	}

	groups := make([]models.FolderGroup, 0, len(folders)+1)
	for i := range folders {
		folder := &folders[i]
		if publicOnly && !folder.IsVisible {
			continue
		}
		groupFiles := filesByPath[folder.FolderPath]
		sortFilesByUpload(groupFiles)
		if groupFiles == nil {
			groupFiles = []models.FileResponse{}
		}
		groups = append(groups, models.FolderGroup{
			Folder: models.NewFolderResponse(folder),
			Files:  groupFiles,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Folder.FolderPath < groups[j].Folder.FolderPath
	})

	if len(unfiled) > 0 {
		sortFilesByUpload(unfiled)
		groups = append(groups, models.FolderGroup{
			Folder: models.FolderResponse{
				DisplayName:      UnfiledFolderName,
				EditorFolderName: UnfiledFolderName,
				IsVisible:        true,
			},
			Files: unfiled,
		})
	}

	return groups
}

// BuildOrderView groups the same file set by order id. The visibility and
// readiness filters match BuildFolderView exactly, so in either mode both
// views expose the same file ids.
func BuildOrderView(folders []models.Folder, files []models.File, publicOnly bool) []models.OrderGroup {
	byPath := indexFolders(folders)

	filesByOrder := make(map[string][]models.FileResponse)
	var orderIDs []string
	for i := range files {
		file := &files[i]
		if !includeFile(file, byPath, publicOnly) {
			continue
		}
		orderID := file.OrderID.String()
		if _, ok := filesByOrder[orderID]; !ok {
			orderIDs = append(orderIDs, orderID)
		}
		filesByOrder[orderID] = append(filesByOrder[orderID], models.NewFileResponse(file))
	}

	sort.Strings(orderIDs)

	groups := make([]models.OrderGroup, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		groupFiles := filesByOrder[orderID]
		sortFilesByUpload(groupFiles)
		groups = append(groups, models.OrderGroup{
			OrderID: orderID,
			Files:   groupFiles,
		})
	}

	return groups
}

// CompletedFiles flattens the public file set, upload order ascending.
// This is the completed_files list on the delivery payload.
func CompletedFiles(folders []models.Folder, files []models.File) []models.FileResponse {
	byPath := indexFolders(folders)

	completed := make([]models.FileResponse, 0, len(files))
	for i := range files {
		file := &files[i]
		if !includeFile(file, byPath, true) {
			continue
		}
		completed = append(completed, models.NewFileResponse(file))
	}

	sortFilesByUpload(completed)
	return completed
}
