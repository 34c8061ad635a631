package models_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"photo-delivery-backend/internal/models"
)

func TestOrder_RemainingRevisionRounds(t *testing.T) {
	order := models.Order{MaxRevisionRounds: 2, UsedRevisionRounds: 0}
	assert.Equal(t, 2, order.RemainingRevisionRounds())

	order.UsedRevisionRounds = 2
	assert.Equal(t, 0, order.RemainingRevisionRounds())

	// Limit lowered below the consumed count: clamps, never negative
	order.MaxRevisionRounds = 1
	assert.Equal(t, 0, order.RemainingRevisionRounds())
}

func TestFile_IsDeliverable(t *testing.T) {
	file := models.File{FileName: "kitchen.jpg", DownloadURL: "https://cdn.example.com/kitchen.jpg"}
	assert.True(t, file.IsDeliverable())

	staged := models.File{FileName: ".kitchen.jpg", DownloadURL: "https://cdn.example.com/kitchen.jpg"}
	assert.False(t, staged.IsDeliverable())

	pending := models.File{FileName: "kitchen.jpg", DownloadURL: "  "}
	assert.False(t, pending.IsDeliverable())
}

func TestFolder_DisplayName(t *testing.T) {
	folder := models.Folder{EditorFolderName: "High Res"}
	assert.Equal(t, "High Res", folder.DisplayName())

	folder.PartnerFolderName = sql.NullString{String: "Final Selects", Valid: true}
	assert.Equal(t, "Final Selects", folder.DisplayName())

	folder.PartnerFolderName = sql.NullString{String: "", Valid: true}
	assert.Equal(t, "High Res", folder.DisplayName())
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "validation_error", models.ErrorCode(models.ValidationErrorf("bad input")))
	assert.Equal(t, "not_found", models.ErrorCode(models.NotFoundErrorf("job missing")))
	assert.Equal(t, "duplicate_folder", models.ErrorCode(models.ErrDuplicateFolder))
	assert.Equal(t, "revisions_exhausted", models.ErrorCode(models.ErrRevisionsExhausted))
	assert.Equal(t, "forbidden", models.ErrorCode(models.ErrForbidden))
	assert.Equal(t, "internal_error", models.ErrorCode(errors.New("boom")))

	// Wrapped sentinels still map
	wrapped := fmt.Errorf("consume round: %w", models.ErrRevisionsExhausted)
	assert.Equal(t, "revisions_exhausted", models.ErrorCode(wrapped))
}
