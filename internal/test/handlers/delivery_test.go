package handlers_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"photo-delivery-backend/internal/handlers"
	"photo-delivery-backend/internal/notifier"
	"photo-delivery-backend/internal/supabase"
)

func TestDeliveryHandler_NoDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zerolog.New(os.Stderr)

	handler := handlers.NewDeliveryHandler(nil, nil, notifier.NewClient("", "", logger), logger)

	router := gin.New()
	router.GET("/delivery/:token", handler.GetDelivery)

	req, _ := http.NewRequest("GET", "/delivery/some-token", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "database not available")
}

func TestDeliveryHandler_UnknownToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zerolog.New(os.Stderr)

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM jobs WHERE delivery_token = $1")).
		WithArgs("no-such-token").
		WillReturnError(sql.ErrNoRows)

	handler := handlers.NewDeliveryHandler(
		supabase.NewDatabaseClientFromDB(db), nil, notifier.NewClient("", "", logger), logger)

	router := gin.New()
	router.GET("/delivery/:token", handler.GetDelivery)

	req, _ := http.NewRequest("GET", "/delivery/no-such-token", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
