package supabase_test

import (
	"database/sql"
	"database/sql/driver"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"photo-delivery-backend/internal/models"
	"photo-delivery-backend/internal/supabase"
)

var orderCols = []string{"id", "user_id", "job_id", "status", "max_revision_rounds", "used_revision_rounds", "created_at", "updated_at"}

// uuidArrayOfLen matches a Postgres array literal with exactly n elements,
// regardless of element order.
type uuidArrayOfLen int

func (n uuidArrayOfLen) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		b, okb := v.([]byte)
		if !okb {
			return false
		}
		s = string(b)
	}
	trimmed := strings.Trim(s, "{}")
	if trimmed == "" {
		return int(n) == 0
	}
	return len(strings.Split(trimmed, ",")) == int(n)
}

// The round increment must be guarded by used < max inside the UPDATE
// itself; that condition is what serializes two racing requests on the
// last remaining round down to one success.
const conditionalConsume = "UPDATE orders SET used_revision_rounds = used_revision_rounds + 1, updated_at = NOW() WHERE id = $1 AND used_revision_rounds < max_revision_rounds"

func TestConsumeRevisionRound_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	client := supabase.NewDatabaseClientFromDB(db)

	orderID := uuid.New()
	fileA := uuid.New()
	fileB := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT id) FROM files")).
		WithArgs(orderID, uuidArrayOfLen(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(conditionalConsume)).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(orderID.String(), uuid.New().String(), nil, "created", 2, 1, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO revision_requests")).
		WithArgs(orderID, uuidArrayOfLen(2), "Please brighten the kitchen shots").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "file_ids", "comments", "created_at"}).
			AddRow(uuid.New().String(), orderID.String(), "{"+fileA.String()+","+fileB.String()+"}", "Please brighten the kitchen shots", now))
	mock.ExpectCommit()

	request, order, err := client.ConsumeRevisionRound(orderID, []uuid.UUID{fileA, fileB}, "Please brighten the kitchen shots")
	assert.NoError(t, err)
	assert.Len(t, request.FileIDs, 2)
	assert.Equal(t, 1, order.UsedRevisionRounds)
	assert.Equal(t, 1, order.RemainingRevisionRounds())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeRevisionRound_DeduplicatesFileIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	client := supabase.NewDatabaseClientFromDB(db)

	orderID := uuid.New()
	fileA := uuid.New()
	fileB := uuid.New()
	now := time.Now()

	// Same file listed twice: both the membership check and the stored
	// request see the collapsed two-element set.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT id) FROM files")).
		WithArgs(orderID, uuidArrayOfLen(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(conditionalConsume)).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(orderID.String(), uuid.New().String(), nil, "created", 2, 1, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO revision_requests")).
		WithArgs(orderID, uuidArrayOfLen(2), "Please brighten the kitchen shots").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "file_ids", "comments", "created_at"}).
			AddRow(uuid.New().String(), orderID.String(), "{"+fileA.String()+","+fileB.String()+"}", "Please brighten the kitchen shots", now))
	mock.ExpectCommit()

	request, _, err := client.ConsumeRevisionRound(orderID, []uuid.UUID{fileA, fileB, fileA}, "Please brighten the kitchen shots")
	assert.NoError(t, err)
	assert.Len(t, request.FileIDs, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeRevisionRound_Exhausted(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	client := supabase.NewDatabaseClientFromDB(db)

	orderID := uuid.New()
	fileA := uuid.New()

	// The guarded UPDATE matches no row once used == max; the order still
	// exists, so the failure surfaces as exhaustion, not not-found.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT id) FROM files")).
		WithArgs(orderID, uuidArrayOfLen(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(conditionalConsume)).
		WithArgs(orderID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, _, err = client.ConsumeRevisionRound(orderID, []uuid.UUID{fileA}, "Please brighten the kitchen shots")
	assert.ErrorIs(t, err, models.ErrRevisionsExhausted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeRevisionRound_UnknownOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	client := supabase.NewDatabaseClientFromDB(db)

	orderID := uuid.New()
	fileA := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT id) FROM files")).
		WithArgs(orderID, uuidArrayOfLen(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(conditionalConsume)).
		WithArgs(orderID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, _, err = client.ConsumeRevisionRound(orderID, []uuid.UUID{fileA}, "Please brighten the kitchen shots")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeRevisionRound_FileOutsideOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	client := supabase.NewDatabaseClientFromDB(db)

	orderID := uuid.New()

	// Two files referenced, only one belongs to the order: nothing is
	// consumed and nothing is inserted.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT id) FROM files")).
		WithArgs(orderID, uuidArrayOfLen(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, _, err = client.ConsumeRevisionRound(orderID, []uuid.UUID{uuid.New(), uuid.New()}, "Please brighten the kitchen shots")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
