package supabase

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"photo-delivery-backend/internal/models"
)

// ConsumeRevisionRound is the single atomic unit behind a client revision
// request: the conditional round increment and the request insert either
// both commit or both roll back. The UPDATE only matches while
// used < max, so two racing requests on the last remaining round serialize
// on the order row and exactly one of them succeeds.
func (d *DatabaseClient) ConsumeRevisionRound(orderID uuid.UUID, fileIDs []uuid.UUID, comments string) (*models.RevisionRequest, *models.Order, error) {
	// Duplicates in the request collapse here so the stored set matches
	// what was validated.
	fileIDs = uniqueUUIDs(fileIDs)

	tx, err := d.db.Begin()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Every referenced file must belong to this order
	var matched int
	err = tx.QueryRow(`
		SELECT COUNT(DISTINCT id) FROM files WHERE order_id = $1 AND id = ANY($2)
	`, orderID, pq.Array(fileIDs)).Scan(&matched)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check revision files: %w", err)
	}
	if matched != len(fileIDs) {
		return nil, nil, models.NotFoundErrorf("one or more files on order %s", orderID)
	}

	row := tx.QueryRow(`
		UPDATE orders
		SET used_revision_rounds = used_revision_rounds + 1, updated_at = NOW()
		WHERE id = $1 AND used_revision_rounds < max_revision_rounds
		RETURNING `+orderColumns+`
	`, orderID)

	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		// Either the order is unknown or no rounds remain; tell them apart
		// without consuming anything.
		var exists bool
		if checkErr := tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, orderID).Scan(&exists); checkErr != nil {
			return nil, nil, fmt.Errorf("failed to check order: %w", checkErr)
		}
		if !exists {
			return nil, nil, models.NotFoundErrorf("order %s", orderID)
		}
		return nil, nil, fmt.Errorf("%w: order %s", models.ErrRevisionsExhausted, orderID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to consume revision round: %w", err)
	}

	var request models.RevisionRequest
	var storedIDs pq.StringArray
	err = tx.QueryRow(`
		INSERT INTO revision_requests (order_id, file_ids, comments)
		VALUES ($1, $2, $3)
		RETURNING id, order_id, file_ids::text[], comments, created_at
	`, orderID, pq.Array(fileIDs), comments).Scan(
		&request.ID, &request.OrderID, &storedIDs, &request.Comments, &request.CreatedAt,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to record revision request: %w", err)
	}

	request.FileIDs, err = parseUUIDs(storedIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse revision file ids: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit revision request: %w", err)
	}

	return &request, order, nil
}

// GetOrderRevisionRequests returns an order's revision history, oldest first.
func (d *DatabaseClient) GetOrderRevisionRequests(orderID uuid.UUID) ([]models.RevisionRequest, error) {
	rows, err := d.db.Query(`
		SELECT id, order_id, file_ids::text[], comments, created_at
		FROM revision_requests
		WHERE order_id = $1
		ORDER BY created_at ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list revision requests: %w", err)
	}
	defer rows.Close()

	var requests []models.RevisionRequest
	for rows.Next() {
		var request models.RevisionRequest
		var storedIDs pq.StringArray
		if err := rows.Scan(&request.ID, &request.OrderID, &storedIDs, &request.Comments, &request.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan revision request: %w", err)
		}
		request.FileIDs, err = parseUUIDs(storedIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to parse revision file ids: %w", err)
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

func uniqueUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(raw))
	for i, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
