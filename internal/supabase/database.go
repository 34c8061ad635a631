package supabase

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"photo-delivery-backend/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

// NewDatabaseClientFromDB wraps an already-open handle. Tests inject a mock
// connection here; production goes through NewDatabaseClient.
func NewDatabaseClientFromDB(db *sql.DB) *DatabaseClient {
	return &DatabaseClient{db: db}
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

const jobColumns = "id, user_id, address, status, customer_name, customer_email, delivery_token, created_at, updated_at"

func scanJob(row interface{ Scan(...interface{}) error }) (*models.Job, error) {
	var job models.Job
	err := row.Scan(
		&job.ID, &job.UserID, &job.Address, &job.Status,
		&job.CustomerName, &job.CustomerEmail, &job.DeliveryToken,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (d *DatabaseClient) CreateJob(userID uuid.UUID, address, customerName, customerEmail, status string) (*models.Job, error) {
	row := d.db.QueryRow(`
		INSERT INTO jobs (user_id, address, status, customer_name, customer_email)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING `+jobColumns+`
	`, userID, address, status, customerName, customerEmail)

	job, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// GetJob scopes by owner; jobs belonging to another partner come back as
// not-found rather than forbidden so existence is never leaked.
func (d *DatabaseClient) GetJob(jobID, userID uuid.UUID) (*models.Job, error) {
	row := d.db.QueryRow(`
		SELECT `+jobColumns+`
		FROM jobs
		WHERE id = $1 AND user_id = $2
	`, jobID, userID)

	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFoundErrorf("job %s", jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// DeleteJob removes a job. Folders cascade away with it and orders detach
// (job_id goes NULL), so the caller is left with only the job's storage
// prefix to clean up.
func (d *DatabaseClient) DeleteJob(jobID, userID uuid.UUID) error {
	result, err := d.db.Exec(`
		DELETE FROM jobs WHERE id = $1 AND user_id = $2
	`, jobID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check job delete: %w", err)
	}
	if affected == 0 {
		return models.NotFoundErrorf("job %s", jobID)
	}
	return nil
}

func (d *DatabaseClient) ListJobs(userID uuid.UUID) ([]models.Job, error) {
	rows, err := d.db.Query(`
		SELECT `+jobColumns+`
		FROM jobs
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}

	return jobs, rows.Err()
}

// GetJobByDeliveryToken is the public entry point: the opaque token is the
// only lookup key, so a bad token reveals nothing about job ids.
func (d *DatabaseClient) GetJobByDeliveryToken(token string) (*models.Job, error) {
	if token == "" {
		return nil, models.NotFoundErrorf("delivery token")
	}

	row := d.db.QueryRow(`
		SELECT `+jobColumns+`
		FROM jobs
		WHERE delivery_token = $1
	`, token)

	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFoundErrorf("delivery token")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve delivery token: %w", err)
	}
	return job, nil
}

// EnsureDeliveryToken stores the candidate token if the job has none yet and
// marks the job delivered. When a token already exists it is returned
// unchanged so outstanding shared links stay valid.
func (d *DatabaseClient) EnsureDeliveryToken(jobID, userID uuid.UUID, candidate string) (*models.Job, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`
		SELECT `+jobColumns+`
		FROM jobs
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`, jobID, userID)

	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFoundErrorf("job %s", jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock job: %w", err)
	}

	token := candidate
	if job.DeliveryToken.Valid && job.DeliveryToken.String != "" {
		token = job.DeliveryToken.String
	}

	row = tx.QueryRow(`
		UPDATE jobs
		SET delivery_token = $1, status = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+jobColumns+`
	`, token, models.JobStatusDelivered, jobID)

	job, err = scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("failed to store delivery token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit delivery token: %w", err)
	}

	return job, nil
}

const orderColumns = "id, user_id, job_id, status, max_revision_rounds, used_revision_rounds, created_at, updated_at"

func scanOrder(row interface{ Scan(...interface{}) error }) (*models.Order, error) {
	var order models.Order
	err := row.Scan(
		&order.ID, &order.UserID, &order.JobID, &order.Status,
		&order.MaxRevisionRounds, &order.UsedRevisionRounds,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (d *DatabaseClient) CreateOrder(userID uuid.UUID, jobID uuid.NullUUID, status string, maxRevisionRounds int) (*models.Order, error) {
	row := d.db.QueryRow(`
		INSERT INTO orders (user_id, job_id, status, max_revision_rounds)
		VALUES ($1, $2, $3, $4)
		RETURNING `+orderColumns+`
	`, userID, jobID, status, maxRevisionRounds)

	order, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

func (d *DatabaseClient) GetOrder(orderID, userID uuid.UUID) (*models.Order, error) {
	row := d.db.QueryRow(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1 AND user_id = $2
	`, orderID, userID)

	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFoundErrorf("order %s", orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// GetJobOrders returns every order attached to a job, oldest first.
func (d *DatabaseClient) GetJobOrders(jobID uuid.UUID) ([]models.Order, error) {
	rows, err := d.db.Query(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE job_id = $1
		ORDER BY created_at ASC
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	return orders, rows.Err()
}

// UpdateRevisionSettings changes the configured maximum. Lowering it below
// the consumed count is allowed; remaining rounds simply clamp at zero.
func (d *DatabaseClient) UpdateRevisionSettings(orderID, userID uuid.UUID, maxRevisionRounds int) (*models.Order, error) {
	row := d.db.QueryRow(`
		UPDATE orders
		SET max_revision_rounds = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
		RETURNING `+orderColumns+`
	`, maxRevisionRounds, orderID, userID)

	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFoundErrorf("order %s", orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update revision settings: %w", err)
	}
	return order, nil
}

// GetPartnerSettings returns the stored settings row or a zero-value row
// carrying the given fallback default.
func (d *DatabaseClient) GetPartnerSettings(userID uuid.UUID, fallbackRounds int) (*models.PartnerSettings, error) {
	var settings models.PartnerSettings
	err := d.db.QueryRow(`
		SELECT user_id, default_revision_rounds, updated_at
		FROM partner_settings
		WHERE user_id = $1
	`, userID).Scan(&settings.UserID, &settings.DefaultRevisionRounds, &settings.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.PartnerSettings{
			UserID:                userID,
			DefaultRevisionRounds: fallbackRounds,
			UpdatedAt:             time.Now().UTC(),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get partner settings: %w", err)
	}
	return &settings, nil
}

func (d *DatabaseClient) UpsertPartnerSettings(userID uuid.UUID, defaultRounds int) (*models.PartnerSettings, error) {
	var settings models.PartnerSettings
	err := d.db.QueryRow(`
		INSERT INTO partner_settings (user_id, default_revision_rounds, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET default_revision_rounds = EXCLUDED.default_revision_rounds, updated_at = NOW()
		RETURNING user_id, default_revision_rounds, updated_at
	`, userID, defaultRounds).Scan(&settings.UserID, &settings.DefaultRevisionRounds, &settings.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert partner settings: %w", err)
	}
	return &settings, nil
}
