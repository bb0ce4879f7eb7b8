package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentdesk/ats-service/internal/domain"
)

// JobRepository encapsulates job persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Job, error)
	ListActive(ctx context.Context) ([]domain.Job, error)
	ListByCreator(ctx context.Context, userID int64) ([]domain.Job, error)
	ListAll(ctx context.Context) ([]domain.Job, error)
	Count(ctx context.Context) (int64, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

const jobColumns = `j.id, j.title, j.description, j.active, j.created_at, j.created_by, u.full_name`

const jobFrom = ` FROM jobs j LEFT JOIN users u ON u.id = j.created_by`

const jobOrder = ` ORDER BY j.created_at DESC, j.id DESC`

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (title, description, active, created_at, created_by)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	if err := r.pool.QueryRow(ctx, query,
		job.Title,
		job.Description,
		job.Active,
		job.CreatedAt,
		job.CreatedByID,
	).Scan(&job.ID); err != nil {
		return err
	}
	if job.CreatedByID != nil {
		var name string
		if err := r.pool.QueryRow(ctx, `SELECT full_name FROM users WHERE id=$1`, *job.CreatedByID).Scan(&name); err == nil {
			job.CreatedByName = &name
		}
	}
	return nil
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	const query = `
        UPDATE jobs SET title=$1, description=$2, active=$3
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		job.Title,
		job.Description,
		job.Active,
		job.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + jobFrom + ` WHERE j.id=$1`
	var job domain.Job
	if err := scanJob(r.pool.QueryRow(ctx, query, id), &job); err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

func (r *jobRepository) ListActive(ctx context.Context) ([]domain.Job, error) {
	return r.list(ctx, `SELECT `+jobColumns+jobFrom+` WHERE j.active`+jobOrder)
}

func (r *jobRepository) ListByCreator(ctx context.Context, userID int64) ([]domain.Job, error) {
	return r.list(ctx, `SELECT `+jobColumns+jobFrom+` WHERE j.created_by=$1`+jobOrder, userID)
}

func (r *jobRepository) ListAll(ctx context.Context) ([]domain.Job, error) {
	return r.list(ctx, `SELECT `+jobColumns+jobFrom+jobOrder)
}

func (r *jobRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n)
	return n, err
}

func (r *jobRepository) list(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Job{}
	for rows.Next() {
		var job domain.Job
		if err := scanJob(rows, &job); err != nil {
			return nil, err
		}
		result = append(result, job)
	}
	return result, rows.Err()
}

func scanJob(row pgx.Row, job *domain.Job) error {
	return row.Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Active,
		&job.CreatedAt,
		&job.CreatedByID,
		&job.CreatedByName,
	)
}
