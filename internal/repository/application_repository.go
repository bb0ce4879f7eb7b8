package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentdesk/ats-service/internal/domain"
)

// ApplicationRepository encapsulates application persistence.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error
	GetByID(ctx context.Context, id int64) (*domain.Application, error)
	ListWithFilter(ctx context.Context, filter ApplicationFilter) ([]domain.Application, error)
	Search(ctx context.Context, term string) ([]domain.Application, error)
	ResumePathsByJob(ctx context.Context, jobID int64) ([]string, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.ApplicationStatus) (int64, error)
	CountByJob(ctx context.Context, jobID int64) (int64, error)
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationSelect = `
        SELECT a.id, a.job_id, a.candidate_name, a.candidate_email, a.resume_path,
               a.resume_original_name, a.status, a.submitted_at, j.title
        FROM applications a JOIN jobs j ON j.id = a.job_id`

const applicationOrder = ` ORDER BY a.submitted_at DESC, a.id DESC`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (job_id, candidate_name, candidate_email, resume_path, resume_original_name, status, submitted_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		app.JobID,
		app.CandidateName,
		app.CandidateEmail,
		app.ResumePath,
		app.ResumeOriginalName,
		app.Status,
		app.SubmittedAt,
	).Scan(&app.ID)
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE applications SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	var app domain.Application
	if err := scanApplication(r.pool.QueryRow(ctx, applicationSelect+` WHERE a.id=$1`, id), &app); err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

func (r *applicationRepository) ListWithFilter(ctx context.Context, filter ApplicationFilter) ([]domain.Application, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.JobID != nil {
		args = append(args, *filter.JobID)
		clauses = append(clauses, fmt.Sprintf("a.job_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("a.status=$%d", len(args)))
	}

	query := applicationSelect + ` WHERE ` + strings.Join(clauses, " AND ") + applicationOrder
	return r.list(ctx, query, args...)
}

func (r *applicationRepository) Search(ctx context.Context, term string) ([]domain.Application, error) {
	query := applicationSelect + `
        WHERE LOWER(a.candidate_name) LIKE $1 ESCAPE '\' OR LOWER(a.candidate_email) LIKE $1 ESCAPE '\'` + applicationOrder
	return r.list(ctx, query, likePattern(term))
}

func (r *applicationRepository) ResumePathsByJob(ctx context.Context, jobID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT resume_path FROM applications WHERE job_id=$1 AND resume_path IS NOT NULL`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func (r *applicationRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM applications`)
}

func (r *applicationRepository) CountByStatus(ctx context.Context, status domain.ApplicationStatus) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM applications WHERE status=$1`, status)
}

func (r *applicationRepository) CountByJob(ctx context.Context, jobID int64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM applications WHERE job_id=$1`, jobID)
}

func (r *applicationRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}

func (r *applicationRepository) list(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		if err := scanApplication(rows, &app); err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

func scanApplication(row pgx.Row, app *domain.Application) error {
	return row.Scan(
		&app.ID,
		&app.JobID,
		&app.CandidateName,
		&app.CandidateEmail,
		&app.ResumePath,
		&app.ResumeOriginalName,
		&app.Status,
		&app.SubmittedAt,
		&app.JobTitle,
	)
}
