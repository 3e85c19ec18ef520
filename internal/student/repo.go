package student

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Repository persists student records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const studentColumns = `id, name, reference, password_hash, payment_status, photo_status,
	polaroid_quantity, album_quantity, created_at, updated_at`

// Insert writes a new student. A duplicate reference maps to ErrAlreadyRegistered.
func (r *Repository) Insert(ctx context.Context, s Student) (Student, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.PaymentStatus == "" {
		s.PaymentStatus = PaymentUnpaid
	}
	if s.PhotoStatus == "" {
		s.PhotoStatus = PhotoPending
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO students (id, name, reference, password_hash, payment_status, photo_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, s.ID, s.Name, s.Reference, s.PasswordHash, s.PaymentStatus, s.PhotoStatus)
	if err := row.Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Student{}, ErrAlreadyRegistered
		}
		return Student{}, err
	}
	return s, nil
}

// GetByReference returns a student by reference, or nil when absent.
func (r *Repository) GetByReference(ctx context.Context, reference string) (*Student, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+studentColumns+` FROM students WHERE reference = $1
	`, reference)
	return scanStudent(row)
}

// GetByID returns a student by primary key, or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id string) (*Student, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+studentColumns+` FROM students WHERE id = $1
	`, id)
	return scanStudent(row)
}

// List returns all students ordered by reference.
func (r *Repository) List(ctx context.Context) ([]Student, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+studentColumns+` FROM students ORDER BY reference
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []Student
	for rows.Next() {
		var s Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Reference, &s.PasswordHash, &s.PaymentStatus,
			&s.PhotoStatus, &s.PolaroidQuantity, &s.AlbumQuantity, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// MarkPaid performs the one-way payment transition and stores the replacement
// credential hash. The WHERE clause guards against a concurrent double submit:
// the second request matches zero rows and reports false.
func (r *Repository) MarkPaid(ctx context.Context, reference, passwordHash string, polaroid, album *int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE students
		SET payment_status = $2,
			password_hash = $3,
			polaroid_quantity = COALESCE($4, polaroid_quantity),
			album_quantity = COALESCE($5, album_quantity),
			updated_at = NOW()
		WHERE reference = $1 AND payment_status = $6
	`, reference, PaymentPaid, passwordHash, polaroid, album, PaymentUnpaid)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SetPhotoStatus updates the photo-processing status field.
func (r *Repository) SetPhotoStatus(ctx context.Context, reference, status string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE students SET photo_status = $2, updated_at = NOW() WHERE reference = $1
	`, reference, status)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func scanStudent(row *sql.Row) (*Student, error) {
	var s Student
	if err := row.Scan(&s.ID, &s.Name, &s.Reference, &s.PasswordHash, &s.PaymentStatus,
		&s.PhotoStatus, &s.PolaroidQuantity, &s.AlbumQuantity, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
