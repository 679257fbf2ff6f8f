package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eventhotel/booking-api/internal/model"
)

// ErrEnrollmentNotFound is returned when a user has no enrollment record.
var ErrEnrollmentNotFound = errors.New("enrollment not found")

// EnrollmentRepo provides read access to the enrollments table. The
// booking workflow only ever needs the enrollment that belongs to the
// authenticated user, so no listing or mutation methods exist here;
// enrollments are created elsewhere in the event backend.
type EnrollmentRepo struct {
	db *sql.DB
}

// NewEnrollmentRepo constructs an EnrollmentRepo with the given DB handle.
func NewEnrollmentRepo(db *sql.DB) *EnrollmentRepo { return &EnrollmentRepo{db: db} }

// FindByUser returns the enrollment belonging to the given user.
// ErrEnrollmentNotFound is returned when no record exists.
func (r *EnrollmentRepo) FindByUser(ctx context.Context, userID uint64) (model.Enrollment, error) {
	const q = `SELECT id, user_id, created_at FROM enrollments WHERE user_id = ? LIMIT 1`
	var e model.Enrollment
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&e.ID, &e.UserID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Enrollment{}, ErrEnrollmentNotFound
		}
		return model.Enrollment{}, err
	}
	return e, nil
}
