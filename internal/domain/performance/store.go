package performance

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"staffrecords/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const reviewSelect = `
    SELECT p.id, p.employee_id, e.first_name || ' ' || e.last_name, e.department_id,
           p.reviewer_id, CASE WHEN r.id IS NULL THEN NULL ELSE r.first_name || ' ' || r.last_name END,
           p.review_period, p.rating, p.strengths, p.improvements, p.goals, p.comments,
           p.review_date, p.status, p.created_at
    FROM performance_reviews p
    JOIN employees e ON e.id = p.employee_id
    LEFT JOIN employees r ON r.id = p.reviewer_id
`

func scanReview(row pgx.Row) (Review, error) {
	var rv Review
	var rating int16
	err := row.Scan(&rv.ID, &rv.EmployeeID, &rv.EmployeeName, &rv.DepartmentID, &rv.ReviewerID, &rv.ReviewerName,
		&rv.ReviewPeriod, &rating, &rv.Strengths, &rv.Improvements, &rv.Goals, &rv.Comments,
		&rv.ReviewDate, &rv.Status, &rv.CreatedAt)
	rv.Rating = int(rating)
	return rv, err
}

func (s *Store) Insert(ctx context.Context, rv Review) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO performance_reviews (employee_id, reviewer_id, review_period, rating, strengths, improvements,
      goals, comments, review_date, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id
  `, rv.EmployeeID, rv.ReviewerID, rv.ReviewPeriod, rv.Rating, rv.Strengths, rv.Improvements,
		rv.Goals, rv.Comments, rv.ReviewDate, rv.Status).Scan(&id)
	return id, err
}

func (s *Store) Get(ctx context.Context, id int64) (Review, error) {
	rv, err := scanReview(s.DB.QueryRow(ctx, reviewSelect+" WHERE p.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Review{}, ErrNotFound
	}
	return rv, err
}

func (s *Store) List(ctx context.Context, filter Filter) ([]Review, error) {
	query := reviewSelect + " WHERE 1=1"
	var args []any
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += fmt.Sprintf(" AND p.employee_id = $%d", len(args))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		query += fmt.Sprintf(" AND e.department_id = $%d", len(args))
	}
	query += " ORDER BY p.review_date DESC, p.id DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, id int64, rv Review) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE performance_reviews
    SET reviewer_id = $1, review_period = $2, rating = $3, strengths = $4, improvements = $5,
        goals = $6, comments = $7, review_date = $8, status = $9
    WHERE id = $10
  `, rv.ReviewerID, rv.ReviewPeriod, rv.Rating, rv.Strengths, rv.Improvements,
		rv.Goals, rv.Comments, rv.ReviewDate, rv.Status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetStatus(ctx context.Context, id int64, status string) error {
	cmd, err := s.DB.Exec(ctx, "UPDATE performance_reviews SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM performance_reviews WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
