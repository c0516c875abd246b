package repository

import (
	"context"
	"fmt"

	"github.com/haneulsoft/timetable-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// courseRowColumns is the insert column order for course_rows.
var courseRowColumns = []string{
	"year", "term_code", "division_code", "division_name",
	"course_code", "course_name", "instructor", "department", "category",
	"credits", "lecture_time", "classroom", "delivery_mode",
	"capacity", "enrollment",
}

// CourseRowRepository stores the raw scraped course rows. Rows are kept
// verbatim as text; all coercion lives in the catalog builder so a
// re-import never changes interpretation.
type CourseRowRepository struct {
	pool *pgxpool.Pool
	year string
	term string
}

func NewCourseRowRepository(pool *pgxpool.Pool, year, termCode string) *CourseRowRepository {
	return &CourseRowRepository{pool: pool, year: year, term: termCode}
}

// FetchRows loads every stored row of the configured term. Implements
// catalog.RowSource.
func (r *CourseRowRepository) FetchRows(ctx context.Context) ([]model.RawCourseRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT year, term_code, division_code, division_name,
		        course_code, course_name, instructor, department, category,
		        credits, lecture_time, classroom, delivery_mode,
		        capacity, enrollment
		   FROM course_rows
		  WHERE year = $1 AND term_code = $2
		  ORDER BY id ASC`,
		r.year, r.term)
	if err != nil {
		return nil, fmt.Errorf("query course rows: %w", err)
	}
	defer rows.Close()

	var result []model.RawCourseRow
	for rows.Next() {
		var row model.RawCourseRow
		if err := rows.Scan(
			&row.Year, &row.TermCode, &row.DivisionCode, &row.DivisionName,
			&row.CourseCode, &row.CourseName, &row.Instructor, &row.Department, &row.Category,
			&row.Credits, &row.LectureTime, &row.Classroom, &row.DeliveryMode,
			&row.Capacity, &row.Enrollment,
		); err != nil {
			return nil, fmt.Errorf("scan course row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// ReplaceTerm atomically swaps the stored rows of the configured term for
// the given set. Used by the importer; readers never see a half-imported
// term.
func (r *CourseRowRepository) ReplaceTerm(ctx context.Context, rows []model.RawCourseRow) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM course_rows WHERE year = $1 AND term_code = $2`,
		r.year, r.term); err != nil {
		return 0, fmt.Errorf("delete term rows: %w", err)
	}

	inserted, err := tx.CopyFrom(ctx,
		pgx.Identifier{"course_rows"},
		courseRowColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			row := rows[i]
			return []any{
				row.Year.String(), row.TermCode.String(),
				row.DivisionCode.String(), row.DivisionName.String(),
				row.CourseCode.String(), row.CourseName.String(),
				row.Instructor.String(), row.Department.String(), row.Category.String(),
				row.Credits.String(), row.LectureTime.String(),
				row.Classroom.String(), row.DeliveryMode.String(),
				row.Capacity.String(), row.Enrollment.String(),
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy course rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}
