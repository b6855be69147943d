package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/nbadocs/internal/app/models"
	"github.com/yigit/nbadocs/internal/pkg/apperrors"
	"github.com/yigit/nbadocs/internal/pkg/dberrors"
	"github.com/yigit/nbadocs/internal/pkg/logger"
)

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// selectCourses joins the owning faculty so every read carries its display name.
func (r *CourseRepository) selectCourses() squirrel.SelectBuilder {
	return r.sb.Select(
		"c.id", "c.course_code", "c.course_name", "c.department", "c.semester",
		"c.academic_year", "c.credits", "c.faculty_id", "c.course_outcomes",
		"c.is_active", "c.created_at", "c.updated_at",
		"u.name", "u.email",
	).
		From("courses c").
		LeftJoin("users u ON u.id = c.faculty_id")
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	c := &models.Course{}
	var facultyName, facultyEmail *string
	err := row.Scan(
		&c.ID, &c.CourseCode, &c.CourseName, &c.Department, &c.Semester,
		&c.AcademicYear, &c.Credits, &c.FacultyID, &c.CourseOutcomes,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		&facultyName, &facultyEmail,
	)
	if err != nil {
		return nil, err
	}
	if c.CourseOutcomes == nil {
		c.CourseOutcomes = []models.CourseOutcome{}
	}
	if facultyName != nil {
		c.Faculty = &models.UserSummary{ID: c.FacultyID, Name: *facultyName}
		if facultyEmail != nil {
			c.Faculty.Email = *facultyEmail
		}
	}
	return c, nil
}

func outcomesParam(outcomes []models.CourseOutcome) []models.CourseOutcome {
	if outcomes == nil {
		return []models.CourseOutcome{}
	}
	return outcomes
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("course_code", "course_name", "department", "semester", "academic_year",
			"credits", "faculty_id", "course_outcomes", "is_active").
		Values(course.CourseCode, course.CourseName, course.Department, course.Semester, course.AcademicYear,
			course.Credits, course.FacultyID, outcomesParam(course.CourseOutcomes), course.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.CourseCodeConstraint) {
			return apperrors.ErrCourseCodeExists
		}
		logger.Error().Err(err).Str("courseCode", course.CourseCode).Msg("Error executing create course query")
		return apperrors.NewStorageError("create course", err)
	}
	return nil
}

// GetByID retrieves a course by ID regardless of its active flag
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.selectCourses().
		Where(squirrel.Eq{"c.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, apperrors.NewStorageError("get course", err)
	}
	return course, nil
}

// ExistsByCode checks whether a course other than excludeID holds the code
func (r *CourseRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("courses").
		Where(squirrel.Eq{"course_code": code}).
		Where(squirrel.NotEq{"id": excludeID}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build course exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, apperrors.NewStorageError("check course code", err)
	}
	return exists, nil
}

// ListActive retrieves every active course, newest first
func (r *CourseRepository) ListActive(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.selectCourses().
		Where(squirrel.Eq{"c.is_active": true}).
		OrderBy("c.created_at DESC", "c.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, apperrors.NewStorageError("list courses", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("scan course", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("iterate courses", err)
	}
	return courses, nil
}

// Update overwrites the editable fields of a course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"course_code":     course.CourseCode,
			"course_name":     course.CourseName,
			"department":      course.Department,
			"semester":        course.Semester,
			"academic_year":   course.AcademicYear,
			"credits":         course.Credits,
			"faculty_id":      course.FacultyID,
			"course_outcomes": outcomesParam(course.CourseOutcomes),
			"updated_at":      squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": course.ID}).
		Suffix("RETURNING is_active, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.IsActive, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		switch {
		case dberrors.IsNoRows(err):
			return apperrors.ErrCourseNotFound
		case dberrors.IsDuplicateConstraintError(err, dberrors.CourseCodeConstraint):
			return apperrors.ErrCourseCodeExists
		}
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		return apperrors.NewStorageError("update course", err)
	}
	return nil
}

// SetActive flips the active flag of a course
func (r *CourseRepository) SetActive(ctx context.Context, id int64, active bool) error {
	sql, args, err := r.sb.Update("courses").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set course active query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return apperrors.NewStorageError("set course active", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// CountActive returns the number of active courses
func (r *CourseRepository) CountActive(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("courses").
		Where(squirrel.Eq{"is_active": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, apperrors.NewStorageError("count courses", err)
	}
	return n, nil
}
