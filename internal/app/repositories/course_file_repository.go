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

// CourseFileRepository handles course file metadata operations
type CourseFileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseFileRepository creates a new CourseFileRepository
func NewCourseFileRepository(db *pgxpool.Pool) *CourseFileRepository {
	return &CourseFileRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// selectFiles joins the parent course and the uploader for display.
func (r *CourseFileRepository) selectFiles() squirrel.SelectBuilder {
	return r.sb.Select(
		"f.id", "f.course_id", "f.file_name", "f.file_type", "f.file_path", "f.file_size",
		"f.mime_type", "f.uploaded_by", "f.description", "f.is_nba_compliant", "f.tags",
		"f.version", "f.created_at", "f.updated_at",
		"c.course_code", "c.course_name",
		"u.name", "u.email",
	).
		From("course_files f").
		Join("courses c ON c.id = f.course_id").
		LeftJoin("users u ON u.id = f.uploaded_by")
}

func scanCourseFile(row pgx.Row) (*models.CourseFile, error) {
	f := &models.CourseFile{}
	var courseCode, courseName string
	var uploaderName, uploaderEmail *string
	err := row.Scan(
		&f.ID, &f.CourseID, &f.FileName, &f.FileType, &f.FilePath, &f.FileSize,
		&f.MimeType, &f.UploadedBy, &f.Description, &f.IsNBACompliant, &f.Tags,
		&f.Version, &f.CreatedAt, &f.UpdatedAt,
		&courseCode, &courseName,
		&uploaderName, &uploaderEmail,
	)
	if err != nil {
		return nil, err
	}
	if f.Tags == nil {
		f.Tags = []string{}
	}
	f.Course = &models.CourseSummary{ID: f.CourseID, CourseCode: courseCode, CourseName: courseName}
	if uploaderName != nil {
		f.Uploader = &models.UserSummary{ID: f.UploadedBy, Name: *uploaderName}
		if uploaderEmail != nil {
			f.Uploader.Email = *uploaderEmail
		}
	}
	return f, nil
}

func (r *CourseFileRepository) queryFiles(ctx context.Context, op string, query squirrel.SelectBuilder) ([]*models.CourseFile, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing course file query")
		return nil, apperrors.NewStorageError(op, err)
	}
	defer rows.Close()

	files := []*models.CourseFile{}
	for rows.Next() {
		file, err := scanCourseFile(rows)
		if err != nil {
			return nil, apperrors.NewStorageError(op, err)
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(op, err)
	}
	return files, nil
}

// Create inserts a new course file record
func (r *CourseFileRepository) Create(ctx context.Context, file *models.CourseFile) error {
	tags := file.Tags
	if tags == nil {
		tags = []string{}
	}
	sql, args, err := r.sb.Insert("course_files").
		Columns("course_id", "file_name", "file_type", "file_path", "file_size", "mime_type",
			"uploaded_by", "description", "is_nba_compliant", "tags", "version").
		Values(file.CourseID, file.FileName, file.FileType, file.FilePath, file.FileSize, file.MimeType,
			file.UploadedBy, file.Description, file.IsNBACompliant, tags, file.Version).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course file query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", file.CourseID).Msg("Error executing create course file query")
		return apperrors.NewStorageError("create course file", err)
	}
	return nil
}

// GetByID retrieves a course file by ID
func (r *CourseFileRepository) GetByID(ctx context.Context, id int64) (*models.CourseFile, error) {
	sql, args, err := r.selectFiles().
		Where(squirrel.Eq{"f.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course file query: %w", err)
	}

	file, err := scanCourseFile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrCourseFileNotFound
		}
		logger.Error().Err(err).Int64("fileID", id).Msg("Error scanning course file row")
		return nil, apperrors.NewStorageError("get course file", err)
	}
	return file, nil
}

// ListByCourse retrieves a course's files, newest first
func (r *CourseFileRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.CourseFile, error) {
	files, err := r.queryFiles(ctx, "list course files", r.selectFiles().
		Where(squirrel.Eq{"f.course_id": courseID}).
		OrderBy("f.created_at DESC", "f.id DESC"))
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		f.Course = nil
	}
	return files, nil
}

// UpdateClassification changes the file type and compliance flag of a file
func (r *CourseFileRepository) UpdateClassification(ctx context.Context, id int64, fileType models.FileType, isNBACompliant bool) error {
	sql, args, err := r.sb.Update("course_files").
		Set("file_type", fileType).
		Set("is_nba_compliant", isNBACompliant).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update classification query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return apperrors.NewStorageError("update classification", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseFileNotFound
	}
	return nil
}

// Count returns the number of file records
func (r *CourseFileRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("course_files").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count files query: %w", err)
	}

	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, apperrors.NewStorageError("count files", err)
	}
	return n, nil
}

// CountByType groups file records by type
func (r *CourseFileRepository) CountByType(ctx context.Context) (map[models.FileType]int64, error) {
	sql, args, err := r.sb.Select("file_type", "COUNT(*)").
		From("course_files").
		GroupBy("file_type").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count by type query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.NewStorageError("count files by type", err)
	}
	defer rows.Close()

	counts := make(map[models.FileType]int64)
	for rows.Next() {
		var t models.FileType
		var n int64
		if err := rows.Scan(&t, &n); err != nil {
			return nil, apperrors.NewStorageError("scan file type count", err)
		}
		counts[t] = n
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("iterate file type counts", err)
	}
	return counts, nil
}

// ListRecent retrieves the newest files across all courses
func (r *CourseFileRepository) ListRecent(ctx context.Context, limit int) ([]*models.CourseFile, error) {
	return r.queryFiles(ctx, "list recent files", r.selectFiles().
		OrderBy("f.created_at DESC", "f.id DESC").
		Limit(uint64(limit)))
}
