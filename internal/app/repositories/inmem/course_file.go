package inmem

import (
	"context"
	"sort"

	"github.com/yigit/nbadocs/internal/app/models"
	"github.com/yigit/nbadocs/internal/pkg/apperrors"
)

type CourseFileRepository struct {
	db *DB
}

// NewCourseFileRepository returns a FileStore backed by db.
func NewCourseFileRepository(db *DB) *CourseFileRepository {
	return &CourseFileRepository{db: db}
}

func (repo *CourseFileRepository) Create(_ context.Context, file *models.CourseFile) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// mirrors the course_id foreign key
	if _, ok := repo.db.courses[file.CourseID]; !ok {
		return apperrors.ErrCourseNotFound
	}

	repo.db.fileSeq++
	file.ID = repo.db.fileSeq
	file.CreatedAt = repo.db.now()
	file.UpdatedAt = file.CreatedAt
	repo.db.files[file.ID] = cloneFile(file)
	return nil
}

func (repo *CourseFileRepository) GetByID(_ context.Context, id int64) (*models.CourseFile, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	f, ok := repo.db.files[id]
	if !ok {
		return nil, apperrors.ErrCourseFileNotFound
	}
	cp := cloneFile(f)
	cp.Course = repo.db.courseSummary(f.CourseID)
	cp.Uploader = repo.db.userSummary(f.UploadedBy)
	return cp, nil
}

func (repo *CourseFileRepository) ListByCourse(_ context.Context, courseID int64) ([]*models.CourseFile, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	files := make([]*models.CourseFile, 0)
	for _, f := range repo.db.files {
		if f.CourseID == courseID {
			cp := cloneFile(f)
			cp.Uploader = repo.db.userSummary(f.UploadedBy)
			files = append(files, cp)
		}
	}
	sortNewestFirst(files)
	return files, nil
}

func (repo *CourseFileRepository) UpdateClassification(_ context.Context, id int64, fileType models.FileType, isNBACompliant bool) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	f, ok := repo.db.files[id]
	if !ok {
		return apperrors.ErrCourseFileNotFound
	}
	f.FileType = fileType
	f.IsNBACompliant = isNBACompliant
	f.UpdatedAt = repo.db.now()
	return nil
}

func (repo *CourseFileRepository) Count(_ context.Context) (int64, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return int64(len(repo.db.files)), nil
}

func (repo *CourseFileRepository) CountByType(_ context.Context) (map[models.FileType]int64, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	counts := make(map[models.FileType]int64)
	for _, f := range repo.db.files {
		counts[f.FileType]++
	}
	return counts, nil
}

func (repo *CourseFileRepository) ListRecent(_ context.Context, limit int) ([]*models.CourseFile, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	files := make([]*models.CourseFile, 0, len(repo.db.files))
	for _, f := range repo.db.files {
		cp := cloneFile(f)
		cp.Course = repo.db.courseSummary(f.CourseID)
		cp.Uploader = repo.db.userSummary(f.UploadedBy)
		files = append(files, cp)
	}
	sortNewestFirst(files)
	if limit >= 0 && len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}

func sortNewestFirst(files []*models.CourseFile) {
	sort.Slice(files, func(i, j int) bool {
		return newestFirst(files[i].CreatedAt, files[j].CreatedAt, files[i].ID, files[j].ID)
	})
}
