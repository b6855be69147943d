package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/nbadocs/internal/app/models"
	"golang.org/x/sync/errgroup"
)

// DefaultComplianceWorkers bounds how many courses are scored at once
const DefaultComplianceWorkers = 4

// ComplianceService scores active courses against the required document types
type ComplianceService struct {
	courses CourseStore
	files   FileStore
	workers int
	logger  zerolog.Logger
}

// NewComplianceService creates a new compliance service
func NewComplianceService(courses CourseStore, files FileStore, workers int, logger zerolog.Logger) *ComplianceService {
	if workers <= 0 {
		workers = DefaultComplianceWorkers
	}
	return &ComplianceService{
		courses: courses,
		files:   files,
		workers: workers,
		logger:  logger,
	}
}

// CompliancePercentage rounds present/total*100 half up using integer arithmetic
func CompliancePercentage(present, total int) int {
	if total <= 0 {
		return 0
	}
	return (present*200 + total) / (2 * total)
}

// ScoreFiles computes the compliance entry of a course from its files
func ScoreFiles(course *models.Course, files []*models.CourseFile) models.CourseCompliance {
	counts := make(map[models.FileType]int, len(models.RequiredTypes))
	for _, f := range files {
		counts[f.FileType]++
	}

	entries := make([]models.TypeCompliance, 0, len(models.RequiredTypes))
	present := 0
	for _, t := range models.RequiredTypes {
		n := counts[t]
		if n > 0 {
			present++
		}
		entries = append(entries, models.TypeCompliance{Type: t, Present: n > 0, Count: n})
	}

	return models.CourseCompliance{
		Course: models.ComplianceCourse{
			ID:      course.ID,
			Code:    course.CourseCode,
			Name:    course.CourseName,
			Faculty: course.FacultyName(),
		},
		Compliance:           entries,
		CompliancePercentage: CompliancePercentage(present, len(models.RequiredTypes)),
		TotalFiles:           len(files),
	}
}

func (s *ComplianceService) score(ctx context.Context, course *models.Course) (models.CourseCompliance, error) {
	files, err := s.files.ListByCourse(ctx, course.ID)
	if err != nil {
		return models.CourseCompliance{}, fmt.Errorf("error retrieving files of course %d: %w", course.ID, err)
	}
	return ScoreFiles(course, files), nil
}

// Report scores every active course, in the order courses are listed.
// Any failure aborts the whole report.
func (s *ComplianceService) Report(ctx context.Context) ([]models.CourseCompliance, error) {
	courses, err := s.courses.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}

	results := make([]models.CourseCompliance, len(courses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, course := range courses {
		g.Go(func() error {
			entry, err := s.score(gctx, course)
			if err != nil {
				return err
			}
			results[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("Compliance report aborted")
		return nil, err
	}

	s.logger.Debug().Int("courses", len(results)).Msg("Compliance report computed")
	return results, nil
}

// CourseCompliance scores a single course, active or not
func (s *ComplianceService) CourseCompliance(ctx context.Context, courseID int64) (*models.CourseCompliance, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	entry, err := s.score(ctx, course)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
