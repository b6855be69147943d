package services

import (
	"context"
	"fmt"

	"github.com/yigit/nbadocs/internal/app/models"
	"golang.org/x/sync/errgroup"
)

// RecentFilesLimit is the number of uploads shown on the dashboard
const RecentFilesLimit = 5

// DashboardService aggregates global counts
type DashboardService struct {
	courses CourseStore
	files   FileStore
	users   UserStore
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(courses CourseStore, files FileStore, users UserStore) *DashboardService {
	return &DashboardService{
		courses: courses,
		files:   files,
		users:   users,
	}
}

// GlobalStats counts active courses, all files and active users, groups files by
// type and lists the most recent uploads.
func (s *DashboardService) GlobalStats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	var recent []*models.CourseFile

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if stats.TotalCourses, err = s.courses.CountActive(gctx); err != nil {
			return fmt.Errorf("error counting courses: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if stats.TotalFiles, err = s.files.Count(gctx); err != nil {
			return fmt.Errorf("error counting files: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if stats.TotalUsers, err = s.users.CountActive(gctx); err != nil {
			return fmt.Errorf("error counting users: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if stats.FilesByType, err = s.files.CountByType(gctx); err != nil {
			return fmt.Errorf("error grouping files by type: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if recent, err = s.files.ListRecent(gctx, RecentFilesLimit); err != nil {
			return fmt.Errorf("error retrieving recent files: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for t, n := range stats.FilesByType {
		if n == 0 {
			delete(stats.FilesByType, t)
		}
	}
	stats.RecentFiles = make([]models.CourseFile, 0, len(recent))
	for _, f := range recent {
		stats.RecentFiles = append(stats.RecentFiles, *f)
	}
	return stats, nil
}
