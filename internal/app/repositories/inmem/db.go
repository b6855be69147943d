// Package inmem is a process-local implementation of the service stores.
// It backs the test suites and the "memory" database driver.
package inmem

import (
	"sync"
	"time"

	"github.com/yigit/nbadocs/internal/app/models"
)

// DB holds every table behind a single lock so each write is atomic.
type DB struct {
	mutex sync.RWMutex

	users   map[int64]*models.User
	courses map[int64]*models.Course
	files   map[int64]*models.CourseFile

	userSeq   int64
	courseSeq int64
	fileSeq   int64

	lastTime time.Time
	clock    func() time.Time
}

// Open creates an empty database.
func Open() *DB {
	return &DB{
		users:   make(map[int64]*models.User),
		courses: make(map[int64]*models.Course),
		files:   make(map[int64]*models.CourseFile),
		clock:   time.Now,
	}
}

// SetClock replaces the time source. Used by tests that need fixed timestamps.
func (db *DB) SetClock(clock func() time.Time) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.clock = clock
	db.lastTime = time.Time{}
}

// now returns a strictly increasing timestamp. Caller must hold the write lock.
func (db *DB) now() time.Time {
	t := db.clock().UTC()
	if !t.After(db.lastTime) {
		t = db.lastTime.Add(time.Microsecond)
	}
	db.lastTime = t
	return t
}

func (db *DB) userSummary(id int64) *models.UserSummary {
	if u, ok := db.users[id]; ok {
		return u.Summary()
	}
	return nil
}

func (db *DB) courseSummary(id int64) *models.CourseSummary {
	if c, ok := db.courses[id]; ok {
		return &models.CourseSummary{ID: c.ID, CourseCode: c.CourseCode, CourseName: c.CourseName}
	}
	return nil
}

func cloneCourse(c *models.Course) *models.Course {
	cp := *c
	cp.CourseOutcomes = append([]models.CourseOutcome(nil), c.CourseOutcomes...)
	if cp.CourseOutcomes == nil {
		cp.CourseOutcomes = []models.CourseOutcome{}
	}
	cp.Faculty = nil
	return &cp
}

func cloneFile(f *models.CourseFile) *models.CourseFile {
	cp := *f
	cp.Tags = append([]string(nil), f.Tags...)
	if cp.Tags == nil {
		cp.Tags = []string{}
	}
	if f.Description != nil {
		d := *f.Description
		cp.Description = &d
	}
	cp.Course = nil
	cp.Uploader = nil
	return &cp
}

// newestFirst orders by creation time descending with ID as tie-breaker.
func newestFirst(aTime, bTime time.Time, aID, bID int64) bool {
	if !aTime.Equal(bTime) {
		return aTime.After(bTime)
	}
	return aID > bID
}
