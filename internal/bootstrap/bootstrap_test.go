package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/nbadocs/internal/app/models"
	"github.com/yigit/nbadocs/internal/app/models/dto"
	"github.com/yigit/nbadocs/internal/config"
	pkgAuth "github.com/yigit/nbadocs/internal/pkg/auth"
)

const (
	adminEmail    = "admin@college.edu"
	adminPassword = "admin-pass-123"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	pkgAuth.BcryptCost = 4
	config.DotEnvFile = ""
	os.Exit(m.Run())
}

type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

type testApp struct {
	t           *testing.T
	router      *gin.Engine
	storagePath string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	storagePath := t.TempDir()
	t.Setenv("DB_DRIVER", config.DriverMemory)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_STORAGE_PATH", storagePath)
	t.Setenv("SEED_ADMIN_EMAIL", adminEmail)
	t.Setenv("SEED_ADMIN_PASSWORD", adminPassword)
	t.Setenv("LOG_LEVEL", "disabled")

	ctx := context.Background()
	cfg, lgr, err := LoadConfigAndSetupLogger(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	stores, err := OpenStores(ctx, cfg, lgr)
	require.NoError(t, err)
	t.Cleanup(stores.Close)

	deps, err := BuildDependencies(ctx, cfg, stores, lgr)
	require.NoError(t, err)

	router, err := SetupRouter(cfg, deps, lgr)
	require.NoError(t, err)

	return &testApp{t: t, router: router, storagePath: storagePath}
}

func (a *testApp) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) doJSON(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return a.do(req, token)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func (a *testApp) login(email, password string) string {
	w := a.doJSON(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.AuthResponse
	decode(a.t, w, &resp)
	require.NotEmpty(a.t, resp.Token.AccessToken)
	return resp.Token.AccessToken
}

func (a *testApp) createFaculty(adminToken, email string) string {
	w := a.doJSON(http.MethodPost, "/api/v1/users", adminToken, dto.CreateUserRequest{
		Name:     "Dr. " + email,
		Email:    email,
		Password: "faculty-pass-1",
		Role:     models.RoleFaculty,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return a.login(email, "faculty-pass-1")
}

func (a *testApp) createCourse(token, code string) models.Course {
	w := a.doJSON(http.MethodPost, "/api/v1/courses", token, dto.CourseRequest{
		CourseCode:   code,
		CourseName:   "Data Structures",
		Department:   "CSE",
		Semester:     3,
		AcademicYear: "2025-26",
		Credits:      4,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	var course models.Course
	decode(a.t, w, &course)
	return course
}

func (a *testApp) upload(token string, courseID int64, fileType, name string, content []byte) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(a.t, mw.WriteField("course", fmt.Sprint(courseID)))
	require.NoError(a.t, mw.WriteField("fileType", fileType))
	require.NoError(a.t, mw.WriteField("tags", "unit-1, midterm"))
	if name != "" {
		part, err := mw.CreateFormFile("file", name)
		require.NoError(a.t, err)
		_, err = part.Write(content)
		require.NoError(a.t, err)
	}
	require.NoError(a.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.do(req, token)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	w := app.doJSON(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode(t, w, nil).Success)
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)

	token := app.login(adminEmail, adminPassword)

	w := app.doJSON(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me models.User
	decode(t, w, &me)
	assert.Equal(t, adminEmail, me.Email)
	assert.Equal(t, models.RoleAdmin, me.Role)

	w = app.doJSON(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: adminEmail, Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decode(t, w, nil)
	assert.False(t, env.Success)
	assert.Equal(t, dto.ErrorCodeInvalidCredentials, env.Error.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	w := app.doJSON(http.MethodGet, "/api/v1/courses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.doJSON(http.MethodGet, "/api/v1/courses", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCourseLifecycle(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(adminEmail, adminPassword)
	faculty := app.createFaculty(admin, "owner@college.edu")

	course := app.createCourse(faculty, "cs201")
	assert.Equal(t, "CS201", course.CourseCode)
	assert.True(t, course.IsActive)

	t.Run("duplicate code", func(t *testing.T) {
		w := app.doJSON(http.MethodPost, "/api/v1/courses", admin, dto.CourseRequest{
			CourseCode: "CS201", CourseName: "Other", Department: "CSE",
			Semester: 1, AcademicYear: "2025-26", Credits: 3,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrorCodeResourceAlreadyExists, decode(t, w, nil).Error.Code)
	})

	t.Run("invalid semester", func(t *testing.T) {
		w := app.doJSON(http.MethodPost, "/api/v1/courses", admin, dto.CourseRequest{
			CourseCode: "CS999", CourseName: "Other", Department: "CSE",
			Semester: 9, AcademicYear: "2025-26", Credits: 3,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrorCodeValidationFailed, decode(t, w, nil).Error.Code)
	})

	t.Run("get", func(t *testing.T) {
		w := app.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/courses/%d", course.ID), faculty, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got models.Course
		decode(t, w, &got)
		require.NotNil(t, got.Faculty)
		assert.Equal(t, "Dr. owner@college.edu", got.Faculty.Name)

		w = app.doJSON(http.MethodGet, "/api/v1/courses/9999", faculty, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = app.doJSON(http.MethodGet, "/api/v1/courses/abc", faculty, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("update by another faculty is forbidden", func(t *testing.T) {
		other := app.createFaculty(admin, "other@college.edu")
		w := app.doJSON(http.MethodPut, fmt.Sprintf("/api/v1/courses/%d", course.ID), other, dto.CourseRequest{
			CourseCode: "CS201", CourseName: "Renamed", Department: "CSE",
			Semester: 3, AcademicYear: "2025-26", Credits: 4,
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("update by owner", func(t *testing.T) {
		w := app.doJSON(http.MethodPut, fmt.Sprintf("/api/v1/courses/%d", course.ID), faculty, dto.CourseRequest{
			CourseCode: "CS201", CourseName: "Advanced Data Structures", Department: "CSE",
			Semester: 4, AcademicYear: "2025-26", Credits: 4,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got models.Course
		decode(t, w, &got)
		assert.Equal(t, "Advanced Data Structures", got.CourseName)
		assert.Equal(t, 4, got.Semester)
	})

	t.Run("deactivate is admin only", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/courses/%d", course.ID)
		w := app.doJSON(http.MethodDelete, path, faculty, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = app.doJSON(http.MethodDelete, path, admin, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = app.doJSON(http.MethodGet, "/api/v1/courses", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var courses []models.Course
		decode(t, w, &courses)
		assert.Empty(t, courses)
	})
}

func TestFileUploadAndDownload(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(adminEmail, adminPassword)
	faculty := app.createFaculty(admin, "owner@college.edu")
	course := app.createCourse(faculty, "CS101")
	content := []byte("Week 1: arrays and linked lists\n")

	w := app.upload(faculty, course.ID, "Syllabus", "syllabus.txt", content)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var file models.CourseFile
	decode(t, w, &file)
	assert.Equal(t, models.FileTypeSyllabus, file.FileType)
	assert.Equal(t, "syllabus.txt", file.FileName)
	assert.Equal(t, int64(len(content)), file.FileSize)
	assert.Equal(t, "text/plain", file.MimeType)
	assert.Equal(t, []string{"unit-1", "midterm"}, file.Tags)
	assert.Equal(t, models.InitialFileVersion, file.Version)

	t.Run("rejections", func(t *testing.T) {
		w := app.upload(faculty, course.ID, "syllabus", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = app.upload(faculty, course.ID, "homework", "notes.txt", content)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrorCodeInvalidClassification, decode(t, w, nil).Error.Code)

		w = app.upload(faculty, course.ID, "syllabus", "virus.exe", content)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = app.upload(faculty, 9999, "syllabus", "syllabus.txt", content)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list", func(t *testing.T) {
		w := app.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/files/course/%d", course.ID), faculty, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var files []models.CourseFile
		decode(t, w, &files)
		require.Len(t, files, 1)
		assert.Equal(t, file.ID, files[0].ID)
	})

	t.Run("download", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/files/download/%d", file.ID), nil)
		w := app.do(req, faculty)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, content, w.Body.Bytes())
		assert.Contains(t, w.Header().Get("Content-Disposition"), "syllabus.txt")

		req = httptest.NewRequest(http.MethodGet, "/api/v1/files/download/9999", nil)
		assert.Equal(t, http.StatusNotFound, app.do(req, faculty).Code)
	})

	t.Run("reclassify is admin only", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/files/%d/classification", file.ID)
		body := dto.ReclassifyFileRequest{FileType: "lesson_plan"}

		w := app.doJSON(http.MethodPatch, path, faculty, body)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = app.doJSON(http.MethodPatch, path, admin, body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got models.CourseFile
		decode(t, w, &got)
		assert.Equal(t, models.FileTypeLessonPlan, got.FileType)
		assert.Equal(t, models.InitialFileVersion, got.Version)
	})

	t.Run("missing content", func(t *testing.T) {
		require.NoError(t, os.RemoveAll(app.storagePath))

		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/files/download/%d", file.ID), nil)
		w := app.do(req, faculty)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrorCodeContentMissing, decode(t, w, nil).Error.Code)
	})
}

func TestReports(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(adminEmail, adminPassword)
	faculty := app.createFaculty(admin, "owner@college.edu")
	course := app.createCourse(faculty, "CS101")

	for _, upload := range []struct{ fileType, name string }{
		{"syllabus", "syllabus.txt"},
		{"assignment", "assignment-1.txt"},
		{"attendance", "attendance.txt"},
	} {
		w := app.upload(faculty, course.ID, upload.fileType, upload.name, []byte("content of "+upload.name))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	t.Run("compliance", func(t *testing.T) {
		w := app.doJSON(http.MethodGet, "/api/v1/reports/nba-compliance", faculty, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var report []models.CourseCompliance
		decode(t, w, &report)
		require.Len(t, report, 1)
		assert.Equal(t, "CS101", report[0].Course.Code)
		assert.Equal(t, 40, report[0].CompliancePercentage)
		assert.Equal(t, 3, report[0].TotalFiles)
		require.Len(t, report[0].Compliance, len(models.RequiredTypes))

		w = app.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/reports/nba-compliance/%d", course.ID), admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var entry models.CourseCompliance
		decode(t, w, &entry)
		assert.Equal(t, 40, entry.CompliancePercentage)
	})

	t.Run("dashboard", func(t *testing.T) {
		w := app.doJSON(http.MethodGet, "/api/v1/reports/dashboard", faculty, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var stats models.DashboardStats
		decode(t, w, &stats)
		assert.Equal(t, int64(1), stats.TotalCourses)
		assert.Equal(t, int64(3), stats.TotalFiles)
		assert.Equal(t, int64(2), stats.TotalUsers)
		assert.Equal(t, int64(1), stats.FilesByType[models.FileTypeAttendance])
		require.Len(t, stats.RecentFiles, 3)
		assert.Equal(t, "attendance.txt", stats.RecentFiles[0].FileName)
	})
}
