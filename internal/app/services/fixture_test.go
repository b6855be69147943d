package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yigit/nbadocs/internal/app/models"
	"github.com/yigit/nbadocs/internal/app/models/dto"
	"github.com/yigit/nbadocs/internal/app/repositories/inmem"
	"github.com/yigit/nbadocs/internal/pkg/filestorage"
)

type fixture struct {
	db      *inmem.DB
	users   UserStore
	courses CourseStore
	files   FileStore
	blobs   *filestorage.LocalStorage

	courseService     *CourseService
	fileService       *FileService
	complianceService *ComplianceService
	dashboardService  *DashboardService

	admin   *models.User
	faculty *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := inmem.Open()
	f := &fixture{
		db:      db,
		users:   inmem.NewUserRepository(db),
		courses: inmem.NewCourseRepository(db),
		files:   inmem.NewCourseFileRepository(db),
	}

	blobs, err := filestorage.NewLocalStorage(t.TempDir(), time.Second)
	require.NoError(t, err)
	f.blobs = blobs

	log := zerolog.Nop()
	f.courseService = NewCourseService(f.courses, f.users, log)
	f.fileService = NewFileService(f.files, f.courses, f.blobs, 0, log)
	f.complianceService = NewComplianceService(f.courses, f.files, 2, log)
	f.dashboardService = NewDashboardService(f.courses, f.files, f.users)

	f.admin = f.addUser(t, "Admin", "admin@college.edu", models.RoleAdmin)
	f.faculty = f.addUser(t, "Dr. Rao", "rao@college.edu", models.RoleFaculty)
	return f
}

func (f *fixture) addUser(t *testing.T, name, email string, role models.RoleType) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email, Password: "x", Role: role, IsActive: true}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func courseRequest(code string) *dto.CourseRequest {
	return &dto.CourseRequest{
		CourseCode:   code,
		CourseName:   "Data Structures",
		Department:   "CSE",
		Semester:     3,
		AcademicYear: "2024-25",
		Credits:      4,
		CourseOutcomes: []dto.CourseOutcomeInput{
			{Code: "CO1", Description: "Apply linear data structures"},
		},
	}
}

func (f *fixture) addCourse(t *testing.T, code string) *models.Course {
	t.Helper()
	c, err := f.courseService.CreateCourse(context.Background(), courseRequest(code), f.faculty.ID)
	require.NoError(t, err)
	return c
}

func (f *fixture) attach(t *testing.T, courseID int64, fileType models.FileType) *models.CourseFile {
	t.Helper()
	file, err := f.fileService.AttachFile(context.Background(), courseID, string(fileType), FileMetadata{
		FileName: string(fileType) + ".pdf",
		FileSize: 128,
		MimeType: "application/pdf",
	}, "blob/"+string(fileType), f.faculty.ID)
	require.NoError(t, err)
	return file
}

func newFileHeader(t *testing.T, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}
