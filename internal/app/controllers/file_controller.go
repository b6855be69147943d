package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/nbadocs/internal/app/models/dto"
	"github.com/yigit/nbadocs/internal/app/services"
	"github.com/yigit/nbadocs/internal/middleware"
	"github.com/yigit/nbadocs/internal/pkg/apperrors"
)

// FileController handles course document endpoints
type FileController struct {
	fileService   *services.FileService
	maxUploadSize int64
}

// NewFileController creates a new FileController
func NewFileController(fileService *services.FileService, maxUploadSize int64) *FileController {
	return &FileController{
		fileService:   fileService,
		maxUploadSize: maxUploadSize,
	}
}

// UploadFile stores a document and attaches it to a course
// @Summary Upload a course document
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Document (pdf, doc, docx, xls, xlsx, ppt, pptx, txt; max 10MB)"
// @Param course formData int true "Course ID"
// @Param fileType formData string true "Document type"
// @Param description formData string false "Description"
// @Param tags formData string false "Comma separated tags"
// @Success 201 {object} dto.APIResponse{data=models.CourseFile} "File uploaded successfully"
// @Failure 400 {object} dto.APIResponse "Missing file, file too large or unsupported type"
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Router /files/upload [post]
func (c *FileController) UploadFile(ctx *gin.Context) {
	actor, valid := actorID(ctx)
	if !valid {
		return
	}

	// leave room for the form fields around the file part
	if c.maxUploadSize > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxUploadSize+(1<<20))
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("file too large"))
			return
		}
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("no file uploaded"))
		return
	}

	var req dto.UploadFileRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	file, err := c.fileService.UploadFile(ctx.Request.Context(), &req, fileHeader, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, file, "File uploaded successfully")
}

// GetCourseFiles lists the documents of a course
// @Summary List course documents
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.CourseFile}
// @Router /files/course/{courseId} [get]
func (c *FileController) GetCourseFiles(ctx *gin.Context) {
	courseID, valid := pathID(ctx, "courseId", apperrors.ErrCourseNotFound)
	if !valid {
		return
	}

	files, err := c.fileService.ListFilesForCourse(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, files)
}

// GetFile returns a document's metadata
// @Summary Get course document metadata
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {object} dto.APIResponse{data=models.CourseFile}
// @Failure 404 {object} dto.APIResponse "File not found"
// @Router /files/{id} [get]
func (c *FileController) GetFile(ctx *gin.Context) {
	id, valid := pathID(ctx, "id", apperrors.ErrCourseFileNotFound)
	if !valid {
		return
	}

	file, err := c.fileService.GetFile(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, file)
}

// ReclassifyFile changes a document's type and compliance flag
// @Summary Reclassify a course document
// @Tags files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "File ID"
// @Param request body dto.ReclassifyFileRequest true "New classification"
// @Success 200 {object} dto.APIResponse{data=models.CourseFile} "File reclassified successfully"
// @Failure 400 {object} dto.APIResponse "Unknown file type"
// @Failure 403 {object} dto.APIResponse "Admin only"
// @Failure 404 {object} dto.APIResponse "File not found"
// @Router /files/{id}/classification [patch]
func (c *FileController) ReclassifyFile(ctx *gin.Context) {
	actor, valid := actorID(ctx)
	if !valid {
		return
	}
	id, valid := pathID(ctx, "id", apperrors.ErrCourseFileNotFound)
	if !valid {
		return
	}

	var req dto.ReclassifyFileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	file, err := c.fileService.ReclassifyFile(ctx.Request.Context(), id, &req, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, file, "File reclassified successfully")
}

// DownloadFile streams a document as an attachment under its original name
// @Summary Download a course document
// @Tags files
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.APIResponse "File record or stored content not found"
// @Router /files/download/{id} [get]
func (c *FileController) DownloadFile(ctx *gin.Context) {
	id, valid := pathID(ctx, "id", apperrors.ErrCourseFileNotFound)
	if !valid {
		return
	}

	file, err := c.fileService.GetFile(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	path, err := c.fileService.ResolveContent(ctx.Request.Context(), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if file.MimeType != "" {
		ctx.Header("Content-Type", file.MimeType)
	}
	ctx.FileAttachment(path, file.FileName)
}
