package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/nbadocs/internal/app/services"
	"github.com/yigit/nbadocs/internal/middleware"
	"github.com/yigit/nbadocs/internal/pkg/apperrors"
)

// ReportController serves the dashboard and compliance reports
type ReportController struct {
	complianceService *services.ComplianceService
	dashboardService  *services.DashboardService
}

// NewReportController creates a new ReportController
func NewReportController(complianceService *services.ComplianceService, dashboardService *services.DashboardService) *ReportController {
	return &ReportController{
		complianceService: complianceService,
		dashboardService:  dashboardService,
	}
}

// GetDashboard returns global statistics
// @Summary Dashboard statistics
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.DashboardStats}
// @Router /reports/dashboard [get]
func (c *ReportController) GetDashboard(ctx *gin.Context) {
	stats, err := c.dashboardService.GlobalStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, stats)
}

// GetComplianceReport scores every active course
// @Summary NBA compliance report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.CourseCompliance}
// @Router /reports/nba-compliance [get]
func (c *ReportController) GetComplianceReport(ctx *gin.Context) {
	report, err := c.complianceService.Report(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, report)
}

// GetCourseCompliance scores one course
// @Summary NBA compliance of one course
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.CourseCompliance}
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Router /reports/nba-compliance/{courseId} [get]
func (c *ReportController) GetCourseCompliance(ctx *gin.Context) {
	courseID, valid := pathID(ctx, "courseId", apperrors.ErrCourseNotFound)
	if !valid {
		return
	}

	entry, err := c.complianceService.CourseCompliance(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, entry)
}
