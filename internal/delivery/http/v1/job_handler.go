package v1

import (
	"fmt"
	"net/http"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(jobs *gin.RouterGroup, protect gin.HandlerFunc, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// PUBLIC routes
	jobs.GET("", handler.List)
	jobs.GET("/:jobId", handler.Get)

	// PROTECTED routes
	jobs.POST("", protect, middleware.JobValidator(), handler.Create)
	jobs.PUT("/:jobId", protect, handler.Update)
	jobs.DELETE("/:jobId", protect, handler.Delete)

	// Admin only
	jobs.DELETE("", protect, middleware.AdminValidator(), handler.DeleteAll)
	jobs.GET("/export", protect, middleware.AdminValidator(), handler.Export)
}

type UpdateJobRequest struct {
	JobTitle       *string  `json:"jobTitle"`
	JobDescription *string  `json:"jobDescription"`
	Location       *string  `json:"location"`
	Salary         *float64 `json:"salary" binding:"omitempty,gte=0"`
}

// ListJobs godoc
// @Summary      List jobs
// @Description  Pass a field name with any value to include it in the projection.
// @Tags         jobs
// @Produce      json
// @Param        jobTitle        query     string  false  "Include jobTitle"
// @Param        jobDescription  query     string  false  "Include jobDescription"
// @Param        location        query     string  false  "Include location"
// @Param        salary          query     string  false  "Include salary"
// @Param        limit           query     int     false  "Maximum number of jobs"
// @Param        sortByjobTitle  query     string  false  "asc or desc"
// @Success      200             {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobUC.ListJobs(c.Request.Context(), jobListQuery.parse(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}

// CreateJob godoc
// @Summary      Post a job
// @Description  Recruiters own the jobs they post. Admins may post too.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      domain.CreateJobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	req, ok := middleware.Payload[domain.CreateJobRequest](c)
	if !ok {
		c.Error(apperror.BadRequest("Missing Required fields!"))
		return
	}

	job := req.Job()
	if err := h.jobUC.CreateJob(c.Request.Context(), middleware.PrincipalFrom(c), job); err != nil {
		c.Error(err)
		return
	}

	response.Created(c, "Job created", job)
}

// DeleteJobs godoc
// @Summary      Delete every job
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [delete]
// @Security     BearerAuth
func (h *JobHandler) DeleteAll(c *gin.Context) {
	n, err := h.jobUC.DeleteJobs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Successfully deleted all jobs!", gin.H{"deleted": n})
}

// ExportJobs godoc
// @Summary      Export jobs
// @Description  Download every job as an Excel workbook
// @Tags         jobs
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      403  {object}  response.Response
// @Router       /jobs/export [get]
// @Security     BearerAuth
func (h *JobHandler) Export(c *gin.Context) {
	data, filename, err := h.jobUC.ExportJobs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// GetJob godoc
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /jobs/{jobId} [get]
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobUC.GetJob(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job retrieved", job)
}

// UpdateJob godoc
// @Summary      Update a job
// @Description  Owning recruiter or admin
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        jobId  path      string            true  "Job ID"
// @Param        job    body      UpdateJobRequest  true  "Fields to change"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /jobs/{jobId} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.FormatValidationErrors(err))
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("jobId"), domain.JobUpdate{
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		Location:       req.Location,
		Salary:         req.Salary,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated", job)
}

// DeleteJob godoc
// @Summary      Delete a job
// @Description  Owning recruiter or admin
// @Tags         jobs
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /jobs/{jobId} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	id := c.Param("jobId")
	if _, err := h.jobUC.DeleteJob(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, fmt.Sprintf("Successfully deleted job with id %s", id), nil)
}
