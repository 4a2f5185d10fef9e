package v1

import (
	"fmt"
	"net/http"
	"time"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type RecruiterHandler struct {
	recruiterUC domain.RecruiterUsecase
	tokens      tokenWriter
}

func NewRecruiterHandler(recruiters *gin.RouterGroup, protect gin.HandlerFunc, recruiterUC domain.RecruiterUsecase, cookie CookieConfig) {
	handler := &RecruiterHandler{
		recruiterUC: recruiterUC,
		tokens:      tokenWriter{cookie: cookie, now: time.Now},
	}

	// Listing and profiles are public so candidates can browse companies
	recruiters.GET("", handler.List)
	recruiters.POST("", middleware.RecruiterValidator(), handler.Create)
	recruiters.DELETE("", protect, middleware.AdminValidator(), handler.DeleteAll)

	recruiters.GET("/:recruiterId", handler.Get)
	recruiters.PUT("/:recruiterId", protect, handler.Update)
	recruiters.DELETE("/:recruiterId", protect, handler.Delete)
}

type UpdateRecruiterRequest struct {
	CompanyName        *string `json:"companyName" binding:"omitempty,valid_name"`
	CompanyDescription *string `json:"companyDescription"`
	Address            *string `json:"address"`
	Email              *string `json:"email" binding:"omitempty,email"`
}

// ListRecruiters godoc
// @Summary      List recruiters
// @Tags         recruiters
// @Produce      json
// @Param        companyName         query     string  false  "Include companyName"
// @Param        companyDescription  query     string  false  "Include companyDescription"
// @Param        address             query     string  false  "Include address"
// @Param        email               query     string  false  "Include email"
// @Param        limit               query     int     false  "Maximum number of recruiters"
// @Param        sortByCompanyName   query     string  false  "asc or desc"
// @Success      200                 {object}  response.Response
// @Router       /recruiters [get]
func (h *RecruiterHandler) List(c *gin.Context) {
	recruiters, err := h.recruiterUC.ListRecruiters(c.Request.Context(), recruiterListQuery.parse(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Recruiters retrieved", recruiters)
}

// CreateRecruiter godoc
// @Summary      Register a recruiter
// @Tags         recruiters
// @Accept       json
// @Produce      json
// @Param        recruiter  body      domain.CreateRecruiterRequest  true  "Recruiter JSON"
// @Success      201        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Failure      409        {object}  response.Response
// @Router       /recruiters [post]
func (h *RecruiterHandler) Create(c *gin.Context) {
	req, ok := middleware.Payload[domain.CreateRecruiterRequest](c)
	if !ok {
		c.Error(apperror.BadRequest("Missing Required fields!"))
		return
	}

	recruiter := req.Recruiter()
	token, err := h.recruiterUC.CreateRecruiter(c.Request.Context(), recruiter, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	h.tokens.setCookie(c, token)
	response.Created(c, "Recruiter created", gin.H{"token": token, "recruiter": recruiter})
}

// DeleteRecruiters godoc
// @Summary      Delete every recruiter
// @Tags         recruiters
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /recruiters [delete]
// @Security     BearerAuth
func (h *RecruiterHandler) DeleteAll(c *gin.Context) {
	n, err := h.recruiterUC.DeleteRecruiters(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Successfully deleted all recruiters!", gin.H{"deleted": n})
}

// GetRecruiter godoc
// @Summary      Get a recruiter
// @Tags         recruiters
// @Produce      json
// @Param        recruiterId  path      string  true  "Recruiter ID"
// @Success      200          {object}  response.Response
// @Failure      400          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Router       /recruiters/{recruiterId} [get]
func (h *RecruiterHandler) Get(c *gin.Context) {
	recruiter, err := h.recruiterUC.GetRecruiter(c.Request.Context(), c.Param("recruiterId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Recruiter retrieved", recruiter)
}

// UpdateRecruiter godoc
// @Summary      Update a recruiter
// @Tags         recruiters
// @Accept       json
// @Produce      json
// @Param        recruiterId  path      string                  true  "Recruiter ID"
// @Param        recruiter    body      UpdateRecruiterRequest  true  "Fields to change"
// @Success      200          {object}  response.Response
// @Failure      400          {object}  response.Response
// @Failure      403          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Router       /recruiters/{recruiterId} [put]
// @Security     BearerAuth
func (h *RecruiterHandler) Update(c *gin.Context) {
	var req UpdateRecruiterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.FormatValidationErrors(err))
		return
	}

	recruiter, err := h.recruiterUC.UpdateRecruiter(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("recruiterId"), domain.RecruiterUpdate{
		CompanyName:        req.CompanyName,
		CompanyDescription: req.CompanyDescription,
		Address:            req.Address,
		Email:              req.Email,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Recruiter updated", recruiter)
}

// DeleteRecruiter godoc
// @Summary      Delete a recruiter
// @Tags         recruiters
// @Produce      json
// @Param        recruiterId  path      string  true  "Recruiter ID"
// @Success      200          {object}  response.Response
// @Failure      403          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Router       /recruiters/{recruiterId} [delete]
// @Security     BearerAuth
func (h *RecruiterHandler) Delete(c *gin.Context) {
	id := c.Param("recruiterId")
	if _, err := h.recruiterUC.DeleteRecruiter(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, fmt.Sprintf("Successfully deleted recruiter with id %s", id), nil)
}
