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

type UserHandler struct {
	userUC domain.UserUsecase
	tokens tokenWriter
}

func NewUserHandler(users *gin.RouterGroup, protect gin.HandlerFunc, userUC domain.UserUsecase, cookie CookieConfig) {
	handler := &UserHandler{
		userUC: userUC,
		tokens: tokenWriter{cookie: cookie, now: time.Now},
	}

	users.GET("", protect, middleware.AdminValidator(), handler.List)
	users.POST("", middleware.UserValidator(), handler.Create)
	users.DELETE("", protect, middleware.AdminValidator(), handler.DeleteAll)

	users.GET("/:userId", protect, handler.Get)
	users.PUT("/:userId", protect, handler.Update)
	users.DELETE("/:userId", protect, handler.Delete)
}

// UpdateUserRequest is a partial update; absent fields are left unchanged.
// Passwords change through /updatepassword only.
type UpdateUserRequest struct {
	UserName  *string `json:"userName" binding:"omitempty,max=64"`
	FirstName *string `json:"firstName" binding:"omitempty,valid_name"`
	LastName  *string `json:"lastName" binding:"omitempty,valid_name"`
	Gender    *string `json:"gender"`
	Age       *int    `json:"age" binding:"omitempty,gt=0"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Admin     *bool   `json:"admin"`
}

// ListUsers godoc
// @Summary      List users
// @Description  Admin only. Pass a field name with any value to include it in the projection.
// @Tags         users
// @Produce      json
// @Param        userName         query     string  false  "Include userName"
// @Param        firstName        query     string  false  "Include firstName"
// @Param        lastName         query     string  false  "Include lastName"
// @Param        email            query     string  false  "Include email"
// @Param        gender           query     string  false  "Include gender"
// @Param        limit            query     int     false  "Maximum number of users"
// @Param        sortByFirstName  query     string  false  "asc or desc"
// @Success      200              {object}  response.Response
// @Failure      401              {object}  response.Response
// @Failure      403              {object}  response.Response
// @Router       /users [get]
// @Security     BearerAuth
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userUC.ListUsers(c.Request.Context(), userListQuery.parse(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Users retrieved", users)
}

// CreateUser godoc
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      domain.CreateUserRequest  true  "User JSON"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	req, ok := middleware.Payload[domain.CreateUserRequest](c)
	if !ok {
		c.Error(apperror.BadRequest("Missing Required fields!"))
		return
	}

	user := req.User()
	token, err := h.userUC.CreateUser(c.Request.Context(), user, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	h.tokens.setCookie(c, token)
	response.Created(c, "User created", gin.H{"token": token, "user": user})
}

// DeleteUsers godoc
// @Summary      Delete every user
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /users [delete]
// @Security     BearerAuth
func (h *UserHandler) DeleteAll(c *gin.Context) {
	n, err := h.userUC.DeleteUsers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Successfully deleted all users!", gin.H{"deleted": n})
}

// GetUser godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /users/{userId} [get]
// @Security     BearerAuth
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userUC.GetUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User retrieved", user)
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  Self or admin. Only admins may change the admin flag.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userId  path      string             true  "User ID"
// @Param        user    body      UpdateUserRequest  true  "Fields to change"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /users/{userId} [put]
// @Security     BearerAuth
func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.FormatValidationErrors(err))
		return
	}

	user, err := h.userUC.UpdateUser(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("userId"), domain.UserUpdate{
		UserName:  req.UserName,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		Age:       req.Age,
		Email:     req.Email,
		Admin:     req.Admin,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User updated", user)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /users/{userId} [delete]
// @Security     BearerAuth
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("userId")
	if _, err := h.userUC.DeleteUser(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, fmt.Sprintf("Successfully deleted user with id %s", id), nil)
}
