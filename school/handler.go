package school

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/schoolauth/errors"
	"github.com/kbukum/schoolauth/logger"
	"github.com/kbukum/schoolauth/server"
	"github.com/kbukum/schoolauth/server/middleware"
	"github.com/kbukum/schoolauth/validation"
)

// Handler exposes the flows over HTTP.
type Handler struct {
	svc *Service
	log *logger.Logger
}

// NewHandler creates the HTTP handler for the flows.
func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log.WithComponent("http")}
}

// Register wires the routes. The bearer guard protects /me only; login and
// registration are open by design.
func (h *Handler) Register(r *gin.Engine, guard gin.HandlerFunc) {
	r.GET("/", h.root)
	r.GET("/ch", h.probe)
	r.POST("/login", h.login)
	r.PUT("/student", h.registerStudent)
	r.PUT("/parent", h.registerParent)
	r.GET("/me", guard, h.me)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerStudentRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required"`
	StudentClass  string `json:"studentClass"`
	EducationCode string `json:"educationCode" validate:"required"`
	Number        string `json:"number" validate:"required"`
}

type registerParentRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required"`
	Number         string `json:"number" validate:"required"`
	Relationship   string `json:"relationship" validate:"required"`
	ChildStudentID string `json:"childStudentId" validate:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := h.bind(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   res.Token,
		"user":    res.User,
	})
}

func (h *Handler) registerStudent(c *gin.Context) {
	var req registerStudentRequest
	if err := h.bind(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	res, err := h.svc.RegisterStudent(c.Request.Context(), RegisterStudentInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		StudentClass:  req.StudentClass,
		EducationCode: req.EducationCode,
		Number:        req.Number,
	})
	if err != nil {
		h.fail(c, "register_student", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Student registered successfully",
		"result":  res,
	})
}

func (h *Handler) registerParent(c *gin.Context) {
	var req registerParentRequest
	if err := h.bind(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	res, err := h.svc.RegisterParent(c.Request.Context(), RegisterParentInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Number:         req.Number,
		Relationship:   req.Relationship,
		ChildStudentID: req.ChildStudentID,
	})
	if err != nil {
		h.fail(c, "register_parent", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Parent registered successfully",
		"result":  res,
	})
}

// me returns the claim set of the authenticated caller.
func (h *Handler) me(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		server.RespondWithError(c, apperrors.Unauthorized(""))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user": User{
			ID:    claims.UserID,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  claims.Role,
		},
	})
}

func (h *Handler) root(c *gin.Context) {
	c.String(http.StatusOK, "Server is running")
}

func (h *Handler) probe(c *gin.Context) {
	c.String(http.StatusOK, "okay")
}

// bind decodes the JSON body into req and validates it at the boundary.
func (h *Handler) bind(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperrors.Validation("Request body must be valid JSON")
	}
	return validation.Validate(req)
}

// fail logs the underlying fault server-side and responds with the mapped
// status. Clients never see the cause.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.Cause != nil {
		h.log.Error("Operation failed", logger.ErrorFields(op, appErr.Cause))
	}
	server.RespondWithError(c, err)
}
