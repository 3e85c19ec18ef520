package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"photodrop/internal/student"
)

// Register creates a new UNPAID/Pending student and returns the generated
// credential exactly once.
func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		Reference string `json:"reference" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and reference are required"})
		return
	}

	created, password, err := h.students.Register(c.Request.Context(), req.Name, req.Reference)
	if err != nil {
		switch {
		case errors.Is(err, student.ErrAlreadyRegistered):
			c.JSON(http.StatusBadRequest, gin.H{"error": "student with this reference already exists"})
		case errors.Is(err, student.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.serviceError(c, "register", err)
		}
		return
	}

	registrationsTotal.Inc()
	c.JSON(http.StatusCreated, gin.H{"student": created, "password": password})
}

// Check probes whether a reference is already registered.
func (h *Handler) Check(c *gin.Context) {
	var req struct {
		Reference string `json:"reference" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reference is required"})
		return
	}

	exists, err := h.students.Check(c.Request.Context(), req.Reference)
	if err != nil {
		if errors.Is(err, student.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.serviceError(c, "check", err)
		return
	}
	msg := "reference is available"
	if exists {
		msg = "reference already registered"
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists, "message": msg})
}

// Get returns one student by id. Credential material never appears here.
func (h *Handler) Get(c *gin.Context) {
	s, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.serviceError(c, "get student", err)
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"student": s})
}

// List returns all students.
func (h *Handler) List(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		h.serviceError(c, "list students", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

// Status updates the photo-processing status field.
func (h *Handler) Status(c *gin.Context) {
	var req struct {
		Reference string `json:"reference" binding:"required"`
		Status    string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reference and status are required"})
		return
	}

	if err := h.students.SetPhotoStatus(c.Request.Context(), req.Reference, req.Status); err != nil {
		switch {
		case errors.Is(err, student.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		case errors.Is(err, student.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.serviceError(c, "set status", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

// Payment runs the one-way UNPAID -> PAID transition and returns the
// replacement credential plus the display amount.
func (h *Handler) Payment(c *gin.Context) {
	var req struct {
		Reference        string `json:"reference" binding:"required"`
		PolaroidQuantity *int   `json:"polaroid_quantity"`
		AlbumQuantity    *int   `json:"album_quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reference is required"})
		return
	}

	password, err := h.students.Pay(c.Request.Context(), req.Reference, req.PolaroidQuantity, req.AlbumQuantity)
	if err != nil {
		switch {
		case errors.Is(err, student.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		case errors.Is(err, student.ErrAlreadyPaid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "student already paid"})
		case errors.Is(err, student.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.serviceError(c, "payment", err)
		}
		return
	}

	paymentsTotal.Inc()
	resp := gin.H{"password": password}
	if s, err := h.students.GetByReference(c.Request.Context(), req.Reference); err == nil && s != nil {
		resp["amount"] = s.PolaroidQuantity*h.cfg.PolaroidPrice + s.AlbumQuantity*h.cfg.AlbumPrice
	}
	if h.cfg.PaymentCollector != "" {
		resp["collector"] = h.cfg.PaymentCollector
	}
	c.JSON(http.StatusOK, resp)
}

// serviceError logs the detail server-side and returns a generic 500.
func (h *Handler) serviceError(c *gin.Context, op string, err error) {
	log.Printf("%s failed: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
