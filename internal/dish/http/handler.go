package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openbistro/cafe-booking-backend/internal/dish"
	"github.com/openbistro/cafe-booking-backend/internal/pkg/request"
	"github.com/openbistro/cafe-booking-backend/internal/pkg/response"
)

type Handler struct {
	service dish.Service
}

func NewHandler(service dish.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListDishesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	dishes, total, err := h.service.List(c.Request.Context(), dish.Filter{
		CafeID:       req.CafeID,
		ShowInactive: req.ShowInactive,
		Page:         req.Page,
		PageSize:     req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]DishResponse, len(dishes))
	for i, d := range dishes {
		items[i] = NewResponse(d)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(d))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	d, err := h.service.Create(c.Request.Context(), dish.CreateInput{
		CafeID:      body.CafeID,
		Name:        body.Name,
		Description: body.Description,
		PriceCents:  body.PriceCents,
		PhotoID:     body.PhotoID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(d))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	d, err := h.service.Update(c.Request.Context(), uri.ID, dish.UpdateInput{
		Name:        body.Name,
		Description: body.Description,
		PriceCents:  body.PriceCents,
		PhotoID:     body.PhotoID,
		Active:      body.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(d))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
