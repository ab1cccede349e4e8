package api

import (
	"net/http"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/service/itineraries"
	"github.com/gin-gonic/gin"
)

type ItineraryHandler struct {
	service itineraries.ItineraryUseCase
}

func NewItineraryHandler(service itineraries.ItineraryUseCase) *ItineraryHandler {
	return &ItineraryHandler{service: service}
}

func (h *ItineraryHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/transport-types", h.transportTypes)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *ItineraryHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ItineraryHandler) transportTypes(c *gin.Context) {
	c.JSON(http.StatusOK, domain.TransportTypes)
}

func (h *ItineraryHandler) get(c *gin.Context) {
	itinerary, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, itinerary)
}

func (h *ItineraryHandler) create(c *gin.Context) {
	var req itineraries.ItineraryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	itinerary, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if itinerary != nil {
			writeAppliedError(c, err, itinerary)
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, itinerary)
}

func (h *ItineraryHandler) update(c *gin.Context) {
	var req itineraries.ItineraryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	itinerary, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if itinerary != nil {
			writeAppliedError(c, err, itinerary)
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, itinerary)
}

func (h *ItineraryHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
