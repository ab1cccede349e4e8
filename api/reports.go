package api

import (
	"net/http"

	"github.com/Domenick1991/travelbooking/internal/service/reports"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service reports.ReportUseCase
}

type customerReportResponse struct {
	CustomerID string          `json:"customer_id"`
	Entries    []reports.Entry `json:"entries"`
	Text       string          `json:"text"`
}

func NewReportHandler(service reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Register(router *gin.RouterGroup) {
	router.GET("/customers/:id", h.customerHistory)
}

// customerHistory answers with plain text when the client asks for it.
func (h *ReportHandler) customerHistory(c *gin.Context) {
	ctx := c.Request.Context()
	customerID := c.Param("id")

	history, err := h.service.CustomerHistory(ctx, customerID)
	if err != nil {
		writeError(c, err)
		return
	}

	text := h.service.Render(ctx, history)
	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEPlain) == gin.MIMEPlain {
		c.String(http.StatusOK, text)
		return
	}
	c.JSON(http.StatusOK, customerReportResponse{
		CustomerID: customerID,
		Entries:    h.service.Entries(ctx, history),
		Text:       text,
	})
}
