package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/cardapio-api/internal/service"
)

// MenuHandler is the handler for menu requests.
type MenuHandler struct {
	Service *service.OrderService
}

// NewMenuHandler is the constructor function for initializing a new MenuHandler.
func NewMenuHandler(orderService *service.OrderService) *MenuHandler {
	return &MenuHandler{Service: orderService}
}

// GetMenu returns the menu entries in declaration order.
func (h *MenuHandler) GetMenu(c *gin.Context) {
	entries := h.Service.Catalog().Entries()
	c.JSON(http.StatusOK, gin.H{
		"items": entries,
		"total": len(entries),
	})
}
