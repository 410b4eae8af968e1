package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/gin-gonic/gin"
	"github.com/windoze95/cardapio-api/internal/logger"
	"github.com/windoze95/cardapio-api/internal/service"
	"github.com/windoze95/cardapio-api/internal/util"
	"go.uber.org/zap"
)

// MaxOrderTextRunes bounds the order text accepted by QuoteOrder.
const MaxOrderTextRunes = 500

// OrderHandler is the handler for order pricing requests.
type OrderHandler struct {
	Service      *service.OrderService
	VoiceService *service.VoiceService
}

// NewOrderHandler is the constructor function for initializing a new OrderHandler.
func NewOrderHandler(orderService *service.OrderService, voiceService *service.VoiceService) *OrderHandler {
	return &OrderHandler{Service: orderService, VoiceService: voiceService}
}

type quoteRequest struct {
	Text string `json:"text"`
}

// QuoteOrder prices the order text in the request body.
func (h *OrderHandler) QuoteOrder(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	if !govalidator.RuneLength(req.Text, "1", strconv.Itoa(MaxOrderTextRunes)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text must be at most " + strconv.Itoa(MaxOrderTextRunes) + " characters"})
		return
	}

	quote := h.Service.Quote(c.Request.Context(), service.ChannelREST, req.Text)
	c.JSON(http.StatusOK, quote)
}

// QuoteVoiceOrder transcribes the uploaded "audio" file and prices it.
func (h *OrderHandler) QuoteVoiceOrder(c *gin.Context) {
	callerID, err := util.GetCallerIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if h.VoiceService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Voice orders are not enabled"})
		return
	}

	fh, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required"})
		return
	}
	audio, err := readUpload(fh, service.MaxAudioBytes)
	if err != nil {
		if errors.Is(err, errUploadTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "audio file is too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read audio file"})
		return
	}
	if len(audio) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is empty"})
		return
	}

	vq, err := h.VoiceService.QuoteAudio(c.Request.Context(), service.ChannelVoice, audio, fh.Filename)
	if err != nil {
		if errors.Is(err, service.ErrAudioTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "audio file is too large"})
			return
		}
		logger.FromContext(c).Error("failed to quote voice order", zap.String("caller_id", callerID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to transcribe audio"})
		return
	}

	c.JSON(http.StatusOK, vq)
}
