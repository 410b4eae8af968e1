package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/windoze95/cardapio-api/internal/service"
	"github.com/windoze95/cardapio-api/internal/testutil"
	"github.com/windoze95/cardapio-api/internal/util"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setCaller is a test middleware that injects a caller into the gin context.
func setCaller(callerID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if callerID != "" {
			util.SetCallerID(c, callerID)
		}
		c.Next()
	}
}

func newOrderService() *service.OrderService {
	return service.NewOrderService(testutil.TestInterpreter(), nil)
}

func newVoiceService(speech *testutil.MockSpeechProvider, orders *service.OrderService) *service.VoiceService {
	return service.NewVoiceService(testutil.TestConfig(), speech, orders)
}
