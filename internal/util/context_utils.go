package util

import (
	"errors"

	"github.com/gin-gonic/gin"
)

const callerIDKey = "caller_id"

// SetCallerID stores the authenticated caller in the context.
func SetCallerID(c *gin.Context, callerID string) {
	c.Set(callerIDKey, callerID)
}

// GetCallerIDFromContext gets the caller ID from the context.
func GetCallerIDFromContext(c *gin.Context) (string, error) {
	val, ok := c.Get(callerIDKey)
	if !ok {
		return "", errors.New("no caller ID information")
	}

	callerID, ok := val.(string)
	if !ok {
		return "", errors.New("caller ID information is of the wrong type")
	}

	return callerID, nil
}
