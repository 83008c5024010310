package handlers

import (
	"net/http"

	"slotbook/services/booking"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var statusByKind = map[booking.ErrorKind]int{
	booking.KindNotFound:   http.StatusNotFound,
	booking.KindBadRequest: http.StatusBadRequest,
	booking.KindConflict:   http.StatusConflict,
}

// respondError writes booking errors verbatim and hides everything else
// behind a 500.
func respondError(c *gin.Context, err error) {
	if be, ok := booking.AsError(err); ok {
		status, known := statusByKind[be.Kind]
		if known {
			getLogger(c).Info("request rejected",
				zap.Int("status", status),
				zap.String("state", string(be.State)),
				zap.String("reason", be.Message))
			utils.JSONError(c, status, be.Message, "")
			return
		}
	}

	getLogger(c).Error("request failed", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
}

// respondBindError reports malformed payloads and query strings.
func respondBindError(c *gin.Context, err error) {
	getLogger(c).Info("invalid request", zap.Error(err))
	utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
}
