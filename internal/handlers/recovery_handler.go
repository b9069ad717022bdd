package handlers

import (
	"net/http"

	"fichaje_backend/internal/services"
	"fichaje_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type RecoveryHandler struct {
	*BaseHandler
	recoveryService services.RecoveryService
}

func NewRecoveryHandler(base *BaseHandler, recoveryService services.RecoveryService) *RecoveryHandler {
	return &RecoveryHandler{
		BaseHandler:     base,
		recoveryService: recoveryService,
	}
}

func (h *RecoveryHandler) RequestCode(c *gin.Context) {
	var req dto.RecoveryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.recoveryService.RequestCode(db, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recovery code sent",
	})
}

func (h *RecoveryHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.recoveryService.ResetPassword(db, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password updated",
	})
}
