package handlers

import (
	"net/http"

	"fichaje_backend/internal/services"
	"fichaje_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type FichajeHandler struct {
	*BaseHandler
	fichajeService services.FichajeService
}

func NewFichajeHandler(base *BaseHandler, fichajeService services.FichajeService) *FichajeHandler {
	return &FichajeHandler{
		BaseHandler:    base,
		fichajeService: fichajeService,
	}
}

func (h *FichajeHandler) ClockIn(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	fichaje, err := h.fichajeService.ClockIn(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, fichaje)
}

func (h *FichajeHandler) ClockOut(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	fichaje, err := h.fichajeService.ClockOut(db, userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, fichaje)
}

func (h *FichajeHandler) SetOvertime(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SetOvertimeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	fichaje, err := h.fichajeService.SetOvertime(db, userID, c.Param("id"), req.Flag)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, fichaje)
}

func (h *FichajeHandler) Current(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	open, err := h.fichajeService.CurrentSession(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CurrentSessionResponse{OpenSession: open})
}

func (h *FichajeHandler) History(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	resp, err := h.fichajeService.History(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *FichajeHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.fichajeService.Delete(db, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session deleted",
	})
}

func (h *FichajeHandler) DeleteAll(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.fichajeService.DeleteAll(db, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "History deleted",
	})
}
