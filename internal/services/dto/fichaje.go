package dto

import "fichaje_backend/internal/models"

type SetOvertimeRequest struct {
	Flag bool `json:"flag"`
}

type CurrentSessionResponse struct {
	OpenSession *models.Fichaje `json:"open_session"`
}

// Totals are the aggregates returned with the history, rounded to cents.
type Totals struct {
	Week  float64 `json:"week"`
	Month float64 `json:"month"`
}

type HistoryResponse struct {
	History []models.Fichaje `json:"history"`
	Totals  Totals           `json:"totals"`
}
