package app

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type SeatMapResponse struct {
	ShowtimeId int64        `json:"showtimeId"`
	HallId     int64        `json:"hallId"`
	HallName   string       `json:"hallName"`
	SeatRows   []SeatMapRow `json:"seatRows"`
}

type SeatMapRow struct {
	Row   string        `json:"row"`
	Seats []SeatMapSeat `json:"seats"`
}

type SeatMapSeat struct {
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

// GetSeatMapByShowtimeHandler renders the hall grid for a showtime with
// claimed seats marked unavailable. The snapshot is informational; the claim
// store remains the only authority on whether a confirm succeeds.
func (app *Application) GetSeatMapByShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := strconv.ParseInt(chi.URLParam(r, "showtimeId"), 10, 64)
	if err != nil || showtimeID < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("showtime ID must be a positive integer"))
		return
	}

	showtime, err := app.showtimes.GetById(r.Context(), showtimeID)
	if err != nil {
		app.lookupErrorResponse(w, r, err)
		return
	}

	hall, err := app.halls.GetById(r.Context(), showtime.HallID)
	if err != nil {
		app.lookupErrorResponse(w, r, err)
		return
	}

	claims, err := app.claims.ActiveClaims(r.Context(), showtimeID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	claimed := make(map[string]bool, len(claims))
	for _, claim := range claims {
		claimed[claim.SeatLabel] = true
	}

	resp := SeatMapResponse{
		ShowtimeId: showtimeID,
		HallId:     hall.ID,
		HallName:   hall.Name,
		SeatRows:   make([]SeatMapRow, 0, len(hall.SeatRows)),
	}

	for _, row := range hall.SeatRows {
		seatRow := SeatMapRow{
			Row:   row,
			Seats: make([]SeatMapSeat, 0, len(hall.SeatColumns)),
		}

		for _, col := range hall.SeatColumns {
			label := row + col
			seatRow.Seats = append(seatRow.Seats, SeatMapSeat{
				Label:     label,
				Available: !claimed[label],
			})
		}

		resp.SeatRows = append(resp.SeatRows, seatRow)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
