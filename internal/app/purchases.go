package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cinepass/purchase-service/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type InitiatePurchaseRequest struct {
	ShowtimeId    int64 `json:"showtimeId" validate:"required,min=1"`
	NumberTickets int   `json:"numberTickets" validate:"required,min=1"`
}

type ConfirmPurchaseRequest struct {
	ChosenSeats []string `json:"chosenSeats" validate:"required,min=1,dive,required"`
}

type PurchaseResponse struct {
	Id                     string    `json:"id"`
	ShowtimeId             int64     `json:"showtimeId"`
	NumberTickets          int       `json:"numberTickets"`
	ChosenSeats            []string  `json:"chosenSeats"`
	Status                 string    `json:"status"`
	ExpiredSeatSelectionAt time.Time `json:"expiredSeatSelectionAt"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

func (app *Application) InitiatePurchaseHandler(w http.ResponseWriter, r *http.Request) {
	var input InitiatePurchaseRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	purchase, err := app.purchases.Initiate(r.Context(), input.ShowtimeId, input.NumberTickets)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrInvalidTicketCount):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toPurchaseResponse(purchase), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ConfirmPurchaseHandler(w http.ResponseWriter, r *http.Request) {
	purchaseID, err := purchaseIDFromURL(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input ConfirmPurchaseRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	purchase, err := app.purchases.Confirm(r.Context(), purchaseID, input.ChosenSeats)
	if err != nil {
		app.confirmErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toPurchaseResponse(purchase), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) confirmErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var conflictErr *domain.SeatConflictError

	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	case errors.Is(err, domain.ErrInvalidPurchaseState),
		errors.Is(err, domain.ErrSeatSelectionExpired):
		app.editConflictResponse(w, r, err)
	case errors.Is(err, domain.ErrSeatCountMismatch),
		errors.Is(err, domain.ErrInvalidSeatLabel),
		errors.Is(err, domain.ErrDuplicateSeatLabel):
		app.badRequestResponse(w, r, err)
	case errors.As(err, &conflictErr):
		app.seatConflictResponse(w, r, conflictErr)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetPurchaseHandler(w http.ResponseWriter, r *http.Request) {
	purchaseID, err := purchaseIDFromURL(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	purchase, err := app.purchases.Get(r.Context(), purchaseID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toPurchaseResponse(purchase), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelPurchaseHandler(w http.ResponseWriter, r *http.Request) {
	purchaseID, err := purchaseIDFromURL(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	_, err = app.purchases.Cancel(r.Context(), purchaseID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrInvalidPurchaseState):
			app.editConflictResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func purchaseIDFromURL(r *http.Request) (uuid.UUID, error) {
	purchaseID, err := uuid.Parse(chi.URLParam(r, "purchaseId"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid purchase ID")
	}

	return purchaseID, nil
}

func toPurchaseResponse(purchase *domain.Purchase) PurchaseResponse {
	return PurchaseResponse{
		Id:                     purchase.ID.String(),
		ShowtimeId:             purchase.ShowtimeID,
		NumberTickets:          purchase.NumberTickets,
		ChosenSeats:            purchase.ChosenSeats,
		Status:                 string(purchase.Status),
		ExpiredSeatSelectionAt: purchase.ExpiredSeatSelectionAt,
		CreatedAt:              purchase.CreatedAt,
		UpdatedAt:              purchase.UpdatedAt,
	}
}
