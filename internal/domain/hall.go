package domain

import (
	"context"
	"time"
)

// HallGeometry describes the physical seating layout of a hall. The valid
// seat labels are the cartesian product of SeatRows and SeatColumns, rendered
// as concatenated strings ("A" + "1" = "A1").
type HallGeometry struct {
	ID          int64
	Name        string
	SeatRows    []string
	SeatColumns []string
}

// SeatLabels renders every valid label of the hall in row-major order.
func (h HallGeometry) SeatLabels() []string {
	labels := make([]string, 0, len(h.SeatRows)*len(h.SeatColumns))

	for _, row := range h.SeatRows {
		for _, col := range h.SeatColumns {
			labels = append(labels, row+col)
		}
	}

	return labels
}

type Showtime struct {
	ID        int64
	HallID    int64
	StartTime time.Time
}

type ShowtimeDirectory interface {
	GetById(ctx context.Context, id int64) (*Showtime, error)
}

type HallGeometryProvider interface {
	GetById(ctx context.Context, id int64) (*HallGeometry, error)
}
