package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHallGeometrySeatLabels(t *testing.T) {
	hall := HallGeometry{
		SeatRows:    []string{"A", "B", "C"},
		SeatColumns: []string{"1", "2"},
	}

	want := []string{"A1", "A2", "B1", "B2", "C1", "C2"}
	assert.Equal(t, want, hall.SeatLabels())
}

func TestValidateSeatLabels(t *testing.T) {
	hall := HallGeometry{
		SeatRows:    []string{"A", "B", "C"},
		SeatColumns: []string{"1", "2"},
	}

	tests := []struct {
		name          string
		labels        []string
		expectedCount int
		wantErr       error
		want          []string
	}{
		{
			name:          "accepts a valid seat set",
			labels:        []string{"A1", "B2"},
			expectedCount: 2,
			want:          []string{"A1", "B2"},
		},
		{
			name:          "preserves the order labels were chosen in",
			labels:        []string{"C2", "A1"},
			expectedCount: 2,
			want:          []string{"C2", "A1"},
		},
		{
			name:          "rejects a label outside the hall grid",
			labels:        []string{"Z9", "A1"},
			expectedCount: 2,
			wantErr:       ErrInvalidSeatLabel,
		},
		{
			name:          "rejects a label built from row and column of different seats",
			labels:        []string{"A12"},
			expectedCount: 1,
			wantErr:       ErrInvalidSeatLabel,
		},
		{
			name:          "rejects a repeated label instead of counting it twice",
			labels:        []string{"A1", "A1"},
			expectedCount: 2,
			wantErr:       ErrDuplicateSeatLabel,
		},
		{
			name:          "rejects too few seats",
			labels:        []string{"A1"},
			expectedCount: 2,
			wantErr:       ErrSeatCountMismatch,
		},
		{
			name:          "rejects too many seats",
			labels:        []string{"A1", "A2", "B1"},
			expectedCount: 2,
			wantErr:       ErrSeatCountMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateSeatLabels(tt.labels, hall, tt.expectedCount)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
