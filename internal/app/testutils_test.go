package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cinepass/purchase-service/internal/domain"
	"github.com/cinepass/purchase-service/internal/mocks"
	"github.com/cinepass/purchase-service/internal/purchase"
	"github.com/cinepass/purchase-service/internal/queue"
	appvalidator "github.com/cinepass/purchase-service/internal/validator"
)

const (
	testShowtimeID = int64(1)
	testHallID     = int64(7)
)

type testApplication struct {
	*Application
	purchaseRepo *mocks.MemoryPurchaseRepo
	claimStore   *mocks.MemoryClaimStore
}

func newTestApplication(t *testing.T) *testApplication {
	t.Helper()

	purchaseRepo := mocks.NewMemoryPurchaseRepo()
	claimStore := mocks.NewMemoryClaimStore()

	showtimes := &mocks.MockShowtimeDirectory{
		GetByIdFunc: func(ctx context.Context, id int64) (*domain.Showtime, error) {
			if id != testShowtimeID {
				return nil, domain.ErrRecordNotFound
			}
			return &domain.Showtime{ID: testShowtimeID, HallID: testHallID}, nil
		},
	}

	halls := &mocks.MockHallGeometryProvider{
		GetByIdFunc: func(ctx context.Context, id int64) (*domain.HallGeometry, error) {
			if id != testHallID {
				return nil, domain.ErrRecordNotFound
			}
			return &domain.HallGeometry{
				ID:          testHallID,
				Name:        "Hall 7",
				SeatRows:    []string{"A", "B", "C"},
				SeatColumns: []string{"1", "2"},
			}, nil
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := purchase.NewService(
		purchaseRepo, claimStore, showtimes, halls, queue.NopPublisher{}, 10*time.Minute, logger)

	app := &Application{
		config:    Config{Env: "test"},
		logger:    logger,
		validator: appvalidator.NewValidator(),
		purchases: service,
		claims:    claimStore,
		showtimes: showtimes,
		halls:     halls,
	}

	return &testApplication{
		Application:  app,
		purchaseRepo: purchaseRepo,
		claimStore:   claimStore,
	}
}

// seedPurchase installs a purchase directly in the repository, bypassing the
// service, so tests can stage arbitrary states and deadlines.
func (a *testApplication) seedPurchase(t *testing.T, purchase domain.Purchase) domain.Purchase {
	t.Helper()

	err := a.purchaseRepo.Create(context.Background(), &purchase)
	if err != nil {
		t.Fatal(err)
	}

	return purchase
}

func executeRequest(t *testing.T, app *Application, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	app.Routes().ServeHTTP(w, r)

	return w
}

func decodeResponse[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var response T

	err := json.NewDecoder(w.Body).Decode(&response)
	if err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	return response
}

func checkErrorMessage(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()

	errorResp := decodeResponse[ErrorResponse](t, w)

	if want != "" && errorResp.Message != want {
		t.Errorf("Error message = %v, want %v", errorResp.Message, want)
	}
}

func checkValidationIssue(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()

	validationResp := decodeResponse[ValidationErrorResponse](t, w)

	for _, vErr := range validationResp.ValidationErrors {
		if vErr.Issue == want {
			return
		}
	}

	t.Errorf("Expected validation issue %q not found in response", want)
}

func testHall() domain.HallGeometry {
	return domain.HallGeometry{
		ID:          testHallID,
		Name:        "Hall 7",
		SeatRows:    []string{"A", "B", "C"},
		SeatColumns: []string{"1", "2"},
	}
}
