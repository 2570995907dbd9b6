package handler_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/askarovb/auth-service/internal/infrastructure/memory"
	"github.com/askarovb/auth-service/internal/transport/http/handler"
	"github.com/askarovb/auth-service/internal/usecase"
	"github.com/gin-gonic/gin"
)

// The city stack is small enough to test end-to-end against the real
// in-memory repository instead of a fake.
func newCityEngine() *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewCityHandler(usecase.NewCityUsecase(memory.NewCityRepository()), logger)

	r := gin.New()
	r.POST("/cities", h.Create)
	r.GET("/cities", h.List)
	r.GET("/cities/:id", h.GetByID)
	r.PUT("/cities/:id", h.Update)
	r.DELETE("/cities/:id", h.Delete)
	return r
}

func TestCity_CRUDRoundTrip(t *testing.T) {
	r := newCityEngine()

	w := doJSON(t, r, http.MethodPost, "/cities", `{"name":"Bishkek","population":1074075}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", w.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil || created.ID == "" {
		t.Fatalf("create response %q: %v", w.Body.String(), err)
	}

	w = doJSON(t, r, http.MethodGet, "/cities/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, "/cities/"+created.ID, `{"name":"Bishkek","population":1100000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/cities/"+created.ID, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/cities/"+created.ID, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", w.Code)
	}
}

func TestCity_MissingName_Returns400(t *testing.T) {
	w := doJSON(t, newCityEngine(), http.MethodPost, "/cities", `{"population":5}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCity_UnknownID_Returns404(t *testing.T) {
	r := newCityEngine()

	for _, tc := range []struct {
		method string
		body   string
	}{
		{http.MethodGet, ""},
		{http.MethodPut, `{"name":"Nowhere","population":0}`},
		{http.MethodDelete, ""},
	} {
		w := doJSON(t, r, tc.method, "/cities/does-not-exist", tc.body)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s unknown id: status = %d, want 404", tc.method, w.Code)
		}
	}
}
