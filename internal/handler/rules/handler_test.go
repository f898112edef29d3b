package rules

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	rulesmodel "github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/model/rules"
)

func TestListRules(t *testing.T) {
	handler := New(rulesmodel.NewMemoryStore(rulesmodel.Seed()))
	r := chi.NewRouter()
	handler.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/rules", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var listed []rulesmodel.Rule
	if err := json.Unmarshal(resp.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode rules: %v", err)
	}

	seed := rulesmodel.Seed()
	if len(listed) != len(seed) {
		t.Fatalf("expected %d rules, got %d", len(seed), len(listed))
	}
	for i := range seed {
		if listed[i].ID != seed[i].ID {
			t.Fatalf("rule order changed at %d: got %s want %s", i, listed[i].ID, seed[i].ID)
		}
	}
}
