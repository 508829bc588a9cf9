package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleOpenAPI(t *testing.T) {
	h := handleOpenAPI()
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	rec := httptest.NewRecorder()

	h(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "application/json") {
		t.Fatalf("content-type = %q, want application/json", got)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `"openapi": "3.`) {
		t.Fatalf("body missing openapi version")
	}
	for _, path := range []string{
		`"/healthz"`,
		`"/api/sessions"`,
		`"/api/{sport}/round"`,
		`"/api/{sport}/round/guesses"`,
		`"/api/{sport}/live"`,
		`"/api/admin/players/{sport}"`,
	} {
		if !strings.Contains(body, path) {
			t.Errorf("body missing %s path", path)
		}
	}
}

func TestOpenAPIReplacePlayersBodyIsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	handleOpenAPI()(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	var doc struct {
		Paths map[string]map[string]struct {
			Parameters []struct {
				Name string `json:"name"`
				In   string `json:"in"`
			} `json:"parameters"`
			RequestBody struct {
				Content map[string]struct {
					Schema map[string]any `json:"schema"`
				} `json:"content"`
			} `json:"requestBody"`
		} `json:"paths"`
		Components struct {
			Schemas map[string]map[string]any `json:"schemas"`
		} `json:"components"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decoding document: %v", err)
	}

	put, ok := doc.Paths["/api/admin/players/{sport}"]["put"]
	if !ok {
		t.Fatal("missing PUT /api/admin/players/{sport}")
	}
	content, ok := put.RequestBody.Content["application/json"]
	if !ok {
		t.Fatalf("request body content = %+v, want application/json", put.RequestBody.Content)
	}
	schema := content.Schema
	if ref, ok := schema["$ref"].(string); ok {
		schema = doc.Components.Schemas[strings.TrimPrefix(ref, "#/components/schemas/")]
	}
	if schema["type"] != "array" {
		t.Fatalf("request body schema = %+v, want an array of players", content.Schema)
	}
	if _, ok := schema["properties"]; ok {
		t.Fatalf("request body schema has object properties: %+v", schema)
	}

	var hasSport bool
	for _, p := range put.Parameters {
		if p.Name == "sport" && p.In == "path" {
			hasSport = true
		}
	}
	if !hasSport {
		t.Fatalf("parameters = %+v, want sport path parameter", put.Parameters)
	}
}
