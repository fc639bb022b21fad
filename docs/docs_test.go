package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDocRegistered(t *testing.T) {
	doc, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}

	var parsed struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("doc is not valid JSON: %v", err)
	}

	want := map[string]string{
		"/api/articles":           "get",
		"/api/articles/{id}/read": "patch",
		"/api/fetch-news":         "post",
	}
	for path, method := range want {
		if _, ok := parsed.Paths[path][method]; !ok {
			t.Errorf("missing %s %s", method, path)
		}
	}
}
