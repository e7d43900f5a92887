package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/oksasatya/auth-profile-service/internal/domain/entity"
)

func fakeES(t *testing.T, status int, seen *map[string]any, path *string) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*path = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, seen)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	}))
	t.Cleanup(srv.Close)
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	if err != nil {
		t.Fatalf("es client: %v", err)
	}
	return es
}

func testUser() *entity.User {
	bio, phone := "hi", "+14155552671"
	return &entity.User{
		ID: "7d3c1c2a-1111-4c53-9d1e-0f1b2c3d4e5f", Email: "a@b.com", Password: "hash",
		FirstName: "Jo", LastName: "Ann", Bio: &bio, Phone: &phone,
		Role: entity.RoleUser, IsActive: true, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
}

func TestIndexProfile(t *testing.T) {
	var doc map[string]any
	var path string
	idx := NewProfileIndexer(fakeES(t, http.StatusCreated, &doc, &path), "users")

	u := testUser()
	if err := idx.IndexProfile(context.Background(), u); err != nil {
		t.Fatalf("index: %v", err)
	}
	if !strings.HasSuffix(path, "/users/_doc/"+u.ID) {
		t.Fatalf("path = %q", path)
	}
	if doc["email"] != "a@b.com" || doc["first_name"] != "Jo" || doc["bio"] != "hi" {
		t.Fatalf("doc = %v", doc)
	}
	for _, k := range []string{"password", "phone"} {
		if _, ok := doc[k]; ok {
			t.Fatalf("doc leaks %s: %v", k, doc)
		}
	}
}

func TestIndexProfileErrorStatus(t *testing.T) {
	var doc map[string]any
	var path string
	idx := NewProfileIndexer(fakeES(t, http.StatusBadRequest, &doc, &path), "users")
	if err := idx.IndexProfile(context.Background(), testUser()); err == nil {
		t.Fatal("expected error for 400 response")
	}
}

func TestIndexProfileDisabled(t *testing.T) {
	var idx *ProfileIndexer
	if err := idx.IndexProfile(context.Background(), testUser()); err != nil {
		t.Fatalf("nil indexer: %v", err)
	}
}
