package helpers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func esServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"version":{"number":"8.13.0"}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewESClientChecksCluster(t *testing.T) {
	srv := esServer(t, http.StatusOK)
	es, err := NewESClient(context.Background(), ESOptions{Addresses: []string{srv.URL}})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if es == nil {
		t.Fatal("nil client")
	}
}

func TestNewESClientErrors(t *testing.T) {
	if _, err := NewESClient(context.Background(), ESOptions{}); err == nil {
		t.Fatal("expected error without addresses")
	}
	srv := esServer(t, http.StatusUnauthorized)
	if _, err := NewESClient(context.Background(), ESOptions{Addresses: []string{srv.URL}}); err == nil {
		t.Fatal("expected error on unauthorized cluster")
	}
}
