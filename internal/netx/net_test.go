package netx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetJSON(t *testing.T) {
	t.Run("success 200 OK", func(t *testing.T) {
		var gotMethod, gotPath string

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			w.Write([]byte(`{"pubkey":"abcd"}`))
		}))
		defer ts.Close()

		var payload struct {
			Pubkey string `json:"pubkey"`
		}
		err := GetJSON(context.Background(), ts.Client(), ts.URL+"/secrets/pubkey", &payload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodGet {
			t.Fatalf("method = %q, want GET", gotMethod)
		}
		if gotPath != "/secrets/pubkey" {
			t.Fatalf("path = %q", gotPath)
		}
		if payload.Pubkey != "abcd" {
			t.Fatalf("pubkey = %q, want abcd", payload.Pubkey)
		}
	})

	t.Run("non-200 -> error with body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no key material", http.StatusNotFound)
		}))
		defer ts.Close()

		var v any
		err := GetJSON(context.Background(), ts.Client(), ts.URL, &v)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "no key material") {
			t.Fatalf("error = %q, want status and body", err.Error())
		}
	})

	t.Run("malformed body -> error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"pubkey":`))
		}))
		defer ts.Close()

		var v any
		if err := GetJSON(context.Background(), ts.Client(), ts.URL, &v); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("network error", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		var v any
		if err := GetJSON(context.Background(), http.DefaultClient, ts.URL, &v); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
