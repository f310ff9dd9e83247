package hubspot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient("test-token", url, 5*time.Second)
}

func TestUpsertContactNotConfigured(t *testing.T) {
	c := NewClient("", "https://api.hubapi.com", 5*time.Second)

	_, err := c.UpsertContact(context.Background(), ContactInput{Email: "jane@example.com"})

	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestUpsertContactCreates(t *testing.T) {
	var gotProps map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/crm/v3/objects/contacts", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req contactRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotProps = req.Properties

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(contactResponse{ID: "101"})
	}))
	defer srv.Close()

	id, err := newTestClient(srv.URL).UpsertContact(context.Background(), ContactInput{
		Email:      "jane@example.com",
		FirstName:  "Jane",
		JobTitle:   "Practice Manager",
		LeadSource: "Website form",
		Persona:    "operations",
	})

	require.NoError(t, err)
	assert.Equal(t, "101", id)
	assert.Equal(t, "jane@example.com", gotProps["email"])
	assert.Equal(t, "Jane", gotProps["firstname"])
	assert.Equal(t, "operations", gotProps["logic_persona"])
	// empty optional fields stay out of the payload
	_, hasPhone := gotProps["phone"]
	assert.False(t, hasPhone)
}

func TestUpsertContactConflictWithEmbeddedID(t *testing.T) {
	var patched bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(conflictResponse{
				Message:          "Contact already exists. Existing ID: 202",
				ExistingObjectID: "202",
			})
		case r.Method == http.MethodPatch:
			require.Equal(t, "/crm/v3/objects/contacts/202", r.URL.Path)
			patched = true
			json.NewEncoder(w).Encode(contactResponse{ID: "202"})
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	id, err := newTestClient(srv.URL).UpsertContact(context.Background(), ContactInput{Email: "jane@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "202", id)
	assert.True(t, patched)
}

func TestUpsertContactConflictFallsBackToLookup(t *testing.T) {
	var lookedUp, patched bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(conflictResponse{Message: "Contact already exists"})
		case r.Method == http.MethodGet:
			require.Equal(t, "email", r.URL.Query().Get("idProperty"))
			lookedUp = true
			json.NewEncoder(w).Encode(contactResponse{ID: "303"})
		case r.Method == http.MethodPatch:
			require.Equal(t, "/crm/v3/objects/contacts/303", r.URL.Path)
			patched = true
			json.NewEncoder(w).Encode(contactResponse{ID: "303"})
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	id, err := newTestClient(srv.URL).UpsertContact(context.Background(), ContactInput{Email: "jane@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "303", id)
	assert.True(t, lookedUp)
	assert.True(t, patched)
}

func TestUpsertContactConflictUnresolvable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(conflictResponse{Message: "Contact already exists"})
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).UpsertContact(context.Background(), ContactInput{Email: "jane@example.com"})

	require.Error(t, err)
}

func TestUpsertContactServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).UpsertContact(context.Background(), ContactInput{Email: "jane@example.com"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotConfigured)
}

func TestUpsertContactIdempotent(t *testing.T) {
	// Two submissions for the same email yield exactly one created
	// contact; the second goes down the update path.
	created := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			if created == 0 {
				created++
				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(contactResponse{ID: "404"})
				return
			}
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(conflictResponse{
				Message:          "Contact already exists",
				ExistingObjectID: "404",
			})
		case http.MethodPatch:
			json.NewEncoder(w).Encode(contactResponse{ID: "404"})
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	first, err := c.UpsertContact(context.Background(), ContactInput{Email: "jane@example.com"})
	require.NoError(t, err)
	second, err := c.UpsertContact(context.Background(), ContactInput{Email: "jane@example.com"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, created)
}
