package recordstore_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-manager/internal/models"
	"github.com/magabrotheeeer/course-manager/internal/recordstore"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := recordstore.NewClient(srv.URL, staticTokens("token-123"), 0)

	var out []models.User
	require.NoError(t, client.List(context.Background(), "users", recordstore.NewQuery(), &out))
	assert.Equal(t, "Bearer token-123", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := recordstore.NewClient(srv.URL, staticTokens(""), 0)

	var out []models.User
	require.NoError(t, client.List(context.Background(), "users", recordstore.NewQuery(), &out))
	assert.Empty(t, gotAuth)
}

func TestClient_QueryEncoding(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := recordstore.NewClient(srv.URL, nil, 0)

	q := recordstore.NewQuery().Eq("course_id", "3").Contains("instructors", "7").Like("title", "go")
	var out []models.Lesson
	require.NoError(t, client.List(context.Background(), "lessons", q, &out))

	assert.Contains(t, gotQuery, "course_id=3")
	assert.Contains(t, gotQuery, "instructors_like=7")
	assert.Contains(t, gotQuery, "title_like=go")
}

func TestClient_UnauthorizedCallsHookOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := recordstore.NewClient(srv.URL, staticTokens("stale"), 0)
	hookCalls := 0
	client.SetUnauthorizedHook(func() { hookCalls++ })

	var out models.Course
	err := client.Get(context.Background(), "courses", "1", &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, recordstore.ErrUnauthorized)
	assert.Equal(t, 1, hookCalls)
}

func TestClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := recordstore.NewClient(srv.URL, nil, 0)

	var out models.Course
	err := client.Get(context.Background(), "courses", "missing", &out)
	assert.ErrorIs(t, err, recordstore.ErrNotFound)
}

func TestClient_ServerErrorIsStoreUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := recordstore.NewClient(srv.URL, nil, 0)

	err := client.Delete(context.Background(), "courses", "1")
	assert.ErrorIs(t, err, recordstore.ErrStoreUnavailable)
}

func TestClient_TransportErrorIsStoreUnavailable(t *testing.T) {
	client := recordstore.NewClient("http://127.0.0.1:1", nil, 0)

	var out []models.User
	err := client.List(context.Background(), "users", recordstore.NewQuery(), &out)
	assert.ErrorIs(t, err, recordstore.ErrStoreUnavailable)
}

func TestClient_CreateDecodesServerRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 42, "name": "Go", "start_date": "2024-04-01",
			"end_date": "2024-05-01", "creator_id": "7", "instructors": [7]}`))
	}))
	defer srv.Close()

	client := recordstore.NewClient(srv.URL, nil, 0)

	var created models.Course
	err := client.Create(context.Background(), "courses", models.Course{Name: "Go"}, &created)
	require.NoError(t, err)
	assert.True(t, models.SameID(created.ID, models.NumericID(42)))
	assert.True(t, models.SameID(created.CreatorID, models.NumericID(7)))
}
