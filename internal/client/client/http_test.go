package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AHx92/my-workout-tracker/internal/client/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() *models.Record {
	return &models.Record{
		ID: 7,
		Payload: models.Workout{
			Name: "Push day",
			Date: "2024-03-01",
			Exercises: []models.Exercise{
				{Name: "Bench press", Sets: []models.Set{{Reps: 8, Weight: 60}}},
			},
		},
		Timestamp: "2024-03-01T10:00:00Z",
	}
}

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL+"/api", time.Second)
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	_, err := NewHTTPClient("ftp://example.com", time.Second)
	require.Error(t, err)

	_, err = NewHTTPClient("://", time.Second)
	require.Error(t, err)
}

func TestSubmit_SendsWorkoutAndHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api", r.URL.Path)
		assert.Equal(t, ActionSubmitWorkout, r.URL.Query().Get("action"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
		assert.NoError(t, err)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "Push day", got["name"])
		assert.Equal(t, "2024-03-01", got["date"])
		assert.Equal(t, "2024-03-01T10:00:00Z", got["timestamp"])
		assert.Len(t, got["exercises"], 1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","id":"abc"}`))
	})
	c.SetToken("secret")

	ack, err := c.Submit(context.Background(), sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, &Ack{Status: "ok", ID: "abc"}, ack)
}

func TestSubmit_NoTokenNoAuthorizationHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	_, err := c.Submit(context.Background(), sampleRecord())
	require.NoError(t, err)
}

func TestSubmit_Failures(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		unauthorized bool
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`},
		{name: "bad request", status: http.StatusBadRequest, body: `{}`},
		{name: "unauthorized", status: http.StatusUnauthorized, body: ``, unauthorized: true},
		{name: "forbidden", status: http.StatusForbidden, body: ``, unauthorized: true},
		{name: "malformed body", status: http.StatusOK, body: `not json`},
		{name: "empty body", status: http.StatusOK, body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			ack, err := c.Submit(context.Background(), sampleRecord())
			require.Error(t, err)
			assert.Nil(t, ack)

			assert.ErrorIs(t, err, ErrSubmissionFailed)
			assert.NotErrorIs(t, err, ErrUnavailable)
			assert.Equal(t, tt.unauthorized, errors.Is(err, ErrUnauthorized))

			var se *SubmissionError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, ActionSubmitWorkout, se.Action)
			assert.Equal(t, tt.status, se.StatusCode)
		})
	}
}

func TestSubmit_TruncatedResponseIsNotUnreachable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		conn, buf, err := http.NewResponseController(w).Hijack()
		require.NoError(t, err)
		defer conn.Close()
		_, _ = buf.WriteString("HTTP/1.1 200 OK\r\nContent-Type: application/json\r\nContent-Length: 100\r\n\r\n{\"id\"")
		_ = buf.Flush()
	})

	_, err := c.Submit(context.Background(), sampleRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSubmissionFailed)
	assert.NotErrorIs(t, err, ErrUnavailable)

	var se *SubmissionError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusOK, se.StatusCode)
	assert.False(t, se.Unreachable)
}

func TestSubmit_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	c, err := NewHTTPClient(endpoint, time.Second)
	require.NoError(t, err)

	_, err = c.Submit(context.Background(), sampleRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSubmissionFailed)
	assert.ErrorIs(t, err, ErrUnavailable)

	var se *SubmissionError
	require.ErrorAs(t, err, &se)
	assert.True(t, se.Unreachable)
	assert.Zero(t, se.StatusCode)
}

func TestSubmit_SingleAttempt(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Submit(context.Background(), sampleRecord())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestFetchCatalog(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, ActionGetExerciseDatabase, r.URL.Query().Get("action"))
		_, _ = w.Write([]byte(`{"exercises":["Squat","Deadlift"]}`))
	})

	items, err := c.FetchCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Squat", "Deadlift"}, items)
}

func TestFetchCatalog_MissingListIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	items, err := c.FetchCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, items)
}

func TestCheckAccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, ActionCheckUserAccess, r.URL.Query().Get("action"))
		_, _ = w.Write([]byte(`{"approved":true,"email":"a@b.c"}`))
	})

	info, err := c.CheckAccess(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &AccessInfo{Approved: true, Email: "a@b.c"}, info)
}

func TestCheckAccess_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.CheckAccess(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSubmissionError_Message(t *testing.T) {
	assert.Equal(t, "submitWorkout: status 500",
		(&SubmissionError{Action: ActionSubmitWorkout, StatusCode: 500}).Error())
	assert.Contains(t,
		(&SubmissionError{Action: ActionSubmitWorkout, Unreachable: true, Err: errors.New("refused")}).Error(),
		"unreachable")
}
