package contact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSubmission(t *testing.T) {
	valid := SubmitRequest{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Feedback",
		Message: "I really enjoyed the latest React post.",
	}
	assert.Empty(t, validateSubmission(&valid))

	cases := []struct {
		name    string
		mutate  func(*SubmitRequest)
		message string
	}{
		{"missing name", func(r *SubmitRequest) { r.Name = "  " }, "Name is required"},
		{"bad email", func(r *SubmitRequest) { r.Email = "not-an-email" }, "Please provide a valid email"},
		{"missing subject", func(r *SubmitRequest) { r.Subject = "" }, "Subject is required"},
		{"short message", func(r *SubmitRequest) { r.Message = "too short" }, "Message must be at least 10 characters"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			assert.Equal(t, tc.message, validateSubmission(&req))
		})
	}
}

func runMarkAsRead(t *testing.T, messageID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/contact/"+messageID+"/read", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(messageID)
	require.NoError(t, MarkAsRead(c))
	return rec
}

func TestMarkAsReadStatusMapping(t *testing.T) {
	prev := markRead
	t.Cleanup(func() { markRead = prev })

	messageID := uuid.New().String()

	// Unknown message: 404
	markRead = func(ctx context.Context, id string) (Message, error) {
		return Message{}, pgx.ErrNoRows
	}
	rec := runMarkAsRead(t, messageID)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Store failure must not masquerade as a missing message
	markRead = func(ctx context.Context, id string) (Message, error) {
		return Message{}, errors.New("connection refused")
	}
	rec = runMarkAsRead(t, messageID)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// Success returns the updated row
	markRead = func(ctx context.Context, id string) (Message, error) {
		return Message{ID: id, Status: "read"}, nil
	}
	rec = runMarkAsRead(t, messageID)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"read"`)
}

func TestMarkAsReadRejectsBadID(t *testing.T) {
	rec := runMarkAsRead(t, "not-a-uuid")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
