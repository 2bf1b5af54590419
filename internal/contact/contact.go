package contact

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/bloghub/internal/alerts"
	"github.com/sudo-init-do/bloghub/internal/db"
)

const MinMessageLength = 10

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type SubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// POST /api/contact
func Submit(c echo.Context) error {
	req := new(SubmitRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if msg := validateSubmission(req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": msg})
	}

	m := Message{
		ID:      uuid.New().String(),
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	}
	err := db.Conn.QueryRow(c.Request().Context(), `
        INSERT INTO contact_messages (id, name, email, subject, message)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING status, created_at
    `, m.ID, m.Name, m.Email, m.Subject, m.Message).Scan(&m.Status, &m.CreatedAt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to save message"})
	}

	_ = alerts.EnqueueContactReceived(m.ID, m.Name, m.Email, m.Subject)

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Message sent successfully. We'll get back to you soon.",
		"data":    m,
	})
}

// GET /api/contact
func ListMessages(c echo.Context) error {
	rows, err := db.Conn.Query(c.Request().Context(), `
        SELECT id, name, email, subject, message, status, created_at
        FROM contact_messages
        ORDER BY created_at DESC
    `)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch messages"})
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Status, &m.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to read message record"})
		}
		messages = append(messages, m)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(messages),
		"data":    messages,
	})
}

// markRead flips a message's status and returns the updated row. Tests swap
// it to avoid a live store.
var markRead = func(ctx context.Context, messageID string) (Message, error) {
	var m Message
	err := db.Conn.QueryRow(ctx, `
        UPDATE contact_messages SET status = 'read'
        WHERE id = $1
        RETURNING id, name, email, subject, message, status, created_at
    `, messageID).Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Status, &m.CreatedAt)
	return m, err
}

// PUT /api/contact/:id/read
func MarkAsRead(c echo.Context) error {
	messageID := c.Param("id")
	if uuid.Validate(messageID) != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Message not found"})
	}

	m, err := markRead(c.Request().Context(), messageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Message not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update message"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": m})
}

// DELETE /api/contact/:id
func DeleteMessage(c echo.Context) error {
	messageID := c.Param("id")
	if uuid.Validate(messageID) != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Message not found"})
	}

	ct, err := db.Conn.Exec(c.Request().Context(), `DELETE FROM contact_messages WHERE id = $1`, messageID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to delete message"})
	}
	if ct.RowsAffected() == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Message not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Message deleted successfully"})
}

func validateSubmission(req *SubmitRequest) string {
	if strings.TrimSpace(req.Name) == "" {
		return "Name is required"
	}
	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		return "Please provide a valid email"
	}
	if strings.TrimSpace(req.Subject) == "" {
		return "Subject is required"
	}
	if len(req.Message) < MinMessageLength {
		return "Message must be at least 10 characters"
	}
	return ""
}
