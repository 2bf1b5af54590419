package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/bloghub/internal/db"
)

// GET /api/users/:id
func GetPublicProfile(c echo.Context) error {
	userID := c.Param("id")
	if uuid.Validate(userID) != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}

	var (
		id        string
		name      string
		bio       string
		avatarURL string
		createdAt time.Time
	)
	err := db.Conn.QueryRow(c.Request().Context(), `
        SELECT id, name, bio, avatar_url, created_at
        FROM users WHERE id = $1
    `, userID).Scan(&id, &name, &bio, &avatarURL, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch user"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"id":         id,
			"name":       name,
			"bio":        bio,
			"avatar_url": avatarURL,
			"created_at": createdAt.Format(time.RFC3339),
		},
	})
}
