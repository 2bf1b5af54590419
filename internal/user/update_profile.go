package user

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/bloghub/internal/db"
)

type UpdateProfileRequest struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
}

// PUT /api/auth/profile
func UpdateProfile(c echo.Context) error {
	u := FromContext(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Not authorized. Please login."})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if len(req.Name) > MaxNameLength {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Name is too long"})
	}
	if len(req.Bio) > MaxBioLength {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Bio cannot exceed 500 characters"})
	}

	var updated User
	err := db.Conn.QueryRow(c.Request().Context(), `
        UPDATE users
        SET name = COALESCE(NULLIF($1, ''), name),
            bio = COALESCE(NULLIF($2, ''), bio),
            avatar_url = COALESCE(NULLIF($3, ''), avatar_url),
            updated_at = NOW()
        WHERE id = $4
        RETURNING id, name, email, role, bio, avatar_url, created_at
    `, req.Name, req.Bio, req.AvatarURL, u.ID).
		Scan(&updated.ID, &updated.Name, &updated.Email, &updated.Role, &updated.Bio, &updated.AvatarURL, &updated.CreatedAt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update profile"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Profile updated successfully",
		"data":    updated,
	})
}
