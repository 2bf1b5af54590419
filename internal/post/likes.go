package post

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/bloghub/internal/db"
	"github.com/sudo-init-do/bloghub/internal/user"
)

// POST /api/posts/:id/like
func LikePost(c echo.Context) error {
	u := user.FromContext(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Not authorized. Please login."})
	}

	postID := c.Param("id")
	if uuid.Validate(postID) != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Post not found"})
	}

	ctx := c.Request().Context()
	var exists bool
	if err := db.Conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch post"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Post not found"})
	}

	// The primary key on (post_id, user_id) makes a repeat like a no-op
	// insert; zero rows affected means it was already there.
	ct, err := db.Conn.Exec(ctx, `
        INSERT INTO post_likes (post_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `, postID, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to like post"})
	}
	if ct.RowsAffected() == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "You already liked this post"})
	}

	count, err := likesCount(ctx, postID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to count likes"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Post liked successfully",
		"data":    echo.Map{"likes_count": count},
	})
}

// DELETE /api/posts/:id/like
func UnlikePost(c echo.Context) error {
	u := user.FromContext(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Not authorized. Please login."})
	}

	postID := c.Param("id")
	if uuid.Validate(postID) != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Post not found"})
	}

	ctx := c.Request().Context()
	var exists bool
	if err := db.Conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch post"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Post not found"})
	}

	ct, err := db.Conn.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to unlike post"})
	}
	if ct.RowsAffected() == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "You haven't liked this post"})
	}

	count, err := likesCount(ctx, postID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to count likes"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Post unliked successfully",
		"data":    echo.Map{"likes_count": count},
	})
}

func likesCount(ctx context.Context, postID string) (int, error) {
	var count int
	err := db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, postID).Scan(&count)
	return count, err
}
