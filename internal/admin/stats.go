package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/bloghub/internal/db"
)

// GET /api/auth/admin/stats
func Stats(c echo.Context) error {
	ctx := c.Request().Context()

	var users, posts, published, comments, messages, unread int

	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&users)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&posts)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE published`).Scan(&published)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM comments`).Scan(&comments)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&messages)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages WHERE status = 'new'`).Scan(&unread)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"users":           users,
			"posts":           posts,
			"published_posts": published,
			"comments":        comments,
			"messages":        messages,
			"unread_messages": unread,
		},
	})
}
