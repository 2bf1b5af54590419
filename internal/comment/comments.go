package comment

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/bloghub/internal/auth"
	"github.com/sudo-init-do/bloghub/internal/db"
	"github.com/sudo-init-do/bloghub/internal/user"
)

const MaxContentLength = 500

// Author is the comment-facing summary of who wrote it.
type Author struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	PostID    string    `json:"post_id"`
	PostTitle string    `json:"post_title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AddCommentRequest struct {
	PostID  string `json:"postId"`
	Content string `json:"content"`
}

// POST /api/comments
func AddComment(c echo.Context) error {
	u := user.FromContext(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Not authorized. Please login."})
	}

	req := new(AddCommentRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Comment cannot be empty"})
	}
	if len(req.Content) > MaxContentLength {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Comment cannot exceed 500 characters"})
	}
	if uuid.Validate(req.PostID) != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Post not found"})
	}

	ctx := c.Request().Context()
	var postExists bool
	if err := db.Conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, req.PostID).Scan(&postExists); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch post"})
	}
	if !postExists {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Post not found"})
	}

	cm := Comment{
		ID:      uuid.New().String(),
		Content: req.Content,
		PostID:  req.PostID,
		Author:  Author{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL},
	}
	err := db.Conn.QueryRow(ctx, `
        INSERT INTO comments (id, content, author_id, post_id)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at
    `, cm.ID, cm.Content, u.ID, cm.PostID).Scan(&cm.CreatedAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Failed to add comment"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Comment added successfully",
		"data":    cm,
	})
}

// GET /api/comments/post/:postId
func GetCommentsByPost(c echo.Context) error {
	postID := c.Param("postId")
	if uuid.Validate(postID) != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Post not found"})
	}

	ctx := c.Request().Context()
	var postExists bool
	if err := db.Conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&postExists); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch post"})
	}
	if !postExists {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Post not found"})
	}

	rows, err := db.Conn.Query(ctx, `
        SELECT c.id, c.content, c.post_id, c.created_at, u.id, u.name, u.avatar_url
        FROM comments c
        JOIN users u ON u.id = c.author_id
        WHERE c.post_id = $1
        ORDER BY c.created_at DESC
    `, postID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch comments"})
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var cm Comment
		if err := rows.Scan(&cm.ID, &cm.Content, &cm.PostID, &cm.CreatedAt,
			&cm.Author.ID, &cm.Author.Name, &cm.Author.AvatarURL); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to read comment record"})
		}
		comments = append(comments, cm)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(comments),
		"data":    comments,
	})
}

// GET /api/comments
func GetAllComments(c echo.Context) error {
	rows, err := db.Conn.Query(c.Request().Context(), `
        SELECT c.id, c.content, c.post_id, c.created_at, u.id, u.name, u.avatar_url, p.title
        FROM comments c
        JOIN users u ON u.id = c.author_id
        JOIN posts p ON p.id = c.post_id
        ORDER BY c.created_at DESC
    `)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch comments"})
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var cm Comment
		if err := rows.Scan(&cm.ID, &cm.Content, &cm.PostID, &cm.CreatedAt,
			&cm.Author.ID, &cm.Author.Name, &cm.Author.AvatarURL, &cm.PostTitle); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to read comment record"})
		}
		comments = append(comments, cm)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(comments),
		"data":    comments,
	})
}

// DELETE /api/comments/:id
func DeleteComment(c echo.Context) error {
	u := user.FromContext(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Not authorized. Please login."})
	}

	commentID := c.Param("id")
	if uuid.Validate(commentID) != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Comment not found"})
	}

	ctx := c.Request().Context()
	var ownerID string
	err := db.Conn.QueryRow(ctx, `SELECT author_id FROM comments WHERE id = $1`, commentID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Comment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch comment"})
	}
	if !auth.CanMutate(u, ownerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "You can only delete your own comments"})
	}

	_, err = db.Conn.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to delete comment"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Comment deleted successfully"})
}
