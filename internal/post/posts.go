package post

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/bloghub/internal/auth"
	"github.com/sudo-init-do/bloghub/internal/db"
	"github.com/sudo-init-do/bloghub/internal/user"
)

const selectPost = `
    SELECT p.id, p.title, p.content, p.category, p.tags, p.published,
           p.views, p.image, p.created_at, p.updated_at,
           u.id, u.name, u.email, u.avatar_url,
           (SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id)
    FROM posts p
    JOIN users u ON u.id = p.author_id`

func scanPost(row pgx.Row) (Post, error) {
	var p Post
	err := row.Scan(
		&p.ID, &p.Title, &p.Content, &p.Category, &p.Tags, &p.Published,
		&p.Views, &p.Image, &p.CreatedAt, &p.UpdatedAt,
		&p.Author.ID, &p.Author.Name, &p.Author.Email, &p.Author.AvatarURL,
		&p.LikesCount,
	)
	return p, err
}

type CreatePostRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
	Image     string   `json:"image"`
}

// POST /api/posts
func CreatePost(c echo.Context) error {
	u := user.FromContext(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Not authorized. Please login."})
	}

	req := new(CreatePostRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if msg := validatePost(req.Title, req.Content, req.Category); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": msg})
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}

	ctx := c.Request().Context()
	postID := uuid.New().String()
	_, err := db.Conn.Exec(ctx, `
        INSERT INTO posts (id, title, content, author_id, category, tags, published, image)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, postID, req.Title, req.Content, u.ID, req.Category, req.Tags, req.Published, req.Image)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Failed to create post"})
	}

	created, err := fetchPost(ctx, postID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to load post"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Post created successfully",
		"data":    created,
	})
}

// GET /api/posts?category=&search=&published=
func GetAllPosts(c echo.Context) error {
	query := selectPost
	var (
		conds []string
		args  []any
	)
	if category := c.QueryParam("category"); category != "" {
		args = append(args, category)
		conds = append(conds, fmt.Sprintf("p.category = $%d", len(args)))
	}
	if published := c.QueryParam("published"); published != "" {
		args = append(args, published == "true")
		conds = append(conds, fmt.Sprintf("p.published = $%d", len(args)))
	}
	if search := c.QueryParam("search"); search != "" {
		args = append(args, "%"+search+"%")
		conds = append(conds, fmt.Sprintf("(p.title ILIKE $%d OR p.content ILIKE $%d)", len(args), len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := db.Conn.Query(c.Request().Context(), query, args...)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch posts"})
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to read post record"})
		}
		posts = append(posts, p)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(posts),
		"data":    posts,
	})
}

// GET /api/posts/category/:category
func GetPostsByCategory(c echo.Context) error {
	category := c.Param("category")

	rows, err := db.Conn.Query(c.Request().Context(),
		selectPost+` WHERE p.category = $1 AND p.published = TRUE ORDER BY p.created_at DESC`, category)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch posts"})
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to read post record"})
		}
		posts = append(posts, p)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(posts),
		"data":    posts,
	})
}

// GET /api/posts/:id
func GetPostByID(c echo.Context) error {
	postID := c.Param("id")
	if uuid.Validate(postID) != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Post not found"})
	}

	ctx := c.Request().Context()
	ct, err := db.Conn.Exec(ctx, `UPDATE posts SET views = views + 1 WHERE id = $1`, postID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch post"})
	}
	if ct.RowsAffected() == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Post not found"})
	}

	p, err := fetchPost(ctx, postID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch post"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": p})
}

type UpdatePostRequest struct {
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	Category  *string   `json:"category"`
	Tags      *[]string `json:"tags"`
	Published *bool     `json:"published"`
	Image     *string   `json:"image"`
}

// PUT /api/posts/:id
func UpdatePost(c echo.Context) error {
	u := user.FromContext(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Not authorized. Please login."})
	}

	postID := c.Param("id")
	if uuid.Validate(postID) != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Post not found"})
	}

	req := new(UpdatePostRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" || len(trimmed) > MaxTitleLength {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Title must be 1-100 characters"})
		}
		req.Title = &trimmed
	}
	if req.Content != nil && len(*req.Content) < MinContentLength {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Content must be at least 10 characters"})
	}
	if req.Category != nil && !validCategory(*req.Category) {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid category"})
	}

	ctx := c.Request().Context()
	ownerID, err := fetchAuthorID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch post"})
	}
	if !auth.CanMutate(u, ownerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "You can only update your own posts"})
	}

	_, err = db.Conn.Exec(ctx, `
        UPDATE posts
        SET title = COALESCE($1, title),
            content = COALESCE($2, content),
            category = COALESCE($3, category),
            tags = COALESCE($4, tags),
            published = COALESCE($5, published),
            image = COALESCE($6, image),
            updated_at = NOW()
        WHERE id = $7
    `, req.Title, req.Content, req.Category, req.Tags, req.Published, req.Image, postID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Failed to update post"})
	}

	updated, err := fetchPost(ctx, postID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to load post"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Post updated successfully",
		"data":    updated,
	})
}

// DELETE /api/posts/:id
func DeletePost(c echo.Context) error {
	u := user.FromContext(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Not authorized. Please login."})
	}

	postID := c.Param("id")
	if uuid.Validate(postID) != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Post not found"})
	}

	ctx := c.Request().Context()
	ownerID, err := fetchAuthorID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch post"})
	}
	if !auth.CanMutate(u, ownerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "You can only delete your own posts"})
	}

	_, err = db.Conn.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to delete post"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Post deleted successfully"})
}

func fetchPost(ctx context.Context, postID string) (Post, error) {
	return scanPost(db.Conn.QueryRow(ctx, selectPost+` WHERE p.id = $1`, postID))
}

func fetchAuthorID(ctx context.Context, postID string) (string, error) {
	var ownerID string
	err := db.Conn.QueryRow(ctx, `SELECT author_id FROM posts WHERE id = $1`, postID).Scan(&ownerID)
	return ownerID, err
}

func validatePost(title, content, category string) string {
	if title == "" {
		return "Title is required"
	}
	if len(title) > MaxTitleLength {
		return "Title cannot exceed 100 characters"
	}
	if len(content) < MinContentLength {
		return "Content must be at least 10 characters"
	}
	if !validCategory(category) {
		return "Invalid category"
	}
	return ""
}
