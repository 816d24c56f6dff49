package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CopperKoi/Koi-Blog/internal/logger"
)

// AdminChecker answers whether the request carries a valid admin session,
// without rejecting the request. Listing endpoints use it to widen the view
// for the admin while staying public.
type AdminChecker func(r *http.Request) bool

type Handler struct {
	posts   *PostService
	about   *AboutService
	friends *FriendService
	travel  *TravelService
	isAdmin AdminChecker
}

func NewHandler(
	posts *PostService,
	about *AboutService,
	friends *FriendService,
	travel *TravelService,
	isAdmin AdminChecker,
) *Handler {
	return &Handler{
		posts:   posts,
		about:   about,
		friends: friends,
		travel:  travel,
		isAdmin: isAdmin,
	}
}

// RegisterRoutes mounts public reads directly and write operations behind
// requireAdmin. The same-origin guard already ran as global middleware.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	api.GET("/posts", h.ListPosts)
	api.GET("/posts/:id", h.GetPost)
	api.GET("/about", h.GetAbout)
	api.GET("/friends", h.ListFriends)
	api.GET("/travel", h.ListTravel)

	api.POST("/posts", requireAdmin, h.CreatePost)
	api.PATCH("/posts/:id", requireAdmin, h.UpdatePost)
	api.DELETE("/posts/:id", requireAdmin, h.DeletePost)

	api.PUT("/about", requireAdmin, h.UpdateAbout)

	api.POST("/friends", requireAdmin, h.CreateFriend)
	api.PATCH("/friends", requireAdmin, h.ReorderFriends)
	api.PATCH("/friends/:id", requireAdmin, h.UpdateFriend)
	api.DELETE("/friends/:id", requireAdmin, h.DeleteFriend)

	api.PATCH("/travel", requireAdmin, h.ReplaceTravel)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	logger.Error("content operation failed", map[string]any{"error": err.Error()})
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
}

// ---- posts ----

func (h *Handler) ListPosts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	opts := PostListOptions{
		AdminView: c.Query("view") == "admin" && h.isAdmin(c.Request),
		Query:     c.Query("q"),
		Limit:     limit,
	}

	posts, err := h.posts.List(c.Request.Context(), opts)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": posts})
}

func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if !post.Public(time.Now()) && !h.isAdmin(c.Request) {
		// Hidden posts look identical to absent ones.
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

type postBody struct {
	ID         string          `json:"id"`
	Slug       string          `json:"slug"`
	Title      *string         `json:"title"`
	Summary    *string         `json:"summary"`
	Content    *string         `json:"content"`
	Tags       *[]string       `json:"tags"`
	Status     *string         `json:"status"`
	Visibility *string         `json:"visibility"`
	PublishAt  json.RawMessage `json:"publishAt"`
}

func (b postBody) input() (PostInput, error) {
	in := PostInput{
		ID:         b.ID,
		Slug:       b.Slug,
		Title:      b.Title,
		Summary:    b.Summary,
		Content:    b.Content,
		Tags:       b.Tags,
		Status:     b.Status,
		Visibility: b.Visibility,
	}

	if len(b.PublishAt) > 0 {
		if bytes.Equal(bytes.TrimSpace(b.PublishAt), []byte("null")) {
			in.ClearPublishAt = true
		} else {
			var raw string
			if err := json.Unmarshal(b.PublishAt, &raw); err != nil {
				return in, ErrInvalidInput
			}
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return in, ErrInvalidInput
			}
			in.PublishAt = &t
		}
	}
	return in, nil
}

func (h *Handler) CreatePost(c *gin.Context) {
	var body postBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	in, err := body.input()
	if err != nil {
		h.fail(c, err)
		return
	}

	post, err := h.posts.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

func (h *Handler) UpdatePost(c *gin.Context) {
	var body postBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	in, err := body.input()
	if err != nil {
		h.fail(c, err)
		return
	}

	post, err := h.posts.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ---- about ----

func (h *Handler) GetAbout(c *gin.Context) {
	about, err := h.about.Get(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, about)
}

func (h *Handler) UpdateAbout(c *gin.Context) {
	var body struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if err := h.about.Update(c.Request.Context(), body.Content); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ---- friends ----

func (h *Handler) ListFriends(c *gin.Context) {
	links, err := h.friends.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": links})
}

func (h *Handler) CreateFriend(c *gin.Context) {
	var body struct {
		Title string `json:"title"`
		URL   string `json:"url"`
		Note  string `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	link, err := h.friends.Create(c.Request.Context(), body.Title, body.URL, body.Note)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"friend": link})
}

func (h *Handler) UpdateFriend(c *gin.Context) {
	var body struct {
		Title     *string `json:"title"`
		URL       *string `json:"url"`
		Note      *string `json:"note"`
		Direction string  `json:"direction"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	id := c.Param("id")

	link, err := h.friends.Update(c.Request.Context(), id,
		FriendUpdate{Title: body.Title, URL: body.URL, Note: body.Note})
	if err != nil {
		h.fail(c, err)
		return
	}

	if body.Direction == string(MoveUp) || body.Direction == string(MoveDown) {
		link, err = h.friends.Move(c.Request.Context(), id, MoveDirection(body.Direction))
		if err != nil {
			h.fail(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"friend": link})
}

func (h *Handler) DeleteFriend(c *gin.Context) {
	if err := h.friends.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) ReorderFriends(c *gin.Context) {
	var body struct {
		OrderIDs []string `json:"orderIds"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.friends.Reorder(c.Request.Context(), body.OrderIDs); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ---- travel ----

func (h *Handler) ListTravel(c *gin.Context) {
	marks, err := h.travel.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": marks})
}

func (h *Handler) ReplaceTravel(c *gin.Context) {
	var body struct {
		Items []TravelItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	items, err := h.travel.Replace(c.Request.Context(), body.Items)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}
