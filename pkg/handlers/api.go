package handlers

import (
	"context"
	"errors"
	"net/http"

	"burger-blog/pkg/logger"
	"burger-blog/pkg/models"
	"burger-blog/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type CommentStore interface {
	ListByPost(ctx context.Context, postSlug string) ([]models.Comment, error)
	Add(ctx context.Context, postSlug, userID, content string) (models.Comment, error)
}

type ProfileStore interface {
	Upsert(ctx context.Context, profile models.Profile) error
}

// API holds the handler dependencies. Stores are constructed in main and
// passed in so tests can substitute them.
type API struct {
	Posts    *services.PostRepository
	Comments CommentStore
	Profiles ProfileStore
}

func NewAPI(posts *services.PostRepository, comments CommentStore, profiles ProfileStore) *API {
	return &API{Posts: posts, Comments: comments, Profiles: profiles}
}

// postSummary is a post without its body, plus the derived overall rating.
type postSummary struct {
	models.Post
	Overall float64 `json:"overall"`
}

func toSummary(post models.Post) postSummary {
	post.Content = ""
	return postSummary{Post: post, Overall: services.OverallRating(post.Ratings)}
}

func (a *API) ListPosts(c *gin.Context) {
	order := c.DefaultQuery("order", "desc")
	posts, err := a.Posts.List(order)
	if err != nil {
		logger.Error("list posts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": lo.Map(posts, func(post models.Post, _ int) postSummary {
		return toSummary(post)
	})})
}

func (a *API) GetPost(c *gin.Context) {
	slug := c.Param("slug")
	post, err := a.Posts.Get(slug)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		logger.Error("get post", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load post"})
		return
	}

	html, err := services.RenderMarkdown(post.Content)
	if err != nil {
		logger.Error("render post", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render post"})
		return
	}

	// Comments are secondary on this page; a store failure should not take
	// the post down with it.
	comments, err := a.Comments.ListByPost(c.Request.Context(), slug)
	if err != nil {
		logger.Error("fetch comments", zap.String("slug", slug), zap.Error(err))
		comments = []models.Comment{}
	}

	c.JSON(http.StatusOK, gin.H{
		"post":     post,
		"html":     html,
		"overall":  services.OverallRating(post.Ratings),
		"comments": comments,
	})
}

func (a *API) ListComments(c *gin.Context) {
	postSlug := c.Query("postSlug")
	if postSlug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post slug is required"})
		return
	}

	comments, err := a.Comments.ListByPost(c.Request.Context(), postSlug)
	if err != nil {
		logger.Error("fetch comments", zap.String("slug", postSlug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (a *API) CreateComment(c *gin.Context) {
	userID := CurrentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Content  string `json:"content" binding:"required,max=1000"`
		PostSlug string `json:"postSlug" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment data"})
		return
	}

	comment, err := a.Comments.Add(c.Request.Context(), req.PostSlug, userID, req.Content)
	if err != nil {
		logger.Error("create comment", zap.String("slug", req.PostSlug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}
