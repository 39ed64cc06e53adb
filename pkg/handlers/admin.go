package handlers

import (
	"net/http"

	"burger-blog/pkg/logger"
	"burger-blog/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// AdminStats backs the admin dashboard: content counts plus the five most
// recent posts.
func (a *API) AdminStats(c *gin.Context) {
	posts, err := a.Posts.List("desc")
	if err != nil {
		logger.Error("admin stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	categories := make(map[string]struct{})
	tags := make(map[string]struct{})
	for _, post := range posts {
		for _, category := range post.Categories {
			categories[category] = struct{}{}
		}
		for _, tag := range post.Tags {
			tags[tag] = struct{}{}
		}
	}

	recent := posts
	if len(recent) > 5 {
		recent = recent[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":      len(posts),
		"categories": len(categories),
		"tags":       len(tags),
		"recent": lo.Map(recent, func(post models.Post, _ int) postSummary {
			return toSummary(post)
		}),
	})
}
