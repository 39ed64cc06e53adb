package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"burger-blog/pkg/config"
	"burger-blog/pkg/logger"
	"burger-blog/pkg/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	sessionUserKey = "user_id"
	sessionNameKey = "user_name"
)

// CurrentUserID returns the signed-in user's id, or "" without a session.
func CurrentUserID(c *gin.Context) string {
	session := sessions.Default(c)
	if userID, ok := session.Get(sessionUserKey).(string); ok {
		return userID
	}
	return ""
}

func AuthRequired(c *gin.Context) {
	if CurrentUserID(c) == "" {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		} else {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		}
		return
	}
	c.Next()
}

func LoginPage(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login/github")
}

func GithubLogin(c *gin.Context) {
	url := config.OauthConf.AuthCodeURL("state", oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func (a *API) AuthCallback(c *gin.Context) {
	code := c.Query("code")
	token, err := config.OauthConf.Exchange(context.Background(), code)
	if err != nil {
		c.String(http.StatusInternalServerError, "OAuth Exchange Failed")
		return
	}

	profile, err := fetchGithubProfile(c.Request.Context(), token)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to fetch user profile")
		return
	}

	// Keep the profile row fresh so comment authors resolve to a name.
	if err := a.Profiles.Upsert(c.Request.Context(), profile); err != nil {
		logger.Warn("profile upsert failed", zap.String("user", profile.ID), zap.Error(err))
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, profile.ID)
	session.Set(sessionNameKey, profile.Name)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/login")
}

func fetchGithubProfile(ctx context.Context, token *oauth2.Token) (models.Profile, error) {
	resp, err := config.OauthConf.Client(ctx, token).Get("https://api.github.com/user")
	if err != nil {
		return models.Profile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Profile{}, fmt.Errorf("github user lookup: status %d", resp.StatusCode)
	}

	var gh struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&gh); err != nil {
		return models.Profile{}, err
	}

	name := gh.Name
	if name == "" {
		name = gh.Login
	}
	return models.Profile{
		ID:        strconv.FormatInt(gh.ID, 10),
		Name:      name,
		AvatarURL: gh.AvatarURL,
	}, nil
}
