package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"burger-blog/pkg/logger"
	"burger-blog/pkg/models"

	"go.uber.org/zap"
)

var ErrPostNotFound = errors.New("post not found")

// Recognized content file extensions, in resolution order.
var postExtensions = []string{".mdx", ".md"}

// Migrated Jekyll files keep their date prefix in the file name.
var datePrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-`)

// PostRepository reads posts from a flat content directory. Records are
// built fresh on every read; content files are edited out-of-band and never
// mutated at runtime, so there is no cache and no locking.
type PostRepository struct {
	dir string
}

func NewPostRepository(dir string) *PostRepository {
	return &PostRepository{dir: dir}
}

// ListSlugs enumerates the content directory (no recursion) and returns the
// slug of every file with a recognized extension.
func (r *PostRepository) ListSlugs() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}

	var slugs []string
	for _, entry := range entries {
		if entry.IsDir() || !hasPostExtension(entry.Name()) {
			continue
		}
		slugs = append(slugs, slugFromFileName(entry.Name()))
	}
	return slugs, nil
}

// Get loads and parses the post for slug. Returns ErrPostNotFound when no
// content file matches; never returns a partial record.
func (r *PostRepository) Get(slug string) (models.Post, error) {
	path, err := r.resolve(slug)
	if err != nil {
		return models.Post{}, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return models.Post{}, fmt.Errorf("read %s: %w", slug, err)
	}

	post, err := ParsePost(content)
	if err != nil {
		return models.Post{}, fmt.Errorf("parse %s: %w", slug, err)
	}

	post.Slug = slug
	post.ReadingTime = EstimateReadingTime(post.Content)
	return post, nil
}

// List loads every post and sorts by date, newest first unless order is
// "asc". A file that fails to parse is skipped and logged rather than
// failing the whole listing. Equal dates fall back to slug order so the
// result is deterministic.
func (r *PostRepository) List(order string) ([]models.Post, error) {
	slugs, err := r.ListSlugs()
	if err != nil {
		return nil, err
	}

	posts := make([]models.Post, 0, len(slugs))
	for _, slug := range slugs {
		post, err := r.Get(slug)
		if err != nil {
			logger.Warn("skipping unreadable post", zap.String("slug", slug), zap.Error(err))
			continue
		}
		posts = append(posts, post)
	}

	asc := order == "asc"
	sort.Slice(posts, func(i, j int) bool {
		di, dj := parsePostDate(posts[i].Date), parsePostDate(posts[j].Date)
		if !di.Equal(dj) {
			if asc {
				return di.Before(dj)
			}
			return di.After(dj)
		}
		if asc {
			return posts[i].Slug < posts[j].Slug
		}
		return posts[i].Slug > posts[j].Slug
	})

	return posts, nil
}

// resolve maps a slug to exactly one content file path. Slugs come from
// URLs, so anything that looks like a path is rejected outright.
func (r *PostRepository) resolve(slug string) (string, error) {
	if slug == "" || strings.ContainsAny(slug, "/\\") || strings.Contains(slug, "..") {
		return "", fmt.Errorf("%q: %w", slug, ErrPostNotFound)
	}

	for _, ext := range postExtensions {
		path := filepath.Join(r.dir, slug+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	// Migrated files may still carry a date prefix in their name.
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return "", fmt.Errorf("read content dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !hasPostExtension(entry.Name()) {
			continue
		}
		if slugFromFileName(entry.Name()) == slug {
			return filepath.Join(r.dir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("%q: %w", slug, ErrPostNotFound)
}

func hasPostExtension(name string) bool {
	for _, ext := range postExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func slugFromFileName(name string) string {
	slug := strings.TrimSuffix(name, filepath.Ext(name))
	return datePrefixRe.ReplaceAllString(slug, "")
}

func parsePostDate(date string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, date); err == nil {
			return t
		}
	}
	return time.Time{}
}
