package services

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"burger-blog/pkg/config"
	"burger-blog/pkg/models"

	"gopkg.in/yaml.v3"
)

var ErrNoFrontMatter = errors.New("missing front matter block")

// postMeta is the schema of the front matter block. The struct covers both
// newly authored posts (images/ratings as structured data) and legacy posts
// migrated from Jekyll (header/gallery/sidebar).
type postMeta struct {
	Title      string             `yaml:"title"`
	Date       string             `yaml:"date"`
	Excerpt    string             `yaml:"excerpt"`
	Categories []string           `yaml:"categories"`
	Tags       []string           `yaml:"tags"`
	Images     []models.PostImage `yaml:"images"`
	Ratings    map[string]float64 `yaml:"ratings"`

	Header struct {
		Image string `yaml:"image"`
	} `yaml:"header"`
	Gallery []struct {
		ImagePath string `yaml:"image_path"`
		Alt       string `yaml:"alt"`
	} `yaml:"gallery"`
	Sidebar []struct {
		Text string `yaml:"text"`
	} `yaml:"sidebar"`
}

// ParsePost splits raw file content into front matter and body and builds a
// Post from it. Slug and reading time are filled in by the repository.
func ParsePost(content []byte) (models.Post, error) {
	str := string(content)
	if !strings.HasPrefix(str, "---\n") && !strings.HasPrefix(str, "---\r\n") {
		return models.Post{}, ErrNoFrontMatter
	}

	parts := strings.SplitN(str, "---", 3) // "", FM, Body
	if len(parts) < 3 {
		return models.Post{}, ErrNoFrontMatter
	}

	var meta postMeta
	if err := yaml.Unmarshal([]byte(parts[1]), &meta); err != nil {
		return models.Post{}, fmt.Errorf("decode front matter: %w", err)
	}

	post := models.Post{
		Title:      meta.Title,
		Date:       meta.Date,
		Excerpt:    meta.Excerpt,
		Categories: meta.Categories,
		Tags:       meta.Tags,
		Images:     buildImages(meta),
		Ratings:    buildRatings(meta),
		Content:    strings.TrimSpace(parts[2]),
	}
	if post.Title == "" {
		post.Title = "Untitled"
	}
	if post.Categories == nil {
		post.Categories = []string{}
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	return post, nil
}

// RewriteImagePath replaces the legacy Jekyll asset prefix with the public
// image path prefix. Paths outside the legacy location pass through as-is.
func RewriteImagePath(path string) string {
	if rest, ok := strings.CutPrefix(path, config.LegacyAssetPrefix); ok {
		return config.ImagePathPrefix + rest
	}
	if rest, ok := strings.CutPrefix(path, strings.TrimPrefix(config.LegacyAssetPrefix, "/")); ok {
		return config.ImagePathPrefix + rest
	}
	return path
}

func buildImages(meta postMeta) []models.PostImage {
	// New-style posts carry the image list directly.
	if len(meta.Images) > 0 {
		images := make([]models.PostImage, 0, len(meta.Images))
		for _, img := range meta.Images {
			img.URL = RewriteImagePath(img.URL)
			images = append(images, img)
		}
		return images
	}

	var images []models.PostImage
	if meta.Header.Image != "" {
		images = append(images, models.PostImage{
			URL:  RewriteImagePath(meta.Header.Image),
			Alt:  meta.Title,
			Type: models.ImageTypeHeader,
		})
	}
	for i, item := range meta.Gallery {
		if item.ImagePath == "" {
			continue
		}
		alt := item.Alt
		if alt == "" {
			alt = fmt.Sprintf("Gallery image %d", i+1)
		}
		images = append(images, models.PostImage{
			URL:  RewriteImagePath(item.ImagePath),
			Alt:  alt,
			Type: models.ImageTypeGallery,
		})
	}
	return images
}

func buildRatings(meta postMeta) map[string]float64 {
	// Structured ratings win; the sidebar scan only exists for posts
	// migrated from the old site.
	if len(meta.Ratings) > 0 {
		return meta.Ratings
	}
	if len(meta.Sidebar) > 0 {
		return ExtractLegacyRatings(meta.Sidebar[0].Text)
	}
	return map[string]float64{}
}

var legacyRatingRe = regexp.MustCompile(`<a>([^<]+)</a>\s*<a>([^<]+)/10</a>`)

// ExtractLegacyRatings scans old sidebar markup for "label" / "value/10"
// pairs. Best effort: fragments that do not parse are skipped.
func ExtractLegacyRatings(text string) map[string]float64 {
	ratings := make(map[string]float64)
	for _, match := range legacyRatingRe.FindAllStringSubmatch(text, -1) {
		key := strings.ToLower(strings.TrimSpace(match[1]))
		if key == "" {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(match[2]), 64)
		if err != nil {
			continue
		}
		ratings[key] = value
	}
	return ratings
}
