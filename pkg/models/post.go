package models

// PostImage is one image attached to a post. Type is "header" or "gallery".
type PostImage struct {
	URL  string `json:"url" yaml:"url"`
	Alt  string `json:"alt" yaml:"alt"`
	Type string `json:"type" yaml:"type"`
}

const (
	ImageTypeHeader  = "header"
	ImageTypeGallery = "gallery"
)

// ReadingTime is derived from the post body at load time, never persisted.
type ReadingTime struct {
	Minutes float64 `json:"minutes"`
	Words   int     `json:"words"`
	Text    string  `json:"text"`
}

// Post represents one content file under the posts directory.
type Post struct {
	Slug        string             `json:"slug"`
	Title       string             `json:"title"`
	Date        string             `json:"date"`
	Excerpt     string             `json:"excerpt"`
	Categories  []string           `json:"categories"`
	Tags        []string           `json:"tags"`
	Images      []PostImage        `json:"images"`
	Ratings     map[string]float64 `json:"ratings"`
	Content     string             `json:"content,omitempty"`
	ReadingTime ReadingTime        `json:"readingTime"`
}

// HeaderImage returns the first image with type "header", if any.
func (p Post) HeaderImage() (PostImage, bool) {
	for _, img := range p.Images {
		if img.Type == ImageTypeHeader {
			return img, true
		}
	}
	return PostImage{}, false
}

// GalleryImages returns the gallery images in file order.
func (p Post) GalleryImages() []PostImage {
	var gallery []PostImage
	for _, img := range p.Images {
		if img.Type == ImageTypeGallery {
			gallery = append(gallery, img)
		}
	}
	return gallery
}
