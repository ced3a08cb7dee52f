// Package content defines the static copy and image configuration of a
// stagepage site. A Content value is read once at startup and never changed.
package content

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eringen/stagepage/ui"
)

// Socials are the outbound profile links.
type Socials struct {
	Instagram       string `yaml:"instagram"`
	InstagramHandle string `yaml:"instagram_handle"`
	Spotify         string `yaml:"spotify"`
	YouTube         string `yaml:"youtube"`
}

// Performance is one shared-stage entry.
type Performance struct {
	Artist string `yaml:"artist"`
	Venue  string `yaml:"venue"`
}

// Fallbacks are the substitute images used when a local asset fails.
type Fallbacks struct {
	Hero    string   `yaml:"hero"`
	Bio     string   `yaml:"bio"`
	Gallery []string `yaml:"gallery"`
}

// Content is everything the page renders.
type Content struct {
	Artist   string `yaml:"artist"`
	Tagline  string `yaml:"tagline"`
	Role     string `yaml:"role"`
	Theme    string `yaml:"theme"`
	Language string `yaml:"language"`

	HeroImage string   `yaml:"hero_image"`
	BioImage  string   `yaml:"bio_image"`
	Gallery   []string `yaml:"gallery"`

	// Bio paragraphs accept inline markdown (**bold**, *italic*, links).
	Bio      []string `yaml:"bio"`
	Headline string   `yaml:"headline"`
	Genres   []string `yaml:"genres"`
	Sound    string   `yaml:"sound"`

	Venues      []string      `yaml:"venues"`
	SharedStage []Performance `yaml:"shared_stage"`

	Email     string    `yaml:"email"`
	Socials   Socials   `yaml:"socials"`
	Fallbacks Fallbacks `yaml:"fallbacks"`
	Copyright string    `yaml:"copyright"`
}

// Load reads a YAML content file. Fields left out keep the defaults of the
// named theme's built-in content.
func Load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	var probe struct {
		Theme string `yaml:"theme"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parsing content %s: %w", path, err)
	}
	c := Default(probe.Theme)
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing content %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return c, nil
}

// Validate rejects content the page cannot render. Everything else is
// passed through as given.
func (c *Content) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Artist) == "" {
		errs = append(errs, errors.New("artist is required"))
	}
	for i, g := range c.Gallery {
		if strings.TrimSpace(g) == "" {
			errs = append(errs, fmt.Errorf("gallery[%d] is empty", i))
		}
	}
	if _, ok := LookupTheme(c.Theme); !ok {
		errs = append(errs, fmt.Errorf("unknown theme %q", c.Theme))
	}
	return errors.Join(errs...)
}

// Images returns the primary image URLs in page order.
func (c *Content) Images() ui.Images {
	return ui.Images{
		Hero:    c.HeroImage,
		Bio:     c.BioImage,
		Gallery: append([]string(nil), c.Gallery...),
	}
}

// FallbackPolicy returns the substitution policy for the page's images.
func (c *Content) FallbackPolicy() ui.FallbackPolicy {
	return ui.FallbackPolicy{
		Hero:    c.Fallbacks.Hero,
		Bio:     c.Fallbacks.Bio,
		Gallery: append([]string(nil), c.Fallbacks.Gallery...),
	}
}

// LocalImages returns the image paths served from the assets directory.
func (c *Content) LocalImages() []string {
	var out []string
	for _, p := range append([]string{c.HeroImage, c.BioImage}, c.Gallery...) {
		if strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") {
			out = append(out, p)
		}
	}
	return out
}
