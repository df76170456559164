// Package content loads the static site content (services, projects, stats,
// contact channels) from YAML and renders its Markdown fragments.
package content

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"nexadev.com/landing-web/internal/i18n"
)

// ErrInvalid is returned for content that loads but breaks a structural rule.
var ErrInvalid = errors.New("content: invalid site file")

const defaultFile = "content/site.yaml"

// Localized is display copy keyed by locale code.
type Localized map[string]string

// In returns the copy for l, or the primary locale's when l is absent.
func (t Localized) In(l i18n.Locale) string {
	if v, ok := t[l.String()]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return t[i18n.Primary.String()]
}

// Pacing holds the reveal stagger per section, in milliseconds.
type Pacing struct {
	Services  int `yaml:"services"`
	Portfolio int `yaml:"portfolio"`
	About     int `yaml:"about"`
	Contact   int `yaml:"contact"`
}

// Badge is a hero badge; Key is a translation key.
type Badge struct {
	Key  string `yaml:"key"`
	Icon string `yaml:"icon"`
}

// Hero holds the hero section's badges.
type Hero struct {
	Badges []Badge `yaml:"badges"`
}

// Service is one service card. Its copy lives under services.<Key>.*.
type Service struct {
	Key          string   `yaml:"key"`
	Icon         string   `yaml:"icon"`
	Gradient     string   `yaml:"gradient"`
	Technologies []string `yaml:"technologies"`
}

// TitleKey returns the translation key of the card title.
func (s Service) TitleKey() string { return "services." + s.Key + ".title" }

// DescriptionKey returns the translation key of the card body.
func (s Service) DescriptionKey() string { return "services." + s.Key + ".description" }

// Project is one portfolio card. Description is Markdown.
type Project struct {
	Slug         string    `yaml:"slug"`
	Title        Localized `yaml:"title"`
	Description  Localized `yaml:"description"`
	Image        string    `yaml:"image"`
	Category     string    `yaml:"category"` // translation key
	Color        string    `yaml:"color"`
	Technologies []string  `yaml:"technologies"`
	URL          string    `yaml:"url"`
	SourceURL    string    `yaml:"source_url"`
}

// Value is a mission/vision/values card; copy lives under about.<Key>.*.
type Value struct {
	Key   string `yaml:"key"`
	Icon  string `yaml:"icon"`
	Color string `yaml:"color"`
}

// Stat is a headline number on the about section.
type Stat struct {
	Number string `yaml:"number"`
	Label  string `yaml:"label"` // translation key
	Icon   string `yaml:"icon"`
}

// Channel is a contact card (email, phone, location).
type Channel struct {
	Kind  string `yaml:"kind"`
	Label string `yaml:"label"` // translation key
	Value string `yaml:"value"`
	Href  string `yaml:"href"`
	Icon  string `yaml:"icon"`
}

// Social is an icon link; Label doubles as its aria-label.
type Social struct {
	Label      string `yaml:"label"`
	Href       string `yaml:"href"`
	Icon       string `yaml:"icon"`
	FooterOnly bool   `yaml:"footer_only"`
}

// Link is a labelled anchor whose label is a translation key.
type Link struct {
	Key  string `yaml:"key"`
	Href string `yaml:"href"`
}

// Site is the whole content file.
type Site struct {
	Reveal         Pacing    `yaml:"reveal"`
	Hero           Hero      `yaml:"hero"`
	Services       []Service `yaml:"services"`
	Projects       []Project `yaml:"projects"`
	Values         []Value   `yaml:"values"`
	Stats          []Stat    `yaml:"stats"`
	Team           Localized `yaml:"team"`
	Channels       []Channel `yaml:"channels"`
	Socials        []Social  `yaml:"socials"`
	FooterServices []Link    `yaml:"footer_services"`

	renderer *Renderer
}

// ProjectDescription renders a project's Markdown description for l.
func (s *Site) ProjectDescription(p Project, l i18n.Locale) template.HTML {
	return s.markdown().Render(p.Description.In(l))
}

// TeamBlurb renders the team paragraph for l.
func (s *Site) TeamBlurb(l i18n.Locale) template.HTML {
	return s.markdown().Render(s.Team.In(l))
}

// ContactSocials returns the socials shown on the contact section.
func (s *Site) ContactSocials() []Social {
	out := make([]Social, 0, len(s.Socials))
	for _, so := range s.Socials {
		if !so.FooterOnly {
			out = append(out, so)
		}
	}
	return out
}

func (s *Site) markdown() *Renderer {
	if s.renderer == nil {
		s.renderer = NewRenderer()
	}
	return s.renderer
}

// Parse decodes and checks a site file.
func Parse(data []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("content: parse: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	s.renderer = NewRenderer()
	return &s, nil
}

func (s *Site) validate() error {
	for i, p := range s.Projects {
		if strings.TrimSpace(p.Title[i18n.Primary.String()]) == "" {
			return fmt.Errorf("%w: project %d has no %s title", ErrInvalid, i, i18n.Primary)
		}
	}
	for i, sv := range s.Services {
		if strings.TrimSpace(sv.Key) == "" {
			return fmt.Errorf("%w: service %d has no key", ErrInvalid, i)
		}
	}
	for _, n := range []*int{&s.Reveal.Services, &s.Reveal.Portfolio, &s.Reveal.About, &s.Reveal.Contact} {
		if *n < 0 {
			return fmt.Errorf("%w: negative reveal stagger", ErrInvalid)
		}
	}
	return nil
}

// Load reads and parses a site file from fsys.
func Load(fsys fs.FS, name string) (*Site, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", name, err)
	}
	return Parse(data)
}

// Source serves the site file from disk, re-reading it at most once per TTL.
// A TTL of zero re-reads on every call, which is what dev mode wants.
type Source struct {
	path string
	ttl  time.Duration

	mu      sync.RWMutex
	site    *Site
	expires time.Time
}

// NewSource returns a Source for path (default content/site.yaml).
func NewSource(path string, ttl time.Duration) *Source {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultFile
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Source{path: path, ttl: ttl}
}

// Path returns the file being served.
func (s *Source) Path() string { return s.path }

// Site returns the cached site or loads it.
func (s *Source) Site() (*Site, error) {
	now := time.Now()
	s.mu.RLock()
	site, expires := s.site, s.expires
	s.mu.RUnlock()
	if site != nil && now.Before(expires) {
		return site, nil
	}

	dir, name := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}
	site, err := Load(os.DirFS(dir), name)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.site = site
	s.expires = now.Add(s.ttl)
	s.mu.Unlock()
	return site, nil
}
