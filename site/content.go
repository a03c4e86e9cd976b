package site

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// Validation errors. Content.Validate joins every problem it finds, so
// callers match them with errors.Is.
var (
	ErrEmptyNav        = errors.New("site: navigation is empty")
	ErrDuplicateAnchor = errors.New("site: duplicate section anchor")
	ErrUnknownAnchor   = errors.New("site: link to unknown anchor")
)

// Format is a content file encoding.
type Format uint8

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("site: unsupported content file %q", path)
	}
}

// Content is everything the page shows. The zero value is not valid; start
// from DefaultContent or a content file.
type Content struct {
	Brand     string    `yaml:"brand" toml:"brand"`
	Nav       []NavItem `yaml:"nav" toml:"nav"`
	QuoteText string    `yaml:"quote_text" toml:"quote_text"`

	Hero         Hero         `yaml:"hero" toml:"hero"`
	AIServices   ServiceGroup `yaml:"ai_services" toml:"ai_services"`
	Enterprise   ServiceGroup `yaml:"enterprise" toml:"enterprise"`
	Capabilities Capabilities `yaml:"capabilities" toml:"capabilities"`
	Process      Process      `yaml:"process" toml:"process"`
	Contact      Contact      `yaml:"contact" toml:"contact"`
	Footer       Footer       `yaml:"footer" toml:"footer"`
}

// NavItem is a header link. Href is "#anchor" for in-page links.
type NavItem struct {
	Label    string `yaml:"label" toml:"label"`
	Href     string `yaml:"href" toml:"href"`
	External bool   `yaml:"external,omitempty" toml:"external,omitempty"`
}

// Anchor returns the in-page target of the link, or "" for external links.
func (n NavItem) Anchor() string {
	if n.External {
		return ""
	}
	return strings.TrimPrefix(n.Href, "#")
}

// Heading is the content of a SectionHeading.
type Heading struct {
	Badge     string `yaml:"badge" toml:"badge"`
	Title     string `yaml:"title" toml:"title"`
	Highlight string `yaml:"highlight" toml:"highlight"`
	Subtitle  string `yaml:"subtitle" toml:"subtitle"`
}

type Stat struct {
	Value string `yaml:"value" toml:"value"`
	Label string `yaml:"label" toml:"label"`
}

type Hero struct {
	Anchor    string   `yaml:"anchor" toml:"anchor"`
	Badge     string   `yaml:"badge" toml:"badge"`
	Headline  []string `yaml:"headline" toml:"headline"`
	Subline   string   `yaml:"subline" toml:"subline"`
	Primary   CTA      `yaml:"primary" toml:"primary"`
	Secondary CTA      `yaml:"secondary" toml:"secondary"`
	Stats     []Stat   `yaml:"stats" toml:"stats"`
}

// CTA is a call-to-action button that scrolls to an anchor.
type CTA struct {
	Label  string `yaml:"label" toml:"label"`
	Target string `yaml:"target" toml:"target"`
}

// Card sizes in the services grid.
const (
	SizeDefault = "default"
	SizeLarge   = "large"
	SizeWide    = "wide"
	SizeTall    = "tall"
)

type ServiceCard struct {
	ID          string   `yaml:"id" toml:"id"`
	Icon        string   `yaml:"icon" toml:"icon"`
	Title       string   `yaml:"title" toml:"title"`
	Description string   `yaml:"description" toml:"description"`
	Features    []string `yaml:"features" toml:"features"`
	Size        string   `yaml:"size,omitempty" toml:"size,omitempty"`
	Accent      Accent   `yaml:"accent,omitempty" toml:"accent,omitempty"`
}

type ServiceGroup struct {
	Anchor  string        `yaml:"anchor" toml:"anchor"`
	Heading Heading       `yaml:"heading" toml:"heading"`
	Cards   []ServiceCard `yaml:"cards" toml:"cards"`
}

type Capability struct {
	Icon        string `yaml:"icon" toml:"icon"`
	Title       string `yaml:"title" toml:"title"`
	Description string `yaml:"description" toml:"description"`
	Stat        string `yaml:"stat" toml:"stat"`
	StatLabel   string `yaml:"stat_label" toml:"stat_label"`
}

type Technology struct {
	Name string `yaml:"name" toml:"name"`
	Icon string `yaml:"icon" toml:"icon"`
}

type Capabilities struct {
	Anchor       string       `yaml:"anchor" toml:"anchor"`
	Heading      Heading      `yaml:"heading" toml:"heading"`
	Items        []Capability `yaml:"items" toml:"items"`
	TrustTitle   string       `yaml:"trust_title" toml:"trust_title"`
	Technologies []Technology `yaml:"technologies" toml:"technologies"`
}

type Step struct {
	Icon        string `yaml:"icon" toml:"icon"`
	Title       string `yaml:"title" toml:"title"`
	Description string `yaml:"description" toml:"description"`
	Accent      Accent `yaml:"accent,omitempty" toml:"accent,omitempty"`
}

type Process struct {
	Anchor   string  `yaml:"anchor" toml:"anchor"`
	Heading  Heading `yaml:"heading" toml:"heading"`
	Steps    []Step  `yaml:"steps" toml:"steps"`
	CTATitle string  `yaml:"cta_title" toml:"cta_title"`
	CTAText  string  `yaml:"cta_text" toml:"cta_text"`
	CTA      CTA     `yaml:"cta" toml:"cta"`
}

type ContactInfo struct {
	Icon  string `yaml:"icon" toml:"icon"`
	Label string `yaml:"label" toml:"label"`
	Value string `yaml:"value" toml:"value"`
	Href  string `yaml:"href,omitempty" toml:"href,omitempty"`
}

type Link struct {
	Label    string `yaml:"label" toml:"label"`
	Href     string `yaml:"href" toml:"href"`
	External bool   `yaml:"external,omitempty" toml:"external,omitempty"`
}

// Anchor returns the in-page target of the link, or "" for external links.
func (l Link) Anchor() string {
	return NavItem{Href: l.Href, External: l.External}.Anchor()
}

// Option is one entry of the contact form's service select.
type Option struct {
	Value string `yaml:"value" toml:"value"`
	Label string `yaml:"label" toml:"label"`
}

type Contact struct {
	Anchor   string        `yaml:"anchor" toml:"anchor"`
	Heading  Heading       `yaml:"heading" toml:"heading"`
	Info     []ContactInfo `yaml:"info" toml:"info"`
	Socials  []Link        `yaml:"socials" toml:"socials"`
	Services []Option      `yaml:"services" toml:"services"`
}

type LinkGroup struct {
	Title string `yaml:"title" toml:"title"`
	Links []Link `yaml:"links" toml:"links"`
}

type Footer struct {
	Tagline string      `yaml:"tagline" toml:"tagline"`
	Groups  []LinkGroup `yaml:"groups" toml:"groups"`
	Socials []Link      `yaml:"socials" toml:"socials"`
}

// DefaultContent returns the content shipped with the binary.
func DefaultContent() (*Content, error) {
	return Parse(defaultContent, FormatYAML)
}

// Parse decodes and validates content.
func Parse(data []byte, f Format) (*Content, error) {
	var c Content
	var err error
	switch f {
	case FormatTOML:
		err = toml.Unmarshal(data, &c)
	default:
		err = yaml.Unmarshal(data, &c)
	}
	if err != nil {
		return nil, fmt.Errorf("site: decode content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads and validates a content file.
func Load(path string) (*Content, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("site: read content: %w", err)
	}
	c, err := Parse(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Anchors returns the section anchors in page order.
func (c *Content) Anchors() []string {
	return []string{
		c.Hero.Anchor,
		c.AIServices.Anchor,
		c.Enterprise.Anchor,
		c.Capabilities.Anchor,
		c.Process.Anchor,
		c.Contact.Anchor,
	}
}

// Validate reports every structural problem in c.
func (c *Content) Validate() error {
	var errs []error
	if len(c.Nav) == 0 {
		errs = append(errs, ErrEmptyNav)
	}

	known := make(map[string]bool)
	for _, a := range c.Anchors() {
		if a == "" {
			continue
		}
		if known[a] {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateAnchor, a))
		}
		known[a] = true
	}

	check := func(where, anchor string) {
		if anchor != "" && !known[anchor] {
			errs = append(errs, fmt.Errorf("%w: %s links to %q", ErrUnknownAnchor, where, anchor))
		}
	}
	for _, n := range c.Nav {
		check("nav "+n.Label, n.Anchor())
	}
	check("hero primary", c.Hero.Primary.Target)
	check("hero secondary", c.Hero.Secondary.Target)
	check("process cta", c.Process.CTA.Target)
	for _, g := range c.Footer.Groups {
		for _, l := range g.Links {
			check("footer "+l.Label, l.Anchor())
		}
	}
	return errors.Join(errs...)
}
