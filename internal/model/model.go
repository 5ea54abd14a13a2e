package model

type Status string

const (
	StatusLive       Status = "live"
	StatusInProgress Status = "in-progress"
	StatusArchived   Status = "archived"
)

// Format is purely cosmetic (card art).
type Format string

const (
	FormatCassette Format = "cassette"
	FormatCD       Format = "cd"
)

type Image struct {
	Src string `json:"src" yaml:"src"`
	Alt string `json:"alt,omitempty" yaml:"alt,omitempty"`
}

type BehindTheBuild struct {
	Title string   `json:"title,omitempty" yaml:"title,omitempty"`
	Body  string   `json:"body" yaml:"body"`
	Notes []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type Project struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Summary string `json:"summary" yaml:"summary"`

	Client string `json:"client,omitempty" yaml:"client,omitempty"`
	Year   string `json:"year,omitempty" yaml:"year,omitempty"`

	Status Status   `json:"status" yaml:"status"`
	Format Format   `json:"format" yaml:"format"`
	Type   []string `json:"type" yaml:"type"`

	Role        string   `json:"role,omitempty" yaml:"role,omitempty"`
	Stack       []string `json:"stack,omitempty" yaml:"stack,omitempty"`
	Highlights  []string `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	Context     string   `json:"context,omitempty" yaml:"context,omitempty"`
	Constraints []string `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Outcomes    []string `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`

	Href           string `json:"href,omitempty" yaml:"href,omitempty"`
	PreviewHref    string `json:"previewHref,omitempty" yaml:"previewHref,omitempty"`
	SecondaryHref  string `json:"secondaryHref,omitempty" yaml:"secondaryHref,omitempty"`
	SecondaryLabel string `json:"secondaryLabel,omitempty" yaml:"secondaryLabel,omitempty"`
	CTALabel       string `json:"ctaLabel,omitempty" yaml:"ctaLabel,omitempty"`

	// Images is ordered; the first entry is the primary image.
	Images     []Image `json:"images,omitempty" yaml:"images,omitempty"`
	CoverImage *Image  `json:"coverImage,omitempty" yaml:"coverImage,omitempty"`

	BehindTheBuild *BehindTheBuild `json:"behindTheBuild,omitempty" yaml:"behindTheBuild,omitempty"`

	Featured bool `json:"featured,omitempty" yaml:"featured,omitempty"`
}

// HasTag reports whether tag is one of the project's type tags.
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Type {
		if t == tag {
			return true
		}
	}
	return false
}

// Gallery returns the images to show in the detail window: images win, then the
// cover image, else nothing (placeholder preview).
func (p Project) Gallery() []Image {
	out := make([]Image, 0, len(p.Images))
	for _, img := range p.Images {
		if img.Src != "" {
			out = append(out, img)
		}
	}
	if len(out) > 0 {
		return out
	}
	if p.CoverImage != nil && p.CoverImage.Src != "" {
		return []Image{*p.CoverImage}
	}
	return nil
}

type VhsIntensity string

const (
	IntensityLow    VhsIntensity = "low"
	IntensityMedium VhsIntensity = "medium"
	IntensityHigh   VhsIntensity = "high"
)

func (v VhsIntensity) Valid() bool {
	switch v {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return true
	default:
		return false
	}
}

type Settings struct {
	VhsEnabled    bool         `json:"vhsEnabled"`
	VhsIntensity  VhsIntensity `json:"vhsIntensity"`
	ReducedMotion bool         `json:"reducedMotion"`
}

func DefaultSettings() Settings {
	return Settings{
		VhsEnabled:    true,
		VhsIntensity:  IntensityMedium,
		ReducedMotion: false,
	}
}

// AppDefinition is one launcher/dock entry.
type AppDefinition struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Subtitle string `json:"subtitle,omitempty"`
	Route    string `json:"route"`
	Key      string `json:"key"`
}

var Apps = []AppDefinition{
	{ID: "home", Label: "Home", Subtitle: "Launcher", Route: "/", Key: "1"},
	{ID: "projects", Label: "Projects", Subtitle: "Work Library", Route: "/projects", Key: "2"},
	{ID: "studio", Label: "Studio", Subtitle: "About + Process", Route: "/studio", Key: "3"},
	{ID: "archive", Label: "Archive", Subtitle: "Experiments", Route: "/archive", Key: "4"},
	{ID: "contact", Label: "Contact", Subtitle: "Transmit", Route: "/contact", Key: "5"},
}

type TickerTone string

const (
	ToneInfo TickerTone = "info"
	ToneHint TickerTone = "hint"
	ToneEgg  TickerTone = "egg"
)

type TickerMessage struct {
	ID   string     `json:"id"`
	Text string     `json:"text"`
	Tone TickerTone `json:"tone,omitempty"`
}
