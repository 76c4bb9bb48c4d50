// Package content defines the portfolio content document: a single
// structured value holding everything the site renders.
package content

// Document is the complete portfolio content. Section keys mirror the
// bundled content.json that ships with the site, so the document
// round-trips byte-for-byte through its canonical JSON form.
type Document struct {
	Profile    Profile      `json:"PROFILE"`
	Socials    Socials      `json:"SOCIALS"`
	Links      Links        `json:"LINKS"`
	Experience []Experience `json:"EXPERIENCE"`
	Projects   []Project    `json:"PROJECTS"`
	Latest     []LatestItem `json:"LATEST"`
	Clients    []Client     `json:"CLIENTS"`
	Education  []Education  `json:"EDUCATION"`
	Certs      []Cert       `json:"CERTS"`
	Skills     []string     `json:"SKILLS"`
	Community  Community    `json:"COMMUNITY"`
	Now        *Now         `json:"NOW,omitempty"`
	Hero       *Hero        `json:"HERO,omitempty"`
	UI         *UI          `json:"UI,omitempty"`
}

// Profile holds the singleton identity section.
type Profile struct {
	Name         string   `json:"name"`
	Roles        []string `json:"roles"`
	Summary      string   `json:"summary"`
	Location     string   `json:"location"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Availability string   `json:"availability"`
}

// Socials holds optional profile URLs.
type Socials struct {
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// Links holds downloadable artifacts. Resume may be "#" as a placeholder.
type Links struct {
	Resume string `json:"resume"`
}

// Experience is one work history entry. Display order is slice order.
type Experience struct {
	Company string   `json:"company"`
	Title   string   `json:"title"`
	Range   string   `json:"range"`
	Bullets []string `json:"bullets"`
}

// Project is one portfolio project card.
type Project struct {
	Title     string   `json:"title"`
	Blurb     string   `json:"blurb"`
	Meta      []string `json:"meta"`
	Featured  *bool    `json:"featured,omitempty"`
	Thumbnail string   `json:"thumbnail,omitempty"`
	Category  string   `json:"category,omitempty"`
	Href      string   `json:"href,omitempty"`
}

// Latest item kinds. Kind drives how a missing thumbnail is resolved.
const (
	KindArticle = "Article"
	KindVideo   = "Video"
)

// LatestItem is one published-work entry (article or video).
type LatestItem struct {
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Href      string `json:"href"`
	Meta      string `json:"meta"`
	Featured  *bool  `json:"featured,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Client is one client or collaboration entry.
type Client struct {
	Name     string `json:"name"`
	Href     string `json:"href"`
	Blurb    string `json:"blurb"`
	Featured *bool  `json:"featured,omitempty"`
}

// Education is one school entry.
type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Year   string `json:"year"`
}

// Cert is one certification entry.
type Cert struct {
	Issuer string `json:"issuer"`
	Name   string `json:"name"`
}

// Community holds the singleton community/causes section.
type Community struct {
	Name string `json:"name"`
	Href string `json:"href"`
	Note string `json:"note"`
}

// Now is the "currently working on" spotlight card. Optional; a default
// is resolved at load time.
type Now struct {
	Title   string   `json:"title"`
	Company string   `json:"company"`
	Link    string   `json:"link"`
	Bullets []string `json:"bullets"`
}

// Hero holds the rotating hero words. Optional with a default.
type Hero struct {
	Words []string `json:"words"`
}

// SectionHeading is an eyebrow/title pair for one page section.
type SectionHeading struct {
	Eyebrow string `json:"eyebrow"`
	Title   string `json:"title"`
}

// HeroCopy is the three-line hero headline.
type HeroCopy struct {
	Line1       string `json:"line1"`
	Line2Prefix string `json:"line2_prefix"`
	Line3       string `json:"line3"`
}

// UI holds per-section headings and footer copy. Optional with a default.
type UI struct {
	Hero      HeroCopy       `json:"hero"`
	Latest    SectionHeading `json:"latest"`
	Work      SectionHeading `json:"work"`
	Projects  SectionHeading `json:"projects"`
	Clients   SectionHeading `json:"clients"`
	Skills    SectionHeading `json:"skills"`
	About     SectionHeading `json:"about"`
	Community SectionHeading `json:"community"`
	Contact   SectionHeading `json:"contact"`
	Footer    string         `json:"footer"`
}

// IsFeatured reports whether a featured flag means "show in the primary
// grid". An absent flag counts as featured.
func IsFeatured(f *bool) bool {
	return f == nil || *f
}

// Featured returns the items shown in the primary project grid.
func FeaturedProjects(projects []Project) []Project {
	var out []Project
	for _, p := range projects {
		if IsFeatured(p.Featured) {
			out = append(out, p)
		}
	}
	return out
}

// OverflowProjects returns the items relegated to the overflow rail.
func OverflowProjects(projects []Project) []Project {
	var out []Project
	for _, p := range projects {
		if !IsFeatured(p.Featured) {
			out = append(out, p)
		}
	}
	return out
}

// FeaturedLatest returns featured published-work items.
func FeaturedLatest(items []LatestItem) []LatestItem {
	var out []LatestItem
	for _, it := range items {
		if IsFeatured(it.Featured) {
			out = append(out, it)
		}
	}
	return out
}

// OverflowLatest returns explicitly-unfeatured published-work items.
func OverflowLatest(items []LatestItem) []LatestItem {
	var out []LatestItem
	for _, it := range items {
		if !IsFeatured(it.Featured) {
			out = append(out, it)
		}
	}
	return out
}

// FeaturedClients returns featured client entries.
func FeaturedClients(clients []Client) []Client {
	var out []Client
	for _, c := range clients {
		if IsFeatured(c.Featured) {
			out = append(out, c)
		}
	}
	return out
}

// OverflowClients returns explicitly-unfeatured client entries.
func OverflowClients(clients []Client) []Client {
	var out []Client
	for _, c := range clients {
		if !IsFeatured(c.Featured) {
			out = append(out, c)
		}
	}
	return out
}
