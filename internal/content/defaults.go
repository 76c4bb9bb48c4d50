package content

// Fallback values for the optional sections. These mirror what the site
// renders when the bundled document predates the section being added.

// DefaultNow returns the fallback spotlight card.
func DefaultNow() *Now {
	return &Now{
		Title:   "Senior Tech Writer Associate",
		Company: "Google Operations Center",
		Link:    "#work",
		Bullets: []string{
			"Help Center articles & internal docs for Google Ads",
			"AI-assisted chatbot scripts & flows",
			"Cross-functional launch communications",
		},
	}
}

// DefaultHero returns the fallback rotating hero words.
func DefaultHero() *Hero {
	return &Hero{Words: []string{"Design", "Word", "Click"}}
}

// DefaultUI returns the fallback section headings and footer copy.
func DefaultUI() *UI {
	return &UI{
		Hero: HeroCopy{
			Line1:       "Creating Strategic",
			Line2Prefix: "Impact, One",
			Line3:       "at a time.",
		},
		Latest:    SectionHeading{Eyebrow: "Fresh", Title: "Latest Published Work"},
		Work:      SectionHeading{Eyebrow: "Experience", Title: "Selected Work"},
		Projects:  SectionHeading{Eyebrow: "Case Studies", Title: "Projects & Impact"},
		Clients:   SectionHeading{Eyebrow: "Trusted by", Title: "Clients & Collaborations"},
		Skills:    SectionHeading{Eyebrow: "Toolbox", Title: "Skills & Superpowers"},
		About:     SectionHeading{Eyebrow: "Story", Title: "About Nijanthan"},
		Community: SectionHeading{Eyebrow: "Shoutout", Title: "Community & Causes"},
		Contact:   SectionHeading{Eyebrow: "Say hello", Title: "Let’s build something clear & beautiful"},
		Footer:    "Built with care.",
	}
}

// ResolveDefaults fills the optional sections that are absent, so that
// every read site downstream sees a fully-populated document. Called
// once at load time; applying it again is a no-op for sections already
// present.
func (d *Document) ResolveDefaults() {
	if d.Now == nil {
		d.Now = DefaultNow()
	}
	if d.Hero == nil {
		d.Hero = DefaultHero()
	}
	if d.UI == nil {
		d.UI = DefaultUI()
	}
}
