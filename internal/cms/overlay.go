package cms

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/nijanthan/portfolio-cms/internal/content"
)

// Overlay holds whichever sections the CMS returned. Nil fields mean
// the fetch failed or was never attempted; they leave the bundled
// section in place.
type Overlay struct {
	Profile    *content.Profile
	Socials    *content.Socials
	Experience []content.Experience
	Projects   []content.Project
	Latest     []content.LatestItem
	Clients    []content.Client
	Education  []content.Education
	Certs      []content.Cert
	Skills     []string
	Community  *content.Community
}

// FetchAll fetches every section concurrently. Individual failures are
// logged and leave their overlay field nil; FetchAll itself never
// returns an error because the read path is best-effort by contract.
func (c *Client) FetchAll(ctx context.Context) *Overlay {
	overlay := &Overlay{}
	if !c.Configured() {
		return overlay
	}

	g, gctx := errgroup.WithContext(ctx)

	fetch := func(section string, fn func() error) {
		g.Go(func() error {
			if err := fn(); err != nil {
				log.Printf("Failed to fetch %s from CMS: %v", section, err)
			}
			// Never propagate: one bad section must not cancel the rest.
			return nil
		})
	}

	fetch("profile", func() error {
		p, err := c.FetchProfile(gctx)
		if err == nil {
			overlay.Profile = p
		}
		return err
	})
	fetch("socials", func() error {
		s, err := c.FetchSocials(gctx)
		if err == nil {
			overlay.Socials = s
		}
		return err
	})
	fetch("experience", func() error {
		list, err := c.FetchExperience(gctx)
		if err == nil {
			overlay.Experience = list
		}
		return err
	})
	fetch("projects", func() error {
		list, err := c.FetchProjects(gctx)
		if err == nil {
			overlay.Projects = list
		}
		return err
	})
	fetch("latest work", func() error {
		list, err := c.FetchLatest(gctx)
		if err == nil {
			overlay.Latest = list
		}
		return err
	})
	fetch("clients", func() error {
		list, err := c.FetchClients(gctx)
		if err == nil {
			overlay.Clients = list
		}
		return err
	})
	fetch("education", func() error {
		list, err := c.FetchEducation(gctx)
		if err == nil {
			overlay.Education = list
		}
		return err
	})
	fetch("certifications", func() error {
		list, err := c.FetchCerts(gctx)
		if err == nil {
			overlay.Certs = list
		}
		return err
	})
	fetch("skills", func() error {
		list, err := c.FetchSkills(gctx)
		if err == nil {
			overlay.Skills = list
		}
		return err
	})
	fetch("community", func() error {
		cm, err := c.FetchCommunity(gctx)
		if err == nil {
			overlay.Community = cm
		}
		return err
	})

	_ = g.Wait()
	return overlay
}

// Apply merges the fetched sections over doc, returning a new document.
// Sections the CMS did not provide keep their bundled values.
func (o *Overlay) Apply(doc *content.Document) *content.Document {
	out := doc.Clone()
	if o.Profile != nil {
		out.Profile = *o.Profile
	}
	if o.Socials != nil {
		out.Socials = *o.Socials
	}
	if o.Experience != nil {
		out.Experience = o.Experience
	}
	if o.Projects != nil {
		out.Projects = o.Projects
	}
	if o.Latest != nil {
		out.Latest = o.Latest
	}
	if o.Clients != nil {
		out.Clients = o.Clients
	}
	if o.Education != nil {
		out.Education = o.Education
	}
	if o.Certs != nil {
		out.Certs = o.Certs
	}
	if o.Skills != nil {
		out.Skills = o.Skills
	}
	if o.Community != nil {
		out.Community = *o.Community
	}
	return out
}
