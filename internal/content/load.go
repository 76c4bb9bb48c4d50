package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// Decode parses a serialized document and resolves defaults for the
// optional sections.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse content JSON: %w", err)
	}
	doc.ResolveDefaults()
	return &doc, nil
}

// Load reads the bundled document from disk. This is the local fallback
// every process start begins from.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file %s: %w", path, err)
	}
	return Decode(data)
}

// Canonical returns the document's canonical serialized form: two-space
// indented JSON with a trailing newline. The publish protocol transmits
// exactly these bytes, so the form must round-trip without loss.
func (d *Document) Canonical() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode content: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes the document to path atomically, so a crash mid-write
// never leaves a truncated bundled copy behind.
func (d *Document) Save(path string) error {
	data, err := d.Canonical()
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write content file %s: %w", path, err)
	}
	return nil
}

// Clone returns a deep copy of the document. Mutating the copy never
// aliases the original's slices.
func (d *Document) Clone() *Document {
	out := *d

	out.Profile.Roles = append([]string(nil), d.Profile.Roles...)
	out.Skills = append([]string(nil), d.Skills...)

	out.Experience = append([]Experience(nil), d.Experience...)
	for i := range out.Experience {
		out.Experience[i].Bullets = append([]string(nil), out.Experience[i].Bullets...)
	}

	out.Projects = append([]Project(nil), d.Projects...)
	for i := range out.Projects {
		out.Projects[i].Meta = append([]string(nil), out.Projects[i].Meta...)
		out.Projects[i].Featured = cloneBool(out.Projects[i].Featured)
	}

	out.Latest = append([]LatestItem(nil), d.Latest...)
	for i := range out.Latest {
		out.Latest[i].Featured = cloneBool(out.Latest[i].Featured)
	}

	out.Clients = append([]Client(nil), d.Clients...)
	for i := range out.Clients {
		out.Clients[i].Featured = cloneBool(out.Clients[i].Featured)
	}

	out.Education = append([]Education(nil), d.Education...)
	out.Certs = append([]Cert(nil), d.Certs...)

	if d.Now != nil {
		now := *d.Now
		now.Bullets = append([]string(nil), d.Now.Bullets...)
		out.Now = &now
	}
	if d.Hero != nil {
		hero := *d.Hero
		hero.Words = append([]string(nil), d.Hero.Words...)
		out.Hero = &hero
	}
	if d.UI != nil {
		ui := *d.UI
		out.UI = &ui
	}

	return &out
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
