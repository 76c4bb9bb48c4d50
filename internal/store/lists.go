package store

import (
	"fmt"
	"strings"

	"github.com/nijanthan/portfolio-cms/internal/content"
)

// Templates for newly appended entries. Every field is populated with
// its empty value so the editor form has something to bind to; bullet
// and tag lists are empty-but-present so they serialize as [].

// NewExperience returns an empty experience entry.
func NewExperience() content.Experience {
	return content.Experience{Bullets: []string{}}
}

// NewProject returns an empty project entry.
func NewProject() content.Project {
	return content.Project{Meta: []string{}}
}

// NewLatestItem returns an empty published-work entry defaulting to the
// article kind.
func NewLatestItem() content.LatestItem {
	return content.LatestItem{Kind: content.KindArticle}
}

// NewClient returns an empty client entry.
func NewClient() content.Client {
	return content.Client{}
}

// NewEducation returns an empty education entry.
func NewEducation() content.Education {
	return content.Education{}
}

// NewCert returns an empty certification entry.
func NewCert() content.Cert {
	return content.Cert{}
}

// AppendExperience appends entry at the end of the experience list.
func (s *Store) AppendExperience(entry content.Experience) error {
	return s.mutate(func(doc *content.Document) error {
		doc.Experience = append(append([]content.Experience(nil), doc.Experience...), entry)
		return nil
	})
}

// RemoveExperience removes the entry at index; later entries shift down.
func (s *Store) RemoveExperience(index int) error {
	return s.mutate(func(doc *content.Document) error {
		list, err := removeAt(doc.Experience, index, "experience")
		if err != nil {
			return err
		}
		doc.Experience = list
		return nil
	})
}

// AppendProject appends entry at the end of the projects list.
func (s *Store) AppendProject(entry content.Project) error {
	return s.mutate(func(doc *content.Document) error {
		doc.Projects = append(append([]content.Project(nil), doc.Projects...), entry)
		return nil
	})
}

// RemoveProject removes the project at index.
func (s *Store) RemoveProject(index int) error {
	return s.mutate(func(doc *content.Document) error {
		list, err := removeAt(doc.Projects, index, "projects")
		if err != nil {
			return err
		}
		doc.Projects = list
		return nil
	})
}

// AppendLatest appends entry at the end of the published-work list.
func (s *Store) AppendLatest(entry content.LatestItem) error {
	return s.mutate(func(doc *content.Document) error {
		doc.Latest = append(append([]content.LatestItem(nil), doc.Latest...), entry)
		return nil
	})
}

// RemoveLatest removes the published-work entry at index.
func (s *Store) RemoveLatest(index int) error {
	return s.mutate(func(doc *content.Document) error {
		list, err := removeAt(doc.Latest, index, "latest")
		if err != nil {
			return err
		}
		doc.Latest = list
		return nil
	})
}

// AppendClient appends entry at the end of the clients list.
func (s *Store) AppendClient(entry content.Client) error {
	return s.mutate(func(doc *content.Document) error {
		doc.Clients = append(append([]content.Client(nil), doc.Clients...), entry)
		return nil
	})
}

// RemoveClient removes the client at index.
func (s *Store) RemoveClient(index int) error {
	return s.mutate(func(doc *content.Document) error {
		list, err := removeAt(doc.Clients, index, "clients")
		if err != nil {
			return err
		}
		doc.Clients = list
		return nil
	})
}

// AppendEducation appends entry at the end of the education list.
func (s *Store) AppendEducation(entry content.Education) error {
	return s.mutate(func(doc *content.Document) error {
		doc.Education = append(append([]content.Education(nil), doc.Education...), entry)
		return nil
	})
}

// RemoveEducation removes the education entry at index.
func (s *Store) RemoveEducation(index int) error {
	return s.mutate(func(doc *content.Document) error {
		list, err := removeAt(doc.Education, index, "education")
		if err != nil {
			return err
		}
		doc.Education = list
		return nil
	})
}

// AppendCert appends entry at the end of the certifications list.
func (s *Store) AppendCert(entry content.Cert) error {
	return s.mutate(func(doc *content.Document) error {
		doc.Certs = append(append([]content.Cert(nil), doc.Certs...), entry)
		return nil
	})
}

// RemoveCert removes the certification at index.
func (s *Store) RemoveCert(index int) error {
	return s.mutate(func(doc *content.Document) error {
		list, err := removeAt(doc.Certs, index, "certs")
		if err != nil {
			return err
		}
		doc.Certs = list
		return nil
	})
}

// SetSkills bulk-replaces the skills list.
func (s *Store) SetSkills(skills []string) error {
	return s.mutate(func(doc *content.Document) error {
		doc.Skills = append([]string(nil), skills...)
		return nil
	})
}

// AppendSkill appends one skill at the end of the list.
func (s *Store) AppendSkill(skill string) error {
	return s.mutate(func(doc *content.Document) error {
		doc.Skills = append(append([]string(nil), doc.Skills...), skill)
		return nil
	})
}

// RemoveSkill removes the skill at index.
func (s *Store) RemoveSkill(index int) error {
	return s.mutate(func(doc *content.Document) error {
		list, err := removeAt(doc.Skills, index, "skills")
		if err != nil {
			return err
		}
		doc.Skills = list
		return nil
	})
}

func removeAt[T any](list []T, index int, section string) ([]T, error) {
	if index < 0 || index >= len(list) {
		return nil, fmt.Errorf("%s[%d]: %w", section, index, ErrIndexOutOfRange)
	}
	out := append([]T(nil), list[:index]...)
	return append(out, list[index+1:]...), nil
}

// SplitList splits delimiter-separated editor input (comma-separated
// tags, newline-separated bullets) into a trimmed list, dropping empty
// entries and preserving order.
func SplitList(input, sep string) []string {
	parts := strings.Split(input, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
