package store

import (
	"fmt"

	"github.com/nijanthan/portfolio-cms/internal/content"
)

// Field names are typed per section so a misspelled field is caught at
// the call site that constructs the constant, not deep in a generic
// string-keyed setter.

// ProfileField names a scalar field of the profile section.
type ProfileField string

// Profile scalar fields.
const (
	ProfileName         ProfileField = "name"
	ProfileSummary      ProfileField = "summary"
	ProfileLocation     ProfileField = "location"
	ProfileEmail        ProfileField = "email"
	ProfilePhone        ProfileField = "phone"
	ProfileAvailability ProfileField = "availability"
)

// SetProfileField replaces one scalar profile field. Any string is
// accepted, including empty.
func (s *Store) SetProfileField(field ProfileField, value string) error {
	return s.mutate(func(doc *content.Document) error {
		switch field {
		case ProfileName:
			doc.Profile.Name = value
		case ProfileSummary:
			doc.Profile.Summary = value
		case ProfileLocation:
			doc.Profile.Location = value
		case ProfileEmail:
			doc.Profile.Email = value
		case ProfilePhone:
			doc.Profile.Phone = value
		case ProfileAvailability:
			doc.Profile.Availability = value
		default:
			return fmt.Errorf("profile field %q: %w", field, ErrUnknownField)
		}
		return nil
	})
}

// SetProfileRoles bulk-replaces the ordered roles list.
func (s *Store) SetProfileRoles(roles []string) error {
	return s.mutate(func(doc *content.Document) error {
		doc.Profile.Roles = append([]string(nil), roles...)
		return nil
	})
}

// SocialsField names a scalar field of the socials section.
type SocialsField string

// Socials scalar fields.
const (
	SocialsLinkedIn SocialsField = "linkedin"
	SocialsWebsite  SocialsField = "website"
	SocialsGitHub   SocialsField = "github"
)

// SetSocialsField replaces one social URL.
func (s *Store) SetSocialsField(field SocialsField, value string) error {
	return s.mutate(func(doc *content.Document) error {
		switch field {
		case SocialsLinkedIn:
			doc.Socials.LinkedIn = value
		case SocialsWebsite:
			doc.Socials.Website = value
		case SocialsGitHub:
			doc.Socials.GitHub = value
		default:
			return fmt.Errorf("socials field %q: %w", field, ErrUnknownField)
		}
		return nil
	})
}

// SetResumeLink replaces the resume URL ("#" acts as a placeholder that
// hides the download button).
func (s *Store) SetResumeLink(value string) error {
	return s.mutate(func(doc *content.Document) error {
		doc.Links.Resume = value
		return nil
	})
}

// CommunityField names a scalar field of the community section.
type CommunityField string

// Community scalar fields.
const (
	CommunityName CommunityField = "name"
	CommunityHref CommunityField = "href"
	CommunityNote CommunityField = "note"
)

// SetCommunityField replaces one community field.
func (s *Store) SetCommunityField(field CommunityField, value string) error {
	return s.mutate(func(doc *content.Document) error {
		switch field {
		case CommunityName:
			doc.Community.Name = value
		case CommunityHref:
			doc.Community.Href = value
		case CommunityNote:
			doc.Community.Note = value
		default:
			return fmt.Errorf("community field %q: %w", field, ErrUnknownField)
		}
		return nil
	})
}

// NowField names a scalar field of the now section.
type NowField string

// Now scalar fields.
const (
	NowTitle   NowField = "title"
	NowCompany NowField = "company"
	NowLink    NowField = "link"
)

// SetNowField replaces one scalar field of the spotlight card. The
// section is always present after defaults resolution.
func (s *Store) SetNowField(field NowField, value string) error {
	return s.mutate(func(doc *content.Document) error {
		now := *doc.Now
		switch field {
		case NowTitle:
			now.Title = value
		case NowCompany:
			now.Company = value
		case NowLink:
			now.Link = value
		default:
			return fmt.Errorf("now field %q: %w", field, ErrUnknownField)
		}
		doc.Now = &now
		return nil
	})
}

// SetNowBullets bulk-replaces the spotlight card bullets.
func (s *Store) SetNowBullets(bullets []string) error {
	return s.mutate(func(doc *content.Document) error {
		now := *doc.Now
		now.Bullets = append([]string(nil), bullets...)
		doc.Now = &now
		return nil
	})
}

// SetHeroWords bulk-replaces the rotating hero words.
func (s *Store) SetHeroWords(words []string) error {
	return s.mutate(func(doc *content.Document) error {
		hero := *doc.Hero
		hero.Words = append([]string(nil), words...)
		doc.Hero = &hero
		return nil
	})
}

// ExperienceField names a scalar field of one experience entry.
type ExperienceField string

// Experience scalar fields.
const (
	ExperienceCompany ExperienceField = "company"
	ExperienceTitle   ExperienceField = "title"
	ExperienceRange   ExperienceField = "range"
)

// SetExperienceField replaces one scalar field of the entry at index.
func (s *Store) SetExperienceField(index int, field ExperienceField, value string) error {
	return s.mutate(func(doc *content.Document) error {
		if index < 0 || index >= len(doc.Experience) {
			return fmt.Errorf("experience[%d]: %w", index, ErrIndexOutOfRange)
		}
		list := append([]content.Experience(nil), doc.Experience...)
		switch field {
		case ExperienceCompany:
			list[index].Company = value
		case ExperienceTitle:
			list[index].Title = value
		case ExperienceRange:
			list[index].Range = value
		default:
			return fmt.Errorf("experience field %q: %w", field, ErrUnknownField)
		}
		doc.Experience = list
		return nil
	})
}

// SetExperienceBullets bulk-replaces the bullets of the entry at index.
func (s *Store) SetExperienceBullets(index int, bullets []string) error {
	return s.mutate(func(doc *content.Document) error {
		if index < 0 || index >= len(doc.Experience) {
			return fmt.Errorf("experience[%d]: %w", index, ErrIndexOutOfRange)
		}
		list := append([]content.Experience(nil), doc.Experience...)
		list[index].Bullets = append([]string(nil), bullets...)
		doc.Experience = list
		return nil
	})
}

// ProjectField names a scalar field of one project entry.
type ProjectField string

// Project scalar fields.
const (
	ProjectTitle     ProjectField = "title"
	ProjectBlurb     ProjectField = "blurb"
	ProjectThumbnail ProjectField = "thumbnail"
	ProjectCategory  ProjectField = "category"
	ProjectHref      ProjectField = "href"
)

// SetProjectField replaces one scalar field of the project at index.
func (s *Store) SetProjectField(index int, field ProjectField, value string) error {
	return s.mutate(func(doc *content.Document) error {
		if index < 0 || index >= len(doc.Projects) {
			return fmt.Errorf("projects[%d]: %w", index, ErrIndexOutOfRange)
		}
		list := append([]content.Project(nil), doc.Projects...)
		switch field {
		case ProjectTitle:
			list[index].Title = value
		case ProjectBlurb:
			list[index].Blurb = value
		case ProjectThumbnail:
			list[index].Thumbnail = value
		case ProjectCategory:
			list[index].Category = value
		case ProjectHref:
			list[index].Href = value
		default:
			return fmt.Errorf("project field %q: %w", field, ErrUnknownField)
		}
		doc.Projects = list
		return nil
	})
}

// SetProjectMeta bulk-replaces the tag list of the project at index.
func (s *Store) SetProjectMeta(index int, meta []string) error {
	return s.mutate(func(doc *content.Document) error {
		if index < 0 || index >= len(doc.Projects) {
			return fmt.Errorf("projects[%d]: %w", index, ErrIndexOutOfRange)
		}
		list := append([]content.Project(nil), doc.Projects...)
		list[index].Meta = append([]string(nil), meta...)
		doc.Projects = list
		return nil
	})
}

// SetProjectFeatured flips the primary-grid flag of the project at index.
func (s *Store) SetProjectFeatured(index int, featured bool) error {
	return s.mutate(func(doc *content.Document) error {
		if index < 0 || index >= len(doc.Projects) {
			return fmt.Errorf("projects[%d]: %w", index, ErrIndexOutOfRange)
		}
		list := append([]content.Project(nil), doc.Projects...)
		list[index].Featured = &featured
		doc.Projects = list
		return nil
	})
}

// LatestField names a scalar field of one published-work entry.
type LatestField string

// Latest scalar fields.
const (
	LatestKind      LatestField = "kind"
	LatestTitle     LatestField = "title"
	LatestHref      LatestField = "href"
	LatestMeta      LatestField = "meta"
	LatestThumbnail LatestField = "thumbnail"
)

// SetLatestField replaces one scalar field of the entry at index.
func (s *Store) SetLatestField(index int, field LatestField, value string) error {
	return s.mutate(func(doc *content.Document) error {
		if index < 0 || index >= len(doc.Latest) {
			return fmt.Errorf("latest[%d]: %w", index, ErrIndexOutOfRange)
		}
		list := append([]content.LatestItem(nil), doc.Latest...)
		switch field {
		case LatestKind:
			list[index].Kind = value
		case LatestTitle:
			list[index].Title = value
		case LatestHref:
			list[index].Href = value
		case LatestMeta:
			list[index].Meta = value
		case LatestThumbnail:
			list[index].Thumbnail = value
		default:
			return fmt.Errorf("latest field %q: %w", field, ErrUnknownField)
		}
		doc.Latest = list
		return nil
	})
}

// SetLatestFeatured flips the primary-grid flag of the entry at index.
func (s *Store) SetLatestFeatured(index int, featured bool) error {
	return s.mutate(func(doc *content.Document) error {
		if index < 0 || index >= len(doc.Latest) {
			return fmt.Errorf("latest[%d]: %w", index, ErrIndexOutOfRange)
		}
		list := append([]content.LatestItem(nil), doc.Latest...)
		list[index].Featured = &featured
		doc.Latest = list
		return nil
	})
}

// ClientField names a scalar field of one client entry.
type ClientField string

// Client scalar fields.
const (
	ClientName  ClientField = "name"
	ClientHref  ClientField = "href"
	ClientBlurb ClientField = "blurb"
)

// SetClientField replaces one scalar field of the client at index.
func (s *Store) SetClientField(index int, field ClientField, value string) error {
	return s.mutate(func(doc *content.Document) error {
		if index < 0 || index >= len(doc.Clients) {
			return fmt.Errorf("clients[%d]: %w", index, ErrIndexOutOfRange)
		}
		list := append([]content.Client(nil), doc.Clients...)
		switch field {
		case ClientName:
			list[index].Name = value
		case ClientHref:
			list[index].Href = value
		case ClientBlurb:
			list[index].Blurb = value
		default:
			return fmt.Errorf("client field %q: %w", field, ErrUnknownField)
		}
		doc.Clients = list
		return nil
	})
}

// SetClientFeatured flips the primary-grid flag of the client at index.
func (s *Store) SetClientFeatured(index int, featured bool) error {
	return s.mutate(func(doc *content.Document) error {
		if index < 0 || index >= len(doc.Clients) {
			return fmt.Errorf("clients[%d]: %w", index, ErrIndexOutOfRange)
		}
		list := append([]content.Client(nil), doc.Clients...)
		list[index].Featured = &featured
		doc.Clients = list
		return nil
	})
}

// EducationField names a scalar field of one education entry.
type EducationField string

// Education scalar fields.
const (
	EducationSchool EducationField = "school"
	EducationDegree EducationField = "degree"
	EducationYear   EducationField = "year"
)

// SetEducationField replaces one scalar field of the entry at index.
func (s *Store) SetEducationField(index int, field EducationField, value string) error {
	return s.mutate(func(doc *content.Document) error {
		if index < 0 || index >= len(doc.Education) {
			return fmt.Errorf("education[%d]: %w", index, ErrIndexOutOfRange)
		}
		list := append([]content.Education(nil), doc.Education...)
		switch field {
		case EducationSchool:
			list[index].School = value
		case EducationDegree:
			list[index].Degree = value
		case EducationYear:
			list[index].Year = value
		default:
			return fmt.Errorf("education field %q: %w", field, ErrUnknownField)
		}
		doc.Education = list
		return nil
	})
}

// CertField names a scalar field of one certification entry.
type CertField string

// Cert scalar fields.
const (
	CertIssuer CertField = "issuer"
	CertName   CertField = "name"
)

// SetCertField replaces one scalar field of the entry at index.
func (s *Store) SetCertField(index int, field CertField, value string) error {
	return s.mutate(func(doc *content.Document) error {
		if index < 0 || index >= len(doc.Certs) {
			return fmt.Errorf("certs[%d]: %w", index, ErrIndexOutOfRange)
		}
		list := append([]content.Cert(nil), doc.Certs...)
		switch field {
		case CertIssuer:
			list[index].Issuer = value
		case CertName:
			list[index].Name = value
		default:
			return fmt.Errorf("cert field %q: %w", field, ErrUnknownField)
		}
		doc.Certs = list
		return nil
	})
}
