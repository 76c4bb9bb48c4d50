package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/nijanthan/portfolio-cms/internal/editor"
	"github.com/nijanthan/portfolio-cms/internal/render"
	"github.com/nijanthan/portfolio-cms/internal/server/middleware"
	"github.com/nijanthan/portfolio-cms/internal/store"
)

// ---------------------------------------------------------------------
// Session Handlers
// ---------------------------------------------------------------------

// LoginRequest carries the GitHub token supplied by the editor.
type LoginRequest struct {
	Token string `json:"token" validate:"required"`
}

// LoginResponse returns the session token and the resulting state.
type LoginResponse struct {
	Token string `json:"token"`
	State string `json:"state"`
}

// handleLogin accepts a GitHub credential and opens the editing
// session. The credential is not validated against GitHub here; a bad
// token surfaces on the first publish. Throttled per client IP.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	allowed, info := s.rateLimiter.Allow(s.extractClientID(r))
	if !allowed {
		if info.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds())))
		}
		s.errorResponse(w, http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if err := s.editor.Login(req.Token); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sessionToken, err := s.sessionService.GenerateToken(req.Token)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate session token")
		return
	}

	s.jsonResponse(w, http.StatusOK, LoginResponse{
		Token: sessionToken,
		State: string(s.editor.State()),
	})
}

// handleLogout closes the session. Unpublished edits stay in the
// working copy.
func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	s.editor.Logout()
	s.jsonResponse(w, http.StatusOK, map[string]string{"state": string(s.editor.State())})
}

// StateResponse describes the editing session for the admin UI.
type StateResponse struct {
	State    string       `json:"state"`
	Status   editorStatus `json:"status"`
	Revision uint64       `json:"revision"`
}

type editorStatus struct {
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}

// handleState reports session state, last publish outcome, and the
// working-copy revision for change detection.
func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	status := s.editor.Status()
	s.jsonResponse(w, http.StatusOK, StateResponse{
		State:    string(s.editor.State()),
		Status:   editorStatus{Kind: status.Kind, Message: status.Message},
		Revision: s.store.Revision(),
	})
}

// handleWorkingCopy returns the current working copy as JSON.
func (s *Server) handleWorkingCopy(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Document())
}

// ---------------------------------------------------------------------
// Mutation Handlers
// ---------------------------------------------------------------------

// SectionUpdateRequest is the payload for singleton-section updates.
// Field/Value set one scalar; Items bulk-replaces the section's list
// (roles, bullets, words, skills).
type SectionUpdateRequest struct {
	Field string   `json:"field,omitempty"`
	Value string   `json:"value,omitempty"`
	Items []string `json:"items,omitempty"`
}

// handleSetSection applies an update to a singleton section.
func (s *Server) handleSetSection(w http.ResponseWriter, r *http.Request) {
	section := r.PathValue("section")

	var req SectionUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var err error
	switch section {
	case "profile":
		if req.Items != nil {
			err = s.store.SetProfileRoles(req.Items)
		} else {
			err = s.store.SetProfileField(store.ProfileField(req.Field), req.Value)
		}
	case "socials":
		err = s.store.SetSocialsField(store.SocialsField(req.Field), req.Value)
	case "links":
		err = s.store.SetResumeLink(req.Value)
	case "community":
		err = s.store.SetCommunityField(store.CommunityField(req.Field), req.Value)
	case "now":
		if req.Items != nil {
			err = s.store.SetNowBullets(req.Items)
		} else {
			err = s.store.SetNowField(store.NowField(req.Field), req.Value)
		}
	case "hero":
		// These sections are pure lists; a body without items would
		// silently clear them.
		if req.Items == nil {
			s.errorResponse(w, http.StatusBadRequest, "items is required")
			return
		}
		err = s.store.SetHeroWords(req.Items)
	case "skills":
		if req.Items == nil {
			s.errorResponse(w, http.StatusBadRequest, "items is required")
			return
		}
		err = s.store.SetSkills(req.Items)
	default:
		err = &ErrUnknownSection{Section: section}
	}

	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]uint64{"revision": s.store.Revision()})
}

// EntryUpdateRequest is the payload for list-entry updates. Exactly one
// of Field/Value, Items, or Featured applies.
type EntryUpdateRequest struct {
	Field    string   `json:"field,omitempty"`
	Value    string   `json:"value,omitempty"`
	Items    []string `json:"items,omitempty"`
	Featured *bool    `json:"featured,omitempty"`
}

// handleSetEntry applies an update to one entry of a list section.
func (s *Server) handleSetEntry(w http.ResponseWriter, r *http.Request) {
	section := r.PathValue("section")
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid index")
		return
	}

	var req EntryUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch section {
	case "experience":
		if req.Items != nil {
			err = s.store.SetExperienceBullets(index, req.Items)
		} else {
			err = s.store.SetExperienceField(index, store.ExperienceField(req.Field), req.Value)
		}
	case "projects":
		switch {
		case req.Featured != nil:
			err = s.store.SetProjectFeatured(index, *req.Featured)
		case req.Items != nil:
			err = s.store.SetProjectMeta(index, req.Items)
		default:
			err = s.store.SetProjectField(index, store.ProjectField(req.Field), req.Value)
		}
	case "latest":
		if req.Featured != nil {
			err = s.store.SetLatestFeatured(index, *req.Featured)
		} else {
			err = s.store.SetLatestField(index, store.LatestField(req.Field), req.Value)
		}
	case "clients":
		if req.Featured != nil {
			err = s.store.SetClientFeatured(index, *req.Featured)
		} else {
			err = s.store.SetClientField(index, store.ClientField(req.Field), req.Value)
		}
	case "education":
		err = s.store.SetEducationField(index, store.EducationField(req.Field), req.Value)
	case "certs":
		err = s.store.SetCertField(index, store.CertField(req.Field), req.Value)
	default:
		err = &ErrUnknownSection{Section: section}
	}

	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]uint64{"revision": s.store.Revision()})
}

// handleAppendEntry appends a new entry to a list section. The body may
// provide initial values; absent fields come from the blank template.
func (s *Server) handleAppendEntry(w http.ResponseWriter, r *http.Request) {
	section := r.PathValue("section")

	var err error
	var index int
	switch section {
	case "experience":
		entry := store.NewExperience()
		if err = decodeOptional(r, &entry); err == nil {
			err = s.store.AppendExperience(entry)
			index = len(s.store.Document().Experience) - 1
		}
	case "projects":
		entry := store.NewProject()
		if err = decodeOptional(r, &entry); err == nil {
			err = s.store.AppendProject(entry)
			index = len(s.store.Document().Projects) - 1
		}
	case "latest":
		entry := store.NewLatestItem()
		if err = decodeOptional(r, &entry); err == nil {
			err = s.store.AppendLatest(entry)
			index = len(s.store.Document().Latest) - 1
		}
	case "clients":
		entry := store.NewClient()
		if err = decodeOptional(r, &entry); err == nil {
			err = s.store.AppendClient(entry)
			index = len(s.store.Document().Clients) - 1
		}
	case "education":
		entry := store.NewEducation()
		if err = decodeOptional(r, &entry); err == nil {
			err = s.store.AppendEducation(entry)
			index = len(s.store.Document().Education) - 1
		}
	case "certs":
		entry := store.NewCert()
		if err = decodeOptional(r, &entry); err == nil {
			err = s.store.AppendCert(entry)
			index = len(s.store.Document().Certs) - 1
		}
	case "skills":
		var req SectionUpdateRequest
		if err = decodeOptional(r, &req); err == nil {
			err = s.store.AppendSkill(req.Value)
			index = len(s.store.Document().Skills) - 1
		}
	default:
		err = &ErrUnknownSection{Section: section}
	}

	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"index":    index,
		"revision": s.store.Revision(),
	})
}

// handleRemoveEntry removes one entry. Destructive, so the request must
// carry confirm=true.
func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		err := &ErrConfirmationRequired{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	section := r.PathValue("section")
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid index")
		return
	}

	switch section {
	case "experience":
		err = s.store.RemoveExperience(index)
	case "projects":
		err = s.store.RemoveProject(index)
	case "latest":
		err = s.store.RemoveLatest(index)
	case "clients":
		err = s.store.RemoveClient(index)
	case "education":
		err = s.store.RemoveEducation(index)
	case "certs":
		err = s.store.RemoveCert(index)
	case "skills":
		err = s.store.RemoveSkill(index)
	default:
		err = &ErrUnknownSection{Section: section}
	}

	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]uint64{"revision": s.store.Revision()})
}

// decodeOptional decodes the request body into v. An empty body leaves
// v untouched.
func decodeOptional(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrInvalidBody{}
	}
	return nil
}

// ---------------------------------------------------------------------
// Publish Handlers
// ---------------------------------------------------------------------

// PublishRequest optionally overrides the commit message.
type PublishRequest struct {
	Message string `json:"message,omitempty"`
}

// handlePublish pushes the working copy to the remote repository. The
// session middleware has already placed the GitHub credential on the
// context; if the in-process session lapsed (a restart, say) the
// credential re-opens it.
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	credential, err := middleware.GetCredential(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req PublishRequest
	if err := decodeOptional(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if s.editor.State() == editor.StateUnauthenticated {
		if err := s.editor.Login(credential); err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
	}

	if err := s.editor.Publish(r.Context(), req.Message); err != nil {
		status := s.editor.Status()
		s.jsonResponse(w, HTTPStatus(err), map[string]string{
			"error": status.Message,
			"kind":  status.Kind,
		})
		return
	}

	status := s.editor.Status()
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"kind":    status.Kind,
		"message": status.Message,
	})
}

// handleUnfurl suggests a thumbnail for an article URL by extracting
// its social-preview image.
func (s *Server) handleUnfurl(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing url parameter")
		return
	}

	image, err := render.Unfurl(r.Context(), rawURL)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"image": image})
}
