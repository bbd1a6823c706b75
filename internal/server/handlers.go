package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/archivist/pkg/host"
	"github.com/dmitrymomot/archivist/pkg/i18n"
	"github.com/dmitrymomot/archivist/pkg/locale"
	"github.com/dmitrymomot/archivist/pkg/markup"
	"github.com/dmitrymomot/archivist/pkg/models"
	"github.com/dmitrymomot/archivist/pkg/siteconfig"
	"github.com/dmitrymomot/archivist/pkg/theme"
)

// metaDescriptionLimit bounds the plain-text description meant for
// <meta name="description">.
const metaDescriptionLimit = 160

type siteResponse struct {
	*siteconfig.Site
	DescriptionHTML string              `json:"descriptionHtml"`
	DescriptionText string              `json:"descriptionText"`
	MetaDescription string              `json:"metaDescription"`
	Repositories    []models.Repository `json:"repositories"`
}

func (s *Server) getSite(w http.ResponseWriter, _ *http.Request) error {
	html, err := markup.Render(s.site.Description)
	if err != nil {
		return err
	}
	meta, err := markup.Excerpt(s.site.Description, metaDescriptionLimit)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, siteResponse{
		Site:            s.site,
		DescriptionHTML: html,
		DescriptionText: markup.StripTags(html),
		MetaDescription: meta,
		Repositories:    s.site.Index.Repositories(),
	})
	return nil
}

type repositoryResponse struct {
	Repository models.Repository `json:"repository"`
	Archives   []models.Archive  `json:"archives"`
}

func (s *Server) getRepository(w http.ResponseWriter, r *http.Request) error {
	repo, ok := s.findRepository(chi.URLParam(r, "repo"))
	if !ok {
		return errNotFound("repository not found")
	}
	writeJSON(w, http.StatusOK, repositoryResponse{
		Repository: repo,
		Archives:   s.site.Index.ArchivesOf(repo.ID),
	})
	return nil
}

// Default slugs are percent-encoded names, but the router hands over decoded
// path segments, so both spellings are tried.
func (s *Server) findRepository(slug string) (models.Repository, bool) {
	if repo, ok := s.site.Index.Repository(models.RepositoryID(slug)); ok {
		return repo, true
	}
	return s.site.Index.Repository(models.RepositoryID(models.EncodeURIComponent(slug)))
}

func (s *Server) findArchive(repoSlug, archiveSlug string) (models.Archive, bool) {
	if archive, ok := s.site.Index.FindArchive(repoSlug, archiveSlug); ok {
		return archive, true
	}
	return s.site.Index.FindArchive(models.EncodeURIComponent(repoSlug), models.EncodeURIComponent(archiveSlug))
}

type archiveResponse struct {
	Archive         models.Archive `json:"archive"`
	DescriptionHTML string         `json:"descriptionHtml"`
	Excerpt         string         `json:"excerpt"`
	Items           []models.Item  `json:"items"`
}

func (s *Server) getArchive(w http.ResponseWriter, r *http.Request) error {
	archive, ok := s.findArchive(chi.URLParam(r, "repo"), chi.URLParam(r, "archive"))
	if !ok {
		return errNotFound("archive not found")
	}
	html, err := markup.Render(archive.Description)
	if err != nil {
		return err
	}
	excerpt, err := markup.Excerpt(archive.Description, metaDescriptionLimit)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, archiveResponse{
		Archive:         archive,
		DescriptionHTML: html,
		Excerpt:         excerpt,
		Items:           s.site.Index.ItemsOf(archive.ID),
	})
	return nil
}

type localesResponse struct {
	Default string         `json:"default"`
	Locales []locale.Entry `json:"locales"`
}

func (s *Server) listLocales(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, localesResponse{
		Default: s.defaultLocale,
		Locales: s.catalog.Entries(),
	})
	return nil
}

type localeResponse struct {
	Messages map[string]any `json:"messages"`
	Locale   string         `json:"locale"`
	Name     string         `json:"name"`
}

// getLocale returns the merged tree of a locale without touching the
// visitor's preferences.
func (s *Server) getLocale(w http.ResponseWriter, r *http.Request) error {
	tag := chi.URLParam(r, "tag")
	if !s.catalog.Has(tag) {
		return errNotFound("locale not found")
	}

	env, _, _ := host.NewMemoryEnv(tag, false)
	store, err := i18n.NewStore(r.Context(), s.catalog, s.locales, env,
		i18n.WithDefaultLocale(s.defaultLocale),
		i18n.WithLogger(s.logger),
	)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, localeResponse{
		Messages: store.Data(),
		Locale:   tag,
		Name:     s.catalog.Name(tag),
	})
	return nil
}

type preferencesResponse struct {
	Document       map[string]string `json:"document"`
	Language       string            `json:"language"`
	LanguageName   string            `json:"languageName"`
	Theme          theme.Mode        `json:"theme"`
	EffectiveTheme theme.Mode        `json:"effectiveTheme"`
	Classes        []string          `json:"classes"`
}

// session is the preference state of one request.
type session struct {
	store *i18n.Store
	theme *theme.Preference
	doc   *host.Recorder
}

func (s *Server) openSession(w http.ResponseWriter, r *http.Request) (*session, error) {
	env, doc := s.newEnv(w, r)

	store, err := i18n.NewStore(r.Context(), s.catalog, s.locales, env,
		i18n.WithDefaultLocale(s.defaultLocale),
		i18n.WithLogger(s.logger),
	)
	if err != nil {
		return nil, err
	}

	pref, err := theme.New(r.Context(), env, theme.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}

	return &session{store: store, theme: pref, doc: doc}, nil
}

func (sess *session) close() {
	sess.theme.Close()
}

func (s *Server) writePreferences(w http.ResponseWriter, sess *session) {
	lang := sess.store.Current()
	writeJSON(w, http.StatusOK, preferencesResponse{
		Document:       sess.doc.Attributes(),
		Language:       lang,
		LanguageName:   s.catalog.Name(lang),
		Theme:          sess.theme.Option(),
		EffectiveTheme: sess.theme.Effective(),
		Classes:        sess.doc.Classes(),
	})
}

func (s *Server) getPreferences(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.openSession(w, r)
	if err != nil {
		return err
	}
	defer sess.close()

	s.writePreferences(w, sess)
	return nil
}

type languageRequest struct {
	Language string `json:"language"`
}

func (s *Server) setLanguage(w http.ResponseWriter, r *http.Request) error {
	var req languageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return errBadRequest("invalid request body", err)
	}

	sess, err := s.openSession(w, r)
	if err != nil {
		return err
	}
	defer sess.close()

	if err := sess.store.SetLocale(r.Context(), req.Language); err != nil {
		return err
	}
	s.writePreferences(w, sess)
	return nil
}

type themeRequest struct {
	Theme string `json:"theme"`
}

func (s *Server) setTheme(w http.ResponseWriter, r *http.Request) error {
	var req themeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return errBadRequest("invalid request body", err)
	}

	sess, err := s.openSession(w, r)
	if err != nil {
		return err
	}
	defer sess.close()

	if err := sess.theme.Set(r.Context(), theme.Mode(req.Theme)); err != nil {
		return err
	}
	s.writePreferences(w, sess)
	return nil
}

func (s *Server) toggleTheme(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.openSession(w, r)
	if err != nil {
		return err
	}
	defer sess.close()

	if _, err := sess.theme.Toggle(r.Context()); err != nil {
		return err
	}
	s.writePreferences(w, sess)
	return nil
}
