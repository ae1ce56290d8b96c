// Package cms loads website-content documents (settings, themes, navigation,
// per-page content) and renders page sections to HTML fragments. Every load
// falls back to a built-in default on a missing document or store failure:
// the page never blocks on content, at the cost of freshness.
package cms

import (
	"encoding/json"
	"errors"
	"log"

	"studio-akira-api/models"

	"gorm.io/gorm"
)

// Store reads raw content documents by ID.
type Store interface {
	// Document returns the raw JSON for a document ID. exists is false when
	// the document is absent (not an error).
	Document(docID string) (raw json.RawMessage, exists bool, err error)
}

// Settings is the global site settings document.
type Settings struct {
	ActiveThemeID   string `json:"activeThemeId"`
	SiteName        string `json:"siteName"`
	MaintenanceMode bool   `json:"maintenanceMode"`
}

// Theme carries presentation variables applied as CSS custom properties.
type Theme struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Colors    map[string]string `json:"colors"`
	CustomCSS string            `json:"customCSS"`
}

// NavLink is one navigation menu entry. Action, when set, names a client
// hook fired instead of following the URL.
type NavLink struct {
	Label  string `json:"label"`
	URL    string `json:"url"`
	Action string `json:"action,omitempty"`
}

// PageContent is the per-page document: a list of typed sections.
type PageContent struct {
	Sections []Section `json:"sections"`
}

// Section is one self-contained block of page content. Active defaults to
// true when absent; only an explicit false hides the section.
type Section struct {
	ID     string          `json:"id"`
	Type   SectionType     `json:"type"`
	Order  int             `json:"order"`
	Active *bool           `json:"active,omitempty"`
	Data   json.RawMessage `json:"data"`
}

// Hidden reports whether the section was explicitly deactivated.
func (s Section) Hidden() bool {
	return s.Active != nil && !*s.Active
}

// CMS holds the loaded documents for one page render.
type CMS struct {
	store Store

	Settings   Settings
	Theme      Theme
	Navigation []NavLink
	Content    PageContent
}

func New(store Store) *CMS {
	return &CMS{store: store}
}

// Init runs the full load sequence: settings, theme (by the ID named in
// settings), page content, navigation. It never fails; every step degrades
// to its default document.
func (m *CMS) Init(pageID string) {
	m.loadSettings()
	m.loadTheme()
	m.loadContent(pageID)
	m.loadNavigation()
}

func (m *CMS) loadSettings() {
	m.Settings = DefaultSettings()
	raw, exists, err := m.store.Document(models.DocSettings)
	if err != nil {
		log.Println("cms: error loading settings:", err)
		return
	}
	if !exists {
		return
	}
	if err := json.Unmarshal(raw, &m.Settings); err != nil {
		log.Println("cms: malformed settings document:", err)
		m.Settings = DefaultSettings()
	}
}

// loadTheme resolves the active theme out of the themes document. An unknown
// theme ID falls back to "standard", and a missing themes document falls
// back to the built-in standard theme.
func (m *CMS) loadTheme() {
	themeID := m.Settings.ActiveThemeID
	if themeID == "" {
		themeID = "standard"
	}

	raw, exists, err := m.store.Document(models.DocThemes)
	if err != nil || !exists {
		if err != nil {
			log.Println("cms: error loading themes:", err)
		}
		m.Theme = DefaultTheme()
		return
	}

	var themes map[string]Theme
	if err := json.Unmarshal(raw, &themes); err != nil {
		log.Println("cms: malformed themes document:", err)
		m.Theme = DefaultTheme()
		return
	}
	if t, ok := themes[themeID]; ok {
		m.Theme = t
		return
	}
	if t, ok := themes["standard"]; ok {
		m.Theme = t
		return
	}
	m.Theme = DefaultTheme()
}

func (m *CMS) loadContent(pageID string) {
	if pageID == "" {
		pageID = models.DocHomepage
	}
	m.Content = DefaultContent(pageID)
	raw, exists, err := m.store.Document(pageID)
	if err != nil {
		log.Println("cms: error loading content for", pageID+":", err)
		return
	}
	if !exists {
		return
	}
	var content PageContent
	if err := json.Unmarshal(raw, &content); err != nil {
		log.Println("cms: malformed content document:", pageID, err)
		return
	}
	m.Content = content
}

func (m *CMS) loadNavigation() {
	m.Navigation = DefaultNavigation()
	raw, exists, err := m.store.Document(models.DocNavigation)
	if err != nil {
		log.Println("cms: error loading navigation:", err)
		return
	}
	if !exists {
		return
	}
	var doc struct {
		Links []NavLink `json:"links"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil || len(doc.Links) == 0 {
		return
	}
	m.Navigation = doc.Links
}

// ThemeCSS emits the theme as a CSS block: one custom property per theme
// color, plus any raw custom CSS appended after.
func (m *CMS) ThemeCSS() string {
	css := ":root{"
	for _, key := range sortedKeys(m.Theme.Colors) {
		css += "--" + key + ":" + m.Theme.Colors[key] + ";"
	}
	css += "}"
	if m.Theme.CustomCSS != "" {
		css += "\n" + m.Theme.CustomCSS
	}
	return css
}

// DBStore reads content documents from the content_documents table.
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Document(docID string) (json.RawMessage, bool, error) {
	var doc models.ContentDocument
	if err := s.db.Where("doc_id = ?", docID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return json.RawMessage(doc.Data), true, nil
}
