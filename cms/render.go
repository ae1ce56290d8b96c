package cms

import (
	"encoding/json"
	"html/template"
	"log"
	"sort"
	"strings"
)

// SectionType is the closed set of renderable section kinds. Adding a kind
// means adding a data struct, a template, and a case in renderSection.
type SectionType string

const (
	SectionHero        SectionType = "hero"
	SectionCollections SectionType = "collections"
	SectionBestSellers SectionType = "bestSellers"
	SectionWhyUs       SectionType = "whyUs"
	SectionGifting     SectionType = "gifting"
	SectionReviews     SectionType = "reviews"
	SectionNewsletter  SectionType = "newsletter"
)

// Typed payloads, one per section kind. Authors may omit any field; every
// renderer substitutes a documented default so partial documents never
// break layout.

type HeroData struct {
	Title       string `json:"title"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	ButtonText  string `json:"buttonText"`
	ButtonLink  string `json:"buttonLink"`
	Image       string `json:"image"`
	ImageAlt    string `json:"imageAlt"`
}

type Collection struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Link        string `json:"link"`
	Price       string `json:"price"`
}

type CollectionsData struct {
	Label       string       `json:"label"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	ButtonText  string       `json:"buttonText"`
	ButtonLink  string       `json:"buttonLink"`
	Collections []Collection `json:"collections"`
}

type FeaturedData struct {
	Label       string `json:"label"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ButtonText  string `json:"buttonText"`
	ButtonLink  string `json:"buttonLink"`
	Image       string `json:"image"`
	ImageAlt    string `json:"imageAlt"`
}

type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Feature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type TrustBadge struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

type WhyUsData struct {
	Label       string       `json:"label"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Stats       []Stat       `json:"stats"`
	Features    []Feature    `json:"features"`
	Badges      []TrustBadge `json:"badges"`
}

type Review struct {
	Initial     string `json:"initial"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	AvatarColor string `json:"avatarColor"`
	Stars       string `json:"stars"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	Product     string `json:"product"`
	Date        string `json:"date"`
}

type ReviewsData struct {
	Label       string   `json:"label"`
	Title       string   `json:"title"`
	Rating      string   `json:"rating"`
	ReviewCount string   `json:"reviewCount"`
	ButtonText  string   `json:"buttonText"`
	ButtonLink  string   `json:"buttonLink"`
	Reviews     []Review `json:"reviews"`
}

type NewsletterData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Placeholder string `json:"placeholder"`
	ButtonText  string `json:"buttonText"`
}

// Renderer turns page sections into HTML fragments, adjusting relative
// paths for the requesting page's location.
type Renderer struct {
	fixer PathFixer
}

func NewRenderer(fixer PathFixer) *Renderer {
	return &Renderer{fixer: fixer}
}

// RenderSections filters out deactivated sections, sorts the rest by order
// ascending (stable for ties), and concatenates the rendered fragments.
// Unknown section types are skipped with a warning.
func (r *Renderer) RenderSections(content PageContent) string {
	sections := make([]Section, 0, len(content.Sections))
	for _, s := range content.Sections {
		if !s.Hidden() {
			sections = append(sections, s)
		}
	}
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})

	var b strings.Builder
	for _, s := range sections {
		if fragment, ok := r.renderSection(s); ok {
			b.WriteString(fragment)
		}
	}
	return b.String()
}

// renderSection dispatches over the closed section type set. The second
// return is false for unrecognized types.
func (r *Renderer) renderSection(s Section) (string, bool) {
	switch s.Type {
	case SectionHero:
		var data HeroData
		decode(s.Data, &data)
		return r.renderHero(data), true
	case SectionCollections:
		var data CollectionsData
		decode(s.Data, &data)
		return r.renderCollections(data), true
	case SectionBestSellers:
		var data FeaturedData
		decode(s.Data, &data)
		return r.renderFeatured(data, "featured-collection-section", "BEST SELLERS",
			"Most Loved", "Our most chosen candles, trusted, gifted, and returned to again and again.",
			"Shop Best Sellers", false), true
	case SectionGifting:
		var data FeaturedData
		decode(s.Data, &data)
		return r.renderFeatured(data, "featured-collection-section gifting", "GIFTING",
			"Gifts That Glow Longer", "Our luxury gift boxes are thoughtfully curated to celebrate moments, emotions, and connections.",
			"Shop Gift Sets", true), true
	case SectionWhyUs:
		var data WhyUsData
		decode(s.Data, &data)
		return r.renderWhyUs(data), true
	case SectionReviews:
		var data ReviewsData
		decode(s.Data, &data)
		return r.renderReviews(data), true
	case SectionNewsletter:
		var data NewsletterData
		decode(s.Data, &data)
		return r.renderNewsletter(data), true
	default:
		log.Println("cms: unknown section type:", s.Type)
		return "", false
	}
}

// decode tolerates absent or malformed data: the zero struct renders with
// all defaults.
func decode(raw json.RawMessage, v interface{}) {
	if len(raw) == 0 {
		return
	}
	if err := json.Unmarshal(raw, v); err != nil {
		log.Println("cms: malformed section data:", err)
	}
}

func def(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// defHTML is for author-controlled fields that may carry markup, like the
// hero title's line break.
func defHTML(v, fallback string) template.HTML {
	return template.HTML(def(v, fallback))
}

func (r *Renderer) renderHero(d HeroData) string {
	return r.execute("hero", map[string]interface{}{
		"Title":       defHTML(d.Title, "studio<br>akira"),
		"Tagline":     def(d.Tagline, "Where light becomes ritual."),
		"Description": defHTML(d.Description, "Handcrafted luxury candles that transform your space into a sanctuary"),
		"ButtonText":  def(d.ButtonText, "Explore Collections"),
		"ButtonLink":  r.fixer.Fix(def(d.ButtonLink, "customer/products.html")),
		"Image":       r.fixer.Fix(def(d.Image, "assets/images/banners/hero.png")),
		"ImageAlt":    def(d.ImageAlt, "Studio Akira Candles"),
	})
}

func (r *Renderer) renderCollections(d CollectionsData) string {
	cols := make([]map[string]interface{}, 0, len(d.Collections))
	for _, col := range d.Collections {
		cols = append(cols, map[string]interface{}{
			"Title":       col.Title,
			"Description": col.Description,
			"Image":       r.fixer.Fix(col.Image),
			"Link":        r.fixer.Fix(def(col.Link, "customer/products.html")),
			"Price":       col.Price,
		})
	}
	return r.execute("collections", map[string]interface{}{
		"Label":       def(d.Label, "SHOP OUR COLLECTIONS"),
		"Title":       def(d.Title, "Explore Our Candles"),
		"Description": def(d.Description, "Thoughtfully created candles for every mood, moment, and ritual."),
		"ButtonText":  def(d.ButtonText, "View All Products"),
		"ButtonLink":  r.fixer.Fix(def(d.ButtonLink, "customer/products.html")),
		"Collections": cols,
	})
}

func (r *Renderer) renderFeatured(d FeaturedData, class, label, title, description, buttonText string, imageFirst bool) string {
	return r.execute("featured", map[string]interface{}{
		"Class":       class,
		"Label":       def(d.Label, label),
		"Title":       def(d.Title, title),
		"Description": def(d.Description, description),
		"ButtonText":  def(d.ButtonText, buttonText),
		"ButtonLink":  r.fixer.Fix(def(d.ButtonLink, "customer/products.html")),
		"Image":       r.fixer.Fix(def(d.Image, "assets/images/banners/hero.png")),
		"ImageAlt":    def(d.ImageAlt, def(d.Title, title)),
		"ImageFirst":  imageFirst,
	})
}

func (r *Renderer) renderWhyUs(d WhyUsData) string {
	return r.execute("whyUs", map[string]interface{}{
		"Label":       def(d.Label, "THE STUDIO AKIRA PROMISE"),
		"Title":       def(d.Title, "Why Thousands Trust Our Candles"),
		"Description": def(d.Description, "Every candle we craft carries our commitment to quality, sustainability, and your well-being."),
		"Stats":       d.Stats,
		"Features":    d.Features,
		"Badges":      d.Badges,
	})
}

func (r *Renderer) renderReviews(d ReviewsData) string {
	reviews := make([]map[string]interface{}, 0, len(d.Reviews))
	for _, rev := range d.Reviews {
		reviews = append(reviews, map[string]interface{}{
			"Initial":     rev.Initial,
			"Name":        rev.Name,
			"Location":    rev.Location,
			"AvatarColor": template.CSS(def(rev.AvatarColor, "var(--color-sage-dark)")),
			"Stars":       def(rev.Stars, "★★★★★"),
			"Title":       rev.Title,
			"Text":        rev.Text,
			"Product":     rev.Product,
			"Date":        rev.Date,
		})
	}
	return r.execute("reviews", map[string]interface{}{
		"Label":       def(d.Label, "CUSTOMER REVIEWS"),
		"Title":       def(d.Title, "What Our Customers Say"),
		"Rating":      def(d.Rating, "4.9 out of 5"),
		"ReviewCount": def(d.ReviewCount, "based on 2,847 reviews"),
		"ButtonText":  def(d.ButtonText, "Read All Reviews"),
		"ButtonLink":  r.fixer.Fix(def(d.ButtonLink, "customer/products.html")),
		"Reviews":     reviews,
	})
}

func (r *Renderer) renderNewsletter(d NewsletterData) string {
	return r.execute("newsletter", map[string]interface{}{
		"Title":       def(d.Title, "Stay Connected"),
		"Description": defHTML(d.Description, "Join our calm letters: quiet updates, new collections, and exclusive releases.<br>No noise. Only meaningful moments."),
		"Placeholder": def(d.Placeholder, "Enter your email"),
		"ButtonText":  def(d.ButtonText, "Subscribe"),
	})
}

func (r *Renderer) execute(name string, data interface{}) string {
	var b strings.Builder
	if err := sectionTemplates.ExecuteTemplate(&b, name, data); err != nil {
		log.Println("cms: template error for section", name+":", err)
		return ""
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var sectionTemplates = template.Must(template.New("sections").Parse(`
{{define "hero"}}
<section class="hero-main">
  <div class="container">
    <div class="hero-main-grid">
      <div class="hero-main-content">
        <h1 class="hero-main-title">{{.Title}}</h1>
        <p class="hero-main-tagline">{{.Tagline}}</p>
        <p class="hero-main-description">{{.Description}}</p>
        <a href="{{.ButtonLink}}" class="btn btn-primary btn-pill btn-large">{{.ButtonText}}</a>
      </div>
      <div class="hero-main-image">
        <img src="{{.Image}}" alt="{{.ImageAlt}}">
      </div>
    </div>
  </div>
</section>
{{end}}

{{define "collections"}}
<section class="section benefits-section">
  <div class="container">
    <p class="section-label">{{.Label}}</p>
    <h2 class="section-title">{{.Title}}</h2>
    <p class="section-description">{{.Description}}</p>
    <div class="benefits-grid">
      {{range .Collections}}
      <div class="benefit-card" data-link="{{.Link}}">
        <div class="benefit-image"><img src="{{.Image}}" alt="{{.Title}}"></div>
        <h3 class="benefit-title">{{.Title}}</h3>
        <p class="benefit-text">{{.Description}}</p>
        {{if .Price}}<div class="benefit-price">{{.Price}}</div>{{end}}
      </div>
      {{end}}
    </div>
    <div class="text-center">
      <a href="{{.ButtonLink}}" class="btn btn-primary btn-large">{{.ButtonText}}</a>
    </div>
  </div>
</section>
{{end}}

{{define "featured"}}
<section class="{{.Class}}">
  <div class="container">
    <div class="featured-collection-grid">
      {{if .ImageFirst}}
      <div class="featured-collection-image"><img src="{{.Image}}" alt="{{.ImageAlt}}"></div>
      {{end}}
      <div class="featured-collection-content">
        <p class="section-label">{{.Label}}</p>
        <h2 class="featured-collection-title">{{.Title}}</h2>
        <p class="featured-collection-text">{{.Description}}</p>
        <a href="{{.ButtonLink}}" class="btn btn-primary btn-large">{{.ButtonText}}</a>
      </div>
      {{if not .ImageFirst}}
      <div class="featured-collection-image"><img src="{{.Image}}" alt="{{.ImageAlt}}"></div>
      {{end}}
    </div>
  </div>
</section>
{{end}}

{{define "whyUs"}}
<section class="section why-us-section">
  <div class="container">
    <div class="section-heading">
      <p class="section-label">{{.Label}}</p>
      <h2 class="section-title">{{.Title}}</h2>
      <p class="section-description">{{.Description}}</p>
    </div>
    <div class="stats-grid">
      {{range .Stats}}
      <div class="stat"><div class="stat-value">{{.Value}}</div><div class="stat-label">{{.Label}}</div></div>
      {{end}}
    </div>
    <div class="features-grid">
      {{range .Features}}
      <div class="feature-card">
        <div class="feature-icon">{{.Icon}}</div>
        <h3 class="feature-title">{{.Title}}</h3>
        <p class="feature-text">{{.Description}}</p>
      </div>
      {{end}}
    </div>
    <div class="badges-row">
      {{range .Badges}}
      <div class="trust-badge"><span class="trust-badge-icon">{{.Icon}}</span><span class="trust-badge-text">{{.Text}}</span></div>
      {{end}}
    </div>
  </div>
</section>
{{end}}

{{define "reviews"}}
<section class="section reviews-section">
  <div class="container">
    <div class="section-heading">
      <p class="section-label">{{.Label}}</p>
      <h2 class="section-title">{{.Title}}</h2>
      <div class="reviews-rating">
        <span class="stars">★★★★★</span>
        <span class="rating-value">{{.Rating}}</span>
        <span class="rating-count">{{.ReviewCount}}</span>
      </div>
    </div>
    <div class="reviews-grid">
      {{range .Reviews}}
      <div class="review-card">
        <div class="review-header">
          <div class="review-avatar" style="background:{{.AvatarColor}}">{{.Initial}}</div>
          <div><div class="review-name">{{.Name}}</div><div class="review-location">{{.Location}}</div></div>
          <div class="review-verified">✓ Verified</div>
        </div>
        <div class="review-stars">{{.Stars}}</div>
        <h4 class="review-title">"{{.Title}}"</h4>
        <p class="review-text">{{.Text}}</p>
        <div class="review-meta">Purchased: {{.Product}} • {{.Date}}</div>
      </div>
      {{end}}
    </div>
    <div class="text-center">
      <a href="{{.ButtonLink}}" class="btn btn-secondary btn-large">{{.ButtonText}}</a>
    </div>
  </div>
</section>
{{end}}

{{define "newsletter"}}
<section class="section newsletter-section">
  <div class="container text-center">
    <h2 class="section-title">{{.Title}}</h2>
    <p class="section-description">{{.Description}}</p>
    <div class="newsletter-form">
      <input type="email" placeholder="{{.Placeholder}}" class="form-input">
      <button class="btn btn-light">{{.ButtonText}}</button>
    </div>
  </div>
</section>
{{end}}
`))
