package cms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPathFixer(t *testing.T) {
	tests := []struct {
		pagePath string
		in       string
		want     string
	}{
		// Root-level page: no prefix
		{"/index.html", "assets/images/hero.png", "assets/images/hero.png"},
		{"", "assets/images/hero.png", "assets/images/hero.png"},
		// Portal pages one level down get ../
		{"/customer/home.html", "assets/images/hero.png", "../assets/images/hero.png"},
		{"/admin/dashboard.html", "customer/products.html", "../customer/products.html"},
		{"/manufacturer/dashboard.html", "about.html", "../about.html"},
		{"/delivery/dashboard.html", "index.html", "../index.html"},
		// Absolute URLs, root-relative paths and data URIs pass through
		{"/customer/home.html", "http://example.com/a.png", "http://example.com/a.png"},
		{"/customer/home.html", "https://example.com/a.png", "https://example.com/a.png"},
		{"/customer/home.html", "/assets/a.png", "/assets/a.png"},
		{"/customer/home.html", "data:image/png;base64,xyz", "data:image/png;base64,xyz"},
		// Empty stays empty
		{"/customer/home.html", "", ""},
	}

	for _, tt := range tests {
		fixer := NewPathFixer(tt.pagePath)
		assert.Equal(t, tt.want, fixer.Fix(tt.in), "page %q path %q", tt.pagePath, tt.in)
	}
}

func TestFixAppliesPrefixExactlyOnce(t *testing.T) {
	fixer := NewPathFixer("/customer/cart.html")
	fixed := fixer.Fix("assets/a.png")
	assert.Equal(t, "../assets/a.png", fixed)
	// A second pass over an already root-relative or absolute path must not
	// stack prefixes; relative output fed back in would, so callers fix raw
	// author paths only.
	assert.Equal(t, "/assets/a.png", fixer.Fix("/assets/a.png"))
}
