package handlers

import (
	"net/http"
	"strconv"

	"studio-akira-api/cms"
	"studio-akira-api/config"
	"studio-akira-api/models"
	"studio-akira-api/statemachine"
	"studio-akira-api/utils"

	"github.com/gin-gonic/gin"
)

func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// ListProducts returns the active catalog (public)
func ListProducts(c *gin.Context) {
	var products []models.Product
	query := config.DB.Where("is_active = ?", true)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	query.Find(&products)
	c.JSON(http.StatusOK, gin.H{"count": len(products), "products": products})
}

// GetProduct returns a single product with a formatted price
func GetProduct(c *gin.Context) {
	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product":      product,
		"priceDisplay": utils.FormatPrice(product.Price),
	})
}

// GetPage runs the CMS pipeline for a page: load settings, theme, content,
// and navigation (each with a static fallback), then render the sections to
// HTML. The optional path query names the requesting page's location so
// relative links get the right prefix.
func GetPage(c *gin.Context) {
	pageID := c.Param("pageId")
	if pageID == "" {
		pageID = models.DocHomepage
	}

	site := cms.New(cms.NewDBStore(config.DB))
	site.Init(pageID)

	fixer := cms.NewPathFixer(c.Query("path"))
	renderer := cms.NewRenderer(fixer)

	nav := make([]gin.H, 0, len(site.Navigation))
	for _, link := range site.Navigation {
		nav = append(nav, gin.H{
			"label":  link.Label,
			"url":    fixer.Fix(link.URL),
			"action": link.Action,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"page":       pageID,
		"siteName":   site.Settings.SiteName,
		"themeCSS":   site.ThemeCSS(),
		"navigation": nav,
		"html":       renderer.RenderSections(site.Content),
	})
}

// GetStateMachineInfo returns the full order state machine for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.OrderStatus{models.StatusDelivered, models.StatusCancelled, models.StatusRejected},
		"description":     "Studio Akira Order Lifecycle State Machine",
	})
}
