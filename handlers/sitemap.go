package handlers

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"momentum_legal_go/config"
	"momentum_legal_go/models"
)

const seoCacheControl = "public, s-maxage=86400, stale-while-revalidate"

// sitemapRoutes are the public marketing pages
var sitemapRoutes = []struct {
	path     string
	priority float32
}{
	{"/", 1.0},
	{"/about", 0.8},
	{"/contact", 0.8},
	{"/services", 0.8},
	{"/services/nil-athlete", 0.7},
	{"/services/brand-sponsor", 0.7},
	{"/services/collective", 0.7},
	{"/services/corporate-venture", 0.7},
	{"/services/university-institutional", 0.7},
	{"/privacy", 0.8},
	{"/terms", 0.8},
}

// GetSitemapHandler generates the XML sitemap
func GetSitemapHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)

	lastMod := time.Now().UTC().Format(time.RFC3339)
	urls := make([]models.SitemapURL, 0, len(sitemapRoutes))
	for _, route := range sitemapRoutes {
		urls = append(urls, models.SitemapURL{
			Loc:        cfg.AppURL + route.path,
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   route.priority,
		})
	}

	urlSet := models.SitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationXML)
	c.Response().Header().Set("Cache-Control", seoCacheControl)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}

	encoder := xml.NewEncoder(c.Response().Writer)
	encoder.Indent("", "  ")
	return encoder.Encode(urlSet)
}

// GetRobotsHandler allows all crawlers and points them at the sitemap
func GetRobotsHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)

	robots := "User-agent: *\nAllow: /\n\nSitemap: " + cfg.AppURL + "/sitemap.xml\n"
	c.Response().Header().Set("Cache-Control", seoCacheControl)
	return c.String(http.StatusOK, robots)
}
