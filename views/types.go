package views

// SiteConfig holds site-wide settings shared by every template.
type SiteConfig struct {
	Name        string // SITE_NAME  (default "Consul by HashiCorp")
	URL         string // SITE_URL   (default "http://localhost:3000")
	Description string // SITE_DESCRIPTION
	DocsPath    string // root of the documentation routes (default "/docs")
}

// Crumb is one breadcrumb entry.
type Crumb struct {
	Title string
	Href  string
}
