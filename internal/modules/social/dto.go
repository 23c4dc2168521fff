package social

type UpsertRequest struct {
	Platform string `json:"platform" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
}

// knownPlatforms mirrors the icon set the dashboard can render.
var knownPlatforms = map[string]bool{
	"instagram": true,
	"facebook":  true,
	"tiktok":    true,
	"youtube":   true,
	"twitter":   true,
	"whatsapp":  true,
	"telegram":  true,
	"website":   true,
}
