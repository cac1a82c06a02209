package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// CORSFromEnv builds CORS middleware from FRONTEND_URL, a comma-separated
// list of allowed origins. An empty value falls back to localhost:3000.
func CORSFromEnv(frontendURL string) func(http.Handler) http.Handler {
	origins := AllowedOriginsSlice(frontendURL)
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		MaxAge:           86400,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
	})

	return c.Handler
}

// AllowedOriginsSlice parses a comma-separated origin list, trimming
// whitespace and dropping empty entries and duplicates.
func AllowedOriginsSlice(raw string) []string {
	var origins []string
	seen := make(map[string]bool)
	for _, origin := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		origins = append(origins, trimmed)
	}
	return origins
}
