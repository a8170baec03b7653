package server

import (
	"net/http"
	"os"

	"github.com/jonathan/career-wizard/internal/brand"
	"github.com/jonathan/career-wizard/internal/preview"
)

// handlePreview fetches a link preview for a profile URL. The response
// includes the detected platform when the URL matches a supported one.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	urlStr := r.URL.Query().Get("url")
	if urlStr == "" {
		s.errorResponse(w, http.StatusBadRequest, "url query parameter is required")
		return
	}

	opts := preview.DefaultOptions()
	opts.UseBrowser = os.Getenv("PREVIEW_USE_BROWSER") == "true"

	p, err := preview.Fetch(r.Context(), urlStr, opts)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	resp := map[string]any{"preview": p}
	if platform, ok := brand.DetectPlatform(urlStr); ok {
		resp["platform"] = platform
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
