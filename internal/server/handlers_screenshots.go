package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/career-wizard/internal/brand"
	"github.com/jonathan/career-wizard/internal/db"
	"github.com/jonathan/career-wizard/internal/server/middleware"
)

// maxScreenshotBytes caps a single uploaded screenshot (5 MB).
const maxScreenshotBytes int64 = 5 << 20

// ---------------------------------------------------------------------
// Screenshot Handlers
// ---------------------------------------------------------------------

// handleUploadScreenshot accepts multipart screenshot uploads for a node.
// At most brand.MaxScreenshots files per request; authenticated uploads are
// attributed to the user and counted against their storage quota.
func (s *Server) handleUploadScreenshot(w http.ResponseWriter, r *http.Request) {
	nodeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid node ID")
		return
	}

	node, err := s.db.GetNodeByID(r.Context(), nodeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if node == nil {
		s.errorResponse(w, http.StatusNotFound, "Node not found")
		return
	}

	userID := s.optionalUserID(r)

	if err := r.ParseMultipartForm(maxScreenshotBytes * brand.MaxScreenshots); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "At least one file is required")
		return
	}
	if len(files) > brand.MaxScreenshots {
		s.errorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("At most %d screenshots per request", brand.MaxScreenshots))
		return
	}

	var saved []db.Screenshot
	for _, header := range files {
		if header.Size > maxScreenshotBytes {
			s.errorResponse(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("File %s exceeds the %d byte limit", header.Filename, maxScreenshotBytes))
			return
		}

		if userID != nil {
			usage, err := s.db.GetStorageUsage(r.Context(), *userID)
			if err != nil {
				s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
				return
			}
			if usage.UsedBytes+header.Size > usage.QuotaBytes {
				s.errorResponse(w, http.StatusRequestEntityTooLarge, "Storage quota exceeded")
				return
			}
		}

		file, err := header.Open()
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(content)
		}
		if !strings.HasPrefix(contentType, "image/") {
			s.errorResponse(w, http.StatusUnsupportedMediaType, "Only image uploads are accepted")
			return
		}

		screenshot, err := s.db.SaveScreenshot(r.Context(), nodeID, db.ScreenshotInput{
			UserID:      userID,
			FileName:    header.Filename,
			ContentType: contentType,
			Content:     content,
		})
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
		saved = append(saved, *screenshot)
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{"screenshots": saved})
}

func (s *Server) handleListScreenshots(w http.ResponseWriter, r *http.Request) {
	nodeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid node ID")
		return
	}

	screenshots, err := s.db.ListScreenshotsByNode(r.Context(), nodeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"screenshots": screenshots})
}

func (s *Server) handleGetScreenshot(w http.ResponseWriter, r *http.Request) {
	screenshotID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid screenshot ID")
		return
	}

	content, contentType, err := s.db.GetScreenshotContent(r.Context(), screenshotID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if content == nil {
		s.errorResponse(w, http.StatusNotFound, "Screenshot not found")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// handleGetQuota returns the authenticated user's screenshot storage usage.
func (s *Server) handleGetQuota(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	usage, err := s.db.GetStorageUsage(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, usage)
}

// optionalUserID resolves the bearer token to a user ID when one is present.
// Anonymous uploads are allowed; they carry no quota attribution.
func (s *Server) optionalUserID(r *http.Request) *uuid.UUID {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil
	}
	claims, err := s.jwtService.ValidateToken(parts[1])
	if err != nil {
		return nil
	}
	userID := claims.GetUserID()
	return &userID
}
