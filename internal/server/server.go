// Package server exposes the capture pipeline and query engine over HTTP.
// It is a thin adapter: all behavior lives in the services it wraps.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"linkeep/internal/models"
	"linkeep/internal/services"
)

type Server struct {
	svc *services.Services
	log *zap.Logger
}

func New(svc *services.Services, log *zap.Logger) *Server {
	return &Server{svc: svc, log: log}
}

// Router builds the HTTP surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/share", s.handleShare)
	r.Route("/memos", func(r chi.Router) {
		r.Get("/", s.handleListMemos)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetMemo)
			r.Put("/", s.handleUpdateMemo)
			r.Delete("/", s.handleDeleteMemo)
		})
	})
	r.Get("/categories", s.handleCategories)
	r.Get("/settings", s.handleGetSettings)
	r.Put("/settings/{field}", s.handlePutSetting)

	return r
}

type shareRequest struct {
	SharedText string `json:"sharedText"`
	Category   string `json:"category,omitempty"`
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.SharedText) == "" {
		writeError(w, http.StatusBadRequest, "sharedText is required")
		return
	}

	memo, err := s.svc.Capture.Capture(r.Context(), req.SharedText, req.Category)
	if err != nil {
		s.log.Error("capture failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "capture failed")
		return
	}
	writeJSON(w, http.StatusCreated, memo)
}

func (s *Server) handleListMemos(w http.ResponseWriter, r *http.Request) {
	memos, err := s.svc.Memos.All(r.Context())
	if err != nil {
		s.log.Error("list memos failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}

	params := r.URL.Query()
	var category *string
	if c := params.Get("category"); c != "" {
		category = &c
	}
	dateRange := parseDateRange(params.Get("preset"), params.Get("from"), params.Get("to"))

	filtered := services.FilterMemos(memos, params.Get("query"), category, dateRange, time.Now())
	writeJSON(w, http.StatusOK, filtered)
}

func parseDateRange(preset, from, to string) *models.DateRange {
	if preset == "" && from == "" && to == "" {
		return nil
	}
	r := &models.DateRange{Preset: models.RangeCustom}
	switch models.RangePreset(preset) {
	case models.RangeLastDay, models.RangeLast3Days, models.RangeLastWeek, models.RangeLast2Weeks:
		r.Preset = models.RangePreset(preset)
		return r
	}
	if ms, err := strconv.ParseInt(from, 10, 64); err == nil {
		r.From = &ms
	}
	if ms, err := strconv.ParseInt(to, 10, 64); err == nil {
		r.To = &ms
	}
	return r
}

func (s *Server) handleGetMemo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	memo, err := s.svc.Memos.GetByID(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, memo)
}

func (s *Server) handleUpdateMemo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var memo models.Memo
	if err := json.NewDecoder(r.Body).Decode(&memo); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	memo.ID = id
	if err := s.svc.Memos.Update(r.Context(), &memo); err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, memo)
}

func (s *Server) handleDeleteMemo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.svc.Memos.Delete(r.Context(), &models.Memo{ID: id}); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	var categories []string
	switch {
	case params.Get("q") != "":
		categories = s.svc.Query.SearchCategories(params.Get("q"))
	case params.Get("recent") == "true":
		categories = s.svc.Query.RecentCategories()
	default:
		categories = s.svc.Query.Categories()
	}
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, categories)
}

type settingsResponse struct {
	ViewMode   string `json:"viewMode"`
	ThemeMode  string `json:"themeMode"`
	Language   string `json:"language"`
	AIProvider string `json:"aiProvider"`
	HasAPIKey  bool   `json:"hasApiKey"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	settings := s.svc.Settings
	writeJSON(w, http.StatusOK, settingsResponse{
		ViewMode:   settings.ViewMode().Get().String(),
		ThemeMode:  settings.ThemeMode().Get().String(),
		Language:   settings.Language().Get(),
		AIProvider: settings.AIProvider().Get().String(),
		HasAPIKey:  settings.AIAPIKey().Get() != "",
	})
}

type settingUpdateRequest struct {
	Value string `json:"value"`
}

func (s *Server) handlePutSetting(w http.ResponseWriter, r *http.Request) {
	var req settingUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var err error
	switch chi.URLParam(r, "field") {
	case "view_mode":
		switch req.Value {
		case "list":
			err = s.svc.Settings.SetViewMode(r.Context(), models.ViewModeList)
		case "card":
			err = s.svc.Settings.SetViewMode(r.Context(), models.ViewModeCard)
		default:
			writeError(w, http.StatusBadRequest, "view_mode must be 'list' or 'card'")
			return
		}
	case "theme_mode":
		switch req.Value {
		case "system":
			err = s.svc.Settings.SetThemeMode(r.Context(), models.ThemeModeSystem)
		case "light":
			err = s.svc.Settings.SetThemeMode(r.Context(), models.ThemeModeLight)
		case "dark":
			err = s.svc.Settings.SetThemeMode(r.Context(), models.ThemeModeDark)
		default:
			writeError(w, http.StatusBadRequest, "theme_mode must be 'system', 'light' or 'dark'")
			return
		}
	case "language":
		if strings.TrimSpace(req.Value) == "" {
			writeError(w, http.StatusBadRequest, "language is required")
			return
		}
		err = s.svc.Settings.SetLanguage(r.Context(), req.Value)
	case "ai_provider":
		provider, ok := models.ParseAIProvider(req.Value)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown provider")
			return
		}
		err = s.svc.Settings.SetAIProvider(r.Context(), provider)
	case "ai_api_key":
		err = s.svc.Settings.SetAIAPIKey(r.Context(), req.Value)
	default:
		writeError(w, http.StatusNotFound, "unknown setting")
		return
	}

	if err != nil {
		s.log.Error("setting update failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrNotFound) {
		writeError(w, http.StatusNotFound, "memo not found")
		return
	}
	s.log.Error("store operation failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "storage failure")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
