package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sumonst21/opencollective-images/internal/config"
	"github.com/sumonst21/opencollective-images/internal/constants"
	"github.com/sumonst21/opencollective-images/internal/domain"
	"github.com/sumonst21/opencollective-images/internal/render"
	"github.com/sumonst21/opencollective-images/internal/service"
	"github.com/sumonst21/opencollective-images/internal/util"
	"go.uber.org/zap"
)

// MembersService is the resolver surface the HTTP shim consumes.
type MembersService interface {
	Members(ctx context.Context, req domain.MembersRequest) ([]domain.Member, error)
	MembersStats(ctx context.Context, req domain.MembersRequest) (*domain.MembersStats, error)
}

// RedirectService computes ranked redirect targets.
type RedirectService interface {
	Target(ctx context.Context, req domain.MembersRequest, position int) (string, error)
}

// Handler is the HTTP entry shim: parameter extraction and status mapping
// only. All branching logic lives in the service layer.
type Handler struct {
	resolver MembersService
	redirect RedirectService
	renderer render.BannerRenderer
	site     config.SiteConfig
	logger   *zap.Logger
}

func NewHandler(resolver MembersService, redirect RedirectService, renderer render.BannerRenderer, site config.SiteConfig, logger *zap.Logger) *Handler {
	return &Handler{
		resolver: resolver,
		redirect: redirect,
		renderer: renderer,
		site:     site,
		logger:   logger,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD"},
	}))

	r.Get("/healthz", h.handleHealth)

	r.Route("/{collectiveSlug}", func(r chi.Router) {
		r.Get("/tiers/{tierSlug}.svg", h.handleBanner)
		r.Get("/tiers/{tierSlug}/badge.svg", h.handleBadge)
		r.Get("/tiers/{tierSlug}/{position}/website", h.handleWebsite)

		r.Get("/{backerType}.svg", h.handleBanner)
		r.Get("/{backerType}/badge.svg", h.handleBadge)
		r.Get("/{backerType}/{position}/website", h.handleWebsite)
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// requestFrom builds the resolution request from route params. The banner
// and website flows differ only in how they default isActive.
func requestFrom(r *http.Request, isActive bool) domain.MembersRequest {
	return domain.NewMembersRequest(
		chi.URLParam(r, "collectiveSlug"),
		chi.URLParam(r, "backerType"),
		chi.URLParam(r, "tierSlug"),
		isActive,
	)
}

func (h *Handler) handleWebsite(w http.ResponseWriter, r *http.Request) {
	isActive := util.ParseBoolDefaultTrue(r.URL.Query().Get("isActive"))
	req := requestFrom(r, isActive)

	position, err := strconv.Atoi(chi.URLParam(r, "position"))
	if err != nil || position < 0 {
		h.notFound(w, r, "invalid position", err)
		return
	}

	target, err := h.redirect.Target(r.Context(), req, position)
	if err != nil {
		h.notFound(w, r, "redirect resolution failed", err)
		return
	}

	http.Redirect(w, r, target, http.StatusMovedPermanently)
}

func (h *Handler) handleBanner(w http.ResponseWriter, r *http.Request) {
	req := requestFrom(r, false)
	params := service.DeriveBannerParams(req, r.URL.Query(), h.site.ImagesURL)

	// isActive is derived from the query before resolution and feeds the
	// resolution request, not the other way around.
	req = req.WithIsActive(params.IsActive)

	members, err := h.resolver.Members(r.Context(), req)
	if err != nil {
		h.notFound(w, r, "member resolution failed", err)
		return
	}

	banner, err := h.renderer.Banner(r.Context(), members, params)
	if err != nil {
		h.logger.Error("Banner rendering failed",
			zap.String("collective", req.CollectiveSlug),
			zap.Error(err),
		)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml;charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(constants.HTTPConfig.BannerMaxAge))
	_, _ = w.Write(banner)
}

func (h *Handler) handleBadge(w http.ResponseWriter, r *http.Request) {
	req := requestFrom(r, util.ParseBoolDefaultTrue(r.URL.Query().Get("isActive")))

	stats, err := h.resolver.MembersStats(r.Context(), req)
	if err != nil {
		h.notFound(w, r, "stats resolution failed", err)
		return
	}

	label := stats.Name
	if label == "" {
		label = stats.Slug
	}

	w.Header().Set("Content-Type", "image/svg+xml;charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(constants.HTTPConfig.BannerMaxAge))
	_, _ = w.Write(render.Badge(label, stats.Count))
}

// notFound maps every resolution failure to a plain 404, matching the
// contract that unsupported requests, upstream failures, and out-of-range
// positions are indistinguishable to clients.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, message string, err error) {
	h.logger.Info("Request failed",
		zap.String("path", r.URL.Path),
		zap.String("reason", message),
		zap.Error(err),
	)
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("Not found"))
}
