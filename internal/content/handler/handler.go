package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mealshare/internal/apiclient"
	"mealshare/internal/content/models"
	"mealshare/internal/platform/middleware"
	dErrors "mealshare/pkg/domain-errors"
	"mealshare/pkg/platform/httputil"
)

// Service defines the content operations the handler exposes.
type Service interface {
	Home(ctx context.Context) (models.Home, error)
	Hero(ctx context.Context) (models.Hero, error)
	UpdateHero(ctx context.Context, in models.HeroInput) (models.Hero, error)
	UploadHeroImage(ctx context.Context, file apiclient.Upload) (models.Hero, error)
	List(ctx context.Context, col models.Collection) (any, error)
	Get(ctx context.Context, col models.Collection, id string) (any, error)
	Create(ctx context.Context, col models.Collection, input any) (any, error)
	Update(ctx context.Context, col models.Collection, id string, input any) (any, error)
	Delete(ctx context.Context, col models.Collection, id string) error
	Upload(ctx context.Context, col models.Collection, id string, file apiclient.Upload) (any, error)
}

// Handler serves public content reads and admin content edits.
type Handler struct {
	logger    *slog.Logger
	content   Service
	maxUpload int64
}

// New creates a content Handler. maxUpload bounds multipart request bodies.
func New(content Service, logger *slog.Logger, maxUpload int64) *Handler {
	return &Handler{logger: logger, content: content, maxUpload: maxUpload}
}

// Register mounts the public read routes under /content.
func (h *Handler) Register(r chi.Router) {
	r.Route("/content", func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Get("/home", h.handleHome)
		r.Get("/hero", h.handleHero)
		r.Get("/{collection}", h.handleList)
		r.Get("/{collection}/{id}", h.handleGet)
	})
}

// RegisterAdmin mounts the edit routes under /admin/content behind requireSession.
func (h *Handler) RegisterAdmin(r chi.Router, requireSession func(http.Handler) http.Handler) {
	r.Route("/admin/content", func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(requireSession)

		r.With(middleware.ContentTypeJSON).Put("/hero", h.handleUpdateHero)
		r.Post("/hero/image", h.handleUploadHeroImage)
		r.With(middleware.ContentTypeJSON).Post("/{collection}", h.handleCreate)
		r.With(middleware.ContentTypeJSON).Put("/{collection}/{id}", h.handleUpdate)
		r.Delete("/{collection}/{id}", h.handleDelete)
		r.Post("/{collection}/{id}/image", h.handleUpload)
	})
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	home, err := h.content.Home(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, home)
}

func (h *Handler) handleHero(w http.ResponseWriter, r *http.Request) {
	hero, err := h.content.Hero(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, hero)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.content.List(r.Context(), collectionParam(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	item, err := h.content.Get(r.Context(), collectionParam(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) handleUpdateHero(w http.ResponseWriter, r *http.Request) {
	var in models.HeroInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	hero, err := h.content.UpdateHero(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, hero)
}

func (h *Handler) handleUploadHeroImage(w http.ResponseWriter, r *http.Request) {
	h.withUpload(w, r, func(file apiclient.Upload) (any, error) {
		return h.content.UploadHeroImage(r.Context(), file)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	col := collectionParam(r)
	input, ok := models.NewInput(col)
	if !ok {
		h.writeError(w, r, unknownCollection(col))
		return
	}
	if err := httputil.DecodeJSON(r, input); err != nil {
		h.writeError(w, r, err)
		return
	}
	item, err := h.content.Create(r.Context(), col, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	col := collectionParam(r)
	input, ok := models.NewInput(col)
	if !ok {
		h.writeError(w, r, unknownCollection(col))
		return
	}
	if err := httputil.DecodeJSON(r, input); err != nil {
		h.writeError(w, r, err)
		return
	}
	item, err := h.content.Update(r.Context(), col, chi.URLParam(r, "id"), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.content.Delete(r.Context(), collectionParam(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	col := collectionParam(r)
	if !col.IsValid() {
		h.writeError(w, r, unknownCollection(col))
		return
	}
	h.withUpload(w, r, func(file apiclient.Upload) (any, error) {
		return h.content.Upload(r.Context(), col, chi.URLParam(r, "id"), file)
	})
}

// withUpload reads the multipart "file" part within the size limit and hands it to fn.
func (h *Handler) withUpload(w http.ResponseWriter, r *http.Request, fn func(apiclient.Upload) (any, error)) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, r, dErrors.Wrap(err, dErrors.CodeBadRequest, fmt.Sprintf("file exceeds %d bytes", h.maxUpload)))
			return
		}
		h.writeError(w, r, dErrors.Wrap(err, dErrors.CodeBadRequest, "multipart form with a file field is required"))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile(apiclient.UploadFieldName)
	if err != nil {
		h.writeError(w, r, dErrors.Wrap(err, dErrors.CodeBadRequest, "file is required"))
		return
	}
	defer file.Close()

	item, err := fn(apiclient.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, item)
}

func collectionParam(r *http.Request) models.Collection {
	return models.Collection(chi.URLParam(r, "collection"))
}

func unknownCollection(col models.Collection) error {
	return dErrors.New(dErrors.CodeNotFound, "unknown content collection: "+string(col))
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	if de, ok := dErrors.As(err); !ok || de.Code == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "content request failed",
			"request_id", middleware.GetRequestID(ctx),
			"path", r.URL.Path,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
