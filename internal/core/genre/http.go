package genre

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/access"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/tier"
	"github.com/taibuivan/folio/internal/platform/view"
	"github.com/taibuivan/folio/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Mount registers the genre routes exposed by ops, rendered at the tier's view.
func (handler *Handler) Mount(router chi.Router, t tier.Tier, ops tier.Ops) {
	if ops.Has(tier.OpsRead) {
		router.Get("/", handler.list(t))
		router.Get("/count", handler.count)
		router.Get("/search", handler.search(t))
		router.Get("/{id}", handler.get(t))
		router.Get("/{id}/books", handler.books(t))
		router.Get("/{id}/authors", handler.authors(t))
	}
	if ops.Has(tier.OpsCreate) {
		router.Post("/", handler.create(t))
	}
	if ops.Has(tier.OpsUpdate) {
		router.Put("/{id}", handler.update(t, handler.service.Update))
		router.Patch("/{id}", handler.update(t, handler.service.Patch))
	}
	if ops.Has(tier.OpsDelete) {
		router.Delete("/{id}", handler.delete)
	}
}

func (handler *Handler) list(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		genres, err := handler.service.List(request.Context())
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		window, meta := pagination.Slice(genres, pagination.FromRequest(request))
		respond.Paginated(writer, view.ProjectAll(window, t.View), meta)
	}
}

func (handler *Handler) count(writer http.ResponseWriter, request *http.Request) {
	total, err := handler.service.Count(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"count": total})
}

/*
GET /genres/search?startsWith=

Case-insensitive name prefix search. An empty prefix lists every genre.
*/
func (handler *Handler) search(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		genres, err := handler.service.Search(request.Context(), request.URL.Query().Get("startsWith"))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAll(genres, t.View))
	}
}

func (handler *Handler) get(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		genreID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		genre, err := handler.service.Get(request.Context(), genreID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAt(genre, t.View))
	}
}

func (handler *Handler) books(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		genreID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		books, err := handler.service.Books(request.Context(), genreID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAll(books, t.View))
	}
}

func (handler *Handler) authors(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		genreID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		authors, err := handler.service.Authors(request.Context(), genreID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAll(authors, t.View))
	}
}

func (handler *Handler) create(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var input domain.Genre
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		genre, err := handler.service.Create(request.Context(), requestutil.Principal(request), &input)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.Created(writer, view.ProjectAt(genre, t.View))
	}
}

type updateFunc = func(ctx context.Context, principal *access.Principal, id int64, input *domain.Genre) (*domain.Genre, error)

func (handler *Handler) update(t tier.Tier, apply updateFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		genreID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		var input domain.Genre
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		genre, err := apply(request.Context(), requestutil.Principal(request), genreID, &input)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAt(genre, t.View))
	}
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	genreID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.Principal(request), genreID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
