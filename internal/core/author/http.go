package author

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/domain"
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

// Mount registers the author routes exposed by ops, rendered at the tier's view.
func (handler *Handler) Mount(router chi.Router, t tier.Tier, ops tier.Ops) {
	if ops.Has(tier.OpsRead) {
		router.Get("/", handler.list(t))
		router.Get("/count", handler.count)
		router.Get("/search", handler.search(t))
		router.Get("/{id}", handler.get(t))
		router.Get("/{id}/books", handler.books(t))
		router.Get("/{id}/genres", handler.genres(t))
	}
	if ops.Has(tier.OpsCreate) {
		router.Post("/", handler.create(t))
	}
	if ops.Has(tier.OpsUpdate) {
		router.Put("/{id}", handler.update(t))
		router.Patch("/{id}", handler.patch(t))
	}
	if ops.Has(tier.OpsDelete) {
		router.Delete("/{id}", handler.delete)
	}
}

func (handler *Handler) list(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		authors, err := handler.service.List(request.Context())
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		window, meta := pagination.Slice(authors, pagination.FromRequest(request))
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

func (handler *Handler) search(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		query := request.URL.Query()
		filter := domain.AuthorFilter{
			FirstName:  query.Get("firstName"),
			MiddleName: query.Get("middleName"),
			LastName:   query.Get("lastName"),
		}

		authors, err := handler.service.Search(request.Context(), filter)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAll(authors, t.View))
	}
}

func (handler *Handler) get(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		authorID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		author, err := handler.service.Get(request.Context(), authorID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAt(author, t.View))
	}
}

func (handler *Handler) books(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		authorID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		books, err := handler.service.Books(request.Context(), authorID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAll(books, t.View))
	}
}

func (handler *Handler) genres(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		authorID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		genres, err := handler.service.Genres(request.Context(), authorID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAll(genres, t.View))
	}
}

func (handler *Handler) create(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var input domain.Author
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		author, err := handler.service.Create(request.Context(), requestutil.Principal(request), &input)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.Created(writer, view.ProjectAt(author, t.View))
	}
}

func (handler *Handler) update(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		authorID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		var input domain.Author
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		author, err := handler.service.Update(request.Context(), requestutil.Principal(request), authorID, &input)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAt(author, t.View))
	}
}

func (handler *Handler) patch(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		authorID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		var input domain.Author
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		author, err := handler.service.Patch(request.Context(), requestutil.Principal(request), authorID, &input)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAt(author, t.View))
	}
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.Principal(request), authorID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
