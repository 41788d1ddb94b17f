package book

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

// Mount registers the book routes exposed by ops, rendered at the tier's view.
func (handler *Handler) Mount(router chi.Router, t tier.Tier, ops tier.Ops) {
	if ops.Has(tier.OpsRead) {
		router.Get("/", handler.list(t))
		router.Get("/count", handler.count)
		router.Get("/{id}", handler.get(t))
		router.Get("/{id}/authors", handler.authors(t))
		router.Get("/{id}/genres", handler.genres(t))
		router.Get("/{id}/comments", handler.comments(t))
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

/*
GET /books

Returns the window of books selected by "offset" and "count".
*/
func (handler *Handler) list(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		books, err := handler.service.List(request.Context())
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		window, meta := pagination.Slice(books, pagination.FromRequest(request))
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

func (handler *Handler) get(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		bookID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		book, err := handler.service.Get(request.Context(), bookID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAt(book, t.View))
	}
}

func (handler *Handler) authors(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		bookID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		authors, err := handler.service.Authors(request.Context(), bookID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAll(authors, t.View))
	}
}

func (handler *Handler) genres(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		bookID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		genres, err := handler.service.Genres(request.Context(), bookID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAll(genres, t.View))
	}
}

func (handler *Handler) comments(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		bookID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		comments, err := handler.service.Comments(request.Context(), bookID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAll(comments, t.View))
	}
}

/*
POST /books

Creates a book. Rating always starts at zero.
*/
func (handler *Handler) create(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var input domain.Book
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		book, err := handler.service.Create(request.Context(), requestutil.Principal(request), &input)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.Created(writer, view.ProjectAt(book, t.View))
	}
}

type updateFunc = func(ctx context.Context, principal *access.Principal, id int64, input *domain.Book) (*domain.Book, error)

/*
PUT /books/{id}, PATCH /books/{id}

Both decode a book body. PUT replaces, PATCH merges the non-null fields.
*/
func (handler *Handler) update(t tier.Tier, apply updateFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		bookID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		var input domain.Book
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		book, err := apply(request.Context(), requestutil.Principal(request), bookID, &input)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAt(book, t.View))
	}
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.Principal(request), bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
