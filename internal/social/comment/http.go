package comment

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

// Mount registers the comment routes exposed by ops, rendered at the tier's view.
func (handler *Handler) Mount(router chi.Router, t tier.Tier, ops tier.Ops) {
	if ops.Has(tier.OpsRead) {
		router.Get("/", handler.list(t))
		router.Get("/count", handler.count)
		router.Get("/{id}", handler.get(t))
		router.Get("/{id}/book", handler.book(t))
		router.Get("/{id}/user", handler.user(t))
	}
	if ops.Has(tier.OpsCreate) {
		router.Post("/", handler.create(t))
	}
	if ops.Has(tier.OpsUpdate) {
		router.Put("/{id}", handler.update(t, handler.service.Update))
		router.Patch("/{id}", handler.update(t, handler.service.Patch))
	}
	if ops.Has(tier.OpsText) {
		router.Patch("/{id}/text", handler.updateText(t))
	}
	if ops.Has(tier.OpsDelete) {
		router.Delete("/{id}", handler.delete)
	}
}

func (handler *Handler) list(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		comments, err := handler.service.List(request.Context())
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		window, meta := pagination.Slice(comments, pagination.FromRequest(request))
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
		commentID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		comment, err := handler.service.Get(request.Context(), commentID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAt(comment, t.View))
	}
}

func (handler *Handler) book(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		commentID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		book, err := handler.service.Book(request.Context(), commentID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAt(book, t.View))
	}
}

func (handler *Handler) user(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		commentID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		user, err := handler.service.User(request.Context(), commentID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAt(user, t.View))
	}
}

/*
POST /comments

The caller becomes the owner. Any "user" in the body is ignored.
*/
func (handler *Handler) create(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var input domain.Comment
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		comment, err := handler.service.Create(request.Context(), requestutil.Principal(request), &input)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.Created(writer, view.ProjectAt(comment, t.View))
	}
}

type updateFunc = func(ctx context.Context, principal *access.Principal, id int64, input *domain.Comment) (*domain.Comment, error)

func (handler *Handler) update(t tier.Tier, apply updateFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		commentID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		var input domain.Comment
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		comment, err := apply(request.Context(), requestutil.Principal(request), commentID, &input)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAt(comment, t.View))
	}
}

type textRequest struct {
	Text *string `json:"text"`
}

/*
PATCH /comments/{id}/text

Body: {"text": "..."}. Only the owner or ROOT may change it.
*/
func (handler *Handler) updateText(t tier.Tier) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		commentID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		var input textRequest
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		comment, err := handler.service.UpdateText(request.Context(), requestutil.Principal(request), commentID, input.Text)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view.ProjectAt(comment, t.View))
	}
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	commentID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.Principal(request), commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
