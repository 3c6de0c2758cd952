package httpapi

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/nikbrunner/linkvault/internal/model"
)

// bookmarkRequest is the body of POST and PUT /api/bookmarks.
type bookmarkRequest struct {
	Name         string  `json:"name"`
	URL          string  `json:"url"`
	Category     string  `json:"category"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	Description  string  `json:"description"`
}

// Validate requires the fields the add form requires. Everything else is
// accepted as sent.
func (r bookmarkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("name is required"), validation.Length(0, 200)),
		validation.Field(&r.URL, validation.Required.Error("url is required"), validation.Length(0, 2048)),
	)
}

func (r bookmarkRequest) input() model.BookmarkInput {
	in := model.BookmarkInput{
		Name:        r.Name,
		URL:         r.URL,
		Category:    strings.TrimSpace(r.Category),
		Description: r.Description,
	}
	if r.ThumbnailURL != nil && strings.TrimSpace(*r.ThumbnailURL) != "" {
		thumb := strings.TrimSpace(*r.ThumbnailURL)
		in.ThumbnailURL = &thumb
	}
	return in
}

// listQuery holds the query parameters of GET /api/bookmarks.
type listQuery struct {
	Query    string `json:"q"`
	Category string `json:"category"`
	Filter   string `json:"filter"`
	Sort     string `json:"sort"`
}

func (q listQuery) Validate() error {
	names := make([]interface{}, 0, len(model.SortCriteria)+1)
	names = append(names, "default")
	for _, c := range model.SortCriteria {
		names = append(names, string(c))
	}

	return validation.ValidateStruct(&q,
		validation.Field(&q.Sort, validation.In(names...).Error("must be one of default, name-asc, name-desc, date-new, date-old")),
	)
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []fieldError `json:"fields,omitempty"`
}

var (
	notFoundResponse         = errorResponse{Error: "Website not found"}
	emptyRequestBodyResponse = errorResponse{Error: "empty request body"}
	invalidRequestResponse   = errorResponse{Error: "invalid request body"}
)

// validationErrorResponse flattens ozzo errors into a stable, sorted list.
func validationErrorResponse(err error) errorResponse {
	resp := errorResponse{Error: "validation failed"}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		resp.Error = err.Error()
		return resp
	}

	for field, fieldErr := range errs {
		resp.Fields = append(resp.Fields, fieldError{Field: field, Message: fieldErr.Error()})
	}
	sort.Slice(resp.Fields, func(i, j int) bool {
		return resp.Fields[i].Field < resp.Fields[j].Field
	})
	return resp
}
