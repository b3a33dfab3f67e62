package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/jacentio/ratings/internal/params"
	"github.com/jacentio/ratings/internal/shape"
	"github.com/jacentio/ratings/store"
)

// Querier is the read side of the ratings store.
type Querier interface {
	ByNight(ctx context.Context, night string) (*store.QueryResult, error)
	ByYear(ctx context.Context, year int) (*store.QueryResult, error)
	ByShow(ctx context.Context, show string) (*store.QueryResult, error)
}

// Handler serves the ratings endpoints. Each method is an AWS Lambda handler
// for one API Gateway route and keeps no state between invocations.
type Handler struct {
	store   Querier
	logger  *slog.Logger
	headers map[string]string
	now     func() time.Time
}

// Option configures a Handler.
type Option func(*Handler)

// WithHeaders sets the headers sent on every response.
func WithHeaders(headers map[string]string) Option {
	return func(h *Handler) {
		h.headers = make(map[string]string, len(headers))
		for k, v := range headers {
			h.headers[k] = v
		}
	}
}

// WithClock overrides the clock used to decide whether a search has a next page.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

// NewHandler creates a new ratings handler.
func NewHandler(s Querier, logger *slog.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		store:   s,
		logger:  logger,
		headers: map[string]string{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Night returns every rating for one night: GET /nights/{night}.
func (h *Handler) Night(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	logger := h.requestLogger(req, "night")

	if result := params.Night(req.PathParameters); !result.OK() {
		return h.rejected(logger, result)
	}
	night := req.PathParameters[params.NightParam]

	return h.lookup(ctx, logger, lookup{
		entity: "night",
		key:    night,
		query: func(ctx context.Context) (*store.QueryResult, error) {
			return h.store.ByNight(ctx, night)
		},
	})
}

// Year returns every rating in a calendar year: GET /years/{year}.
func (h *Handler) Year(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	logger := h.requestLogger(req, "year")

	result, year := params.Year(req.PathParameters)
	if !result.OK() {
		return h.rejected(logger, result)
	}

	return h.lookup(ctx, logger, lookup{
		entity: "year",
		key:    req.PathParameters[params.YearParam],
		query: func(ctx context.Context) (*store.QueryResult, error) {
			return h.store.ByYear(ctx, year)
		},
	})
}

// Show returns every rating for a show: GET /shows/{show}.
func (h *Handler) Show(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	logger := h.requestLogger(req, "show")

	if result := params.Show(req.PathParameters); !result.OK() {
		return h.rejected(logger, result)
	}
	show := req.PathParameters[params.ShowParam]

	return h.lookup(ctx, logger, lookup{
		entity: "show",
		key:    show,
		query: func(ctx context.Context) (*store.QueryResult, error) {
			return h.store.ByShow(ctx, show)
		},
	})
}

// SearchResult is the body of a successful search.
type SearchResult struct {
	Ratings []store.Rating `json:"ratings"`
	Next    *string        `json:"next"`
}

// Search returns ratings between two dates: GET /search?startDate=&endDate=.
//
// Only startDate's year is queried. Ratings from that year are filtered to the
// range and, when the range runs into later years, Next links to the same
// search starting on January 1st of the following year.
func (h *Handler) Search(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	logger := h.requestLogger(req, "search")

	result, rng := params.DateRange(req.QueryStringParameters)
	if !result.OK() {
		return h.rejected(logger, result)
	}
	year := rng.Start.Year()

	return h.lookup(ctx, logger, lookup{
		entity: "year",
		key:    strconv.Itoa(year),
		query: func(ctx context.Context) (*store.QueryResult, error) {
			return h.store.ByYear(ctx, year)
		},
		body: func(ratings []store.Rating) any {
			filtered := shape.FilterDateRange(ratings, rng.StartString(), rng.EndString())
			next := shape.NextURL(rng.Start, rng.End, h.now())
			var nextLink string
			if next != nil {
				nextLink = *next
			}
			logger.Info("search filtered",
				"queried", len(ratings),
				"matched", len(filtered),
				"next", nextLink,
			)
			return SearchResult{Ratings: filtered, Next: next}
		},
	})
}

// lookup describes the query half of an endpoint.
type lookup struct {
	// entity and key name the not-found message: "<entity>: <key> not found".
	entity string
	key    string

	query func(ctx context.Context) (*store.QueryResult, error)

	// body builds the success body. Nil sends the ratings as-is.
	body func([]store.Rating) any
}

// lookup runs the query, answers 404 on zero matches and 200 otherwise.
// Store failures are returned as errors so the invocation fails closed.
func (h *Handler) lookup(ctx context.Context, logger *slog.Logger, l lookup) (events.APIGatewayV2HTTPResponse, error) {
	result, err := l.query(ctx)
	if err != nil {
		logger.Error("ratings query failed", "error", err)
		return events.APIGatewayV2HTTPResponse{}, fmt.Errorf("%s %s: %w", l.entity, l.key, err)
	}
	logger.Info("ratings queried", "count", result.Count)

	if result.Count == 0 {
		message := fmt.Sprintf("%s: %s not found", l.entity, l.key)
		logger.Info("no ratings found", "message", message)
		return Respond(http.StatusNotFound, h.headers, Message{Message: message})
	}

	ratings, err := shape.Ratings(result.Items, logger)
	if err != nil {
		logger.Error("ratings decode failed", "error", err)
		return events.APIGatewayV2HTTPResponse{}, err
	}

	var body any = ratings
	if l.body != nil {
		body = l.body(ratings)
	}
	return Respond(http.StatusOK, h.headers, body)
}

// rejected answers a failed validation with its status and message.
func (h *Handler) rejected(logger *slog.Logger, result params.Result) (events.APIGatewayV2HTTPResponse, error) {
	logger.Info("request rejected",
		"reason", result.Kind.String(),
		"message", result.Message,
	)
	return Respond(result.StatusCode(), h.headers, Message{Message: result.Message})
}

// requestLogger tags log lines with the endpoint and API Gateway request id.
func (h *Handler) requestLogger(req events.APIGatewayV2HTTPRequest, endpoint string) *slog.Logger {
	requestID := req.RequestContext.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	logger := h.logger.With("endpoint", endpoint, "requestID", requestID)
	logger.Debug("lambda proxy event",
		"rawPath", req.RawPath,
		"pathParameters", req.PathParameters,
		"queryStringParameters", req.QueryStringParameters,
	)
	return logger
}
