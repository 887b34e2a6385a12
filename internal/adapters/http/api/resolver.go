package api

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"strings"

	service "github.com/okian/discography/internal/app"
	"github.com/okian/discography/internal/domain/model"
	"github.com/okian/discography/pkg/logger"
)

// Response is the outcome of resolving one request.
type Response struct {
	Status int
	Body   any
	// Text, when set, is written verbatim instead of encoding Body.
	Text string
}

func (resp Response) write(w http.ResponseWriter) {
	if resp.Text != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.Status)
		_, _ = w.Write([]byte(resp.Text))
		return
	}
	writeJSON(w, resp.Status, resp.Body)
}

// endpointNotFound is the answer to any unmatched method and path.
var endpointNotFound = Response{Status: http.StatusNotFound, Text: msgEndpointNotFound}

// request carries what a route handler needs from the incoming request.
type request struct {
	// id is the value of the {id} segment, or model.UnknownID when that
	// segment is not an integer.
	id      int
	idValid bool
	payload Payload
}

type handlerFunc func(ctx context.Context, req request) Response

// route is one entry of the route table. Pattern segments written as
// "{id}" match any value.
type route struct {
	method  string
	pattern []string
	handle  handlerFunc
}

const idParam = "{id}"

// guard is an existence check that runs before route matching for
// requests addressing a stored entity by id.
type guard struct {
	kind    model.Kind
	methods []string
	missing string
}

var allMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

var guards = map[string]guard{
	"artists": {kind: model.KindArtist, methods: allMethods, missing: service.MsgArtistNotFound},
	"albums":  {kind: model.KindAlbum, methods: allMethods, missing: service.MsgAlbumNotFound},
	"songs": {
		kind:    model.KindSong,
		methods: []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete},
		missing: service.MsgSongNotFound,
	},
}

// Resolver maps (method, path, payload) onto catalog operations.
type Resolver struct {
	catalog Catalog
	routes  []route
	logger  logger.Logger
}

// ResolverOption customises a Resolver.
type ResolverOption func(*Resolver)

// WithResolverLogger sets the logger used for request bodies and failures.
func WithResolverLogger(l logger.Logger) ResolverOption {
	return func(rv *Resolver) {
		if l != nil {
			rv.logger = l
		}
	}
}

// NewResolver builds a resolver over catalog with the full route table.
func NewResolver(catalog Catalog, opts ...ResolverOption) *Resolver {
	rv := &Resolver{catalog: catalog}
	for _, opt := range opts {
		opt(rv)
	}
	if rv.logger == nil {
		rv.logger = logger.Named("resolver")
	}
	rv.routes = newRouteTable(handlers{catalog: catalog})
	return rv
}

// ServeHTTP decodes the body, resolves the request and writes the response.
func (rv *Resolver) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := readBody(w, r)
	if err != nil {
		rv.logger.Warn(ctx, "ignoring request body", logger.Error(err))
	}
	payload := decodePayload(r.Header.Get("Content-Type"), body)
	if payload != nil {
		rv.logger.Debug(ctx, "decoded request body", logger.Any("body", payload))
	}

	rv.Resolve(ctx, r.Method, r.URL.Path, payload).write(w)
}

// Resolve dispatches one request. Existence guards run first, then the
// route table is matched in order; anything left is endpointNotFound.
func (rv *Resolver) Resolve(ctx context.Context, method, path string, payload Payload) Response {
	segments := splitPath(path)

	if len(segments) >= 2 {
		if g, ok := guards[segments[0]]; ok && slices.Contains(g.methods, method) {
			id, _ := parseID(segments[1])
			if !rv.catalog.Exists(ctx, g.kind, id) {
				return message(http.StatusNotFound, g.missing)
			}
		}
	}

	for _, rt := range rv.routes {
		if rt.method != method {
			continue
		}
		req, ok := match(rt.pattern, segments)
		if !ok {
			continue
		}
		req.payload = payload
		return rt.handle(ctx, req)
	}
	return endpointNotFound
}

// splitPath returns the non-root segments of path. One trailing slash is
// ignored.
func splitPath(path string) []string {
	segments := strings.Split(path, "/")
	if n := len(segments); n > 0 && segments[n-1] == "" {
		segments = segments[:n-1]
	}
	if len(segments) > 0 && segments[0] == "" {
		segments = segments[1:]
	}
	return segments
}

func match(pattern, segments []string) (request, bool) {
	if len(pattern) != len(segments) {
		return request{}, false
	}
	var req request
	for i, p := range pattern {
		if p == idParam {
			req.id, req.idValid = parseID(segments[i])
			continue
		}
		if p != segments[i] {
			return request{}, false
		}
	}
	return req, true
}

// parseID accepts only the canonical decimal form, so "01" and "+1" name
// no entity.
func parseID(segment string) (int, bool) {
	id, err := strconv.Atoi(segment)
	if err != nil || strconv.Itoa(id) != segment {
		return model.UnknownID, false
	}
	return id, true
}
