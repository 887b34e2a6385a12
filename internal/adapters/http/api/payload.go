package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/okian/discography/internal/domain/model"
)

// Media types understood by decodePayload.
const (
	mediaJSON = "application/json"
	mediaForm = "application/x-www-form-urlencoded"
)

// maxBodyBytes caps how much of a request body is read.
const maxBodyBytes = 1 << 20

// Payload is a decoded request body. It is nil when no usable body was sent.
//
// Values are strings for form bodies and json.Number, string, bool or nested
// values for JSON bodies. Empty strings and zero numbers count as absent.
type Payload map[string]any

// Text returns a supplied non-empty string field. Non-zero JSON numbers are
// accepted in their literal form.
func (p Payload) Text(key string) (string, bool) {
	switch v := p[key].(type) {
	case string:
		return v, v != ""
	case json.Number:
		if f, err := v.Float64(); err == nil && f == 0 {
			return "", false
		}
		return v.String(), true
	default:
		return "", false
	}
}

// Number returns a supplied non-zero integer field. Values that are not
// integers are reported as absent.
func (p Payload) Number(key string) (int, bool) {
	n, supplied, ok := p.integer(key)
	if !supplied || !ok || n == 0 {
		return 0, false
	}
	return n, true
}

// Reference returns a supplied foreign key. A supplied value that is not an
// integer can never name an entity and comes back as model.UnknownID.
func (p Payload) Reference(key string) (int, bool) {
	n, supplied, ok := p.integer(key)
	switch {
	case !supplied:
		return 0, false
	case !ok:
		return model.UnknownID, true
	case n == 0:
		return 0, false
	default:
		return n, true
	}
}

func (p Payload) integer(key string) (n int, supplied, ok bool) {
	var raw string
	switch v := p[key].(type) {
	case string:
		if v == "" {
			return 0, false, false
		}
		raw = v
	case json.Number:
		raw = v.String()
	case nil:
		return 0, false, false
	default:
		return 0, true, false
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, false
	}
	return parsed, true, true
}

// readBody reads at most maxBodyBytes of the request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, tooLarge.Limit)
		}
		return nil, fmt.Errorf("%w: %w", ErrReadBody, err)
	}
	return body, nil
}

// decodePayload interprets body according to the media type of contentType.
// Unknown media types, malformed documents and JSON values that are not
// objects all yield a nil Payload.
func decodePayload(contentType string, body []byte) Payload {
	if len(body) == 0 {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil
	}

	switch mediaType {
	case mediaJSON:
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		var p Payload
		if err := dec.Decode(&p); err != nil {
			return nil
		}
		return p
	case mediaForm:
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil
		}
		p := make(Payload, len(values))
		for key, vs := range values {
			// last occurrence wins
			p[key] = vs[len(vs)-1]
		}
		return p
	default:
		return nil
	}
}
