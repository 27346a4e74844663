package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/eaip-etl/internal/domain"
)

// maxParseBody caps a parse request body. eAIP cells are a few kilobytes at
// most.
const maxParseBody = 64 << 10

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	Matched bool `json:"matched"`
	Result  any  `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type parseHandlers struct {
	logger *slog.Logger
}

func (p *parseHandlers) hours(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeParseRequest(w, r)
	if !ok {
		return
	}
	schedule, matched := domain.ParseOperatingHours(req.Text)
	writeParseResult(w, matched, schedule)
}

func (p *parseHandlers) lateral(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeParseRequest(w, r)
	if !ok {
		return
	}
	boundary, err := domain.ParseLateralLimits(req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedCoordinate) {
			sharedobs.WriteJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
			return
		}
		p.logger.Error("parse lateral limits", "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeParseResult(w, !boundary.IsEmpty(), boundary)
}

func (p *parseHandlers) vertical(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeParseRequest(w, r)
	if !ok {
		return
	}
	limit, matched := domain.ParseVerticalLimit(req.Text)
	writeParseResult(w, matched, limit)
}

// decodeParseRequest reads {"text": ...} from the body. On failure it has
// already written a 400 response.
func decodeParseRequest(w http.ResponseWriter, r *http.Request) (parseRequest, bool) {
	var req parseRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxParseBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return parseRequest{}, false
	}
	return req, true
}

func writeParseResult(w http.ResponseWriter, matched bool, result any) {
	resp := parseResponse{Matched: matched}
	if matched {
		resp.Result = result
	}
	sharedobs.WriteJSON(w, http.StatusOK, resp)
}
