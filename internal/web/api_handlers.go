package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/evcraddock/propdb/internal/property"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// storeError maps a repository error onto an API response.
func storeError(w http.ResponseWriter, action string, err error) {
	if errors.Is(err, property.ErrNotFound) {
		apiError(w, "property not found", http.StatusNotFound)
		return
	}
	apiError(w, fmt.Sprintf("%s: %v", action, err), http.StatusInternalServerError)
}

// decodeBody decodes a JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

// handleAPIProperties routes /api/properties requests.
func (s *Server) handleAPIProperties(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/properties")
	path = strings.TrimPrefix(path, "/")

	// /api/properties — list or add
	if path == "" {
		switch r.Method {
		case http.MethodGet:
			s.apiListProperties(w, r)
		case http.MethodPost:
			s.apiCreateProperty(w, r)
		default:
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// /api/properties/{id}
	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		apiError(w, "invalid property ID", http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.apiGetProperty(w, r, id)
	case http.MethodPut:
		s.apiReplaceProperty(w, r, id)
	case http.MethodPatch:
		s.apiPatchProperty(w, r, id)
	case http.MethodDelete:
		s.apiDeleteProperty(w, r, id)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// apiListProperties returns properties as JSON, optionally filtered.
func (s *Server) apiListProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := property.ListOptions{Query: q.Get("q")}

	for _, f := range []struct {
		name string
		dst  **float64
	}{
		{"min_price", &opts.MinPrice},
		{"max_price", &opts.MaxPrice},
	} {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			apiError(w, f.name+" must be a number", http.StatusBadRequest)
			return
		}
		*f.dst = &v
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			apiError(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		opts.Limit = limit
	}

	props, err := s.props.Repository().List(r.Context(), opts)
	if err != nil {
		apiError(w, fmt.Sprintf("listing properties: %v", err), http.StatusInternalServerError)
		return
	}
	if props == nil {
		props = []*property.Property{}
	}

	apiJSON(w, props, http.StatusOK)
}

// apiCreateProperty stores a new property. Any id in the body is ignored.
func (s *Server) apiCreateProperty(w http.ResponseWriter, r *http.Request) {
	var p property.Property
	if !decodeBody(w, r, &p) {
		return
	}

	saved, err := s.props.Create(r.Context(), &p)
	if err != nil {
		apiError(w, fmt.Sprintf("adding property: %v", err), http.StatusInternalServerError)
		return
	}

	apiJSON(w, saved, http.StatusCreated)
}

// apiGetProperty returns a single property.
func (s *Server) apiGetProperty(w http.ResponseWriter, r *http.Request, id int64) {
	p, err := s.props.Repository().GetByID(r.Context(), id)
	if err != nil {
		storeError(w, "loading property", err)
		return
	}
	apiJSON(w, p, http.StatusOK)
}

// apiReplaceProperty overwrites every field of a property.
func (s *Server) apiReplaceProperty(w http.ResponseWriter, r *http.Request, id int64) {
	var p property.Property
	if !decodeBody(w, r, &p) {
		return
	}

	saved, err := s.props.Replace(r.Context(), id, &p)
	if err != nil {
		storeError(w, "updating property", err)
		return
	}
	apiJSON(w, saved, http.StatusOK)
}

// apiPatchProperty changes only the fields present in the body.
func (s *Server) apiPatchProperty(w http.ResponseWriter, r *http.Request, id int64) {
	var patch property.Patch
	if !decodeBody(w, r, &patch) {
		return
	}

	saved, err := s.props.Patch(r.Context(), id, patch)
	if err != nil {
		storeError(w, "updating property", err)
		return
	}
	apiJSON(w, saved, http.StatusOK)
}

// apiDeleteProperty removes a property.
func (s *Server) apiDeleteProperty(w http.ResponseWriter, r *http.Request, id int64) {
	if err := s.props.Delete(r.Context(), id); err != nil {
		storeError(w, "deleting property", err)
		return
	}
	apiJSON(w, map[string]interface{}{"id": id, "removed": true}, http.StatusOK)
}
