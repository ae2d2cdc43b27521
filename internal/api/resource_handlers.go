package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/trackstash/trackstash-server/internal/domain"
	"github.com/trackstash/trackstash-server/internal/http/response"
	"github.com/trackstash/trackstash-server/internal/service"
)

// resourceRequest is the payload for creating or replacing a resource.
type resourceRequest struct {
	URL    string       `json:"url" validate:"required,url"`
	Artist string       `json:"artist" validate:"required"`
	Title  string       `json:"title" validate:"required"`
	Type   string       `json:"type" validate:"omitempty"`
	Tags   []tagRequest `json:"tags" validate:"omitempty,dive"`
}

type tagRequest struct {
	Label string `json:"label" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// resourceResponse is the wire representation of a resource. The identifier
// is exposed as "_id" to match the document-store convention clients expect.
type resourceResponse struct {
	ID     string       `json:"_id"`
	URL    string       `json:"url"`
	Artist string       `json:"artist"`
	Title  string       `json:"title"`
	Type   string       `json:"type,omitempty"`
	Tags   []domain.Tag `json:"tags,omitempty"`
}

// toInput converts the request payload into a service input.
func (req resourceRequest) toInput() service.ResourceInput {
	in := service.ResourceInput{
		URL:    req.URL,
		Artist: req.Artist,
		Title:  req.Title,
		Type:   req.Type,
	}
	for _, tag := range req.Tags {
		in.Tags = append(in.Tags, domain.Tag{Label: tag.Label, Value: tag.Value})
	}
	return in
}

// toResponse converts a domain resource into its wire representation.
func toResponse(r *domain.Resource) resourceResponse {
	return resourceResponse{
		ID:     r.ID,
		URL:    r.URL,
		Artist: r.Artist,
		Title:  r.Title,
		Type:   r.Type,
		Tags:   r.Tags,
	}
}

// handleCreateResource stores a new resource and returns it with its assigned ID.
func (s *Server) handleCreateResource(w http.ResponseWriter, r *http.Request) {
	var req resourceRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	resource, err := s.resourceService.Create(r.Context(), req.toInput())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, toResponse(resource), s.logger)
}

// handleListResources returns every stored resource.
func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	resources, err := s.resourceService.List(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	results := make([]resourceResponse, 0, len(resources))
	for _, resource := range resources {
		results = append(results, toResponse(resource))
	}

	response.Success(w, results, s.logger)
}

// handleGetResource returns a single resource by ID.
func (s *Server) handleGetResource(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resource, err := s.resourceService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, toResponse(resource), s.logger)
}

// handleUpdateResource replaces an existing resource with the request payload.
// Fields absent from the payload are absent from the stored document afterwards.
func (s *Server) handleUpdateResource(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req resourceRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	resource, err := s.resourceService.Update(r.Context(), id, req.toInput())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, toResponse(resource), s.logger)
}

// handleDeleteResource removes a resource. Deleting an absent resource is
// not an error; the operation reports success either way.
func (s *Server) handleDeleteResource(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.resourceService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
