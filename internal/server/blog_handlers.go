package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"tubepost/internal/acquire"
	"tubepost/internal/core"
	"tubepost/internal/llm"
	"tubepost/internal/videoref"

	"github.com/go-chi/chi/v5"
)

// GenerateBlogRequest is the body of POST /api/generate-blog.
type GenerateBlogRequest struct {
	YouTubeURL string `json:"youtubeUrl"`
	Style      string `json:"style"`
	Audience   string `json:"audience"`
	Length     string `json:"length"`
}

// GenerateBlogResponse carries the identifier of the persisted blog.
type GenerateBlogResponse struct {
	BlogID string `json:"blogId"`
}

// BlogListResponse represents the response for listing recent blogs
type BlogListResponse struct {
	Blogs []core.Blog `json:"blogs"`
	Total int         `json:"total"`
}

// handleGenerateBlog handles POST /api/generate-blog
func (s *Server) handleGenerateBlog(w http.ResponseWriter, r *http.Request) {
	var req GenerateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.YouTubeURL == "" {
		s.respondError(w, http.StatusBadRequest, "YouTube URL is required")
		return
	}

	opts := core.GenerationOptions{
		Style:    req.Style,
		Audience: req.Audience,
		Length:   req.Length,
	}

	blogID, err := s.generator.Generate(r.Context(), req.YouTubeURL, opts)
	if err != nil {
		s.log.Error("Blog generation failed", "youtube_url", req.YouTubeURL, "error", err)

		switch {
		case errors.Is(err, videoref.ErrInvalidVideoReference):
			s.respondError(w, http.StatusBadRequest, "Invalid YouTube URL")
		case errors.Is(err, acquire.ErrAcquisitionFailed):
			s.respondError(w, http.StatusBadRequest, "Failed to fetch video information")
		case errors.Is(err, llm.ErrNotConfigured):
			s.respondError(w, http.StatusInternalServerError, "Blog generation is not configured on this server")
		case errors.Is(err, llm.ErrGenerationFailed):
			s.respondError(w, http.StatusInternalServerError, "Failed to generate blog content. Please try again.")
		default:
			s.respondError(w, http.StatusInternalServerError, "Failed to generate blog")
		}
		return
	}

	s.respondJSON(w, http.StatusOK, GenerateBlogResponse{BlogID: blogID})
}

// handleGetBlog handles GET /api/blogs/{id}
func (s *Server) handleGetBlog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	blog, err := s.store.GetBlog(r.Context(), id)
	if err != nil {
		s.log.Error("Failed to load blog", "blog_id", id, "error", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to load blog")
		return
	}
	if blog == nil {
		s.respondError(w, http.StatusNotFound, "Blog not found")
		return
	}

	s.respondJSON(w, http.StatusOK, blog)
}

// handleListBlogs handles GET /api/blogs
func (s *Server) handleListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := s.store.ListRecent(r.Context(), 20)
	if err != nil {
		s.log.Error("Failed to list blogs", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to load blogs")
		return
	}

	if blogs == nil {
		blogs = []core.Blog{}
	}

	s.respondJSON(w, http.StatusOK, BlogListResponse{
		Blogs: blogs,
		Total: len(blogs),
	})
}
