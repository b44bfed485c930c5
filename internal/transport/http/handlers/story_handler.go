package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/vybe-social/vybe/internal/media"
	"github.com/vybe-social/vybe/internal/service"
	"github.com/vybe-social/vybe/internal/transport/http/middleware"
)

type StoryHandler struct {
	storyService *service.StoryService
	mediaStore   media.Store
	maxUpload    int64
}

func NewStoryHandler(storyService *service.StoryService, mediaStore media.Store, maxUpload int64) *StoryHandler {
	return &StoryHandler{storyService: storyService, mediaStore: mediaStore, maxUpload: maxUpload}
}

func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FORM", "Failed to parse multipart form")
		return
	}
	caption := r.FormValue("caption")

	file, header, err := r.FormFile("media")
	if err != nil {
		writeError(w, http.StatusBadRequest, "MISSING_MEDIA", "Media is required")
		return
	}
	defer file.Close()

	up, err := h.mediaStore.Save(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		if errors.Is(err, media.ErrTooLarge) {
			writeError(w, http.StatusBadRequest, "MEDIA_TOO_LARGE", "Media exceeds the upload limit")
			return
		}
		log.Printf("ERROR story media upload: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	story, err := h.storyService.Create(r.Context(), userID, caption, up.URL, string(up.Kind))
	if err != nil {
		log.Printf("ERROR create story: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusCreated, story)
}

func (h *StoryHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	stories, err := h.storyService.ListActive(r.Context())
	if err != nil {
		log.Printf("ERROR list stories: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, stories)
}

func (h *StoryHandler) View(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	storyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid story ID")
		return
	}

	if err := h.storyService.View(r.Context(), storyID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrStoryNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Story not found")
		default:
			log.Printf("ERROR view story: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Story viewed"})
}

func (h *StoryHandler) UpdateCaption(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	storyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid story ID")
		return
	}

	var input struct {
		Caption string `json:"caption"`
	}
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	story, err := h.storyService.UpdateCaption(r.Context(), storyID, userID, input.Caption)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoryNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Story not found")
		case errors.Is(err, service.ErrNotStoryAuthor):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You can only edit your own stories")
		default:
			log.Printf("ERROR update story: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, story)
}

func (h *StoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	storyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid story ID")
		return
	}

	if err := h.storyService.Delete(r.Context(), storyID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrStoryNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Story not found")
		case errors.Is(err, service.ErrNotStoryAuthor):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You can only delete your own stories")
		default:
			log.Printf("ERROR delete story: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Story deleted successfully"})
}
