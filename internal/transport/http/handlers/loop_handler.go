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

type LoopHandler struct {
	loopService *service.LoopService
	mediaStore  media.Store
	maxUpload   int64
}

func NewLoopHandler(loopService *service.LoopService, mediaStore media.Store, maxUpload int64) *LoopHandler {
	return &LoopHandler{loopService: loopService, mediaStore: mediaStore, maxUpload: maxUpload}
}

func (h *LoopHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FORM", "Failed to parse multipart form")
		return
	}
	caption := r.FormValue("caption")

	file, header, err := r.FormFile("video")
	if err != nil {
		writeError(w, http.StatusBadRequest, "MISSING_VIDEO", "Video is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if media.KindOf(contentType) != media.KindVideo {
		writeError(w, http.StatusBadRequest, "INVALID_MEDIA", "Loops accept video uploads only")
		return
	}

	up, err := h.mediaStore.Save(r.Context(), header.Filename, contentType, file)
	if err != nil {
		if errors.Is(err, media.ErrTooLarge) {
			writeError(w, http.StatusBadRequest, "MEDIA_TOO_LARGE", "Video exceeds the upload limit")
			return
		}
		log.Printf("ERROR loop media upload: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	loop, err := h.loopService.Upload(r.Context(), userID, caption, up.URL)
	if err != nil {
		log.Printf("ERROR create loop: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusCreated, loop)
}

func (h *LoopHandler) List(w http.ResponseWriter, r *http.Request) {
	loops, err := h.loopService.List(r.Context())
	if err != nil {
		log.Printf("ERROR list loops: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, loops)
}

func (h *LoopHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	loopID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid loop ID")
		return
	}

	liked, err := h.loopService.ToggleLike(r.Context(), loopID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLoopNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Loop not found")
		default:
			log.Printf("ERROR toggle loop like: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

func (h *LoopHandler) UpdateCaption(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	loopID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid loop ID")
		return
	}

	var input struct {
		Caption string `json:"caption"`
	}
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	loop, err := h.loopService.UpdateCaption(r.Context(), loopID, userID, input.Caption)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLoopNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Loop not found")
		case errors.Is(err, service.ErrNotLoopAuthor):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You can only edit your own loops")
		default:
			log.Printf("ERROR update loop: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, loop)
}

func (h *LoopHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	loopID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid loop ID")
		return
	}

	if err := h.loopService.Delete(r.Context(), loopID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrLoopNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Loop not found")
		case errors.Is(err, service.ErrNotLoopAuthor):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You can only delete your own loops")
		default:
			log.Printf("ERROR delete loop: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Loop deleted successfully"})
}

func (h *LoopHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	loopID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid loop ID")
		return
	}

	var input struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	comment, err := h.loopService.AddComment(r.Context(), loopID, userID, input.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyComment):
			writeError(w, http.StatusBadRequest, "EMPTY_COMMENT", "Comment text is required")
		case errors.Is(err, service.ErrLoopNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Loop not found")
		default:
			log.Printf("ERROR add loop comment: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

func (h *LoopHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	loopID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid loop ID")
		return
	}

	comments, err := h.loopService.ListComments(r.Context(), loopID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLoopNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Loop not found")
		default:
			log.Printf("ERROR list loop comments: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

func (h *LoopHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	loopID, err := uuid.Parse(r.PathValue("loopId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid loop ID")
		return
	}
	commentID, err := uuid.Parse(r.PathValue("commentId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid comment ID")
		return
	}

	if err := h.loopService.DeleteComment(r.Context(), loopID, commentID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrLoopNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Loop not found")
		case errors.Is(err, service.ErrCommentNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Comment not found")
		case errors.Is(err, service.ErrNotCommentOwner):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Not authorized to delete this comment")
		default:
			log.Printf("ERROR delete loop comment: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted successfully"})
}
