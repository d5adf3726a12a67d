package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/api/shared"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
)

// LessonSynthesizer produces personalized lessons.
type LessonSynthesizer interface {
	Synthesize(ctx context.Context, req domain.SynthesisRequest) (domain.SynthesisResult, error)
}

// LessonRequest is the body of POST /api/lessons. Day and Age ranges are
// checked by domain.NewSynthesisRequest so a zero value reports its field.
type LessonRequest struct {
	Day      int    `json:"day"`
	Age      int    `json:"age"`
	Tone     string `json:"tone" validate:"required"`
	Language string `json:"language"`
}

// LessonHandler serves synthesized lessons.
type LessonHandler struct {
	synthesizer LessonSynthesizer
	logger      *slog.Logger
}

// NewLessonHandler creates a new LessonHandler.
func NewLessonHandler(synthesizer LessonSynthesizer, logger *slog.Logger) *LessonHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LessonHandler{
		synthesizer: synthesizer,
		logger:      logger.With("component", "lesson_handler"),
	}
}

// GetLesson handles GET /api/lessons/{day}?age=&tone=&language=.
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		shared.RespondWithFieldError(w, r, http.StatusBadRequest, "day", "day must be an integer")
		return
	}

	q := r.URL.Query()
	ageParam := q.Get("age")
	if ageParam == "" {
		shared.RespondWithFieldError(w, r, http.StatusBadRequest, "age", "age is required")
		return
	}
	age, err := strconv.Atoi(ageParam)
	if err != nil {
		shared.RespondWithFieldError(w, r, http.StatusBadRequest, "age", "age must be an integer")
		return
	}

	h.respond(w, r, day, age, q.Get("tone"), q.Get("language"))
}

// CreateLesson handles POST /api/lessons.
func (h *LessonHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var req LessonRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, shared.ValidationMessage(err))
		return
	}

	h.respond(w, r, req.Day, req.Age, req.Tone, req.Language)
}

func (h *LessonHandler) respond(w http.ResponseWriter, r *http.Request, day, age int, tone, lang string) {
	req, err := domain.NewSynthesisRequest(day, age, tone, lang)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.synthesizer.Synthesize(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.logger.DebugContext(r.Context(), "lesson served",
		"key", req.CacheKey(),
		"from_cache", result.Metadata.FromCache,
		"fallback", result.Metadata.IsFallback)
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

func (h *LessonHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	if status == http.StatusBadRequest {
		shared.RespondWithFieldError(w, r, status, errorField(err), GetSafeErrorMessage(err))
		return
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
