package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"audioscribe/internal/gateway/apierrors"
	"audioscribe/internal/gateway/middleware"
	"audioscribe/internal/storage"
	"audioscribe/internal/transcriber"
)

// audioField is the single multipart field name the gateway accepts.
const audioField = "audio"

// noTranscriptPlaceholder is returned when the provider answers successfully
// but the first alternative carries no text.
const noTranscriptPlaceholder = "No transcript available"

// TranscribeHandler bridges uploaded audio to the transcription provider. It
// holds no per-request state and performs no retries.
type TranscribeHandler struct {
	transcriber transcriber.Transcriber
	archive     storage.AudioStore
	logger      *zap.Logger
}

// NewTranscribeHandler creates a new transcribe handler. archive may be nil,
// in which case uploads are not archived.
func NewTranscribeHandler(t transcriber.Transcriber, archive storage.AudioStore, logger *zap.Logger) *TranscribeHandler {
	return &TranscribeHandler{
		transcriber: t,
		archive:     archive,
		logger:      logger,
	}
}

// transcribeResponse is the success body of POST /transcribe.
type transcribeResponse struct {
	Transcript string `json:"transcript"`
}

// Transcribe handles POST /transcribe: one audio file under the "audio"
// field in, {"transcript": ...} out.
func (h *TranscribeHandler) Transcribe(c *gin.Context) {
	header, err := c.FormFile(audioField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			middleware.HandleError(c, apierrors.NewPayloadTooLargeError("Audio file too large"))
			return
		}
		middleware.HandleError(c, apierrors.NewBadRequestError("No audio file uploaded"))
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "audio/") {
		middleware.HandleError(c, apierrors.NewBadRequestError("Invalid file type. Only audio files are allowed."))
		return
	}

	file, err := header.Open()
	if err != nil {
		middleware.HandleError(c, apierrors.NewBadRequestError("Invalid audio file"))
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		middleware.HandleError(c, apierrors.NewBadRequestError("Invalid audio file"))
		return
	}
	if len(audio) == 0 {
		middleware.HandleError(c, apierrors.NewBadRequestError("Invalid audio file"))
		return
	}

	if h.archive != nil {
		if key, err := h.archive.Put(c.Request.Context(), header.Filename, mimeType, audio); err != nil {
			// Archival is best-effort; the transcription still proceeds.
			h.logger.Warn("audio archive failed",
				zap.String("file", header.Filename),
				zap.Error(err),
			)
		} else {
			h.logger.Debug("audio archived", zap.String("key", key))
		}
	}

	result, err := h.transcriber.Transcribe(c.Request.Context(), audio, mimeType)
	if err != nil {
		h.logger.Error("transcription failed",
			zap.String("file", header.Filename),
			zap.Error(err),
		)
		middleware.HandleError(c, apierrors.NewInternalError("Transcription failed", err.Error()))
		return
	}

	transcript, err := result.FirstTranscript()
	if err != nil {
		middleware.HandleError(c, apierrors.NewInternalError("Transcription failed", err.Error()))
		return
	}
	if transcript == "" {
		transcript = noTranscriptPlaceholder
	}

	h.logger.Info("transcription complete",
		zap.String("file", header.Filename),
		zap.Int("audio_bytes", len(audio)),
		zap.Int("transcript_chars", len(transcript)),
	)

	c.JSON(http.StatusOK, transcribeResponse{Transcript: transcript})
}

// Liveness handles GET /.
func (h *TranscribeHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Server is running successfully!"})
}
