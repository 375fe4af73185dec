package daemon

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"subtrans/internal/api"
	"subtrans/internal/config"
	"subtrans/internal/language"
	"subtrans/internal/logging"
	"subtrans/internal/services"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

type apiServer struct {
	logger        *slog.Logger
	daemon        *Daemon
	maxUpload     int64
	defaultSource string
	defaultTarget string

	server *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) *apiServer {
	srv := &apiServer{
		logger:        logging.NewComponentLogger(logger, "api-server"),
		daemon:        d,
		maxUpload:     cfg.MaxUploadBytes(),
		defaultSource: cfg.Translation.DefaultSource,
		defaultTarget: cfg.Translation.DefaultTarget,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/translate-srt", srv.handleTranslateSRT)
	mux.HandleFunc("/api/translate", srv.handleTranslate)
	mux.HandleFunc("/api/languages", srv.handleLanguages)
	mux.HandleFunc("/api/status", srv.handleStatus)

	srv.server = &http.Server{
		Handler:           srv.withRequestContext(srv.authMiddleware(cfg.Server.APIToken, mux)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// withRequestContext tags each request with a correlation id and logs its
// completion.
func (s *apiServer) withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(api.HeaderRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(api.HeaderRequestID, requestID)
		ctx := services.WithRequestID(r.Context(), requestID)
		s.daemon.requests.Add(1)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))

		logging.WithContext(ctx, s.logger).Debug("request handled",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", rec.status),
			logging.Duration("elapsed", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *apiServer) handleTranslateSRT(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	logger := logging.WithContext(r.Context(), s.logger)

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		if isTooLarge(err) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "File too large.")
			return
		}
		s.writeError(w, http.StatusBadRequest, "Malformed upload.")
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	source, target, err := language.ResolvePair(
		formValue(r, api.FormSourceLang, s.defaultSource),
		formValue(r, api.FormTargetLang, s.defaultTarget),
	)
	if err != nil {
		logger.Info("rejected upload", logging.String("reason", err.Error()))
		s.writeError(w, http.StatusBadRequest, "Invalid language code provided.")
		return
	}

	file, header, err := r.FormFile(api.FormFile)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			s.writeError(w, http.StatusBadRequest, "No file uploaded.")
			return
		}
		logging.WarnWithContext(logger, "failed to open upload", "upload_read_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check free space for temporary files"),
		)
		s.writeError(w, http.StatusInternalServerError, "Failed to read file.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		if isTooLarge(err) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "File too large.")
			return
		}
		logging.WarnWithContext(logger, "failed to read upload", "upload_read_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check free space for temporary files"),
		)
		s.writeError(w, http.StatusInternalServerError, "Failed to read file.")
		return
	}
	content := string(data)
	if !utf8.ValidString(content) {
		content = strings.ToValidUTF8(content, "�")
	}

	output, result := s.daemon.runner.RunContent(r.Context(), header.Filename, content, source, target)

	h := w.Header()
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("Content-Disposition", `attachment; filename="`+api.DownloadName(header.Filename)+`"`)
	h.Set(api.HeaderBlocks, strconv.Itoa(result.Summary.Total))
	h.Set(api.HeaderFailed, strconv.Itoa(result.Summary.Failed))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, output); err != nil {
		logger.Warn("failed to write translated subtitles", logging.Error(err))
	}
}

func (s *apiServer) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	var req api.TranslateTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if isTooLarge(err) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "Request too large.")
			return
		}
		s.writeError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		s.writeError(w, http.StatusBadRequest, "Text is required.")
		return
	}
	source, target, err := language.ResolvePair(
		defaultString(req.SourceLang, s.defaultSource),
		defaultString(req.TargetLang, s.defaultTarget),
	)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid language code provided.")
		return
	}

	ctx := r.Context()
	translation, err := s.daemon.translator.Translate(ctx, text, source, target)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, s.logger), "text translation failed", "translate_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the translation provider and network access"),
		)
		s.writeError(w, services.HTTPStatus(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.FromTranslation(translation))
}

func (s *apiServer) handleLanguages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, api.Languages())
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	status := s.daemon.Status()
	s.writeJSON(w, http.StatusOK, api.DaemonStatus{
		Running:         status.Running,
		PID:             status.PID,
		Bind:            status.Bind,
		Provider:        status.Provider,
		Enhancement:     status.Enhancement,
		ClassifierReady: status.ClassifierReady,
		LockFilePath:    status.LockFilePath,
		StartedAt:       api.FormatTime(status.StartedAt),
		Requests:        status.Requests,
	})
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}

func formValue(r *http.Request, key, fallback string) string {
	return defaultString(r.FormValue(key), fallback)
}

func defaultString(value, fallback string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return fallback
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
