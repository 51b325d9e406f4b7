package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"datacheck/internal/checks"
	"datacheck/internal/config"
	apierrors "datacheck/internal/errors"
	"datacheck/internal/loader"
)

// CheckHandler handles check-run HTTP requests.
type CheckHandler struct {
	logger    *slog.Logger
	validate  *validator.Validate
	defaults  config.ChecksConfig
	maxUpload int64
}

// NewCheckHandler creates a new check handler. defaults supplies the
// threshold and report cap used when the request does not override them.
func NewCheckHandler(logger *slog.Logger, defaults config.ChecksConfig, maxUpload int64) *CheckHandler {
	return &CheckHandler{
		logger:    logger.With(slog.String("handler", "checks")),
		validate:  validator.New(),
		defaults:  defaults,
		maxUpload: maxUpload,
	}
}

// Routes returns the check routes, intended to be mounted at /api/checks.
func (h *CheckHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Post("/", h.RunChecks)
	return r
}

// checkParams are the caller-tunable run parameters.
type checkParams struct {
	Threshold float64 `validate:"gt=0"`
}

// RunChecks handles POST /api/checks: a multipart upload with a "file" part
// and an optional "threshold" form field. The response body is the full
// nested check report.
func (h *CheckHandler) RunChecks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		apierrors.InvalidRequest(fmt.Sprintf("failed to parse multipart form: %v", err)).Render(w, r)
		return
	}

	params := checkParams{Threshold: h.defaults.Threshold}
	if raw := r.FormValue("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			apierrors.InvalidThreshold(fmt.Sprintf("threshold %q is not a number", raw)).Render(w, r)
			return
		}
		params.Threshold = v
	}
	if err := h.validate.Struct(params); err != nil {
		apierrors.InvalidThreshold("threshold must be a positive finite number").Render(w, r)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apierrors.MissingFile("multipart field \"file\" is required").Render(w, r)
		return
	}
	defer file.Close()

	if !loader.Supported(header.Filename) {
		apierrors.UnsupportedFormat(fmt.Sprintf("cannot determine tabular format of %q", header.Filename)).Render(w, r)
		return
	}

	tmpPath, cleanup, err := h.saveUpload(file, header.Filename)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to persist upload", slog.String("error", err.Error()))
		apierrors.InternalServer("failed to persist uploaded file").Render(w, r)
		return
	}
	defer cleanup()

	dataset, err := loader.Load(tmpPath)
	if err != nil {
		if errors.Is(err, loader.ErrUnsupportedFormat) {
			apierrors.UnsupportedFormat(err.Error()).Render(w, r)
			return
		}
		apierrors.UnreadableFile(fmt.Sprintf("failed to load %q: %v", header.Filename, err)).Render(w, r)
		return
	}

	runner := checks.NewRunner(h.logger, checks.Options{
		Threshold: params.Threshold,
		ReportCap: h.defaults.ReportCap,
	})
	report, err := runner.Run(ctx, dataset)
	if err != nil {
		if errors.Is(err, checks.ErrInvalidThreshold) {
			apierrors.InvalidThreshold(err.Error()).Render(w, r)
			return
		}
		h.logger.ErrorContext(ctx, "check run failed", slog.String("error", err.Error()))
		apierrors.InternalServer("check run failed").Render(w, r)
		return
	}

	h.logger.InfoContext(ctx, "check run complete",
		slog.String("filename", header.Filename),
		slog.Float64("threshold", params.Threshold),
		slog.Int("sheet_count", len(report)))

	render.JSON(w, r, report)
}

// saveUpload copies the uploaded stream into a fresh temp directory under the
// original base name, so the loader sees the caller's filename for format
// detection and sheet naming. The returned cleanup removes the directory.
func (h *CheckHandler) saveUpload(src io.Reader, filename string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "datacheck-upload-")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.RemoveAll(dir) }

	path := filepath.Join(dir, filepath.Base(filename))
	dst, err := os.Create(path)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
