package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"fjacquet/camt-recon/internal/config"
	"fjacquet/camt-recon/internal/logging"
	"fjacquet/camt-recon/internal/parsererror"
	"fjacquet/camt-recon/internal/pipeline"
	"fjacquet/camt-recon/internal/reconciler"
	"fjacquet/camt-recon/internal/report"
)

// Multipart form fields
const (
	FieldStatement         = "statement"
	FieldLedger            = "ledger"
	FieldAmountTolerance   = "amount_tolerance"
	FieldDateToleranceDays = "date_tolerance_days"
	FieldFormat            = "format"
)

// badRequest marks errors caused by the request itself
type badRequest struct {
	msg string
}

func (e *badRequest) Error() string { return e.msg }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondWithError(w, http.StatusRequestEntityTooLarge, "upload exceeds limit")
			return
		}
		s.respondWithError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	in, format, err := s.readInput(r)
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.runner.Run(r.Context(), in)
	if err != nil {
		s.respondWithError(w, statusFor(err), err.Error())
		return
	}

	body, err := render(result, format)
	if err != nil {
		s.logger.WithError(err).Error("Failed to render report", logging.F(logging.FieldRunID, result.RunID))
		s.respondWithError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	w.Header().Set(HeaderRunID, result.RunID)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) readInput(r *http.Request) (pipeline.Input, report.Format, error) {
	var in pipeline.Input

	statement, name, err := readFormFile(r, FieldStatement)
	if err != nil {
		return in, "", err
	}
	in.Statement, in.StatementName = statement, name

	ledgerText, name, err := readFormFile(r, FieldLedger)
	if err != nil {
		return in, "", err
	}
	in.Ledger, in.LedgerName = ledgerText, name

	tol, err := s.readTolerance(r)
	if err != nil {
		return in, "", err
	}
	in.Tolerance = tol

	format := s.opts.Format
	if name := r.FormValue(FieldFormat); strings.TrimSpace(name) != "" {
		format, err = report.ParseFormat(name)
		if err != nil {
			return in, "", &badRequest{msg: err.Error()}
		}
	}
	return in, format, nil
}

// readTolerance returns nil when neither override is present
func (s *Server) readTolerance(r *http.Request) (*reconciler.Tolerance, error) {
	amountText := strings.TrimSpace(r.FormValue(FieldAmountTolerance))
	daysText := strings.TrimSpace(r.FormValue(FieldDateToleranceDays))
	if amountText == "" && daysText == "" {
		return nil, nil
	}

	amount, days := s.opts.Tolerance.Amount, s.opts.Tolerance.DateDays
	if amountText != "" {
		parsed, err := config.ParseAmountTolerance(amountText)
		if err != nil {
			return nil, &badRequest{msg: fmt.Sprintf("invalid %s: %v", FieldAmountTolerance, err)}
		}
		amount = parsed
	}
	if daysText != "" {
		parsed, err := strconv.Atoi(daysText)
		if err != nil {
			return nil, &badRequest{msg: fmt.Sprintf("invalid %s: %q", FieldDateToleranceDays, daysText)}
		}
		days = parsed
	}

	tol := reconciler.NewTolerance(amount, days)
	return &tol, nil
}

func readFormFile(r *http.Request, field string) (string, string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", "", &badRequest{msg: "missing file: " + field}
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", &badRequest{msg: "failed to read file: " + header.Filename}
	}
	return string(data), header.Filename, nil
}

func render(result *pipeline.Result, format report.Format) ([]byte, error) {
	switch format {
	case report.FormatXLSX:
		var buf bytes.Buffer
		if err := report.WriteXLSX(&buf, result.Partition, result.Summary()); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case report.FormatSummary:
		return report.RenderSummary(result.Summary())
	default:
		return []byte(report.Render(result.Partition)), nil
	}
}

func statusFor(err error) int {
	var (
		malformed *parsererror.MalformedDocumentError
		missing   *parsererror.MissingColumnsError
	)
	switch {
	case errors.As(err, &malformed), errors.As(err, &missing):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondWithError(w http.ResponseWriter, status int, errMsg string) {
	s.logger.Error("Request failed", logging.F("status", status), logging.F(logging.FieldError, errMsg))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   errMsg,
	})
}
