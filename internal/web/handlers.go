package web

import (
	"crypto/subtle"
	_ "embed"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/zugloev/tagregiszter/internal/intake"
	"github.com/zugloev/tagregiszter/internal/logging"
	"github.com/zugloev/tagregiszter/internal/store"
)

//go:embed static/form.html
var formHTML []byte

// submitErrorResponse is the 400 body for a failed validation: a joined
// summary plus the full ordered list so the form can show every correction
// at once.
type submitErrorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors"`
}

// handleIndex serves the membership form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(formHTML)
}

// handleSubmit accepts one form submission as JSON or urlencoded form data,
// validates it and stores the normalized record.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	var sub intake.Submission
	switch ct := r.Header.Get("Content-Type"); {
	case strings.Contains(ct, "application/json"):
		var err error
		if sub, err = intake.DecodeJSON(r.Body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
	case strings.Contains(ct, "application/x-www-form-urlencoded"):
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid form body")
			return
		}
		sub = intake.DecodeForm(r.PostForm)
	default:
		writeError(w, http.StatusUnsupportedMediaType, "Unsupported content-type")
		return
	}

	// Honeypot: answer success, store nothing. The fabricated OK keeps
	// bots from learning they were caught.
	if sub.IsSpam() {
		logger.Debug("honeypot tripped, dropping submission", "ip", clientIP(r))
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	res := intake.Validate(sub)
	if !res.Valid {
		writeJSON(w, http.StatusBadRequest, submitErrorResponse{
			Error:  "Validation error: " + strings.Join(res.Errors, "; "),
			Errors: res.Errors,
		})
		return
	}

	meta := store.SubmitMeta{IP: clientIP(r), UserAgent: r.UserAgent()}
	if err := s.members.Insert(r.Context(), res.Record, meta); err != nil {
		logger.Error("member insert failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	logger.Info("member submission stored", "ip", meta.IP)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleExport streams all stored members as CSV. The shared-secret token
// comes from the X-Admin-Token header or the token query parameter. With no
// token configured the endpoint is unconditionally unauthorized.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	token := r.Header.Get("X-Admin-Token")
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if !tokenValid(token, s.cfg.Intake.AdminToken) {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	columns, rows, err := s.members.ExportAll(r.Context())
	if err != nil {
		logger.Error("member export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=members_%s.csv", time.Now().Format("2006-01-02")))
	if err := intake.WriteCSV(w, columns, rows); err != nil {
		// Headers are already out; nothing left but to log.
		logger.Error("csv write failed", "error", err)
		return
	}

	logger.Info("member export served", "rows", len(rows))
}

// handleNotFound answers every unmatched path or method.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Not found", http.StatusNotFound)
}

// tokenValid compares the presented token against the configured secret in
// constant time. An unconfigured or empty secret never matches.
func tokenValid(presented, configured string) bool {
	if configured == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(configured)) == 1
}

// clientIP returns the request's client address without the port. The RealIP
// middleware has already substituted proxy headers where present, in which
// case RemoteAddr is a bare IP.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
