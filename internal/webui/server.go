// Package webui exposes a minimal HTTP server with an HTML form that lets
// you upload a CSV or Excel file, run the preprocessing pipeline over it,
// and see the detected issues, suggestions, and a preview of the cleaned
// data. Results are kept in a Store so they can be fetched again by ID.
//
// Routes:
//
//	GET  /                  → upload form + recent results
//	POST /preprocess        → runs the pipeline on the uploaded file; renders results inline
//	POST /api/preprocess    → machine-friendly API, returns the full result as JSON
//	POST /api/reprocess     → reruns the pipeline on already-decoded rows
//	GET  /api/results/{id}  → fetches a stored result as JSON
package webui

import (
	_ "embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log"
	"net/http"

	"dataprep/internal/config"
	"dataprep/internal/pipeline"
	"dataprep/internal/storage"
	"dataprep/pkg/table"
)

// maxUploadBytes bounds how much of an upload is read into memory.
const maxUploadBytes = 64 << 20

// Config controls server startup.
type Config struct {
	Addr  string
	Store storage.Store
}

// Server wraps http.Server for convenience.
type Server struct {
	cfg  Config
	mux  *http.ServeMux
	tmpl *template.Template
}

// NewServer constructs a Server with routes and embedded template.
func NewServer(cfg Config) *Server {
	if cfg.Store == nil {
		cfg.Store = storage.NewMemStore()
	}
	s := &Server{
		cfg: cfg,
		mux: http.NewServeMux(),
		// Parse the embedded template at init time.
		tmpl: template.Must(template.New("index").Parse(indexHTML)),
	}
	s.routes()
	return s
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return http.ListenAndServe(s.cfg.Addr, s.mux)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/preprocess", s.handlePreprocess)
	s.mux.HandleFunc("/api/preprocess", s.handleAPIPreprocess)
	s.mux.HandleFunc("/api/reprocess", s.handleAPIReprocess)
	s.mux.HandleFunc("/api/results/", s.handleAPIResult)
}

// page is the template payload for both the empty form and the results view.
type page struct {
	Filename string
	Result   *pipeline.Result
	Preview  []previewRow
	Recent   []storage.Entry
	Err      string
}

type previewRow struct {
	Cells []string
}

// handleIndex renders the input form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	recent, _ := s.cfg.Store.List(r.Context())
	_ = s.tmpl.Execute(w, page{Recent: recent})
}

// handlePreprocess processes the upload form and renders a results page.
func (s *Server) handlePreprocess(w http.ResponseWriter, r *http.Request) {
	filename, res, err := s.preprocessUpload(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if _, err := s.cfg.Store.Save(r.Context(), filename, res); err != nil {
		log.Println("store save:", err)
	}

	recent, _ := s.cfg.Store.List(r.Context())
	data := page{
		Filename: filename,
		Result:   res,
		Preview:  preview(res, 20),
		Recent:   recent,
	}
	if err := s.tmpl.Execute(w, data); err != nil {
		log.Println("template error:", err)
	}
}

// handleAPIPreprocess returns the full result as JSON so scripts can curl it.
func (s *Server) handleAPIPreprocess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	filename, res, err := s.preprocessUpload(r)
	if err != nil {
		writeJSONError(w, err)
		return
	}
	entry, err := s.cfg.Store.Save(r.Context(), filename, res)
	if err != nil {
		writeJSONError(w, err)
		return
	}
	writeJSON(w, struct {
		ID string `json:"id"`
		*pipeline.Result
	}{entry.ID, res})
}

// reprocessRequest is the JSON body of /api/reprocess.
type reprocessRequest struct {
	Columns []string        `json:"columns"`
	Rows    []table.Row     `json:"rows"`
	Options json.RawMessage `json:"options"`
}

func (s *Server) handleAPIReprocess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	var req reprocessRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&req); err != nil {
		http.Error(w, "bad request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	opts, err := config.FromJSON(req.Options)
	if err != nil {
		writeJSONError(w, err)
		return
	}
	res, err := pipeline.Reprocess(req.Columns, req.Rows, opts)
	if err != nil {
		writeJSONError(w, err)
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleAPIResult(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Path[len("/api/results/"):]
	entry, err := s.cfg.Store.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "no such result", http.StatusNotFound)
		return
	}
	if err != nil {
		writeJSONError(w, err)
		return
	}
	writeJSON(w, entry)
}

// preprocessUpload reads the multipart form shared by the HTML and JSON
// endpoints: a "file" part plus an optional "options" JSON field.
func (s *Server) preprocessUpload(r *http.Request) (string, *pipeline.Result, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", nil, errors.New("bad form: " + err.Error())
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return "", nil, errors.New("missing file upload")
	}
	defer f.Close()

	buf, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return "", nil, err
	}

	opts, err := config.FromJSON([]byte(r.FormValue("options")))
	if err != nil {
		return "", nil, err
	}

	res, err := pipeline.Preprocess(buf, hdr.Filename, opts)
	if err != nil {
		return "", nil, err
	}
	return hdr.Filename, res, nil
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	recent, _ := s.cfg.Store.List(r.Context())
	w.WriteHeader(http.StatusBadRequest)
	_ = s.tmpl.Execute(w, page{Err: err.Error(), Recent: recent})
}

// preview flattens the first n rows into display strings in column order.
func preview(res *pipeline.Result, n int) []previewRow {
	if n > len(res.Data) {
		n = len(res.Data)
	}
	out := make([]previewRow, 0, n)
	for _, row := range res.Data[:n] {
		pr := previewRow{Cells: make([]string, len(res.Columns))}
		for i, c := range res.Columns {
			pr.Cells[i] = displayValue(row[c])
		}
		out = append(out, pr)
	}
	return out
}

func displayValue(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	s := string(b)
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	return s
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("encode response:", err)
	}
}

func writeJSONError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// indexHTML is an embedded, minimal page with vanilla styling.
//
//go:embed index.tmpl.html
var indexHTML string
