package webserver

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"riskbridge/internal/engine"
)

//go:embed www/*
var wwwFiles embed.FS

// Server wires the HTTP handlers to the analysis engine
type Server struct {
	analyzer       *engine.Analyzer
	assets         []string
	maxUploadBytes int64
}

func NewServer(analyzer *engine.Analyzer, assets []string, maxUploadBytes int64) *Server {
	return &Server{
		analyzer:       analyzer,
		assets:         assets,
		maxUploadBytes: maxUploadBytes,
	}
}

// TemplateData holds data for template rendering
type TemplateData struct {
	Lang   string
	T      Translation
	Assets []string
}

// AnalysisResponse is the JSON success payload. Stability and the worst
// case bounds carry a percent suffix for display.
type AnalysisResponse struct {
	Type      string `json:"type"`
	Mean      string `json:"mean"`
	Stability string `json:"stability"`
	Min       string `json:"min"`
	Max       string `json:"max"`
}

func buildAnalysisResponse(result engine.Result) AnalysisResponse {
	return AnalysisResponse{
		Type:      result.InvestmentType,
		Mean:      result.Mean,
		Stability: result.Stability + "%",
		Min:       result.WorstCaseMin + "%",
		Max:       result.WorstCaseMax + "%",
	}
}

func (s *Server) HomeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	lang := GetLanguageFromRequest(r)

	data := TemplateData{
		Lang:   lang,
		T:      GetTranslations(lang),
		Assets: s.assets,
	}

	templateContent, err := wwwFiles.ReadFile("www/index_template.html")
	if err != nil {
		slog.Error("Error reading index_template.html:", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	tmpl, err := template.New("index").Parse(string(templateContent))
	if err != nil {
		slog.Error("Error parsing template:", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	err = tmpl.Execute(w, data)
	if err != nil {
		slog.Error("Error executing template:", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}
}

func (s *Server) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	log := slog.With("handler", "AnalyzeHandler")

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log.Info("Received analysis request", "remote_addr", r.RemoteAddr)

	// Determine language for error messages
	lang := GetLanguageFromRequest(r)

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	err := r.ParseMultipartForm(1024 * 1024) // receive up to 1MB of form data in memory
	if err != nil {
		log.Error("Form parsing failed", "error", err)
		WriteUploadError(w, lang)

		return
	}

	category, err := SanitizeCategory(r.FormValue("investment_type"))
	if err != nil {
		log.Error("Invalid investment type", "error", err)
		WriteUploadError(w, lang)

		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Error("Dataset retrieval failed", "error", err)
		WriteUploadError(w, lang)

		return
	}
	defer file.Close()

	if err := ValidateDatasetUpload(file, header, s.maxUploadBytes); err != nil {
		log.Error("Dataset rejected", "error", err, "filename", header.Filename)
		WriteUploadError(w, lang)

		return
	}

	result, err := s.analyzer.Analyze(r.Context(), category, file)
	if err != nil {
		logBridgeError(log, err)
		WriteBridgeError(w, err, lang)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(buildAnalysisResponse(result)); err != nil {
		log.Error("Failed to encode response", "error", err)
		return
	}

	log.Info("Analysis request served", "category", category)
}

// logBridgeError keeps engine diagnostics (exit code, stderr) in the
// logs; the JSON payload only ever carries the user-facing message.
func logBridgeError(log *slog.Logger, err error) {
	var bridgeErr *engine.Error
	if errors.As(err, &bridgeErr) {
		log.Error("Analysis failed", "kind", string(bridgeErr.Kind),
			"exit_code", bridgeErr.ExitCode, "stderr", bridgeErr.Stderr)

		return
	}

	log.Error("Analysis failed", "error", err)
}

func StaticFileServer() http.Handler {
	subFS, err := fs.Sub(wwwFiles, "www")
	if err != nil {
		slog.Error("Failed to create sub-filesystem", "error", err)
		return http.FileServer(http.FS(wwwFiles))
	}

	return http.FileServer(http.FS(subFS))
}
