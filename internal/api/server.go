package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pbaille/gallery/internal/gallery"
	"github.com/pbaille/gallery/internal/store"
	"go.uber.org/zap"
)

// defaultTexture is served for any missing texture
const defaultTexture = "Canestra_di_frutta_Caravaggio.jpg"

var assetTypes = map[string]string{
	".js":      "application/javascript",
	".json":    "application/json",
	".geojson": "application/geo+json",
	".svg":     "image/svg+xml",
	".jpg":     "image/jpeg",
	".jpeg":    "image/jpeg",
	".png":     "image/png",
	".glb":     "model/gltf-binary",
	".gltf":    "model/gltf+json",
	".bin":     "application/octet-stream",
	".obj":     "text/plain",
	".ttf":     "font/ttf",
	".woff":    "font/woff",
	".woff2":   "font/woff2",
	".mp3":     "audio/mpeg",
	".wav":     "audio/wav",
}

var textureTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// Options configures the gallery server
type Options struct {
	Addr           string
	Root           string
	ThreeJSVersion string
}

// Server serves the gallery pages, their static assets and the annotation
// history
type Server struct {
	store *store.Store
	opts  Options
	log   *zap.Logger
}

// New creates a new gallery server. s may be nil, in which case the run
// history endpoints report 503.
func New(s *store.Store, opts Options, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{store: s, opts: opts, log: log}
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /{$}", s.index)
	mux.HandleFunc("GET /index.html", s.index)
	mux.HandleFunc("GET /threejs/{animation}", s.threejs)

	// Static assets
	mux.HandleFunc("GET /style.css", s.style)
	mux.HandleFunc("GET /src/{path...}", s.srcAsset)
	mux.HandleFunc("GET /textures/{file...}", s.texture)
	mux.HandleFunc("GET /scripts/helvetiker_regular.typeface.json", s.helvetiker)
	mux.HandleFunc("GET /{path...}", s.jsonFile)

	// API
	mux.HandleFunc("GET /api/animations", s.listAnimations)
	mux.HandleFunc("GET /api/runs", s.listRuns)
	mux.HandleFunc("GET /api/runs/{id}", s.getRun)
	mux.HandleFunc("GET /health", s.health)

	return s.withLogging(withCORS(mux))
}

// Run starts the HTTP server
func (s *Server) Run() error {
	s.log.Info("Currently serving", zap.String("url", "http://"+s.opts.Addr), zap.String("root", s.opts.Root))
	return http.ListenAndServe(s.opts.Addr, s.Handler())
}

// withCORS adds CORS headers for frontend development
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		h.ServeHTTP(w, r)
	})
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, gallery.Page{
		Fullscreen:     true,
		SmallHeader:    true,
		CSS:            gallery.SmallHeaderCSS,
		ThreeJSVersion: s.opts.ThreeJSVersion,
		Drawing:        gallery.Resolve(gallery.DefaultKey),
	})
}

func (s *Server) threejs(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, gallery.Page{
		CSS:            gallery.EmbeddedCSS,
		ThreeJSVersion: s.opts.ThreeJSVersion,
		Drawing:        gallery.Resolve(r.PathValue("animation")),
	})
}

func (s *Server) renderPage(w http.ResponseWriter, p gallery.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := gallery.RenderPage(w, p); err != nil {
		s.log.Error("render page", zap.String("drawing", p.Drawing.Key), zap.Error(err))
	}
}

func (s *Server) style(w http.ResponseWriter, r *http.Request) {
	s.serveFile(w, r, "style.css", "text/css")
}

func (s *Server) helvetiker(w http.ResponseWriter, r *http.Request) {
	s.serveFile(w, r, "helvetiker_regular.typeface.json", "application/json")
}

func (s *Server) srcAsset(w http.ResponseWriter, r *http.Request) {
	rel := "src/" + r.PathValue("path")
	ctype, ok := assetTypes[strings.ToLower(path.Ext(rel))]
	if !ok {
		notFound(w)
		return
	}
	s.serveFile(w, r, rel, ctype)
}

func (s *Server) texture(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	ctype, ok := textureTypes[strings.ToLower(path.Ext(file))]
	if !ok {
		notFound(w)
		return
	}

	rel := "src/textures/" + file
	if _, ok := s.localPath(rel); !ok {
		rel = "src/textures/" + defaultTexture
	}
	s.serveFile(w, r, rel, ctype)
}

func (s *Server) jsonFile(w http.ResponseWriter, r *http.Request) {
	rel := r.PathValue("path")
	if path.Ext(rel) != ".json" {
		notFound(w)
		return
	}
	s.serveFile(w, r, rel, "application/json")
}

// localPath maps a slash separated path below the root to a regular file
func (s *Server) localPath(rel string) (string, bool) {
	if !filepath.IsLocal(filepath.FromSlash(rel)) {
		return "", false
	}
	p := filepath.Join(s.opts.Root, filepath.FromSlash(rel))
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", false
	}
	return p, true
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, rel, ctype string) {
	p, ok := s.localPath(rel)
	if !ok {
		notFound(w)
		return
	}
	w.Header().Set("Content-Type", ctype)
	http.ServeFile(w, r, p)
}

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("404 Not Found"))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listAnimations(w http.ResponseWriter, r *http.Request) {
	var list []gallery.Animation
	for _, k := range gallery.Keys() {
		a, _ := gallery.Lookup(k)
		list = append(list, a)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"animations": list,
		"default":    gallery.DefaultKey,
	})
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "run history unavailable")
		return
	}

	limit := 20
	offset := 0

	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}

	runs, err := s.store.ListRuns(limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs":   runs,
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "run history unavailable")
		return
	}

	// Support prefix matching
	run, err := s.store.FindRun(r.PathValue("id"))
	if errors.Is(err, store.ErrRunNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, run)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
