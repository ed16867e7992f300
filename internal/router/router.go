package router

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/cx-tal-miterani/lodging-booking/internal/handlers"
	"github.com/cx-tal-miterani/lodging-booking/internal/websocket"
	"github.com/gorilla/mux"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *handlers.Handler, hub *websocket.Hub) *mux.Router {
	r := mux.NewRouter()

	r.Use(loggingMiddleware)
	r.Use(corsMiddleware)

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/availability", h.CheckAvailability).Methods(http.MethodGet, http.MethodOptions)

	// Reservations
	api.HandleFunc("/reservations", h.ListReservations).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/reservations", h.CreateReservation).Methods(http.MethodPost, http.MethodOptions)

	// WebSocket for booking events; registered before {id} so it is not captured
	api.HandleFunc("/reservations/ws", hub.HandleWebSocket)
	api.HandleFunc("/reservations/{id}", h.GetReservation).Methods(http.MethodGet, http.MethodOptions)

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusWriter captures the final status code and body size.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the upgrader needs the raw writer to hijack the connection
		if websocketUpgrade(r) {
			next.ServeHTTP(w, r)
			log.Printf("method=%s path=%s upgrade=websocket", r.Method, r.URL.RequestURI())
			return
		}

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}

		next.ServeHTTP(sw, r)

		log.Printf(
			"method=%s path=%s status=%d bytes=%d dur=%dms",
			r.Method, r.URL.RequestURI(), sw.status, sw.bytes, time.Since(start).Milliseconds(),
		)
	})
}

func websocketUpgrade(r *http.Request) bool {
	for _, v := range r.Header.Values("Upgrade") {
		if strings.EqualFold(v, "websocket") {
			return true
		}
	}
	return false
}
