package server

import (
	"bytes"
	"net/http"
)

// responseCacheExpire bounds how long a rendered view is kept, in seconds.
// Keys embed the dashboard revision, so a mutation never serves stale data.
const responseCacheExpire = 10 * 60

// cached serves GET responses from the freecache keyed by dashboard revision,
// path and normalized query.
func (s *Server) cached(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := []byte(s.tracker.Stats().Revision.String() + "|" + r.URL.Path + "?" + r.URL.Query().Encode())

		if body, err := s.cache.Get(key); err == nil {
			s.metrics.ObserveCacheLookup(true)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(http.StatusOK)
			w.Write(body)
			return
		}
		s.metrics.ObserveCacheLookup(false)

		w.Header().Set("X-Cache", "MISS")
		rec := &bodyRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		if rec.status != http.StatusOK {
			return
		}
		if err := s.cache.Set(key, rec.buf.Bytes(), responseCacheExpire); err != nil {
			s.log.Debug("response cache set failed", "path", r.URL.Path, "error", err)
		}
	})
}

// bodyRecorder copies the response body while writing it through.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *bodyRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}
