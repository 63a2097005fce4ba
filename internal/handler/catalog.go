package handler

import "net/http"

// getCatalog handles GET /catalog. The list is fixed for the lifetime of
// the process, so clients may cache it for the session.
func (s *Server) getCatalog(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.catalog.Entries())
}
