package http

import (
	"net/http"
)

func (a *API) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := a.sessions.Create(r.Context())
	token, err := a.tokenSvc.GenerateToken(sess.ID)
	if err != nil {
		_ = a.sessions.End(r.Context(), sess.ID)
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"session_id": sess.ID,
		"token":      token,
	})
}

func (a *API) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sess := getSession(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, errNoSession)
		return
	}
	if err := a.sessions.End(r.Context(), sess.ID); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
