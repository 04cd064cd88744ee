package http

import (
	"net/http"
)

func (a *API) handleListBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := a.branchSvc.List(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := make([]map[string]any, 0, len(branches))
	for _, b := range branches {
		resp = append(resp, mapBranch(b))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": resp})
}

func (a *API) handleGetBranch(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	b, err := a.branchSvc.GetByID(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapBranch(b))
}
