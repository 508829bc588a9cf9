package server

import "net/http"

// SessionResponse is the response for POST /api/sessions.
type SessionResponse struct {
	Token string `json:"token"`
}

func handleCreateSession(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.Create()
		writeJSON(w, http.StatusCreated, SessionResponse{Token: sess.Token})
	}
}
