package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pizzeria-go/middleware"
	"pizzeria-go/remote"
	"pizzeria-go/utils"
)

// primitiveIDFromPath parses the {id} route variable as an ObjectID.
func primitiveIDFromPath(r *http.Request) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(mux.Vars(r)["id"])
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// claimsFrom pulls the authenticated user's claims out of the request
// context placed there by the auth middleware.
func claimsFrom(r *http.Request) (*utils.Claims, bool) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	return claims, ok
}

// remoteError maps collaborator failures onto HTTP responses: a missing row
// is 404, anything else from the hosted database gets a generic retry
// message.
func remoteError(w http.ResponseWriter, err error) {
	var rerr *remote.RemoteError
	switch {
	case errors.Is(err, remote.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.As(err, &rerr):
		http.Error(w, "Servicio no disponible. Intenta nuevamente.", http.StatusBadGateway)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
