package preptext

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const missingTextMessage = `The "text" field is required.`

// Request is the inbound payload for the prepare-text endpoint.
type Request struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// NewRouter mounts the preparation endpoint at POST /<apiPath>.
func NewRouter(service *Service, apiPath string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Post("/"+apiPath, prepareTextHandler(service))
	return r
}

func prepareTextHandler(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request Request
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Text == "" {
			if err != nil {
				log.Debug().Err(err).Msg("cannot decode prepare_text request body")
			}
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Message: missingTextMessage})
			return
		}

		response := service.Prepare(r.Context(), request.Text)
		writeJSON(w, http.StatusOK, response)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("cannot write response body")
	}
}
