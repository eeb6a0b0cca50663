package bowlinghandlers

import (
	"encoding/json"
	"errors"
	"net/http"

	bowlingservice "github.com/Black-And-White-Club/tenpin/app/modules/bowling/application"
	bowlingtypes "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/types"
	bowlingevents "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/events"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// classify maps a service error to its HTTP status, rejection kind and the
// message shown to the client.
func classify(err error) (status int, kind, message string) {
	var fe *bowlingtypes.FormatError
	var ve *bowlingtypes.ValidationError
	switch {
	case errors.As(err, &fe):
		return http.StatusBadRequest, bowlingevents.RejectionFormat, fe.Reason
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, bowlingevents.RejectionValidation, ve.Reason
	case errors.Is(err, bowlingservice.ErrUnknownStrategy):
		return http.StatusBadRequest, "strategy", err.Error()
	case errors.Is(err, bowlingservice.ErrScoringFailed):
		return http.StatusInternalServerError, bowlingevents.RejectionScoring, bowlingservice.ErrScoringFailed.Error()
	default:
		return http.StatusInternalServerError, "internal", http.StatusText(http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Kind: kind})
}
