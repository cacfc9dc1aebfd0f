package handlers

import (
	"encoding/json"
	"net/http"

	domerrors "github.com/lehi10/tuagenda-sub000/internal/domain/errors"
)

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is empty, a default is used from code.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	default:
		return ErrCodeInternal
	}
}

// writeDomainErr maps an application error to an HTTP response by kind.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch domerrors.KindOf(err) {
	case domerrors.KindValidation, domerrors.KindInvariant:
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
	case domerrors.KindNotFound:
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case domerrors.KindConflict:
		writeErr(w, http.StatusConflict, ErrCodeConflict, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
