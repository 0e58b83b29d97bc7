package server

import (
	"fmt"
	"net/http"

	"github.com/sumonst21/opencollective-images/internal/constants"
)

// New builds the HTTP server around the handler's router with sane
// timeouts. Shutdown is driven by the caller.
func New(port int, handler *Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler.Router(),
		ReadTimeout:  constants.HTTPConfig.ReadTimeout,
		WriteTimeout: constants.HTTPConfig.WriteTimeout,
		IdleTimeout:  constants.HTTPConfig.IdleTimeout,
	}
}
