// Package di provides dependency injection factories for creating application components.
package di

import (
	"twse_ingest/internal/platform/externalapi/twse"
	infrahttp "twse_ingest/internal/platform/http"
)

// NewTWSEClient creates a TWSE OpenAPI client on top of the tuned HTTP client.
func NewTWSEClient(cfg twse.Config) *twse.Client {
	return twse.NewClient(cfg, infrahttp.NewRestyClient(cfg.Timeout))
}
