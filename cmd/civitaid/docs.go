package main

// General API documentation for swaggo. Regenerate with `swag init -g cmd/civitaid/docs.go`.
//
// @title           civitaid API
// @version         1.0
// @description     HTTP API for Civitai metadata lookups and local model file reconciliation.
//
// @contact.name   civitaid maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
