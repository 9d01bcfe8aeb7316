// Package civitai resolves Civitai metadata and writes it next to local model
// files. It is structured into small files by concern:
//
//   - client.go: Client, Config, transport (proxy, TLS, rate limit) and the
//     single JSON GET path every lookup goes through.
//   - errors.go: failure kinds (not found, transient, malformed, rejected).
//   - resolve.go: model/version lookups by id, hash and name.
//   - derive.go: pure derivations over a VersionRecord (files, primary file,
//     images, trigger words) and image URL helpers.
//   - images.go: the images search endpoint and preview downloads.
//   - sidecar.go: info, trigger word and LoRA metadata writers.
//   - metrics.go: Prometheus collectors.
//
// Nothing is cached: every lookup goes to the network, so two calls may see
// different data if Civitai changed in between.
package civitai
