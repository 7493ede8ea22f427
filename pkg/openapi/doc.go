// Package openapi loads OpenAPI documents for the schema importer and holds
// the importer contract. Load and Parse resolve a document once through
// kin-openapi; the resulting Document carries the parsed specification, so
// listing and importing schemas never parse it again.
package openapi
