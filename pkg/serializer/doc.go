// Package serializer writes collection results in JSON, YAML, or table
// form to stdout or a file.
package serializer
