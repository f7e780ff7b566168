// Package config holds the notebook adapter configuration: the
// collection-to-notebook mapping, content tier thresholds, the source
// naming pattern, and the connection settings for the notebook service.
//
// Configuration is validated eagerly; a Config that fails Validate must
// not be used. Load reads a JSON or YAML file, applies environment
// overrides (NOTEBOOKSTORE_* variables), and validates the result.
package config
