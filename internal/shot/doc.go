// Package shot defines the shot record consumed by the continuity analyzer
// and loads ordered shot lists from JSON or YAML files exported by the
// timeline editor.
package shot
