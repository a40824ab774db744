// Package preflight provides readiness checks for the paths and storage
// backend Slate depends on.
//
// The CLI "slate doctor" command runs RunAll and renders each Result; the
// individual checks are exported so other commands can probe a single
// concern before doing work.
package preflight
