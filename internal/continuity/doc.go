// Package continuity flags visual-continuity problems between adjacent shots.
//
// The analyzer walks an ordered shot list pair by pair and applies a fixed
// table of keyword rules to each pair's descriptions:
//
//	lighting-jump     dark/night next to bright/day/sunny     critical
//	costume-change    differing costume color sets            warning
//	spatial-mismatch  exit and entry on the same screen side  info
//
// Pairs whose scene numbers are both set and differ carry no continuity
// obligation and are skipped. Issue ids are derived from the rule and the two
// shot ids, so repeated scans of the same timeline produce the same ids and
// a dismissal recorded once keeps suppressing that issue.
//
// The heuristics read free text only; there is no image analysis.
package continuity
