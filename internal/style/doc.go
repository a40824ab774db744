// Package style learns a director's creative habits and turns them into
// suggestions.
//
// Learning is opt-in. While disabled, tracking calls do nothing and never
// touch storage. While enabled, every tracked choice increments a frequency
// counter in a persisted Profile; once the profile holds enough samples,
// Suggestion reports the most frequent lens, lighting, and color grade as a
// share of all tracked shots.
//
// Counter tables remember insertion order, including across a JSON round
// trip, so ties between equally frequent values always resolve to the value
// that was tracked first.
package style
