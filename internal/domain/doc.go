// Package domain models the urban heat island (UHI) prediction vocabulary:
// the request and response shapes of the prediction endpoint, the typed
// input errors raised while parsing a request, and the advisor that turns
// a score into a severity tier and mitigation tips.
//
// # Score
//
// A UHI score is a unitless intensity on the closed range [0,100]. Scores
// are always clamped into that range before they leave the service, so a
// model extrapolating far outside its training inputs still yields 0 or
// 100 rather than a negative or runaway value. See [ClampUHI].
//
// # Severity tiers
//
// Tiers partition [0,100] and are evaluated from the top down:
//
//	High:     uhi >= 70
//	Moderate: 45 <= uhi < 70
//	Low:      uhi < 45
//
// Each tier carries its own ordered tips, followed by one closing tip about
// how to map heat on the ground. The closing tip is identical for every tier
// and is always last. See [Advise].
//
// # Request coercion
//
// The three inputs (lat, lon, avg_temp) arrive as a JSON object. A value may
// be a JSON number or a string holding a decimal number. Missing, null,
// non-numeric and non-finite values are rejected with an [*InputError]
// naming the field. Coordinates are not range checked.
package domain
