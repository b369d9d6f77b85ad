// Package screenshot turns the scope's display dump into a saved PNG with a
// dimming overlay blended on top, the way the historical CLI rendered
// captures.
package screenshot
