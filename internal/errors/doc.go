// Package errors provides coded, structured errors for the Strada CLI.
//
// Every error carries a short code (e.g. "E101") that maps to a registered
// template with a message, detail text, and fix suggestion. Codes keep error
// output stable across releases and give users something concrete to search
// for.
//
//	return errors.New("E101").
//	    WithDetail("No strada.json found in " + dir).
//	    WithSuggestion("Create strada.json or pass --config")
package errors
