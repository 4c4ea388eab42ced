// Package errors provides the classified error type shared by docnav packages.
//
// Every error carries a category. The category fixes its defaults (severity,
// retry strategy) and how it surfaces: the CLI exit code and the HTTP status
// of the preview server. Context values such as the offending route or sidebar
// location travel with the error and are printed by the adapters.
//
//	err := errors.ValidationError("duplicate route").
//		WithContext("route", "/pattern-matching/intro").
//		WithContext("location", "sidebar[8].children[0]").
//		Build()
package errors
