package tui

import "errors"

// ErrMissingAnnotationService is returned when the annotation service is not provided.
var ErrMissingAnnotationService = errors.New("tui: annotation service is required")

// ErrNothingToShow is returned when the request carries neither text nor sections.
var ErrNothingToShow = errors.New("tui: nothing to show")
