// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The span resolver in segment.go is a pure function with no
// dependencies beyond the domain package.
package services
