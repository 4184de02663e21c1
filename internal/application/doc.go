// Package application wires the fuel service: module storage, calculator,
// handlers, router and HTTP server. It keeps the main package focused on CLI
// parsing and orchestration.
package application
