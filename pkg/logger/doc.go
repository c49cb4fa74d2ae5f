// Package logger provides structured logging for fascraper, built on zerolog.
//
// The package exposes a Logger interface so that components can be tested
// with a capturing implementation (see TestLogger). A process-wide logger is
// available via Initialize and GetLogger; library code accepts a Logger and
// falls back to the global one when given nil.
package logger
