// Package logger is the category-based front end of the library.
//
// A Factory, assembled with the fluent Builder, binds together one
// handler, a minimum level, and an optional scope provider. Category
// loggers created from it share that configuration and stamp every
// record with their category name. Records below the minimum level are
// rejected before any allocation happens.
//
// BeginScope enters an ambient scope on the factory's provider; every
// record emitted until the returned function runs carries the scope.
// Events are drawn from the shared pool and recycled when the handler
// reports it consumes records synchronously.
package logger
