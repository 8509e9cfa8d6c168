// Package helper provides testing utilities and observability spies for library store testing.
//
// This package contains shared testing infrastructure including spy implementations
// of the logging, metrics and tracing interfaces for capturing and validating
// observability output during tests, plus fixture builders and Given* seeding
// functions used across the library store test suite.
package helper
