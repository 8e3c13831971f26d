// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viewtube Authors

// Package config loads the application configuration from environment
// variables, command-line flags, and an optional JSON file, merging the
// sources with first-non-zero-wins semantics and validating the result.
package config
