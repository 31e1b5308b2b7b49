// Package service holds the business layer. Services validate input, enforce
// uniqueness and dependency guards, orchestrate image storage, and translate
// repository errors into the typed apierror taxonomy.
package service

import "time"

// timeFormat is the wire format for timestamps in responses.
const timeFormat = time.RFC3339
