package gst

import "github.com/llehouerou/glimpse/internal/pipeline"

// Verify Builder implements pipeline.Builder at compile time.
var _ pipeline.Builder = (*Builder)(nil)
