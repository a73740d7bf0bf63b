package pipeline

import (
	"errors"
	"strings"
)

// Construction errors. All are fatal to the pipeline being built.
var (
	ErrInitialization = errors.New("pipeline library initialization failed")
	ErrElementBuild   = errors.New("failed to create pipeline element")
	ErrLink           = errors.New("failed to link pipeline elements")
	ErrStateChange    = errors.New("pipeline state change failed")
	ErrCast           = errors.New("unexpected pipeline structure")
	ErrInvalidURI     = errors.New("invalid URI")
)

// Runtime errors.
var (
	// ErrCaps means a sample arrived without usable format information.
	// The sample is dropped.
	ErrCaps = errors.New("failed to get media capabilities")
	// ErrDuration, ErrPosition and ErrVolume mean the query has no answer yet.
	ErrDuration = errors.New("duration not available")
	ErrPosition = errors.New("position not available")
	ErrVolume   = errors.New("volume not available")
	// ErrSeekSync means the seek request was rejected.
	ErrSeekSync = errors.New("failed to sync with playback")
	// ErrBus wraps fatal errors posted on the pipeline bus.
	ErrBus = errors.New("pipeline error")
)

// ErrorCategory groups bus errors for logging.
type ErrorCategory int

const (
	CategoryNetwork ErrorCategory = iota
	CategoryCodec
	CategoryAuth
	CategoryUnknown
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryNetwork:
		return "network"
	case CategoryCodec:
		return "codec"
	case CategoryAuth:
		return "auth"
	case CategoryUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

var (
	authKeywords = []string{
		"unauthorized", "401", "403", "forbidden", "authentication", "credentials",
	}
	codecKeywords = []string{
		"codec", "decode", "format", "negotiation", "caps", "not negotiated", "not-negotiated",
		"no decoder", "missing plugin", "h264", "h265", "vp9", "av1",
	}
	networkKeywords = []string{
		"connection", "timeout", "unreachable", "network", "dns", "resolve",
		"socket", "http", "could not connect", "not found",
	}
)

// Classify guesses the category of a bus error from its message and debug
// string. Auth is checked first since auth failures often mention HTTP.
func Classify(msg, debug string) ErrorCategory {
	text := strings.ToLower(msg + " " + debug)
	switch {
	case containsAny(text, authKeywords):
		return CategoryAuth
	case containsAny(text, codecKeywords):
		return CategoryCodec
	case containsAny(text, networkKeywords):
		return CategoryNetwork
	default:
		return CategoryUnknown
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
