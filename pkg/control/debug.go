package control

import "github.com/go-drift/controlkit/pkg/errors"

// DebugMode controls whether calls absorbed as no-ops are reported.
// When false (the default), discarding an untracked control or acquiring
// from an unconfigured pool is silent. When true, each such call is sent to
// the errors handler with KindMisuse.
var DebugMode = false

// SetDebugMode enables or disables misuse reporting.
func SetDebugMode(debug bool) {
	DebugMode = debug
}

// ReportMisuse reports a no-op call when DebugMode is on.
func ReportMisuse(op, id string, err error) {
	if !DebugMode {
		return
	}
	errors.Report(&errors.Error{
		Op:   op,
		Kind: errors.KindMisuse,
		ID:   id,
		Err:  err,
	})
}
