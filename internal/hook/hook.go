// Package hook implements the pre-tool-use boundary with the host agent:
// one JSON request on stdin, one JSON response on stdout. The hook only ever
// volunteers an approval; anything it cannot positively authorize produces
// an empty response, and the host runs its normal confirmation flow. It
// never blocks execution on the host's behalf.
package hook

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xdg/cmdgate/internal/audit"
	"github.com/xdg/cmdgate/internal/clog"
	"github.com/xdg/cmdgate/internal/config"
	"github.com/xdg/cmdgate/internal/engine"
)

// Input is the hook request from the host agent. Unknown fields are
// ignored; the shapes of other tools' inputs are not cmdgate's concern.
type Input struct {
	HookEventName string    `json:"hook_event_name"`
	ToolName      string    `json:"tool_name"`
	ToolInput     ToolInput `json:"tool_input"`
}

// ToolInput carries the one field cmdgate reads: the proposed command.
type ToolInput struct {
	Command string `json:"command"`
}

// Output is the hook response. A zero Output marshals to {} and means
// "no opinion": the host proceeds with its own confirmation flow.
type Output struct {
	Decision string `json:"decision,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Runner evaluates hook requests for one working directory.
type Runner struct {
	// Dir is the working directory whose configuration sources apply.
	Dir string

	// Settings are the resolved operational settings. When the engine is
	// disabled every request gets an empty response.
	Settings config.Settings

	// Audit receives one event per evaluated command. May be nil.
	Audit *audit.Logger
}

// Run reads one request from in, writes one response to out, and returns.
// Malformed input is logged and answered with an empty response; the hook
// result is never an error the host would interpret as a denial.
func (r *Runner) Run(in io.Reader, out io.Writer) error {
	var input Input
	if err := json.NewDecoder(in).Decode(&input); err != nil {
		clog.Warn("hook: cannot decode input: %v", err)
		return writeOutput(out, Output{})
	}

	if input.ToolName != "Bash" || input.ToolInput.Command == "" {
		clog.Debug("hook: ignoring tool %q", input.ToolName)
		return writeOutput(out, Output{})
	}

	if !r.Settings.Enabled {
		clog.Debug("hook: engine disabled, deferring")
		return writeOutput(out, Output{})
	}

	raw := input.ToolInput.Command
	store := config.LoadStore(r.Dir)
	decision := engine.Decide(raw, store)

	for _, line := range decision.Trace {
		clog.Debug("hook: %s", line)
	}
	r.recordAudit(raw, decision)

	if !decision.Authorized {
		clog.Info("hook: %s %q", decision.Outcome, raw)
		return writeOutput(out, Output{})
	}

	clog.Info("hook: authorized %q", raw)
	return writeOutput(out, Output{
		Decision: "approve",
		Reason:   approvalReason(decision),
	})
}

// approvalReason summarizes an authorized decision for the host transcript.
func approvalReason(d engine.Decision) string {
	cmds := make([]string, len(d.Matched))
	for i, c := range d.Matched {
		cmds[i] = c.String()
	}
	return "cmdgate: allow rules match " + strings.Join(cmds, ", ")
}

func (r *Runner) recordAudit(raw string, d engine.Decision) {
	var err error
	switch d.Outcome {
	case engine.Authorized:
		err = r.Audit.LogAutoApprove(raw, strings.Join(d.AllowRules, ","))
	case engine.DenyHit:
		err = r.Audit.LogDenyHit(raw, d.DenyRule)
	case engine.Unsafe:
		err = r.Audit.LogUnsafe(raw, lastTraceLine(d))
	default:
		err = r.Audit.LogDefer(raw, lastTraceLine(d))
	}
	if err != nil {
		// Auditing never affects the decision.
		clog.Warn("hook: audit write failed: %v", err)
	}
}

func lastTraceLine(d engine.Decision) string {
	if len(d.Trace) == 0 {
		return ""
	}
	return d.Trace[len(d.Trace)-1]
}

func writeOutput(out io.Writer, o Output) error {
	if err := json.NewEncoder(out).Encode(o); err != nil {
		return fmt.Errorf("encode hook output: %w", err)
	}
	return nil
}
