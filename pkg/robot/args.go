// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package robot

import "strings"

// Input flags understood by ROBOT: -i for a local file, -I for an IRI
// fetched by ROBOT itself.
const (
	FlagLocal  = "-i"
	FlagRemote = "-I"
)

// remotePrefixes lists the protocol prefixes that mark an input as remote.
var remotePrefixes = []string{
	"https://",
	"http://",
	"ftp://",
	"ftps://",
}

// ConvertRequest describes one conversion. The zero value of every field
// is a sensible default: local input, no merge, no reasoning, structure
// checks on.
type ConvertRequest struct {
	// Input is a local file path or a remote IRI.
	Input string

	// Output is the destination path. ROBOT infers the output format
	// from the extension unless Format is set.
	Output string

	// InputFlag overrides remote/local inference. Must be FlagLocal or
	// FlagRemote when set; when empty the flag is inferred from Input's
	// protocol prefix.
	InputFlag string

	// Merge squashes all input graphs together before further processing.
	Merge bool

	// Reason runs the reasoner over the (possibly merged) graph.
	Reason bool

	// Format explicitly sets the output format (--format).
	Format string

	// SkipCheck disables the OBO document structure checks
	// (--check=false). Conversions of ontologies that violate the OBO
	// structure rules fail unless this is set.
	SkipCheck bool

	// ExtraArgs are appended verbatim after the output designation.
	// They are not validated; mistakes surface as a process failure.
	ExtraArgs []string

	// Debug turns on ROBOT's -vvv verbosity.
	Debug bool
}

// pipelines maps {merge, reason} to the ordered stage sequence. The
// input designation always attaches to the first stage. Merge runs
// before reason so reasoning sees the merged graph; convert is always
// the terminal stage.
var pipelines = map[[2]bool][]string{
	{false, false}: {"convert"},
	{true, false}:  {"merge", "convert"},
	{false, true}:  {"reason", "convert"},
	{true, true}:   {"merge", "reason", "convert"},
}

// ConvertArgs builds the ROBOT argument list for req. It is a pure
// transformation and never fails.
func ConvertArgs(req ConvertRequest) []string {
	flag := req.InputFlag
	if flag == "" {
		flag = FlagLocal
		if isRemote(req.Input) {
			flag = FlagRemote
		}
	}

	stages := pipelines[[2]bool{req.Merge, req.Reason}]
	args := []string{stages[0], flag, req.Input}
	args = append(args, stages[1:]...)

	args = append(args, "-o", req.Output)
	args = append(args, req.ExtraArgs...)

	// --check=false sits after the extra args and before --format.
	// ROBOT's argument parser may be sensitive to the position, so it
	// is part of the contract.
	if req.SkipCheck {
		args = append(args, "--check=false")
	}
	if req.Format != "" {
		args = append(args, "--format", req.Format)
	}
	if req.Debug {
		args = append(args, "-vvv")
	}
	return args
}

func isRemote(input string) bool {
	for _, prefix := range remotePrefixes {
		if strings.HasPrefix(input, prefix) {
			return true
		}
	}
	return false
}
