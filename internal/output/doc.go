// Package output formats cardview command results for people and for
// scripts.
//
// Every command writes through a Printer. In JSON mode results are
// written as indented JSON objects and errors as {"error": "...", "code": N}
// on stdout. In human mode results are plain or styled text and errors go
// to stderr:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, color)
//	printer.Table([]string{"NAME", "SOURCE"}, rows)
//	printer.Error(output.NewUserError("unknown setting: cardStyle.depth"))
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: everything rendered
//	output.ExitUserError   // 1: bad arguments, unknown settings, invalid values
//	output.ExitSystemError // 2: unreadable files, settings store failures
//	output.ExitRenderError // 3: at least one block showed its error state
package output
