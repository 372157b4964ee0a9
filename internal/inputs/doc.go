// Package inputs provides file-backed implementations of the compiler's
// domain contracts. Each input wraps a pre-built, engine-ready file (or
// directory) plus the few typed attributes the compiler derives management
// fields from, and stages its file into the workspace on Write.
//
// This is the path for driving a run from existing engine input files
// without modeling the soil/weather/crop/management schemas themselves.
package inputs
