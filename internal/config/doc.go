// Package config loads a simulation scenario from an HCL file and
// translates it into the environment configuration and the four file-backed
// domain inputs the orchestrator consumes. The HCL-specific schema structs
// stay private to this package; the rest of the code only sees the
// translated model.
package config
