// Package output discovers and parses the tabular text files the simulation
// engine writes into the workspace. Parsing is driven by an explicit,
// versioned format descriptor so a change in the engine's file layout
// surfaces as a descriptor mismatch instead of a silently mis-parsed table.
package output
