// Package compiler turns the four domain inputs of a simulation (soil
// profile, weather station, crop, management plan) into the fixed-format
// file set the engine reads from the workspace.
//
// The compiler never mutates the domain objects. All values that the engine
// needs but that no single input carries on its own (cultivar name, field
// weather identifier, initial soil water, ...) are collected into a Derived
// value and handed to the management plan's writer, so compilation is
// idempotent and testable against read-only inputs.
package compiler
