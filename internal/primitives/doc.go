// Package primitives provides the foundational data structures for the
// widget machines: events and their payload accessors, machine specs with
// states and transitions, snapshots, charts and the error taxonomy.
//
// Core invariants:
// - A MachineSpec is built once per widget type and never mutated
// - Events are values; payload accessors never panic
// - Derived properties are computed on demand, never stored
package primitives
