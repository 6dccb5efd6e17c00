// Package ecosys provides the core primitives for predator-prey
// ecosystem simulation.
//
// The package defines the shared types and behavioral constants used by
// the rest of the engine:
//
//   - [Parameters]: validated scenario parameters (prey, predator, environment)
//   - [State]: full-precision simulation state
//   - [Record]: rounded trajectory sample emitted at the record cadence
//   - [Result]: complete run outcome with summary statistics
//
// # Example
//
//	params := ecosys.Parameters{...}
//	eng, _ := sim.New(&params)
//	result, _ := eng.Run(ctx)
//
// # Thread Safety
//
// All types in this package are plain values with no shared mutable
// state. Independent runs may execute concurrently without coordination.
package ecosys
