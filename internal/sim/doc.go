// Package sim owns the lifecycle of one simulation environment: stage a
// workspace, compile the domain inputs into it, invoke the engine, parse its
// outputs, and finally tear the workspace down.
//
// An Environment is strictly sequential and single-owner: one workspace per
// instance, no internal locking, and two instances must never share a
// workspace path.
package sim
