// Package connection provides the connection-configuration layer of the
// caravel client.
//
// ConnectionParams is a validated, deliberately restricted description of
// how to reach and authenticate against a broker cluster. It is built from
// defaults or from a configuration source, applied exactly once to a
// ConnectionFactory, and never mutated afterward. Options that would defeat
// automatic topology recovery are not part of its surface.
package connection
