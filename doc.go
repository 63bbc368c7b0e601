// Package pdptw implements a Pickup and Delivery Problem with Time Windows
// (PDPTW) solver: a constructive heuristic followed by an Iterated Local
// Search (LNS perturbation + AGES vehicle reduction + 2-opt/relocate/
// exchange polish), minimizing lexicographically (vehicle count, total
// distance).
//
// Solve is the single top-level entry point; instance.Build/BuildFromEuclidean
// construct the immutable problem data it consumes, and format.ParseInstance/
// format.WriteSolution translate to and from the on-disk text formats
// cmd/pdptw-solve reads and writes.
package pdptw
