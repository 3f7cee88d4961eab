// Package jobmatch extracts structured requirements from free-text job
// specifications and scores a candidate profile against them.
//
// Matching is deliberately loose lexical containment over two string sets,
// kept as independently testable pure functions. It is not ML-based matching
// and must not be conflated with one.
package jobmatch
