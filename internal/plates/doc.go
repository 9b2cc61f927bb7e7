// Package plates resolves a target barbell load into the plates to put on each
// side of the bar.
//
// The resolver is a greedy, largest-plate-first allocation. It favours the
// fewest plate changes over exact optimality: a target that some other
// combination could reach exactly may come back as a closest-under result.
// Every call is a pure function of its arguments and is safe for concurrent use.
package plates
