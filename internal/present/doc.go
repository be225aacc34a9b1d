// Package present turns the task directories of a finished array job into
// figures.
//
// Two presenters share the same discovery step:
//
//   - Grid draws every task into its own cell of a subplot grid, in task
//     order, filling rows first.
//   - Aggregate reduces every task into one value and draws that value once.
//
// All drawing is delegated to caller-supplied functions; the presenters only
// discover, load, preprocess and place. Discovery (and, for Grid, layout
// planning) runs in the constructor so a misconfigured presenter fails before
// any task payload is read.
package present
