// Package geometry checks that a solid's distance table and its rotation
// group agree with each other.
//
// A [Distance] returns the distance between two labelled vertices. Before a
// solid's colorings are ranked by [AverageDistance], isomer verifies that
//
//   - the distances form a metric on the labels ([ValidateMetric]),
//   - every rotation preserves every distance ([ValidateGroup]), and
//   - edge labels move together with their endpoints ([ValidateEdgeLabels]).
//
// A failed check returns an ErrCodeGeometryInconsistent error naming the
// offending labels. Such a failure almost always means a typo in a
// generator or distance table.
package geometry
