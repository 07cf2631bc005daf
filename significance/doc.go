// Package significance implements the statistical significance filter of
// spec.md §4.6: given a group's average outlier score, it decides whether
// the group is a statistically real structure or consistent with having
// been assembled from background noise, shrinking or dissolving groups
// that fail the test.
package significance
