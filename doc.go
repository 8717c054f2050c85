// Package gsuffix builds a generalized suffix tree over a concatenation of
// several byte sequences using Ukkonen's online construction, and answers
// the longest-2-common-sublist query over the finished tree.
//
// Construction is single-threaded and write-once: Build runs a strictly
// sequential left-to-right pass and returns a Tree that is read-only from
// that point on. LongestCommon may be called any number of times, including
// concurrently, once Build has returned.
package gsuffix
