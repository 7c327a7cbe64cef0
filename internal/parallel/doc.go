// Package parallel runs independent jobs, such as drawing atlas pages, on a
// work-stealing goroutine pool.
package parallel
