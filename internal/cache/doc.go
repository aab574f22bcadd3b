// Package cache provides the mutex-guarded memo table that survives script
// reloads.
//
// Scripts reach it through the with_cache macro:
//
//	(def clip (with_cache "intro" (import_video "intro.mp4")))
//
// Entries are keyed by string and evicted oldest-first once a soft limit is
// exceeded.
package cache
