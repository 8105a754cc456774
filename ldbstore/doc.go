// Package ldbstore implements a CFR policy store that keeps data
// on disk in a LevelDB database, rather than in memory.
//
// It is substantially slower than the in-memory table but its memory
// use does not grow with the number of information sets, and trained
// policies persist across runs.
package ldbstore
