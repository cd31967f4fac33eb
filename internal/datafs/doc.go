// Package datafs provides the file primitives every store in feedbackgalaxy
// goes through: locked reads, atomic rewrites, appends and directory setup.
//
// Locking is per path and per process only. Two separate invocations racing
// on the same file resolve last-writer-wins.
package datafs
