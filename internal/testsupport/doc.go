// Package testsupport provides shared helpers for package tests: per-test
// configuration seeded with temp directories, payload generation with fixed
// seeds, and small file utilities.
package testsupport
