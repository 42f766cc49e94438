// Package testsupport builds throwaway repositories, catalogs, and voice files
// for tests.
package testsupport
