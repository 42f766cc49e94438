// Package fileutil holds small filesystem helpers shared by the catalog and
// repair packages.
package fileutil
