// Package shared holds helpers used by more than one package. Its testutil
// subpackage provides log capture and CSV fixture helpers for tests.
package shared
