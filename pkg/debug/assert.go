// Package debug holds the hot-path invariant checks described by the
// error-handling design: render-time errors never flow as recoverable
// errors, they abort with a diagnostic, mirroring the source's assert
// macros (finite?, normalized?).
package debug

import "fmt"

// Assert panics with a formatted message when cond is false. It is only
// ever called for programmer errors — non-finite radiance, a malformed
// shading frame — never for malformed scene data, which uses the
// scene-load error tier instead.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}
