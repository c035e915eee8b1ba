//go:build amd64 || arm64 || loong64 || mips64 || mips64le || ppc64 || ppc64le || riscv64 || s390x || wasm

package message

import "unsafe"

// V3 must be 8-byte aligned and a multiple of 8 bytes long so that it can be read
// in place from an aligned buffer. Either line fails to compile when that breaks.
var (
	_ [0]struct{} = [unsafe.Sizeof(V3{}) % 8]struct{}{}
	_ [0]struct{} = [unsafe.Alignof(V3{}) - 8]struct{}{}
)
