//go:build !nogpu

package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

// Embedded WGSL shader sources, compiled to SPIR-V at runtime via naga.

//go:embed shaders/element.wgsl
var elementShaderWGSL string

// compileShader compiles a WGSL source to the SPIR-V word slice expected by
// hal.ShaderSource.
func compileShader(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("compile WGSL: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("SPIR-V output not word aligned: %d bytes", len(spirvBytes))
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
