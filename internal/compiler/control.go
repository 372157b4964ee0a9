package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// writeControlFile emits the engine's startup registry: one labeled path per
// subsystem. The engine matches labels and spacing verbatim, so every line
// keeps the exact four-space separator and every path must be exactly where
// the compiler staged the corresponding artifact.
func (c *Compiler) writeControlFile(cropCode, model, weatherDir string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "WED    %s\n", weatherDir)
	fmt.Fprintf(&b, "M%s    %s %s %s\n", cropCode, c.Workspace, c.Binary, model)
	fmt.Fprintf(&b, "CRD    %s\n", c.Assets.Genotype)
	fmt.Fprintf(&b, "PSD    %s\n", c.Assets.Pest)
	fmt.Fprintf(&b, "SLD    %s\n", c.Assets.Soil)
	fmt.Fprintf(&b, "STD    %s\n", c.Assets.StandardData)

	path := filepath.Join(c.Workspace, ControlFileName)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing control file %s: %w", path, err)
	}
	return nil
}
