// Command scenebuilder writes .gscn scene scripts exercising the
// renderer's six end-to-end scenarios (display modes 0, 3 and 4), for use as
// both demo content and golden-frame test fixtures.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

type scenario struct {
	name  string
	build func() []byte
}

func scenarios() []scenario {
	return []scenario{
		{"s1-backdrop", buildBackdropScene},
		{"s2-mode3", buildMode3Scene},
		{"s3-priority", buildPriorityScene},
		{"s4-blend", buildBlendScene},
		{"s5-sprite", buildSpriteScene},
		{"s6-forcedblank", buildForcedBlankScene},
	}
}

func main() {
	var outDir string
	var only string

	root := &cobra.Command{
		Use:   "scenebuilder",
		Short: "Writes .gscn scene scripts covering the renderer's display modes and scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}

			wrote := 0
			for _, sc := range scenarios() {
				if only != "" && only != sc.name {
					continue
				}
				data := sc.build()
				path := filepath.Join(outDir, sc.name+".gscn")
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", path, err)
				}
				fmt.Printf("Wrote %s (%d bytes)\n", path, len(data))
				wrote++
			}
			if wrote == 0 {
				return fmt.Errorf("no scenario named %q", only)
			}
			return nil
		},
	}
	root.Flags().StringVar(&outDir, "out", "scenes", "directory to write scene scripts into")
	root.Flags().StringVar(&only, "scene", "", "build only the named scenario (default: all six)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
