// Command airtable-lint validates record payload dumps (JSON or YAML)
// against one of the declared Airtable shapes and reports every structural
// issue with its JSON Pointer path.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	airtable "github.com/tablekit/airtable"
)

var (
	shapeName string
	many      bool
)

func main() {
	cmd := &cobra.Command{
		Use:   "airtable-lint [flags] file...",
		Short: "Validate Airtable record payloads against a declared shape",
		Long: "airtable-lint checks JSON or YAML payload dumps against one of the\n" +
			"declared Airtable shapes (" + strings.Join(airtable.ShapeNames(), ", ") + ")\n" +
			"and prints every structural issue with its JSON Pointer path.",
		Args:          cobra.MinimumNArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&shapeName, "shape", "RecordDict", "declared shape to validate against")
	cmd.Flags().BoolVar(&many, "many", false, "treat each input as a sequence of payloads")
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "airtable-lint:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	s, err := airtable.ShapeByName(shapeName)
	if err != nil {
		return err
	}
	failed := 0
	for _, name := range args {
		v, err := load(name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if many {
			_, err = airtable.ValidateMany(s, v)
		} else {
			_, err = airtable.ValidateOne(s, v)
		}
		if err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", name)
			continue
		}
		failed++
		if iss, ok := airtable.AsIssues(err); ok {
			for _, it := range iss {
				fmt.Fprintf(os.Stderr, "%s: %s at %s: %s\n", name, it.Code, it.Path, it.Message)
			}
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed validation", failed, len(args))
	}
	return nil
}

// load decodes one input file. YAML inputs go through yaml.v3; everything
// else is treated as JSON through the configured driver, which preserves
// numbers as json.Number.
func load(name string) (any, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return airtable.DecodeValue(data)
	}
}
