package stats

import (
	"fmt"
	"strings"

	cli "github.com/urfave/cli/v3"

	"stylestats/common"
)

// Command returns definition of analyze subcommand.
func Command(onUsageError cli.OnUsageErrorFunc) *cli.Command {
	return &cli.Command{
		Name:         "analyze",
		Usage:        "Analyzes CSS and reports statistics",
		OnUsageError: onUsageError,
		Action:       Run,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"},
				Usage: "report `TYPE` (supported types: " + strings.Join(common.OutputFmtNames(), ", ") + "), overrides configuration"},
			&cli.StringFlag{Name: "template", Aliases: []string{"t"}, Usage: "render report with text/template from `FILE`"},
			&cli.StringFlag{Name: "specs", Aliases: []string{"s"}, Usage: "check metrics against test specification `FILE` (YAML or JSON)"},
			&cli.BoolFlag{Name: "prettify", Aliases: []string{"p"}, Usage: "use human readable labels and values"},
			&cli.BoolFlag{Name: "simple", Usage: "use compact table"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write report to `PATH`, name is derived from the first source when PATH is a directory"},
		},
		ArgsUsage: "SOURCE...",
		CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    one or more of the following:
        path to a css file: "[path_to_file]file.css"
        path to a directory: "[path_to_directory]directory" - all css files directly inside it
        path to archive with optional path inside archive: "[path_to_archive]archive.zip[path_in_archive]" - all css files under archive path
        URL of a stylesheet or an HTML page: "https://example.com/" - linked stylesheets and style elements are analyzed
        CSS text: "a { color: red; }"
        glob pattern: "styles/*.css"

    All sources are concatenated and analyzed as a single stylesheet.
`, cli.CommandHelpTemplate),
	}
}
