package cmd

import (
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-raytracer/pkg/scene"
)

// ListScenes prints the built-in scenes followed by the YAML scene files.
func ListScenes(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	dir := cfg.Scene.ScenesDir
	if ctx.String("dir") != "" {
		dir = ctx.String("dir")
	}

	scenes := scene.ListBuiltinScenes()
	files, err := scene.ListFileScenes(dir)
	if err != nil {
		return err
	}
	scenes = append(scenes, files...)

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Id", "Name", "Group", "Description"})
	for _, info := range scenes {
		id := info.ID
		if info.Type == "file" {
			// Files are rendered with --file, not --scene
			id = info.FilePath
		}
		table.Append([]string{id, info.DisplayName, info.Group, info.Description})
	}
	table.Render()
	return nil
}
