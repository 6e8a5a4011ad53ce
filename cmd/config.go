package cmd

import (
	"fmt"

	"github.com/urfave/cli"
)

// ShowConfig prints the effective configuration, or saves it with --save.
func ShowConfig(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if path := ctx.String("save"); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(ctx.App.Writer, "config saved to %s\n", path)
		return nil
	}
	return cfg.Write(ctx.App.Writer)
}
