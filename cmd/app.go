// Package cmd implements the raytracer command line.
package cmd

import (
	"github.com/urfave/cli"
)

// Version of the command line tool
const Version = "0.2.0"

// NewApp builds the command tree.
func NewApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "render scenes using Monte-Carlo path tracing"
	app.Version = Version
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load settings from a YAML file (default ./raytracer.yaml if present)",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image file",
			Description: `
Render a built-in scene (--scene) or a YAML scene description (--file).
Settings are merged with priority defaults < config file < flags.

Unset sampling flags fall back to the scene's recommended values. The
frame is written to output/<scene>/render_<timestamp>.<ext> unless --out
is given.`,
			Flags:  renderFlags(),
			Action: RenderScene,
		},
		{
			Name:  "scenes",
			Usage: "list built-in scenes and scene files",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Usage: "directory scanned for YAML scene files",
				},
			},
			Action: ListScenes,
		},
		{
			Name:  "config",
			Usage: "print the effective configuration",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "save",
					Usage: "write the configuration to this path instead of printing it",
				},
			},
			Action: ShowConfig,
		},
	}

	return app
}

func renderFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "scene, s",
			Usage: "built-in scene id (see the scenes command)",
		},
		cli.StringFlag{
			Name:  "file, f",
			Usage: "YAML scene description",
		},
		cli.StringFlag{
			Name:  "textures",
			Usage: "directory searched for image textures",
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "frame width; height follows the camera aspect ratio",
		},
		cli.IntFlag{
			Name:  "spp",
			Usage: "samples per pixel",
		},
		cli.IntFlag{
			Name:  "depth",
			Usage: "maximum ray bounce depth (defaults to the scene's; 0 renders black)",
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "render goroutines (0 uses every CPU)",
		},
		cli.IntFlag{
			Name:  "tile-size",
			Usage: "tile edge length in pixels",
		},
		cli.Int64Flag{
			Name:  "seed",
			Usage: "random seed for scene layout and sampling",
		},
		cli.StringFlag{
			Name:  "out, o",
			Usage: "output file",
		},
		cli.StringFlag{
			Name:  "format",
			Usage: "output format: png, bmp, ppm or raw",
		},
		cli.StringFlag{
			Name:  "compression",
			Usage: "raw framebuffer compression: zstd or snappy",
		},
		cli.StringFlag{
			Name:  "log-file",
			Usage: "also write logs to this file, rotated",
		},
	}
}
