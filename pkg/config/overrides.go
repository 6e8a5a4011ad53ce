package config

// Overrides carries command-line values. Zero values leave the config untouched.
type Overrides struct {
	Width           int
	SamplesPerPixel int
	MaxDepth        *int // nil keeps the configured depth; 0 is a valid depth
	Workers         int
	TileSize        int
	Seed            *int64 // nil keeps the configured seed; 0 is a valid seed

	Scene      string
	SceneFile  string
	TextureDir string

	OutputPath  string
	Format      string
	Compression string

	LogLevel string
	LogFile  string
}

// apply applies CLI flag overrides to the config.
func (o Overrides) apply(cfg *Config) {
	if o.Width > 0 {
		cfg.Render.Width = o.Width
	}
	if o.SamplesPerPixel > 0 {
		cfg.Render.SamplesPerPixel = o.SamplesPerPixel
	}
	if o.MaxDepth != nil {
		depth := *o.MaxDepth
		cfg.Render.MaxDepth = &depth
	}
	if o.Workers > 0 {
		cfg.Render.Workers = o.Workers
	}
	if o.TileSize > 0 {
		cfg.Render.TileSize = o.TileSize
	}
	if o.Seed != nil {
		cfg.Render.Seed = *o.Seed
	}

	// A named scene replaces a file from the config and vice versa
	if o.Scene != "" {
		cfg.Scene.Name = o.Scene
		cfg.Scene.File = ""
	}
	if o.SceneFile != "" {
		cfg.Scene.File = o.SceneFile
	}
	if o.TextureDir != "" {
		cfg.Scene.TextureDir = o.TextureDir
	}

	if o.OutputPath != "" {
		cfg.Output.Path = o.OutputPath
	}
	if o.Format != "" {
		cfg.Output.Format = o.Format
	}
	if o.Compression != "" {
		cfg.Output.Compression = o.Compression
	}

	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
}
