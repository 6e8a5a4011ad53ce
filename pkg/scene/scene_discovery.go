package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `yaml:"id"`          // Unique identifier, the name passed to Create
	DisplayName string `yaml:"name"`        // Human readable name
	Description string `yaml:"description"` // Optional description
	Group       string `yaml:"group"`       // Grouping category
	Type        string `yaml:"type"`        // "builtin" or "file"
	FilePath    string `yaml:"file"`        // Path to the scene file (file type only)
}

// builtinGroup is the group of the registered scenes
const builtinGroup = "Built-in Scenes"

type registryEntry struct {
	info  SceneInfo
	build func(Options) (*Scene, error)
}

// registry lists the built-in scenes in presentation order
var registry = []registryEntry{
	{builtin("random-spheres", "Random Spheres", "Checkered ground with moving, metal and glass spheres"), NewRandomSpheres},
	{builtin("two-spheres", "Two Spheres", "Two checkered spheres"), NewTwoSpheres},
	{builtin("two-perlin-spheres", "Two Perlin Spheres", "Marbled Perlin noise ground and sphere"), NewTwoPerlinSpheres},
	{builtin("earth", "Earth", "Image-mapped globe"), NewEarth},
	{builtin("simple-light", "Simple Light", "Perlin spheres lit by a rectangle light"), NewSimpleLight},
	{builtin("cornell-box", "Cornell Box", "Cornell box with two rotated blocks"), NewCornellBox},
	{builtin("cornell-smoke", "Cornell Smoke", "Cornell box with smoke and fog blocks"), NewCornellSmoke},
	{builtin("final", "Final Scene", "Everything at once: boxes, volumes, motion blur, textures and instances"), NewFinalScene},
}

func builtin(id, name, description string) SceneInfo {
	return SceneInfo{ID: id, DisplayName: name, Description: description, Group: builtinGroup, Type: "builtin"}
}

func lookup(name string) (registryEntry, bool) {
	for _, entry := range registry {
		if entry.info.ID == name {
			return entry, true
		}
	}
	return registryEntry{}, false
}

// ListBuiltinScenes returns the registered scenes in presentation order
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(registry))
	for i, entry := range registry {
		scenes[i] = entry.info
	}
	return scenes
}

// ListFileScenes scans dir for YAML scene descriptions
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		// No scenes directory, nothing to list
		return []SceneInfo{}, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		scenes = append(scenes, ParseSceneMetadata(filePath))
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata extracts metadata from the header comments of a scene file:
//
//	# Scene: Glass Spheres
//	# Description: Three glass spheres on a checker floor
//	# Group: Experiments
//
// Missing fields fall back to values derived from the file name.
func ParseSceneMetadata(filePath string) SceneInfo {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          nameWithoutExt,
		DisplayName: titleCase(nameWithoutExt),
		Group:       "Scene Files",
		Type:        "file",
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		// If we can't read the file, return with fallback values
		return sceneInfo
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Stop parsing at first non-comment line
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if key, value, ok := strings.Cut(content, ":"); ok {
			value = strings.TrimSpace(value)
			switch key {
			case "Scene":
				sceneInfo.DisplayName = value
			case "Description":
				sceneInfo.Description = value
			case "Group":
				sceneInfo.Group = value
			}
		}
	}

	return sceneInfo
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-smoke" -> "Cornell Smoke"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
