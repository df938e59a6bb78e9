package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned by Create for names it cannot resolve
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by Create
	Name        string `json:"name"`        // Display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the scene file (json type only)
}

var builtInScenes = []SceneInfo{
	{
		ID:          "default",
		Name:        "Random Spheres",
		Description: "Field of small random spheres around glass, diffuse and mirror spheres",
		Type:        "builtin",
	},
	{
		ID:          "simple",
		Name:        "Simple",
		Description: "One diffuse sphere lit head-on by a directional light",
		Type:        "builtin",
	},
}

// Create builds a scene by built-in name or from a .json file path
func Create(name string) (*Scene, error) {
	switch {
	case name == "default":
		return NewDefaultScene(), nil
	case name == "simple":
		return NewSimpleScene(), nil
	case strings.EqualFold(filepath.Ext(name), ".json"):
		return Load(name)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
}

// ListScenes returns the built-in scenes followed by the JSON scenes found
// in dir, sorted by name. A missing dir only yields the built-ins.
func ListScenes(dir string) ([]SceneInfo, error) {
	scenes := append([]SceneInfo(nil), builtInScenes...)
	if dir == "" {
		return scenes, nil
	}
	if _, err := os.Stat(dir); err != nil {
		return scenes, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var found []SceneInfo
	for _, filePath := range files {
		found = append(found, readSceneInfo(filePath))
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Name < found[j].Name
	})

	return append(scenes, found...), nil
}

// readSceneInfo extracts the name and description of a scene file, falling
// back to the file name when the file cannot be read
func readSceneInfo(filePath string) SceneInfo {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       filePath,
		Name:     titleCase(nameWithoutExt),
		Type:     "json",
		FilePath: filePath,
	}

	f, err := os.Open(filePath)
	if err != nil {
		return info
	}
	defer f.Close()

	desc, err := DecodeDescription(f)
	if err != nil {
		return info
	}
	if desc.Name != "" {
		info.Name = desc.Name
	}
	info.Description = desc.Description
	return info
}

// titleCase converts a filename-style string to title case
// e.g., "glass-spheres" -> "Glass Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
