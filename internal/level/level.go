// Package level loads the world a server hosts: its tiles, wall colors,
// backdrop colors and the pose every new observer starts at.
package level

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/KazDragon/textray/internal/camera"
	"github.com/KazDragon/textray/internal/geom"
	"github.com/KazDragon/textray/internal/grid"
	"github.com/KazDragon/textray/internal/raycast"
	"github.com/KazDragon/textray/internal/shade"
)

//go:embed default.json
var levelFS embed.FS

const defaultFile = "default.json"

var ErrPalette = errors.New("level: bad color")

// file is the on-disk shape of a level. Angles are in degrees.
type file struct {
	Name    string                 `json:"name"`
	Tiles   [][]grid.WallID        `json:"tiles"`
	Palette map[grid.WallID]string `json:"palette"`
	Ceiling string                 `json:"ceiling"`
	Floor   string                 `json:"floor"`
	Start   struct {
		X       float64  `json:"x"`
		Y       float64  `json:"y"`
		Heading float64  `json:"heading"`
		FOV     *float64 `json:"fov"`
	} `json:"start"`
}

// Level is a validated world ready to be shared by every session.
type Level struct {
	Name    string
	Grid    *grid.Grid
	Palette shade.Palette
	Ceiling shade.Color
	Floor   shade.Color
	Start   camera.Pose
}

// Renderer returns a renderer drawing in the level's colors.
func (l *Level) Renderer() *raycast.Renderer {
	r := raycast.New(l.Palette)
	r.Ceiling = l.Ceiling
	r.Floor = l.Floor
	return r
}

// Parse decodes and validates a JSON level description.
func Parse(data []byte) (*Level, error) {
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("level: parse: %w", err)
	}

	g, err := grid.New(f.Tiles)
	if err != nil {
		return nil, err
	}

	l := &Level{Name: f.Name, Grid: g, Palette: shade.Palette{}}
	for id, s := range f.Palette {
		c, err := shade.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%w for wall %d: %w", ErrPalette, id, err)
		}
		l.Palette[id] = c
	}
	if l.Ceiling, err = colorOr(f.Ceiling, shade.Cube{R: 5, G: 3, B: 1}); err != nil {
		return nil, fmt.Errorf("%w for ceiling: %w", ErrPalette, err)
	}
	if l.Floor, err = colorOr(f.Floor, shade.Cube{R: 1, G: 2, B: 4}); err != nil {
		return nil, fmt.Errorf("%w for floor: %w", ErrPalette, err)
	}

	fov := camera.DefaultFOV
	if f.Start.FOV != nil {
		fov = *f.Start.FOV
	}
	l.Start = camera.Pose{
		Position: geom.Vec{X: f.Start.X, Y: f.Start.Y},
		Heading:  geom.Radians(f.Start.Heading),
		FOV:      geom.Radians(fov),
	}
	if err := l.Start.Validate(g); err != nil {
		return nil, fmt.Errorf("level: start: %w", err)
	}
	return l, nil
}

func colorOr(s string, fallback shade.Color) (shade.Color, error) {
	if s == "" {
		return fallback, nil
	}
	return shade.Parse(s)
}

// Load reads a level from a JSON file on disk.
func Load(path string) (*Level, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", path, err)
	}
	l, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Default returns the embedded courtyard level.
func Default() (*Level, error) {
	content, err := levelFS.ReadFile(defaultFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded file %s: %w", defaultFile, err)
	}
	return Parse(content)
}

// MustDefault is Default, panicking on error. The embedded level is part of
// the binary, so failure is a build defect.
func MustDefault() *Level {
	l, err := Default()
	if err != nil {
		panic(err)
	}
	return l
}
