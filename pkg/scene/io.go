package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hyprtile/pkg/errors"
)

// Format is a scene encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatOf picks the format from a file extension. Anything other than
// .toml is JSON.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// Unmarshal decodes a scene. Unknown fields are rejected.
func Unmarshal(data []byte, format Format) (*Scene, error) {
	var sc Scene
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &sc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode toml scene")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidScene, "unknown scene key %s", undecoded[0])
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode json scene")
		}
	}
	return &sc, nil
}

// Read decodes a JSON scene from r.
func Read(r io.Reader) (*Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return Unmarshal(data, FormatJSON)
}

// ReadFile loads a scene file.
func ReadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return Unmarshal(data, FormatOf(path))
}

// Marshal encodes a scene as indented JSON.
func Marshal(sc *Scene) ([]byte, error) {
	return json.MarshalIndent(sc, "", "  ")
}

// WriteFile writes a scene in the format implied by path.
func WriteFile(sc *Scene, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if FormatOf(path) == FormatTOML {
		return toml.NewEncoder(f).Encode(sc)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(sc)
}
