package answers

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// FormatVersion is the answers-file format this build reads. Files with the
// same major version are accepted.
const FormatVersion = "v1.0.0"

var ErrUnsupportedVersion = errors.New("unsupported answers file version")

// File is the on-disk answers document. YAML and JSON are both accepted.
type File struct {
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
	Answers Set    `yaml:"answers" json:"answers"`
}

// Parse decodes an answers document.
func Parse(data []byte) (Set, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}
	if err := checkVersion(f.Version); err != nil {
		return nil, err
	}
	if f.Answers == nil {
		f.Answers = Set{}
	}
	return f.Answers, nil
}

// Load reads and decodes an answers file.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers file: %w", err)
	}
	return Parse(data)
}

func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	if v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, v)
	}
	if semver.Major(v) != semver.Major(FormatVersion) {
		return fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedVersion, v, semver.Major(FormatVersion))
	}
	return nil
}
