package bundle

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/agentbrief/internal/catalog"
)

// ContentSource supplies SKILL.md content for a skill id.
type ContentSource interface {
	SkillDoc(id string) ([]byte, error)
}

// FallbackSource renders a minimal SKILL.md from catalog metadata. Ids the
// catalog does not know still get a document.
type FallbackSource struct{}

func (FallbackSource) SkillDoc(id string) ([]byte, error) {
	meta, ok := catalog.LookupSkill(id)
	if !ok {
		meta = catalog.SkillMeta{
			ID:          id,
			Name:        titleFromID(id),
			Group:       catalog.SkillGroup(id),
			Description: "Project-specific skill pack.",
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "---\nname: %s\ndescription: %s\n---\n\n", meta.ID, meta.Description)
	fmt.Fprintf(&b, "# %s\n\n", meta.Name)
	fmt.Fprintf(&b, "%s\n\n", meta.Description)
	fmt.Fprintf(&b, "_Group: %s._ Replace this file with your team's conventions for this topic.\n", catalog.GroupDisplayName(meta.Group))
	return []byte(b.String()), nil
}

func titleFromID(id string) string {
	words := strings.Split(id, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// DirSource reads <Root>/<id>/SKILL.md, falling back when the file is
// missing.
type DirSource struct {
	Root     string
	Fallback ContentSource
}

func (d DirSource) SkillDoc(id string) ([]byte, error) {
	if strings.ContainsAny(id, `/\`) || id == ".." {
		return nil, fmt.Errorf("invalid skill id %q", id)
	}
	data, err := os.ReadFile(filepath.Join(d.Root, id, "SKILL.md"))
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read skill doc: %w", err)
	}
	fb := d.Fallback
	if fb == nil {
		fb = FallbackSource{}
	}
	return fb.SkillDoc(id)
}
