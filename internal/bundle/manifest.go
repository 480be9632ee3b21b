// Package bundle packages an assembled config together with its skill packs
// and writes the result to a directory, a zip archive, or object storage.
package bundle

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/abhisek/agentbrief/internal/assemble"
	"github.com/abhisek/agentbrief/internal/catalog"
	"github.com/abhisek/agentbrief/internal/decision"
)

// SummaryFilename is the machine-readable summary written into every bundle.
const SummaryFilename = "agentbrief.json"

// Kind classifies a bundle file.
type Kind string

const (
	KindDocument Kind = "document"
	KindSkill    Kind = "skill"
	KindSummary  Kind = "summary"
)

// File is one bundle entry. Path is slash-separated and relative.
type File struct {
	Path    string `json:"path"`
	Kind    Kind   `json:"kind"`
	Content []byte `json:"-"`
}

// Manifest is the ordered list of files in a bundle: the document first,
// then the summary, then one SKILL.md per selected skill in selection order.
type Manifest struct {
	Files []File `json:"files"`
}

// Summary is the content of agentbrief.json.
type Summary struct {
	Filename    string   `json:"filename"`
	ProjectType string   `json:"projectType"`
	Tier        int      `json:"tier"`
	TierLabel   string   `json:"tierLabel"`
	Stack       []string `json:"stack"`
	Skills      []string `json:"skills"`
	Enhanced    bool     `json:"enhanced"`
}

// Build assembles the manifest. Skill content comes from src; a nil src uses
// FallbackSource.
func Build(doc assemble.Document, r decision.Result, src ContentSource) (Manifest, error) {
	if src == nil {
		src = FallbackSource{}
	}

	stackIDs := make([]string, len(r.Stack))
	for i, t := range r.Stack {
		stackIDs[i] = string(t)
	}
	skills := make([]string, len(r.Skills))
	copy(skills, r.Skills)

	summary, err := json.MarshalIndent(Summary{
		Filename:    doc.Filename,
		ProjectType: string(r.ProjectType),
		Tier:        int(r.Tier()),
		TierLabel:   r.Guardrail.Label,
		Stack:       stackIDs,
		Skills:      skills,
		Enhanced:    doc.Enhanced,
	}, "", "  ")
	if err != nil {
		return Manifest{}, fmt.Errorf("marshal summary: %w", err)
	}

	files := []File{
		{Path: doc.Filename, Kind: KindDocument, Content: []byte(doc.String())},
		{Path: SummaryFilename, Kind: KindSummary, Content: append(summary, '\n')},
	}
	for _, id := range r.Skills {
		content, err := src.SkillDoc(id)
		if err != nil {
			return Manifest{}, fmt.Errorf("skill %s: %w", id, err)
		}
		files = append(files, File{Path: catalog.SkillPath(id), Kind: KindSkill, Content: content})
	}
	return Manifest{Files: files}, nil
}

// Paths returns the file paths in manifest order.
func (m Manifest) Paths() []string {
	out := make([]string, len(m.Files))
	for i, f := range m.Files {
		out[i] = f.Path
	}
	return out
}

// Size returns the total content size in bytes.
func (m Manifest) Size() int64 {
	var n int64
	for _, f := range m.Files {
		n += int64(len(f.Content))
	}
	return n
}

// Tree renders the bundle layout under root.
func (m Manifest) Tree(root string) string {
	tree := treeprint.New()
	tree.SetValue(root)

	dirs := map[string]treeprint.Tree{"": tree}
	var branch func(dir string) treeprint.Tree
	branch = func(dir string) treeprint.Tree {
		if t, ok := dirs[dir]; ok {
			return t
		}
		parent, name := path.Split(dir)
		t := branch(strings.TrimSuffix(parent, "/")).AddBranch(name)
		dirs[dir] = t
		return t
	}

	for _, f := range m.Files {
		dir, name := path.Split(f.Path)
		branch(strings.TrimSuffix(dir, "/")).AddNode(name)
	}
	return tree.String()
}
