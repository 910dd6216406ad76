package classify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is a top-level bucket of the sorted tree.
type Category string

const (
	CategoryDocuments   Category = "Documents"
	CategoryMedia       Category = "Media"
	CategoryArchives    Category = "Archives"
	CategoryCode        Category = "Code"
	CategoryExecutables Category = "Executables"
	CategoryTemporary   Category = "Temporary"
	CategoryUnknown     Category = "Unknown"
)

// Result is a two-level classification decision. Subcategory is empty only
// for the Unknown bucket.
type Result struct {
	Category    Category
	Subcategory string
}

func (r Result) String() string {
	if r.Subcategory == "" {
		return string(r.Category)
	}
	return string(r.Category) + "/" + r.Subcategory
}

// Unknown is the terminal bucket for inconclusive classifications.
var Unknown = Result{Category: CategoryUnknown}

// tree is the fixed directory layout contract. Directories are provisioned
// eagerly so every classifier decision has a pre-existing destination.
var tree = map[Category][]string{
	CategoryDocuments:   {"PDFs", "Word", "Excel", "Text", "Presentations"},
	CategoryMedia:       {"Images", "Videos", "Audio"},
	CategoryArchives:    {"ZIP", "RAR", "7Z", "TAR"},
	CategoryCode:        {"Python", "JavaScript", "HTML", "Other"},
	CategoryExecutables: {"Installers", "Programs", "Scripts"},
	CategoryTemporary:   {"Cache", "Logs", "Temp"},
	CategoryUnknown:     nil,
}

// Categories returns the fixed top-level category set in stable order.
func Categories() []Category {
	return []Category{
		CategoryDocuments,
		CategoryMedia,
		CategoryArchives,
		CategoryCode,
		CategoryExecutables,
		CategoryTemporary,
		CategoryUnknown,
	}
}

// Subcategories returns the provisioned subcategories of a category.
func Subcategories(cat Category) []string {
	subs := tree[cat]
	cp := make([]string, len(subs))
	copy(cp, subs)
	return cp
}

// Dir resolves the directory for a classification under root.
func Dir(root string, r Result) string {
	if r.Subcategory == "" {
		return filepath.Join(root, string(r.Category))
	}
	return filepath.Join(root, string(r.Category), r.Subcategory)
}

// EnsureTree creates the full category tree under root.
func EnsureTree(root string) error {
	for _, cat := range Categories() {
		dir := filepath.Join(root, string(cat))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create category directory %q: %w", dir, err)
		}
		for _, sub := range tree[cat] {
			subDir := filepath.Join(dir, sub)
			if err := os.MkdirAll(subDir, 0o755); err != nil {
				return fmt.Errorf("create subcategory directory %q: %w", subDir, err)
			}
		}
	}
	return nil
}

var subcategoryCaser = cases.Title(language.English)

// NormalizeSubcategory canonicalizes a dynamically supplied subcategory name
// (for example "python" from an injected content classifier) before it is
// used as a directory name. Known provisioned names are preserved verbatim.
func NormalizeSubcategory(cat Category, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	for _, sub := range tree[cat] {
		if strings.EqualFold(sub, name) {
			return sub
		}
	}
	return subcategoryCaser.String(name)
}
