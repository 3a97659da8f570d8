package services

import "github.com/halcyon-labs/docindexer/internal/core/domain"

// Hierarchy maps a folder path to the names of the documents it contains.
// It is built once per run from the full document listing and read-only
// afterwards, so concurrent document pipelines may share it without
// synchronisation.
type Hierarchy map[string][]string

// BuildHierarchy folds the document listing into a folder map.
// Documents without a folder path are grouped under domain.RootFolder.
func BuildHierarchy(docs []domain.DocumentInfo) Hierarchy {
	h := make(Hierarchy)
	for _, doc := range docs {
		folder := doc.Folder()
		h[folder] = append(h[folder], doc.Name)
	}
	return h
}

// Siblings returns up to limit names of documents sharing the folder,
// excluding the named document itself.
func (h Hierarchy) Siblings(folder, exclude string, limit int) []string {
	names := h[folder]
	if len(names) == 0 || limit <= 0 {
		return nil
	}

	siblings := make([]string, 0, limit)
	for _, name := range names {
		if name == exclude {
			continue
		}
		siblings = append(siblings, name)
		if len(siblings) == limit {
			break
		}
	}
	return siblings
}
