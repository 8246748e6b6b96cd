package scan

import (
	"context"

	"go.uber.org/zap"
)

// folderMeta is a cached folder record: the display name plus the single
// parent reference used for upward walks.
type folderMeta struct {
	name   string
	parent string
}

// pathResolver walks parent links upward from a folder until it reaches
// the library root. Folder metadata is cached for the lifetime of one
// scan run so each folder is fetched at most once no matter how many
// files share its ancestry. The cache is never shared across runs.
type pathResolver struct {
	tree   TreeClient
	cache  map[string]folderMeta
	logger *zap.Logger
}

func newPathResolver(tree TreeClient, logger *zap.Logger) *pathResolver {
	return &pathResolver{
		tree:   tree,
		cache:  make(map[string]folderMeta),
		logger: logger,
	}
}

// seed pre-populates the cache from metadata already in hand, typically
// gathered during folder discovery.
func (r *pathResolver) seed(folderID, name, parent string) {
	if folderID == "" {
		return
	}
	r.cache[folderID] = folderMeta{name: name, parent: parent}
}

// lookup fetches folder metadata through the cache.
func (r *pathResolver) lookup(ctx context.Context, folderID string) (folderMeta, error) {
	if meta, ok := r.cache[folderID]; ok {
		return meta, nil
	}
	file, err := r.tree.Get(ctx, folderID, "id, name, parents")
	if err != nil {
		return folderMeta{}, err
	}
	meta := folderMeta{name: file.Name}
	if len(file.Parents) > 0 {
		meta.parent = file.Parents[0]
	}
	r.cache[folderID] = meta
	return meta, nil
}

// resolvePath returns the ordered folder names from rootID (exclusive)
// down to folderID (inclusive). The walk is iterative, so folder depth
// is bounded only by the actual tree. If an ancestor cannot be fetched
// the partial path gathered so far is returned with reachedRoot false;
// callers must treat such a path as outside the configured root.
func (r *pathResolver) resolvePath(ctx context.Context, folderID, rootID string) (names []string, reachedRoot bool) {
	seen := make(map[string]bool)
	current := folderID
	for current != "" && current != rootID {
		if seen[current] {
			r.logger.Warn("parent cycle detected during path resolution",
				zap.String("folderId", current))
			break
		}
		seen[current] = true

		meta, err := r.lookup(ctx, current)
		if err != nil {
			r.logger.Warn("folder lookup failed during path resolution",
				zap.String("folderId", current),
				zap.Error(err))
			reverse(names)
			return names, false
		}
		names = append(names, meta.name)
		current = meta.parent
	}

	reverse(names)
	return names, current == rootID
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
