package scan

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/palgatox64/sonusitory/internal/drive"
)

// getterTree serves Get from a fixed folder map and counts calls.
type getterTree struct {
	folders map[string]drive.FileMeta
	gets    int
}

func (g *getterTree) List(ctx context.Context, query string, pageSize int64, pageToken string) ([]drive.FileMeta, string, error) {
	return nil, "", errors.New("not used")
}

func (g *getterTree) Get(ctx context.Context, fileID, fields string) (drive.FileMeta, error) {
	g.gets++
	meta, ok := g.folders[fileID]
	if !ok {
		return drive.FileMeta{}, fmt.Errorf("folder %s not found", fileID)
	}
	return meta, nil
}

func folderChain(folders map[string]drive.FileMeta, rootID string, names ...string) string {
	parent := rootID
	id := rootID
	for i, name := range names {
		id = fmt.Sprintf("f%d-%s", i, name)
		folders[id] = drive.FileMeta{ID: id, Name: name, Parents: []string{parent}}
		parent = id
	}
	return id
}

func TestResolvePathReachesRoot(t *testing.T) {
	tree := &getterTree{folders: map[string]drive.FileMeta{}}
	leaf := folderChain(tree.folders, "root", "Rock", "Radiohead", "OK Computer")
	r := newPathResolver(tree, zap.NewNop())

	names, reachedRoot := r.resolvePath(context.Background(), leaf, "root")

	require.True(t, reachedRoot)
	assert.Equal(t, []string{"Rock", "Radiohead", "OK Computer"}, names)
}

func TestResolvePathCachesAcrossCalls(t *testing.T) {
	tree := &getterTree{folders: map[string]drive.FileMeta{}}
	leaf := folderChain(tree.folders, "root", "Radiohead", "OK Computer")
	r := newPathResolver(tree, zap.NewNop())

	_, reachedRoot := r.resolvePath(context.Background(), leaf, "root")
	require.True(t, reachedRoot)
	assert.Equal(t, 2, tree.gets)

	_, reachedRoot = r.resolvePath(context.Background(), leaf, "root")
	require.True(t, reachedRoot)
	assert.Equal(t, 2, tree.gets, "second walk must be served from cache")
}

func TestResolvePathSeededNeverFetches(t *testing.T) {
	tree := &getterTree{folders: map[string]drive.FileMeta{}}
	r := newPathResolver(tree, zap.NewNop())
	r.seed("a1", "Radiohead", "root")
	r.seed("a2", "OK Computer", "a1")

	names, reachedRoot := r.resolvePath(context.Background(), "a2", "root")

	require.True(t, reachedRoot)
	assert.Equal(t, []string{"Radiohead", "OK Computer"}, names)
	assert.Zero(t, tree.gets)
}

func TestResolvePathMissingAncestor(t *testing.T) {
	tree := &getterTree{folders: map[string]drive.FileMeta{
		"album": {ID: "album", Name: "OK Computer", Parents: []string{"gone"}},
	}}
	r := newPathResolver(tree, zap.NewNop())

	names, reachedRoot := r.resolvePath(context.Background(), "album", "root")

	assert.False(t, reachedRoot)
	assert.Equal(t, []string{"OK Computer"}, names)
}

func TestResolvePathOrphanStopsWithoutRoot(t *testing.T) {
	tree := &getterTree{folders: map[string]drive.FileMeta{
		"loose": {ID: "loose", Name: "Loose"},
	}}
	r := newPathResolver(tree, zap.NewNop())

	_, reachedRoot := r.resolvePath(context.Background(), "loose", "root")

	assert.False(t, reachedRoot)
}

func TestResolvePathCycleTerminates(t *testing.T) {
	tree := &getterTree{folders: map[string]drive.FileMeta{
		"a": {ID: "a", Name: "A", Parents: []string{"b"}},
		"b": {ID: "b", Name: "B", Parents: []string{"a"}},
	}}
	r := newPathResolver(tree, zap.NewNop())

	_, reachedRoot := r.resolvePath(context.Background(), "a", "root")

	assert.False(t, reachedRoot)
}

func TestResolvePathDeepChain(t *testing.T) {
	tree := &getterTree{folders: map[string]drive.FileMeta{}}
	names := make([]string, 5000)
	for i := range names {
		names[i] = fmt.Sprintf("level-%d", i)
	}
	leaf := folderChain(tree.folders, "root", names...)
	r := newPathResolver(tree, zap.NewNop())

	resolved, reachedRoot := r.resolvePath(context.Background(), leaf, "root")

	require.True(t, reachedRoot)
	assert.Len(t, resolved, 5000)
	assert.Equal(t, "level-0", resolved[0])
	assert.Equal(t, "level-4999", resolved[4999])
}
