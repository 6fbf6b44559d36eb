package mojang

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/minepkg/minelaunch/internals/layout"
	"github.com/minepkg/minelaunch/internals/minecraft"
	"github.com/minepkg/minelaunch/internals/ownhttp"
)

// AssetIndexFetcher returns asset indexes. Indexes are cached in `assets/indexes`
type AssetIndexFetcher struct {
	HTTP   *http.Client
	Layout *layout.Layout
}

// FetchAssetIndex returns the asset index `assetsID` described by `ref`.
// A cached copy is used if its sha1 matches (or no sha1 is known).
func (f *AssetIndexFetcher) FetchAssetIndex(ctx context.Context, ref *minecraft.AssetIndexRef, assetsID string) (*minecraft.AssetIndex, error) {
	path := f.Layout.AssetIndexPath(assetsID)

	data, err := os.ReadFile(path)
	if err != nil || (ref.Sha1 != "" && sha1Hex(data) != ref.Sha1) {
		data, err = ownhttp.Get(ctx, f.HTTP, ref.URL)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, err
		}
	}

	index := &minecraft.AssetIndex{}
	if err := json.Unmarshal(data, index); err != nil {
		return nil, errors.Wrapf(err, "invalid asset index %s", assetsID)
	}
	return index, nil
}

func sha1Hex(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}
