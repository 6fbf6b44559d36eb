// Package downloadmgr decides which files are missing and downloads them
// concurrently with retries, rate limiting and progress reporting.
package downloadmgr

// Category tells what a planned file is used for
type Category uint8

const (
	CategoryClient Category = iota
	CategoryLibrary
	CategoryNative
	CategoryAsset
	CategoryAssetIndex
	CategoryLogging
)

func (c Category) String() string {
	switch c {
	case CategoryClient:
		return "client"
	case CategoryLibrary:
		return "library"
	case CategoryNative:
		return "native"
	case CategoryAsset:
		return "asset"
	case CategoryAssetIndex:
		return "asset-index"
	case CategoryLogging:
		return "logging"
	}
	return "unknown"
}

// PlannedFile is a file that has to exist on disk. Target is unique within a plan
type PlannedFile struct {
	URL    string
	Target string
	// Sha1 is empty if the hash is unknown
	Sha1     string
	Size     int64
	Category Category
}
