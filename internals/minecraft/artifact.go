package minecraft

// Artifact is an object describing a "thing" that can be downloaded
// It is used for libraries, native classifiers and the client jar itself
type Artifact struct {
	// Path of the jar file relative to the libraries folder
	// Path is not set for the minecraft client itself
	Path string `json:"path,omitempty"`
	Sha1 string `json:"sha1,omitempty"`
	// Size in bytes
	Size int64 `json:"size,omitempty"`
	// URL to download the file
	URL string `json:"url"`
}
