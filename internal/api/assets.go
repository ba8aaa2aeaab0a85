package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const assetCacheControl = "public, max-age=86400"

// AssetHandler serves static images from the public directory.
type AssetHandler struct {
	root string
}

// NewAssetHandler creates a handler rooted at the public directory.
func NewAssetHandler(root string) *AssetHandler {
	return &AssetHandler{root: filepath.Clean(root)}
}

// safePath resolves rel under the public directory and rejects traversal
// and hidden files.
func (h *AssetHandler) safePath(rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("filename is required")
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." || strings.HasPrefix(seg, ".") {
			return "", fmt.Errorf("invalid path: %s", rel)
		}
	}
	abs := filepath.Join(h.root, filepath.FromSlash(rel))
	if !strings.HasPrefix(abs, h.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes public directory")
	}
	return abs, nil
}

// ServeImage handles GET /images/*.
func (h *AssetHandler) ServeImage(w http.ResponseWriter, r *http.Request) {
	abs, err := h.safePath("images/" + pageParam(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	info, statErr := os.Stat(abs)
	if statErr != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", assetCacheControl)
	http.ServeFile(w, r, abs)
}
