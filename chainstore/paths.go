package chainstore

import (
	"fmt"
	"os"
	"path/filepath"
)

// ChainDir returns the on-disk directory for a given chain under datadir:
//   datadir/chains/<chain_id_hex>/
func ChainDir(datadir string, chainIDHex string) string {
	return filepath.Join(datadir, "chains", chainIDHex)
}

func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	return nil
}

