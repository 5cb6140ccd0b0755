// Package chainstore is the bbolt-backed confirmed-chain lookup surface:
// a concrete consensus.Chain implementation. One *bolt.DB, one bucket per
// lookup table, View/Update transactions on every call.
package chainstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/novaguard/novachain/consensus"
)

var (
	bucketTxByHash       = []byte("tx_by_hash")
	bucketTxHeightByHash = []byte("tx_height_by_hash")
	bucketSpendByOutpoint = []byte("spend_by_outpoint")
	bucketAssetBySymbol  = []byte("asset_by_symbol")
	bucketCertBySymbolType = []byte("cert_by_symbol_type")
	bucketMITBySymbol    = []byte("mit_by_symbol")
	bucketDIDBySymbol    = []byte("did_by_symbol")
	bucketDIDByAddress   = []byte("did_by_address")
	bucketAssetVolumeBySymbol = []byte("asset_volume_by_symbol")
	bucketValidAddresses = []byte("valid_addresses")
	bucketChainMeta      = []byte("chain_meta")

	metaKeyLastHeight = []byte("last_height")
)

var allBuckets = [][]byte{
	bucketTxByHash, bucketTxHeightByHash, bucketSpendByOutpoint,
	bucketAssetBySymbol, bucketCertBySymbolType, bucketMITBySymbol,
	bucketDIDBySymbol, bucketDIDByAddress, bucketAssetVolumeBySymbol,
	bucketValidAddresses, bucketChainMeta,
}

// DB is a bbolt-backed consensus.Chain. The zero value is not usable; build
// one with Open.
type DB struct {
	chainDir string
	db       *bolt.DB
	settings consensus.ChainSettings
}

// Open opens (creating if absent) the confirmed-chain database for
// chainIDHex under datadir, laid out as datadir/chains/<id>/ (see
// chainstore/paths.go).
func Open(datadir, chainIDHex string, settings consensus.ChainSettings) (*DB, error) {
	if datadir == "" {
		return nil, fmt.Errorf("chainstore: datadir required")
	}
	if chainIDHex == "" {
		return nil, fmt.Errorf("chainstore: chain_id_hex required")
	}

	chainDir := ChainDir(datadir, chainIDHex)
	if err := ensureDir(chainDir); err != nil {
		return nil, err
	}
	if err := ensureDir(filepath.Join(chainDir, "db")); err != nil {
		return nil, err
	}

	path := filepath.Join(chainDir, "db", "admission.db")
	bdb, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("chainstore: open bbolt: %w", err)
	}

	d := &DB{chainDir: chainDir, db: bdb, settings: settings}

	if err := d.db.Update(func(tx *bolt.Tx) error {
		for _, b := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("chainstore: create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = bdb.Close()
		return nil, err
	}

	if _, err := readManifest(chainDir); err != nil {
		if !os.IsNotExist(err) {
			_ = bdb.Close()
			return nil, fmt.Errorf("chainstore: read manifest: %w", err)
		}
		init := &Manifest{SchemaVersion: SchemaVersionV1, ChainIDHex: chainIDHex}
		if err := writeManifestAtomic(chainDir, init); err != nil {
			_ = bdb.Close()
			return nil, fmt.Errorf("chainstore: write manifest: %w", err)
		}
	}

	return d, nil
}

func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// PutConfirmed records tx as confirmed at height, marking each of its
// inputs as spent. It is the write side the orchestrator's caller invokes
// once a transaction clears admission and lands in a block; the
// consensus package itself never writes to storage.
func (d *DB) PutConfirmed(hash consensus.Hash32, tx *consensus.Tx, height uint64) error {
	b, err := EncodeTx(tx)
	if err != nil {
		return err
	}
	var advancedTip bool
	if err := d.db.Update(func(btx *bolt.Tx) error {
		if err := btx.Bucket(bucketTxByHash).Put(hash[:], b); err != nil {
			return err
		}
		var heightBuf [8]byte
		binary.LittleEndian.PutUint64(heightBuf[:], height)
		if err := btx.Bucket(bucketTxHeightByHash).Put(hash[:], heightBuf[:]); err != nil {
			return err
		}
		for _, in := range tx.Inputs {
			if in.IsNull() {
				continue
			}
			if err := btx.Bucket(bucketSpendByOutpoint).Put(outpointKey(in.PreviousOutput), []byte{1}); err != nil {
				return err
			}
		}
		meta := btx.Bucket(bucketChainMeta)
		last := meta.Get(metaKeyLastHeight)
		if last == nil || binary.LittleEndian.Uint64(last) < height {
			var buf [8]byte
			binary.LittleEndian.PutUint64(buf[:], height)
			if err := meta.Put(metaKeyLastHeight, buf[:]); err != nil {
				return err
			}
			advancedTip = true
		}
		return nil
	}); err != nil {
		return err
	}
	if advancedTip {
		m := &Manifest{
			SchemaVersion: SchemaVersionV1,
			ChainIDHex:    filepath.Base(d.chainDir),
			TipHashHex:    hashHex(hash),
			TipHeight:     height,
		}
		if err := writeManifestAtomic(d.chainDir, m); err != nil {
			return fmt.Errorf("chainstore: write manifest: %w", err)
		}
	}
	return nil
}

func (d *DB) PutAsset(a *consensus.Asset) error {
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return d.db.Update(func(btx *bolt.Tx) error {
		return btx.Bucket(bucketAssetBySymbol).Put([]byte(a.Symbol), b)
	})
}

func (d *DB) PutAssetCert(c *consensus.AssetCert) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return d.db.Update(func(btx *bolt.Tx) error {
		return btx.Bucket(bucketCertBySymbolType).Put(certKey(c.Symbol, c.CertType), b)
	})
}

func (d *DB) PutMIT(m *consensus.MIT) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return d.db.Update(func(btx *bolt.Tx) error {
		return btx.Bucket(bucketMITBySymbol).Put([]byte(m.Symbol), b)
	})
}

// PutDID records a DID's registration and its address binding.
func (d *DB) PutDID(did *consensus.DID) error {
	b, err := json.Marshal(did)
	if err != nil {
		return err
	}
	return d.db.Update(func(btx *bolt.Tx) error {
		if err := btx.Bucket(bucketDIDBySymbol).Put([]byte(did.Symbol), b); err != nil {
			return err
		}
		return btx.Bucket(bucketDIDByAddress).Put([]byte(did.Address), []byte(did.Symbol))
	})
}

func (d *DB) SetAssetVolume(symbol string, volume uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], volume)
	return d.db.Update(func(btx *bolt.Tx) error {
		return btx.Bucket(bucketAssetVolumeBySymbol).Put([]byte(symbol), buf[:])
	})
}

// MarkAddressValid records that address is a well-formed address the chain
// recognizes. If the valid_addresses bucket is empty, IsValidAddress
// accepts any non-empty string — address-format validation is delegated
// to the codec layer upstream of this store.
func (d *DB) MarkAddressValid(address string) error {
	return d.db.Update(func(btx *bolt.Tx) error {
		return btx.Bucket(bucketValidAddresses).Put([]byte(address), []byte{1})
	})
}

func (d *DB) FetchTransaction(_ context.Context, hash consensus.Hash32) (*consensus.Tx, uint64, bool, error) {
	var tx *consensus.Tx
	var height uint64
	var found bool
	err := d.db.View(func(btx *bolt.Tx) error {
		v := btx.Bucket(bucketTxByHash).Get(hash[:])
		if v == nil {
			return nil
		}
		t, err := DecodeTx(v)
		if err != nil {
			return err
		}
		hv := btx.Bucket(bucketTxHeightByHash).Get(hash[:])
		if hv != nil {
			height = binary.LittleEndian.Uint64(hv)
		}
		tx, found = t, true
		return nil
	})
	return tx, height, found, err
}

func (d *DB) FetchTransactionIndex(_ context.Context, hash consensus.Hash32) (uint64, bool, error) {
	var height uint64
	var found bool
	err := d.db.View(func(btx *bolt.Tx) error {
		v := btx.Bucket(bucketTxHeightByHash).Get(hash[:])
		if v == nil {
			return nil
		}
		height, found = binary.LittleEndian.Uint64(v), true
		return nil
	})
	return height, found, err
}

func (d *DB) FetchLastHeight(_ context.Context) (uint64, error) {
	var height uint64
	err := d.db.View(func(btx *bolt.Tx) error {
		v := btx.Bucket(bucketChainMeta).Get(metaKeyLastHeight)
		if v != nil {
			height = binary.LittleEndian.Uint64(v)
		}
		return nil
	})
	return height, err
}

func (d *DB) FetchSpend(_ context.Context, op consensus.OutPoint) (bool, error) {
	var spent bool
	err := d.db.View(func(btx *bolt.Tx) error {
		spent = btx.Bucket(bucketSpendByOutpoint).Get(outpointKey(op)) != nil
		return nil
	})
	return spent, err
}

func (d *DB) IsAssetExist(_ context.Context, symbol string) (bool, error) {
	var exists bool
	err := d.db.View(func(btx *bolt.Tx) error {
		exists = btx.Bucket(bucketAssetBySymbol).Get([]byte(symbol)) != nil
		return nil
	})
	return exists, err
}

func (d *DB) IsDIDExist(_ context.Context, symbol string) (bool, error) {
	var exists bool
	err := d.db.View(func(btx *bolt.Tx) error {
		exists = btx.Bucket(bucketDIDBySymbol).Get([]byte(symbol)) != nil
		return nil
	})
	return exists, err
}

func (d *DB) IsAssetCertExist(_ context.Context, symbol string, ct consensus.CertType) (bool, error) {
	var exists bool
	err := d.db.View(func(btx *bolt.Tx) error {
		exists = btx.Bucket(bucketCertBySymbolType).Get(certKey(symbol, ct)) != nil
		return nil
	})
	return exists, err
}

func (d *DB) GetAsset(_ context.Context, symbol string) (*consensus.Asset, bool, error) {
	var a *consensus.Asset
	err := d.db.View(func(btx *bolt.Tx) error {
		v := btx.Bucket(bucketAssetBySymbol).Get([]byte(symbol))
		if v == nil {
			return nil
		}
		a = &consensus.Asset{}
		return json.Unmarshal(v, a)
	})
	return a, a != nil, err
}

func (d *DB) GetAssetCert(_ context.Context, symbol string, ct consensus.CertType) (*consensus.AssetCert, bool, error) {
	var c *consensus.AssetCert
	err := d.db.View(func(btx *bolt.Tx) error {
		v := btx.Bucket(bucketCertBySymbolType).Get(certKey(symbol, ct))
		if v == nil {
			return nil
		}
		c = &consensus.AssetCert{}
		return json.Unmarshal(v, c)
	})
	return c, c != nil, err
}

func (d *DB) GetRegisteredMIT(_ context.Context, symbol string) (*consensus.MIT, bool, error) {
	var m *consensus.MIT
	err := d.db.View(func(btx *bolt.Tx) error {
		v := btx.Bucket(bucketMITBySymbol).Get([]byte(symbol))
		if v == nil {
			return nil
		}
		m = &consensus.MIT{}
		return json.Unmarshal(v, m)
	})
	return m, m != nil, err
}

func (d *DB) GetRegisteredDID(_ context.Context, symbol string) (*consensus.DID, bool, error) {
	var did *consensus.DID
	err := d.db.View(func(btx *bolt.Tx) error {
		v := btx.Bucket(bucketDIDBySymbol).Get([]byte(symbol))
		if v == nil {
			return nil
		}
		did = &consensus.DID{}
		return json.Unmarshal(v, did)
	})
	return did, did != nil, err
}

func (d *DB) GetDIDFromAddress(_ context.Context, address string) (string, bool, error) {
	var symbol string
	var found bool
	err := d.db.View(func(btx *bolt.Tx) error {
		v := btx.Bucket(bucketDIDByAddress).Get([]byte(address))
		if v == nil {
			return nil
		}
		symbol, found = string(v), true
		return nil
	})
	return symbol, found, err
}

func (d *DB) GetAssetVolume(_ context.Context, symbol string) (uint64, error) {
	var volume uint64
	err := d.db.View(func(btx *bolt.Tx) error {
		v := btx.Bucket(bucketAssetVolumeBySymbol).Get([]byte(symbol))
		if v != nil {
			volume = binary.LittleEndian.Uint64(v)
		}
		return nil
	})
	return volume, err
}

func (d *DB) IsValidAddress(address string) bool {
	if address == "" {
		return false
	}
	var any bool
	var valid bool
	_ = d.db.View(func(btx *bolt.Tx) error {
		b := btx.Bucket(bucketValidAddresses)
		if stats := b.Stats(); stats.KeyN > 0 {
			any = true
			valid = b.Get([]byte(address)) != nil
		}
		return nil
	})
	if !any {
		return true
	}
	return valid
}

func (d *DB) ChainSettings() consensus.ChainSettings {
	return d.settings
}

var _ consensus.Chain = (*DB)(nil)
