package provider

import (
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
	"github.com/zhiqiangxu/graphis"
	"github.com/zhiqiangxu/graphis/kv"
)

// LevelDB is graphis provider for LevelDB
type LevelDB struct {
	db *leveldb.DB
}

// NewLevelDB is ctor for LevelDB provider
func NewLevelDB() graphis.KVDB {
	return &LevelDB{}
}

// Open db
func (l *LevelDB) Open(option graphis.KVOption) (err error) {
	db, err := leveldb.OpenFile(option.Dir, nil)
	if err != nil {
		return
	}

	l.db = db
	return
}

// Close db
func (l *LevelDB) Close() (err error) {
	if l.db == nil {
		return
	}
	err = l.db.Close()
	return
}

// NewTransaction creates a transaction object
func (l *LevelDB) NewTransaction(update bool) graphis.ProviderTxn {
	panic("transaction not supported for leveldb")
}

// Set kv
func (l *LevelDB) Set(k, v []byte, meta *graphis.VMetaReq) (err error) {
	if meta != nil {
		err = fmt.Errorf("meta not supported for LevelDB")
		return
	}
	err = l.db.Put(k, v, nil)
	return
}

// Exists checks whether k exists
func (l *LevelDB) Exists(k []byte) (exists bool, err error) {
	exists, err = l.db.Has(k, nil)

	return
}

// Get v by k
func (l *LevelDB) Get(k []byte) (v []byte, meta graphis.VMetaResp, err error) {

	v, err = l.db.Get(k, nil)
	if err == leveldb.ErrNotFound {
		err = kv.ErrKeyNotFound
	}

	// keep behaviour the same as badger
	if len(v) == 0 {
		v = nil
	}
	return
}

// Delete k
func (l *LevelDB) Delete(key []byte) (err error) {
	err = l.db.Delete(key, nil)
	return
}

var emptyMeta graphis.VMetaResp

// Scan over keys specified by option
func (l *LevelDB) Scan(option graphis.ProviderScanOption, fn func(key []byte, value []byte, meta graphis.VMetaResp) bool) (err error) {

	if option.Reverse {
		err = fmt.Errorf("Reverse scan not supported for LevelDB")
		return
	}

	var slice *util.Range
	if option.Prefix != nil {
		slice = util.BytesPrefix(option.Prefix)
	}
	iter := l.db.NewIterator(slice, nil)
	defer iter.Release()
	if option.Offset != nil {
		if !iter.Seek(option.Offset) {
			return
		}
		if !fn(iter.Key(), iter.Value(), emptyMeta) {
			return
		}
	}

	for {
		if !iter.Next() {
			break
		}
		if !fn(iter.Key(), iter.Value(), emptyMeta) {
			break
		}
	}

	return
}
