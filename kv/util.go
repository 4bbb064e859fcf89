package kv

import (
	"strconv"

	"github.com/zhiqiangxu/graphis"
)

// IncInt64 increases the value for key k in kv store by step.
func IncInt64(txn graphis.ProviderTxn, k []byte, step int64) (n int64, err error) {
	v, _, err := txn.Get(k)
	if err == ErrKeyNotFound {
		err = txn.Set(k, []byte(strconv.FormatInt(step, 10)), nil)
		if err != nil {
			return
		}
		n = step
		return
	}
	if err != nil {
		return
	}

	n, err = strconv.ParseInt(string(v), 10, 64)
	if err != nil {
		return
	}

	n += step
	err = txn.Set(k, []byte(strconv.FormatInt(n, 10)), nil)
	return
}

// GetInt64 gets the int64 value for key k, 0 if absent.
func GetInt64(txn graphis.ProviderTxn, k []byte) (n int64, err error) {
	v, _, err := txn.Get(k)
	if err == ErrKeyNotFound {
		err = nil
		return
	}
	if err != nil {
		return
	}

	n, err = strconv.ParseInt(string(v), 10, 64)
	return
}
