package util

import (
	"github.com/zhiqiangxu/graphis"
)

// RunInNewUpdateTxn for run f in a new update transaction
func RunInNewUpdateTxn(kvdb graphis.KVDB, f func(graphis.ProviderTxn) error) (err error) {
	txn := kvdb.NewTransaction(true)
	defer txn.Discard()

	err = f(txn)
	if err != nil {
		return
	}

	err = txn.Commit()
	return
}

// RunInNewTxn for run f in a new read-only transaction
func RunInNewTxn(kvdb graphis.KVDB, f func(graphis.ProviderTxn) error) (err error) {
	txn := kvdb.NewTransaction(false)
	defer txn.Discard()

	err = f(txn)

	return
}
