package schema

import (
	"os"
	"testing"

	"github.com/zhiqiangxu/graphis"
	"github.com/zhiqiangxu/graphis/graph/catalog"
	"github.com/zhiqiangxu/graphis/graph/model"
	"github.com/zhiqiangxu/graphis/provider"
	"github.com/zhiqiangxu/graphis/util"
	"gotest.tools/assert"
)

func openTestKVDB(t *testing.T, name string) graphis.KVDB {
	dataDir := "/tmp/graphis_" + name
	os.RemoveAll(dataDir)
	kvdb := provider.NewBadger()
	err := kvdb.Open(graphis.KVOption{Dir: dataDir})
	assert.Assert(t, err == nil)
	return kvdb
}

func countResults(results []AssertResult, label, action string) (n int) {
	for _, r := range results {
		if r.Label == label && r.Action == action {
			n++
		}
	}
	return
}

func hasResult(results []AssertResult, label, action string, keys ...string) bool {
	for _, r := range results {
		if r.Label == label && r.Action == action && propertiesEqual(r.Keys, keys) {
			return true
		}
	}
	return false
}

func TestAssertCreates(t *testing.T) {
	kvdb := openTestKVDB(t, "assert_creates")
	defer kvdb.Close()

	indexes := map[string][]KeySpec{"Person": {Key("email"), CompoundKey("first", "last")}}

	var results []AssertResult
	err := util.RunInNewUpdateTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		results, err = NewManager(txn).Assert(indexes, nil, true)
		return
	})
	assert.Assert(t, err == nil && len(results) == 2)
	assert.Assert(t, hasResult(results, "Person", ActionCreated, "email"))
	assert.Assert(t, hasResult(results, "Person", ActionCreated, "first", "last"))

	// single key results carry both key and keys
	for _, r := range results {
		if len(r.Keys) == 1 {
			assert.Assert(t, r.Key == r.Keys[0])
		} else {
			assert.Assert(t, r.Key == "")
		}
		assert.Assert(t, !r.Unique)
	}

	// caller input is never mutated
	assert.Assert(t, len(indexes["Person"]) == 2)

	err = util.RunInNewTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		m := NewManager(txn)
		exists, err := m.IndexExistsOnNode("Person", []string{"email"})
		assert.Assert(t, err == nil && exists)
		exists, err = m.IndexExistsOnNode("Person", []string{"first", "last"})
		assert.Assert(t, err == nil && exists)
		return
	})
	assert.Assert(t, err == nil)
}

func TestAssertDropRecreate(t *testing.T) {
	kvdb := openTestKVDB(t, "assert_drop_recreate")
	defer kvdb.Close()

	indexes := map[string][]KeySpec{"Person": {Key("email"), CompoundKey("first", "last")}}

	err := util.RunInNewUpdateTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		_, err = NewManager(txn).Assert(indexes, nil, true)
		return
	})
	assert.Assert(t, err == nil)

	// second run with dropExisting drops and recreates every requested index
	var results []AssertResult
	err = util.RunInNewUpdateTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		results, err = NewManager(txn).Assert(indexes, nil, true)
		return
	})
	assert.Assert(t, err == nil && len(results) == 4)
	assert.Assert(t, countResults(results, "Person", ActionDropped) == 2)
	assert.Assert(t, countResults(results, "Person", ActionCreated) == 2)
	assert.Assert(t, hasResult(results, "Person", ActionDropped, "email"))
	assert.Assert(t, hasResult(results, "Person", ActionCreated, "email"))

	// final catalog state equals the desired spec
	err = util.RunInNewTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		infos, err := catalog.New(txn).Indexes()
		assert.Assert(t, err == nil && len(infos) == 2)
		return
	})
	assert.Assert(t, err == nil)
}

func TestAssertConstraintsNoChurn(t *testing.T) {
	kvdb := openTestKVDB(t, "assert_constraints_no_churn")
	defer kvdb.Close()

	err := util.RunInNewUpdateTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		results, err := NewManager(txn).Assert(nil, map[string][]KeySpec{"User": {Key("id")}}, false)
		assert.Assert(t, err == nil && len(results) == 1)
		assert.Assert(t, hasResult(results, "User", ActionCreated, "id") && results[0].Unique)
		return
	})
	assert.Assert(t, err == nil)

	// re-running with an added key keeps the prior one untouched
	var results []AssertResult
	err = util.RunInNewUpdateTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		results, err = NewManager(txn).Assert(nil, map[string][]KeySpec{"User": {Key("id"), Key("email")}}, false)
		return
	})
	assert.Assert(t, err == nil && len(results) == 2)
	assert.Assert(t, hasResult(results, "User", ActionKept, "id"))
	assert.Assert(t, hasResult(results, "User", ActionCreated, "email"))
	assert.Assert(t, countResults(results, "User", ActionDropped) == 0)

	err = util.RunInNewTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		infos, err := catalog.New(txn).Constraints()
		assert.Assert(t, err == nil && len(infos) == 2)
		return
	})
	assert.Assert(t, err == nil)
}

func TestAssertConstraintsNotRecreatedUnderDrop(t *testing.T) {
	kvdb := openTestKVDB(t, "assert_constraints_kept")
	defer kvdb.Close()

	constraints := map[string][]KeySpec{"User": {Key("id")}}

	err := util.RunInNewUpdateTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		_, err = NewManager(txn).Assert(nil, constraints, true)
		return
	})
	assert.Assert(t, err == nil)

	// unlike indexes, a re-requested constraint is kept, not dropped and recreated
	var results []AssertResult
	err = util.RunInNewUpdateTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		results, err = NewManager(txn).Assert(nil, constraints, true)
		return
	})
	assert.Assert(t, err == nil && len(results) == 1)
	assert.Assert(t, hasResult(results, "User", ActionKept, "id"))
}

func TestIndexExistsExactMatch(t *testing.T) {
	kvdb := openTestKVDB(t, "index_exists")
	defer kvdb.Close()

	err := util.RunInNewUpdateTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		_, err = NewManager(txn).Assert(map[string][]KeySpec{"Person": {Key("email"), CompoundKey("first", "last")}}, nil, true)
		return
	})
	assert.Assert(t, err == nil)

	err = util.RunInNewTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		m := NewManager(txn)

		exists, err := m.IndexExistsOnNode("Person", []string{"email"})
		assert.Assert(t, err == nil && exists)

		// not subset, not superset, not reordered
		exists, err = m.IndexExistsOnNode("Person", []string{"email", "name"})
		assert.Assert(t, err == nil && !exists)
		exists, err = m.IndexExistsOnNode("Person", []string{"last", "first"})
		assert.Assert(t, err == nil && !exists)
		exists, err = m.IndexExistsOnNode("Animal", []string{"email"})
		assert.Assert(t, err == nil && !exists)
		return
	})
	assert.Assert(t, err == nil)
}

func TestNodesNotFoundSentinel(t *testing.T) {
	kvdb := openTestKVDB(t, "nodes_not_found")
	defer kvdb.Close()

	err := util.RunInNewUpdateTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		cat := catalog.New(txn)
		info, err := cat.CreateIndex("Person", []string{"email"})
		if err != nil {
			return
		}
		err = cat.DeleteIndexRuntime(info.ID)
		return
	})
	assert.Assert(t, err == nil)

	err = util.RunInNewTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		infos, err := NewManager(txn).Nodes()
		assert.Assert(t, err == nil && len(infos) == 1)
		ni := infos[0]
		assert.Assert(t, ni.Status == NotFound && ni.Failure == NotFound)
		assert.Assert(t, ni.PopulationProgress == 0 && ni.Size == 0 && ni.ValuesSelectivity == 0)
		assert.Assert(t, ni.Name == ":Person(email)" && ni.Kind == "INDEX")
		return
	})
	assert.Assert(t, err == nil)
}

func TestAssertEmptyKeysFails(t *testing.T) {
	kvdb := openTestKVDB(t, "assert_empty_keys")
	defer kvdb.Close()

	// a malformed existing index with no keys under a declared label
	err := util.RunInNewUpdateTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		_, err = catalog.New(txn).CreateIndex("Person", nil)
		return
	})
	assert.Assert(t, err == nil)

	err = util.RunInNewUpdateTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		_, err = NewManager(txn).Assert(map[string][]KeySpec{"Person": {Key("email")}}, nil, false)
		return
	})
	assert.Assert(t, err == ErrLabelGivenNoKeys)

	// failed before any creation
	err = util.RunInNewTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		infos, err := catalog.New(txn).Indexes()
		assert.Assert(t, err == nil && len(infos) == 1)
		return
	})
	assert.Assert(t, err == nil)
}

func TestNodesOrdering(t *testing.T) {
	kvdb := openTestKVDB(t, "nodes_ordering")
	defer kvdb.Close()

	err := util.RunInNewUpdateTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		cat := catalog.New(txn)
		_, err = cat.CreateNodeExistenceConstraint("Zebra", "name")
		if err != nil {
			return
		}
		_, err = cat.CreateNodeExistenceConstraint("Ant", "name")
		if err != nil {
			return
		}
		_, err = cat.CreateIndex("Wolf", []string{"name"})
		if err != nil {
			return
		}
		_, err = cat.CreateUniquenessConstraint("Bee", "id")
		return
	})
	assert.Assert(t, err == nil)

	err = util.RunInNewTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		infos, err := NewManager(txn).Nodes()
		assert.Assert(t, err == nil && len(infos) == 4)

		// existence constraints first sorted by label, then indexes sorted by label
		assert.Assert(t, infos[0].Label == "Ant" && infos[0].Kind == "NODE_PROPERTY_EXISTENCE")
		assert.Assert(t, infos[1].Label == "Zebra" && infos[1].Kind == "NODE_PROPERTY_EXISTENCE")
		assert.Assert(t, infos[2].Label == "Bee" && infos[2].Kind == "UNIQUENESS")
		assert.Assert(t, infos[3].Label == "Wolf" && infos[3].Kind == "INDEX")

		// constraint records have the fixed sentinels
		assert.Assert(t, infos[0].Status == "" && infos[0].Failure == NoFailure)
		assert.Assert(t, infos[0].PopulationProgress == 0 && infos[0].Size == 0 && infos[0].ValuesSelectivity == 0)

		// index records expose runtime state
		assert.Assert(t, infos[3].Status == "ONLINE" && infos[3].Failure == NoFailure)
		assert.Assert(t, infos[3].PopulationProgress == 100)
		return
	})
	assert.Assert(t, err == nil)
}

func TestNodesFailedIndex(t *testing.T) {
	kvdb := openTestKVDB(t, "nodes_failed")
	defer kvdb.Close()

	err := util.RunInNewUpdateTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		cat := catalog.New(txn)
		info, err := cat.CreateIndex("Person", []string{"email"})
		if err != nil {
			return
		}
		err = cat.UpdateIndexRuntime(info.ID, model.IndexRuntime{
			State:     model.IndexStateFailed,
			Completed: 1,
			Total:     4,
			Failure:   "out of disk",
		})
		return
	})
	assert.Assert(t, err == nil)

	err = util.RunInNewTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		infos, err := NewManager(txn).Nodes()
		assert.Assert(t, err == nil && len(infos) == 1)
		assert.Assert(t, infos[0].Status == "FAILED" && infos[0].Failure == "out of disk")
		assert.Assert(t, infos[0].PopulationProgress == 25)
		return
	})
	assert.Assert(t, err == nil)
}

func TestRelationships(t *testing.T) {
	kvdb := openTestKVDB(t, "relationships")
	defer kvdb.Close()

	err := util.RunInNewUpdateTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		_, err = catalog.New(txn).CreateRelationshipExistenceConstraint("LIKES", "since")
		return
	})
	assert.Assert(t, err == nil)

	err = util.RunInNewTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		m := NewManager(txn)

		infos, err := m.Relationships()
		assert.Assert(t, err == nil && len(infos) == 1)
		ri := infos[0]
		assert.Assert(t, ri.Kind == "RELATIONSHIP_PROPERTY_EXISTENCE")
		assert.Assert(t, len(ri.Properties) == 1 && ri.Properties[0] == "since")
		assert.Assert(t, ri.Name == "CONSTRAINT CONSTRAINT ON ()-[r:LIKES]-() ASSERT exists(r.since)")
		assert.Assert(t, ri.Info == "")

		exists, err := m.ConstraintExistsOnRelationship("LIKES", []string{"since"})
		assert.Assert(t, err == nil && exists)
		exists, err = m.ConstraintExistsOnRelationship("LIKES", []string{"until"})
		assert.Assert(t, err == nil && !exists)
		// relationship constraints are invisible to the node predicate
		exists, err = m.ConstraintExistsOnNode("LIKES", []string{"since"})
		assert.Assert(t, err == nil && !exists)
		return
	})
	assert.Assert(t, err == nil)
}

func TestConstraintBackedIndexSurvivesIndexAssert(t *testing.T) {
	kvdb := openTestKVDB(t, "constraint_backed")
	defer kvdb.Close()

	err := util.RunInNewUpdateTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		_, err = catalog.New(txn).CreateUniquenessConstraint("User", "id")
		return
	})
	assert.Assert(t, err == nil)

	// an index only assert with dropExisting must not touch the backing index
	var results []AssertResult
	err = util.RunInNewUpdateTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		results, err = NewManager(txn).AssertIndexes(nil, true)
		return
	})
	assert.Assert(t, err == nil && len(results) == 0)

	err = util.RunInNewTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		m := NewManager(txn)
		exists, err := m.ConstraintExistsOnNode("User", []string{"id"})
		assert.Assert(t, err == nil && exists)
		exists, err = m.IndexExistsOnNode("User", []string{"id"})
		assert.Assert(t, err == nil && exists)
		return
	})
	assert.Assert(t, err == nil)
}

func TestParseSpec(t *testing.T) {
	spec, err := ParseSpec(map[string][]interface{}{
		"Person": {"email", []interface{}{"first", "last"}},
	})
	assert.Assert(t, err == nil && len(spec["Person"]) == 2)
	assert.Assert(t, !spec["Person"][0].Compound && spec["Person"][0].Properties[0] == "email")
	assert.Assert(t, spec["Person"][1].Compound && propertiesEqual(spec["Person"][1].Properties, []string{"first", "last"}))

	_, err = ParseSpec(map[string][]interface{}{"Person": {42}})
	assert.Assert(t, err == ErrBadKeySpec)

	_, err = ParseSpec(map[string][]interface{}{"Person": {[]interface{}{"first", 42}}})
	assert.Assert(t, err == ErrBadKeySpec)
}

func TestSingleVsCompoundNoCrossMatch(t *testing.T) {
	kvdb := openTestKVDB(t, "no_cross_match")
	defer kvdb.Close()

	err := util.RunInNewUpdateTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		_, err = catalog.New(txn).CreateIndex("Person", []string{"email"})
		return
	})
	assert.Assert(t, err == nil)

	// a one element compound spec does not match an existing single
	// property index, so without dropExisting it conflicts on creation
	err = util.RunInNewUpdateTxn(kvdb, func(txn graphis.ProviderTxn) (err error) {
		_, err = NewManager(txn).AssertIndexes(map[string][]KeySpec{"Person": {CompoundKey("email")}}, false)
		return
	})
	assert.Assert(t, err == catalog.ErrIndexAlreadyExists)
}
