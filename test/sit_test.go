package test

import (
	"os"
	"testing"
	"time"

	"github.com/zhiqiangxu/graphis"
	"github.com/zhiqiangxu/graphis/client"
	"github.com/zhiqiangxu/graphis/graph/schema"
	"github.com/zhiqiangxu/graphis/provider"
	"github.com/zhiqiangxu/graphis/server"
	"gotest.tools/assert"
)

const (
	addr    = "localhost:8099"
	dataDir = "/tmp/graphis"
)

func TestSchemaServer(t *testing.T) {
	os.RemoveAll(dataDir)

	// server side
	{
		// use badger provider
		kvdb := provider.NewBadger()
		s := server.New(addr, kvdb, server.Option{}, graphis.KVOption{Dir: dataDir})
		go s.Start()

		time.Sleep(time.Millisecond * 500)

		defer s.Stop()
	}

	// client side
	{
		c := client.New(addr, client.Option{})

		indexes := map[string][]schema.KeySpec{
			"Person": {schema.Key("name"), schema.CompoundKey("first", "last")},
		}
		constraints := map[string][]schema.KeySpec{
			"User": {schema.Key("id")},
		}

		{
			// assert on an empty catalog creates everything
			results, err := c.Assert(indexes, constraints, true)
			assert.Assert(t, err == nil && len(results) == 3)
			for _, r := range results {
				assert.Assert(t, r.Action == schema.ActionCreated)
			}
		}

		{
			// existence predicates
			exists, err := c.IndexExistsOnNode("Person", []string{"name"})
			assert.Assert(t, err == nil && exists)
			exists, err = c.IndexExistsOnNode("Person", []string{"first", "last"})
			assert.Assert(t, err == nil && exists)
			exists, err = c.IndexExistsOnNode("Person", []string{"last", "first"})
			assert.Assert(t, err == nil && !exists)

			exists, err = c.ConstraintExistsOnNode("User", []string{"id"})
			assert.Assert(t, err == nil && exists)
			exists, err = c.ConstraintExistsOnRelationship("KNOWS", []string{"since"})
			assert.Assert(t, err == nil && !exists)
		}

		{
			// nodes introspection: two plain indexes plus the backing index of the constraint
			infos, err := c.Nodes()
			assert.Assert(t, err == nil && len(infos) == 3)
			for _, ni := range infos {
				assert.Assert(t, ni.Status == "ONLINE" && ni.Failure == schema.NoFailure)
			}
			// sorted by label: Person, Person, User
			assert.Assert(t, infos[0].Label == "Person" && infos[1].Label == "Person")
			assert.Assert(t, infos[2].Label == "User" && infos[2].Kind == "UNIQUENESS")
		}

		{
			// no relationship constraints yet
			infos, err := c.Relationships()
			assert.Assert(t, err == nil && len(infos) == 0)
		}

		{
			// re-asserting without dropExisting keeps everything
			results, err := c.Assert(indexes, constraints, false)
			assert.Assert(t, err == nil && len(results) == 3)
			for _, r := range results {
				assert.Assert(t, r.Action == schema.ActionKept)
			}
		}

		{
			// re-asserting with dropExisting recreates indexes but keeps constraints
			results, err := c.Assert(indexes, constraints, true)
			assert.Assert(t, err == nil && len(results) == 5)
			created := 0
			dropped := 0
			kept := 0
			for _, r := range results {
				switch r.Action {
				case schema.ActionCreated:
					created++
				case schema.ActionDropped:
					dropped++
				case schema.ActionKept:
					kept++
				}
			}
			assert.Assert(t, created == 2 && dropped == 2 && kept == 1)
		}
	}
}
