package catalog

import (
	"errors"

	"github.com/zhiqiangxu/graphis"
	"github.com/zhiqiangxu/graphis/graph/model"
	"github.com/zhiqiangxu/graphis/kv"
	"go.mongodb.org/mongo-driver/bson"
)

// TokenNamespace is the namespace of a token.
type TokenNamespace byte

const (
	// TokenLabel for node labels
	TokenLabel TokenNamespace = iota
	// TokenRelationshipType for relationship types
	TokenRelationshipType
	// TokenPropertyKey for property keys
	TokenPropertyKey
)

var (
	// ErrIndexAlreadyExists used by Catalog
	ErrIndexAlreadyExists = errors.New("index already exists")
	// ErrIndexNotExists used by Catalog
	ErrIndexNotExists = errors.New("index not exists")
	// ErrConstraintAlreadyExists used by Catalog
	ErrConstraintAlreadyExists = errors.New("constraint already exists")
	// ErrConstraintNotExists used by Catalog
	ErrConstraintNotExists = errors.New("constraint not exists")
	// ErrIndexStateNotFound when the runtime record for an index is absent
	ErrIndexStateNotFound = errors.New("index state not found")
)

// Catalog is for handling schema information in a transaction.
type Catalog struct {
	txn graphis.ProviderTxn
}

// New creates a Catalog in transaction txn.
func New(txn graphis.ProviderTxn) *Catalog {
	return &Catalog{txn: txn}
}

// GenID generates the next schema object id.
func (c *Catalog) GenID() (int64, error) {
	return kv.IncInt64(c.txn, nextIDKey, 1)
}

func (c *Catalog) getOrCreateToken(ns TokenNamespace, name string) (id int64, err error) {
	v, _, err := c.txn.Get(tokenKey(ns, name))
	if err == nil {
		var existing struct{ ID int64 }
		err = bson.Unmarshal(v, &existing)
		id = existing.ID
		return
	}
	if err != kv.ErrKeyNotFound {
		return
	}

	id, err = c.GenID()
	if err != nil {
		return
	}

	v, err = bson.Marshal(bson.M{"id": id})
	if err != nil {
		return
	}
	err = c.txn.Set(tokenKey(ns, name), v, nil)
	if err != nil {
		return
	}
	err = c.txn.Set(tokenNameKey(ns, id), []byte(name), nil)
	return
}

func (c *Catalog) tokenName(ns TokenNamespace, id int64) (name string, err error) {
	v, _, err := c.txn.Get(tokenNameKey(ns, id))
	if err != nil {
		return
	}
	name = string(v)
	return
}

func (c *Catalog) getOrCreateTokens(labelNS TokenNamespace, subject string, properties []string) (subjectID int64, propertyIDs []int64, err error) {
	subjectID, err = c.getOrCreateToken(labelNS, subject)
	if err != nil {
		return
	}
	propertyIDs = make([]int64, len(properties))
	for i, property := range properties {
		propertyIDs[i], err = c.getOrCreateToken(TokenPropertyKey, property)
		if err != nil {
			return
		}
	}
	return
}

func (c *Catalog) putIndex(info model.IndexInfo) (err error) {
	v, err := bson.Marshal(info)
	if err != nil {
		return
	}
	err = c.txn.Set(indexKey(info.ID), v, nil)
	return
}

func (c *Catalog) putConstraint(info model.ConstraintInfo) (err error) {
	v, err := bson.Marshal(info)
	if err != nil {
		return
	}
	err = c.txn.Set(constraintKey(info.ID), v, nil)
	return
}

func (c *Catalog) getIndex(id int64) (info model.IndexInfo, err error) {
	v, _, err := c.txn.Get(indexKey(id))
	if err == kv.ErrKeyNotFound {
		err = ErrIndexNotExists
		return
	}
	if err != nil {
		return
	}
	err = bson.Unmarshal(v, &info)
	return
}

func (c *Catalog) getConstraint(id int64) (info model.ConstraintInfo, err error) {
	v, _, err := c.txn.Get(constraintKey(id))
	if err == kv.ErrKeyNotFound {
		err = ErrConstraintNotExists
		return
	}
	if err != nil {
		return
	}
	err = bson.Unmarshal(v, &info)
	return
}

// Indexes enumerates all index descriptors in creation order.
func (c *Catalog) Indexes() (infos []model.IndexInfo, err error) {
	scanErr := c.txn.Scan(graphis.ProviderScanOption{Prefix: indexPrefix}, func(key, value []byte, meta graphis.VMetaResp) bool {
		var info model.IndexInfo
		err = bson.Unmarshal(value, &info)
		if err != nil {
			return false
		}
		infos = append(infos, info)
		return true
	})
	if err == nil {
		err = scanErr
	}
	return
}

// Constraints enumerates all constraint descriptors in creation order.
func (c *Catalog) Constraints() (infos []model.ConstraintInfo, err error) {
	scanErr := c.txn.Scan(graphis.ProviderScanOption{Prefix: constraintPrefix}, func(key, value []byte, meta graphis.VMetaResp) bool {
		var info model.ConstraintInfo
		err = bson.Unmarshal(value, &info)
		if err != nil {
			return false
		}
		infos = append(infos, info)
		return true
	})
	if err == nil {
		err = scanErr
	}
	return
}

func propertyIDsEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CreateIndex creates a plain index on label over properties, in order.
func (c *Catalog) CreateIndex(label string, properties []string) (info model.IndexInfo, err error) {
	labelID, propertyIDs, err := c.getOrCreateTokens(TokenLabel, label, properties)
	if err != nil {
		return
	}

	existing, err := c.Indexes()
	if err != nil {
		return
	}
	for _, other := range existing {
		if other.LabelID == labelID && propertyIDsEqual(other.PropertyIDs, propertyIDs) {
			err = ErrIndexAlreadyExists
			return
		}
	}

	id, err := c.GenID()
	if err != nil {
		return
	}
	info = model.IndexInfo{ID: id, LabelID: labelID, PropertyIDs: propertyIDs}
	err = c.putIndex(info)
	if err != nil {
		return
	}

	// a fresh index over no data is immediately online
	err = c.UpdateIndexRuntime(id, model.IndexRuntime{State: model.IndexStateOnline, Completed: 1, Total: 1, Selectivity: 1})
	return
}

// DropIndex drops the index by id, together with its runtime record.
func (c *Catalog) DropIndex(id int64) (err error) {
	_, err = c.getIndex(id)
	if err != nil {
		return
	}
	err = c.txn.Delete(indexKey(id))
	if err != nil {
		return
	}
	err = c.DeleteIndexRuntime(id)
	if err == ErrIndexStateNotFound {
		err = nil
	}
	return
}

func (c *Catalog) createConstraint(kind model.ConstraintKind, subject string, properties []string) (info model.ConstraintInfo, err error) {
	labelNS := TokenLabel
	if kind.Relationship() {
		labelNS = TokenRelationshipType
	}
	subjectID, propertyIDs, err := c.getOrCreateTokens(labelNS, subject, properties)
	if err != nil {
		return
	}

	existing, err := c.Constraints()
	if err != nil {
		return
	}
	for _, other := range existing {
		if other.Kind.Relationship() == kind.Relationship() && other.SubjectID == subjectID && propertyIDsEqual(other.PropertyIDs, propertyIDs) {
			err = ErrConstraintAlreadyExists
			return
		}
	}

	id, err := c.GenID()
	if err != nil {
		return
	}
	info = model.ConstraintInfo{ID: id, Kind: kind, SubjectID: subjectID, PropertyIDs: propertyIDs}

	if kind == model.ConstraintUniqueness || kind == model.ConstraintNodeKey {
		// uniqueness constraints own a backing unique index
		var indexID int64
		indexID, err = c.GenID()
		if err != nil {
			return
		}
		backing := model.IndexInfo{ID: indexID, LabelID: subjectID, PropertyIDs: propertyIDs, Unique: true, ConstraintID: id}
		err = c.putIndex(backing)
		if err != nil {
			return
		}
		err = c.UpdateIndexRuntime(indexID, model.IndexRuntime{State: model.IndexStateOnline, Completed: 1, Total: 1, Selectivity: 1})
		if err != nil {
			return
		}
		info.IndexID = indexID
	}

	err = c.putConstraint(info)
	return
}

// CreateUniquenessConstraint creates a uniqueness constraint on a single property.
func (c *Catalog) CreateUniquenessConstraint(label string, property string) (info model.ConstraintInfo, err error) {
	return c.createConstraint(model.ConstraintUniqueness, label, []string{property})
}

// CreateNodeKeyConstraint creates a node key constraint spanning properties, in order.
func (c *Catalog) CreateNodeKeyConstraint(label string, properties []string) (info model.ConstraintInfo, err error) {
	return c.createConstraint(model.ConstraintNodeKey, label, properties)
}

// CreateNodeExistenceConstraint creates a node property existence constraint.
func (c *Catalog) CreateNodeExistenceConstraint(label string, property string) (info model.ConstraintInfo, err error) {
	return c.createConstraint(model.ConstraintNodeExistence, label, []string{property})
}

// CreateRelationshipExistenceConstraint creates a relationship property existence constraint.
func (c *Catalog) CreateRelationshipExistenceConstraint(typ string, property string) (info model.ConstraintInfo, err error) {
	return c.createConstraint(model.ConstraintRelationshipExistence, typ, []string{property})
}

// DropConstraint drops the constraint by id, together with its backing index if any.
func (c *Catalog) DropConstraint(id int64) (err error) {
	info, err := c.getConstraint(id)
	if err != nil {
		return
	}
	err = c.txn.Delete(constraintKey(id))
	if err != nil {
		return
	}
	if info.IndexID != 0 {
		err = c.DropIndex(info.IndexID)
		if err == ErrIndexNotExists {
			err = nil
		}
	}
	return
}

// UpdateIndexRuntime stores the runtime record for an index,
// used by the population machinery.
func (c *Catalog) UpdateIndexRuntime(id int64, rt model.IndexRuntime) (err error) {
	v, err := bson.Marshal(rt)
	if err != nil {
		return
	}
	err = c.txn.Set(indexRuntimeKey(id), v, nil)
	return
}

// DeleteIndexRuntime removes the runtime record for an index.
func (c *Catalog) DeleteIndexRuntime(id int64) (err error) {
	exists, err := c.txn.Exists(indexRuntimeKey(id))
	if err != nil {
		return
	}
	if !exists {
		err = ErrIndexStateNotFound
		return
	}
	err = c.txn.Delete(indexRuntimeKey(id))
	return
}

// IndexRuntime fetches the runtime record for an index.
func (c *Catalog) IndexRuntime(id int64) (rt model.IndexRuntime, err error) {
	v, _, err := c.txn.Get(indexRuntimeKey(id))
	if err == kv.ErrKeyNotFound {
		err = ErrIndexStateNotFound
		return
	}
	if err != nil {
		return
	}
	err = bson.Unmarshal(v, &rt)
	return
}
