package schema

import (
	"errors"
	"sort"

	"github.com/zhiqiangxu/graphis"
	"github.com/zhiqiangxu/graphis/graph/catalog"
	"github.com/zhiqiangxu/graphis/graph/model"
)

var (
	// ErrLabelGivenNoKeys when an existing index under a declared label has an empty key list
	ErrLabelGivenNoKeys = errors.New("label given with no keys")
)

// Manager translates declarative schema requests into catalog calls and
// catalog state into report records. All operations run inside the
// transaction the Manager was created with.
type Manager struct {
	cat *catalog.Catalog
}

// NewManager is ctor for Manager
func NewManager(txn graphis.ProviderTxn) *Manager {
	return &Manager{cat: catalog.New(txn)}
}

// Catalog returns the underlying catalog handle.
func (m *Manager) Catalog() *catalog.Catalog {
	return m.cat
}

// Assert makes the catalog contain exactly the desired indexes and
// constraints. When dropExisting, pre-existing entries not re-requested
// are dropped; requested indexes are dropped and recreated.
func (m *Manager) Assert(indexes, constraints map[string][]KeySpec, dropExisting bool) (results []AssertResult, err error) {
	results, err = m.AssertIndexes(indexes, dropExisting)
	if err != nil {
		return
	}

	constraintResults, err := m.AssertConstraints(constraints, dropExisting)
	if err != nil {
		return
	}

	results = append(results, constraintResults...)
	return
}

// AssertIndexes reconciles plain indexes against the desired spec.
func (m *Manager) AssertIndexes(indexes0 map[string][]KeySpec, dropExisting bool) (results []AssertResult, err error) {
	reader := m.cat.AcquireReader()
	defer reader.Release()

	indexes := copySpec(indexes0)

	existing, err := reader.Indexes()
	if err != nil {
		return
	}

	for _, info := range existing {
		if info.ConstraintID != 0 {
			// constraint backed indexes live and die with their constraint
			continue
		}

		label, keys := reader.ResolveIndex(info)
		result := newAssertResult(label, keys)

		if remaining, ok := indexes[label]; ok {
			if len(keys) > 1 {
				indexes[label], _ = removeCompound(remaining, keys)
			} else if len(keys) == 1 {
				indexes[label], _ = removeSingle(remaining, keys[0])
			} else {
				err = ErrLabelGivenNoKeys
				return
			}
		}

		if dropExisting {
			err = m.cat.DropIndex(info.ID)
			if err != nil {
				return
			}
			result.Action = ActionDropped
		}

		results = append(results, result)
	}

	// when dropExisting, every requested index was just dropped above,
	// so creation runs over the original spec instead of the depleted copy
	if dropExisting {
		indexes = copySpec(indexes0)
	}

	for label, keys := range indexes {
		for _, key := range keys {
			_, err = m.cat.CreateIndex(label, key.Properties)
			if err != nil {
				return
			}
			result := newAssertResult(label, key.Properties)
			result.Action = ActionCreated
			results = append(results, result)
		}
	}
	return
}

// AssertConstraints reconciles constraints against the desired spec.
// Unlike indexes, entries satisfied by an existing re-requested
// constraint are never recreated, regardless of dropExisting.
func (m *Manager) AssertConstraints(constraints0 map[string][]KeySpec, dropExisting bool) (results []AssertResult, err error) {
	reader := m.cat.AcquireReader()
	defer reader.Release()

	constraints := copySpec(constraints0)

	existing, err := reader.Constraints()
	if err != nil {
		return
	}

	for _, info := range existing {
		subject, keys := reader.ResolveConstraint(info)
		result := newAssertResult(subject, keys)
		result.Unique = true

		removed := false
		if remaining, ok := constraints[subject]; ok {
			if len(keys) == 1 {
				constraints[subject], removed = removeSingle(remaining, keys[0])
			} else {
				constraints[subject], removed = removeCompound(remaining, keys)
			}
		}

		if !removed && dropExisting {
			err = m.cat.DropConstraint(info.ID)
			if err != nil {
				return
			}
			result.Action = ActionDropped
		}

		results = append(results, result)
	}

	for subject, keys := range constraints {
		for _, key := range keys {
			if key.Compound {
				_, err = m.cat.CreateNodeKeyConstraint(subject, key.Properties)
			} else {
				_, err = m.cat.CreateUniquenessConstraint(subject, key.Properties[0])
			}
			if err != nil {
				return
			}
			result := newAssertResult(subject, key.Properties)
			result.Unique = true
			result.Action = ActionCreated
			results = append(results, result)
		}
	}
	return
}

// Nodes reports every existence constraint and every index visible in
// the catalog: constraint records first, each group sorted by label.
func (m *Manager) Nodes() (infos []NodeInfo, err error) {
	reader := m.cat.AcquireReader()
	defer reader.Release()

	existingConstraints, err := reader.Constraints()
	if err != nil {
		return
	}

	var constraintInfos []NodeInfo
	for _, info := range existingConstraints {
		if !info.Kind.Existence() {
			continue
		}
		subject, properties := reader.ResolveConstraint(info)
		constraintInfos = append(constraintInfos, NodeInfo{
			Name:            schemaName(subject, properties),
			Label:           subject,
			Properties:      properties,
			Kind:            info.Kind.String(),
			Failure:         NoFailure,
			UserDescription: constraintDescription(info.Kind, subject, properties),
		})
	}
	sort.Slice(constraintInfos, func(i, j int) bool { return constraintInfos[i].Label < constraintInfos[j].Label })

	existingIndexes, err := reader.Indexes()
	if err != nil {
		return
	}

	var indexInfos []NodeInfo
	for _, info := range existingIndexes {
		indexInfos = append(indexInfos, m.nodeInfoFromIndex(reader, info))
	}
	sort.Slice(indexInfos, func(i, j int) bool { return indexInfos[i].Label < indexInfos[j].Label })

	infos = append(constraintInfos, indexInfos...)
	return
}

func (m *Manager) nodeInfoFromIndex(reader *catalog.Reader, info model.IndexInfo) NodeInfo {
	label, properties := reader.ResolveIndex(info)
	kind := "INDEX"
	if info.Unique {
		kind = "UNIQUENESS"
	}
	ni := NodeInfo{
		Name:            schemaName(label, properties),
		Label:           label,
		Properties:      properties,
		Kind:            kind,
		UserDescription: indexDescription(info.Unique, label, properties),
	}

	rt, err := reader.IndexRuntime(info.ID)
	if err != nil {
		// the index was concurrently dropped or never populated
		ni.Status = NotFound
		ni.Failure = NotFound
		return ni
	}

	ni.Status = rt.State.String()
	if rt.State == model.IndexStateFailed {
		ni.Failure = rt.Failure
	} else {
		ni.Failure = NoFailure
	}
	if rt.Total > 0 {
		ni.PopulationProgress = float64(rt.Completed) / float64(rt.Total) * 100
	}
	ni.Size = rt.Size
	ni.ValuesSelectivity = rt.Selectivity
	return ni
}

// Relationships reports every relationship property existence
// constraint, in catalog enumeration order.
func (m *Manager) Relationships() (infos []RelationshipConstraintInfo, err error) {
	reader := m.cat.AcquireReader()
	defer reader.Release()

	existing, err := reader.Constraints()
	if err != nil {
		return
	}

	for _, info := range existing {
		if info.Kind != model.ConstraintRelationshipExistence {
			continue
		}
		typ, properties := reader.ResolveConstraint(info)
		infos = append(infos, RelationshipConstraintInfo{
			Name:       "CONSTRAINT " + relationshipConstraintDescription(typ, properties),
			Kind:       info.Kind.String(),
			Properties: properties,
		})
	}
	return
}

// IndexExistsOnNode checks whether an index exists on label for exactly
// this ordered property list.
func (m *Manager) IndexExistsOnNode(label string, properties []string) (exists bool, err error) {
	reader := m.cat.AcquireReader()
	defer reader.Release()

	existing, err := reader.Indexes()
	if err != nil {
		return
	}
	for _, info := range existing {
		l, props := reader.ResolveIndex(info)
		if l == label && propertiesEqual(props, properties) {
			exists = true
			return
		}
	}
	return
}

// ConstraintExistsOnNode checks whether a node constraint exists on
// label for exactly this ordered property list.
func (m *Manager) ConstraintExistsOnNode(label string, properties []string) (exists bool, err error) {
	reader := m.cat.AcquireReader()
	defer reader.Release()

	existing, err := reader.Constraints()
	if err != nil {
		return
	}
	for _, info := range existing {
		if info.Kind.Relationship() {
			continue
		}
		l, props := reader.ResolveConstraint(info)
		if l == label && propertiesEqual(props, properties) {
			exists = true
			return
		}
	}
	return
}

// ConstraintExistsOnRelationship checks whether a constraint exists on
// the relationship type for exactly this ordered property list.
func (m *Manager) ConstraintExistsOnRelationship(typ string, properties []string) (exists bool, err error) {
	reader := m.cat.AcquireReader()
	defer reader.Release()

	existing, err := reader.Constraints()
	if err != nil {
		return
	}
	for _, info := range existing {
		if !info.Kind.Relationship() {
			continue
		}
		t, props := reader.ResolveConstraint(info)
		if t == typ && propertiesEqual(props, properties) {
			exists = true
			return
		}
	}
	return
}
