package model

type (
	// IndexInfo is the stored descriptor for an index
	IndexInfo struct {
		ID           int64
		LabelID      int64
		PropertyIDs  []int64
		Unique       bool
		ConstraintID int64 // non zero when the index backs a constraint
	}
	// ConstraintInfo is the stored descriptor for a constraint
	ConstraintInfo struct {
		ID          int64
		Kind        ConstraintKind
		SubjectID   int64 // label id, or relationship type id for relationship constraints
		PropertyIDs []int64
		IndexID     int64 // non zero when the constraint owns a backing index
	}
	// IndexRuntime is the population/statistics record for an index,
	// kept separately from the descriptor so it can lag or go missing
	IndexRuntime struct {
		State       IndexState
		Completed   int64
		Total       int64
		Size        int64
		Selectivity float64
		Failure     string
	}
)

// ConstraintKind is the kind of a constraint.
type ConstraintKind byte

const (
	// ConstraintUniqueness enforces unique values for a single property.
	ConstraintUniqueness ConstraintKind = iota
	// ConstraintNodeKey enforces existence and uniqueness of a property combination.
	ConstraintNodeKey
	// ConstraintNodeExistence enforces presence of a node property.
	ConstraintNodeExistence
	// ConstraintRelationshipExistence enforces presence of a relationship property.
	ConstraintRelationshipExistence
)

// String for implement fmt.Stringer
func (k ConstraintKind) String() string {
	switch k {
	case ConstraintUniqueness:
		return "UNIQUENESS"
	case ConstraintNodeKey:
		return "NODE_KEY"
	case ConstraintNodeExistence:
		return "NODE_PROPERTY_EXISTENCE"
	case ConstraintRelationshipExistence:
		return "RELATIONSHIP_PROPERTY_EXISTENCE"
	default:
		return "UNKNOWN"
	}
}

// Relationship tells whether the constraint subject is a relationship type.
func (k ConstraintKind) Relationship() bool {
	return k == ConstraintRelationshipExistence
}

// Existence tells whether the constraint is an existence constraint.
func (k ConstraintKind) Existence() bool {
	return k == ConstraintNodeExistence || k == ConstraintRelationshipExistence
}

// IndexState is the population state of an index.
type IndexState byte

const (
	// IndexStatePopulating means the index is still being populated.
	IndexStatePopulating IndexState = iota
	// IndexStateOnline means the index is fully populated and usable.
	IndexStateOnline
	// IndexStateFailed means population failed, see IndexRuntime.Failure.
	IndexStateFailed
)

// String for implement fmt.Stringer
func (s IndexState) String() string {
	switch s {
	case IndexStatePopulating:
		return "POPULATING"
	case IndexStateOnline:
		return "ONLINE"
	case IndexStateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}
