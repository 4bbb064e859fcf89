package catalog

import (
	"fmt"

	"github.com/zhiqiangxu/graphis/graph/model"
)

// Reader is a scoped read handle over the catalog, the analog of the
// host kernel statement: acquire it for the duration of one read
// operation and Release it on every exit path.
type Reader struct {
	c        *Catalog
	released bool
}

// AcquireReader returns a read handle bound to the catalog transaction.
func (c *Catalog) AcquireReader() *Reader {
	return &Reader{c: c}
}

// Release the handle. Idempotent.
func (r *Reader) Release() {
	r.released = true
}

// Indexes enumerates all index descriptors.
func (r *Reader) Indexes() ([]model.IndexInfo, error) {
	return r.c.Indexes()
}

// Constraints enumerates all constraint descriptors.
func (r *Reader) Constraints() ([]model.ConstraintInfo, error) {
	return r.c.Constraints()
}

// IndexRuntime fetches the runtime record for an index,
// ErrIndexStateNotFound when absent.
func (r *Reader) IndexRuntime(id int64) (model.IndexRuntime, error) {
	return r.c.IndexRuntime(id)
}

// silent name lookup: resolution failure degrades to a placeholder, never an error
func (r *Reader) silentName(ns TokenNamespace, id int64, what string) string {
	name, err := r.c.tokenName(ns, id)
	if err != nil {
		return fmt.Sprintf("[no such %s: %d]", what, id)
	}
	return name
}

// LabelName resolves a label token id to its name.
func (r *Reader) LabelName(id int64) string {
	return r.silentName(TokenLabel, id, "label")
}

// RelationshipTypeName resolves a relationship type token id to its name.
func (r *Reader) RelationshipTypeName(id int64) string {
	return r.silentName(TokenRelationshipType, id, "relationship type")
}

// PropertyName resolves a property key token id to its name.
func (r *Reader) PropertyName(id int64) string {
	return r.silentName(TokenPropertyKey, id, "property key")
}

// PropertyNames resolves a property key token id list, in order.
func (r *Reader) PropertyNames(ids []int64) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = r.PropertyName(id)
	}
	return names
}

// ResolveIndex resolves the label and property names of an index descriptor.
func (r *Reader) ResolveIndex(info model.IndexInfo) (label string, properties []string) {
	label = r.LabelName(info.LabelID)
	properties = r.PropertyNames(info.PropertyIDs)
	return
}

// ResolveConstraint resolves the subject and property names of a constraint descriptor.
func (r *Reader) ResolveConstraint(info model.ConstraintInfo) (subject string, properties []string) {
	if info.Kind.Relationship() {
		subject = r.RelationshipTypeName(info.SubjectID)
	} else {
		subject = r.LabelName(info.SubjectID)
	}
	properties = r.PropertyNames(info.PropertyIDs)
	return
}
