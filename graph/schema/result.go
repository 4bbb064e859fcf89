package schema

import (
	"fmt"
	"strings"

	"github.com/zhiqiangxu/graphis/graph/model"
)

const (
	// ActionKept when an existing schema entry survived the assert
	ActionKept = "KEPT"
	// ActionCreated when a schema entry was created by the assert
	ActionCreated = "CREATED"
	// ActionDropped when an existing schema entry was dropped by the assert
	ActionDropped = "DROPPED"
)

const (
	// NoFailure is the failure field sentinel for healthy entries
	NoFailure = "NO FAILURE"
	// NotFound is the status/failure sentinel for an index whose state can not be resolved
	NotFound = "NOT_FOUND"
)

type (
	// AssertResult reports one schema entry's disposition after Assert
	AssertResult struct {
		Label  string   `bson:"label"`
		Key    string   `bson:"key,omitempty"`
		Keys   []string `bson:"keys"`
		Unique bool     `bson:"unique"`
		Action string   `bson:"action"`
	}
	// NodeInfo is one introspection record for a node index or constraint
	NodeInfo struct {
		Name               string   `bson:"name"`
		Label              string   `bson:"label"`
		Properties         []string `bson:"properties"`
		Status             string   `bson:"status"`
		Kind               string   `bson:"type"`
		Failure            string   `bson:"failure"`
		PopulationProgress float64  `bson:"populationProgress"`
		Size               int64    `bson:"size"`
		ValuesSelectivity  float64  `bson:"valuesSelectivity"`
		UserDescription    string   `bson:"userDescription"`
	}
	// RelationshipConstraintInfo is one introspection record for a relationship constraint
	RelationshipConstraintInfo struct {
		Name       string   `bson:"name"`
		Kind       string   `bson:"type"`
		Properties []string `bson:"properties"`
		Info       string   `bson:"info"`
	}
)

func newAssertResult(label string, keys []string) AssertResult {
	r := AssertResult{Label: label, Keys: keys, Action: ActionKept}
	if len(keys) == 1 {
		r.Key = keys[0]
	}
	return r
}

// schemaName is the ":Label(prop1,prop2)" pretty form
func schemaName(subject string, properties []string) string {
	return fmt.Sprintf(":%s(%s)", subject, strings.Join(properties, ","))
}

func indexDescription(unique bool, label string, properties []string) string {
	kind := "GENERAL"
	if unique {
		kind = "UNIQUE"
	}
	return fmt.Sprintf("Index( %s, %s )", kind, schemaName(label, properties))
}

func constraintDescription(kind model.ConstraintKind, subject string, properties []string) string {
	if kind.Relationship() {
		return relationshipConstraintDescription(subject, properties)
	}
	return fmt.Sprintf("Constraint( %s, %s )", kind, schemaName(subject, properties))
}

func relationshipConstraintDescription(typ string, properties []string) string {
	exists := make([]string, len(properties))
	for i, p := range properties {
		exists[i] = fmt.Sprintf("exists(r.%s)", p)
	}
	return fmt.Sprintf("CONSTRAINT ON ()-[r:%s]-() ASSERT %s", typ, strings.Join(exists, " AND "))
}
