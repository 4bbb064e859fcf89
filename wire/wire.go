package wire

import (
	"github.com/zhiqiangxu/graphis/graph/schema"
)

// Requests and responses are bson documents. Key specs travel in their
// loose form: a bare property name or a list of property names.
type (
	// AssertRequest for AssertCmd
	AssertRequest struct {
		Indexes     map[string][]interface{} `bson:"indexes"`
		Constraints map[string][]interface{} `bson:"constraints"`
		// nil means the default, which is true
		DropExisting *bool `bson:"dropExisting,omitempty"`
	}
	// AssertResponse is resp for AssertCmd
	AssertResponse struct {
		Code    int32                 `bson:"code"`
		Msg     string                `bson:"msg"`
		Results []schema.AssertResult `bson:"results,omitempty"`
	}
	// NodesResponse is resp for NodesCmd
	NodesResponse struct {
		Code  int32             `bson:"code"`
		Msg   string            `bson:"msg"`
		Infos []schema.NodeInfo `bson:"infos,omitempty"`
	}
	// RelationshipsResponse is resp for RelationshipsCmd
	RelationshipsResponse struct {
		Code  int32                               `bson:"code"`
		Msg   string                              `bson:"msg"`
		Infos []schema.RelationshipConstraintInfo `bson:"infos,omitempty"`
	}
	// ExistsRequest for the three exists cmds
	ExistsRequest struct {
		Subject    string   `bson:"subject"`
		Properties []string `bson:"properties"`
	}
	// ExistsResponse is resp for the three exists cmds
	ExistsResponse struct {
		Code   int32  `bson:"code"`
		Msg    string `bson:"msg"`
		Exists bool   `bson:"exists"`
	}
)

// SpecToWire converts a KeySpec form spec to the loose wire form.
func SpecToWire(in map[string][]schema.KeySpec) (out map[string][]interface{}) {
	out = make(map[string][]interface{}, len(in))
	for subject, keys := range in {
		wireKeys := make([]interface{}, len(keys))
		for i, ks := range keys {
			wireKeys[i] = ks.Wire()
		}
		out[subject] = wireKeys
	}
	return
}
