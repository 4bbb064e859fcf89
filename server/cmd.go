package server

import "github.com/zhiqiangxu/qrpc"

const (
	// AssertCmd for assert
	AssertCmd qrpc.Cmd = iota
	// AssertRespCmd is resp for AssertCmd
	AssertRespCmd
	// NodesCmd for node schema introspection
	NodesCmd
	// NodesRespCmd is resp for NodesCmd
	NodesRespCmd
	// RelationshipsCmd for relationship constraint introspection
	RelationshipsCmd
	// RelationshipsRespCmd is resp for RelationshipsCmd
	RelationshipsRespCmd
	// NodeIndexExistsCmd for node index existence check
	NodeIndexExistsCmd
	// NodeIndexExistsRespCmd is resp for NodeIndexExistsCmd
	NodeIndexExistsRespCmd
	// NodeConstraintExistsCmd for node constraint existence check
	NodeConstraintExistsCmd
	// NodeConstraintExistsRespCmd is resp for NodeConstraintExistsCmd
	NodeConstraintExistsRespCmd
	// RelConstraintExistsCmd for relationship constraint existence check
	RelConstraintExistsCmd
	// RelConstraintExistsRespCmd is resp for RelConstraintExistsCmd
	RelConstraintExistsRespCmd
)
