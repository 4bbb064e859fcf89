package client

import (
	"github.com/zhiqiangxu/graphis/graph/schema"
	"github.com/zhiqiangxu/graphis/server"
	"github.com/zhiqiangxu/graphis/wire"
	"github.com/zhiqiangxu/qrpc"
	"go.mongodb.org/mongo-driver/bson"
)

type (
	// Option for Client
	Option struct {
		QrpcConfig qrpc.ConnectionConfig
	}
	// Client talks to a graphis schema server
	Client struct {
		con *qrpc.Connection
	}
)

// New is ctor for Client
func New(addr string, option Option) *Client {
	con := qrpc.NewConnectionWithReconnect([]string{addr}, option.QrpcConfig, nil)
	return &Client{con: con}
}

func codeError(code int32, msg string) error {
	if code == server.CodeInvalidArgument && msg == schema.ErrLabelGivenNoKeys.Error() {
		return schema.ErrLabelGivenNoKeys
	}
	return newRespError(code, msg)
}

func (c *Client) request(cmd qrpc.Cmd, payload []byte, resp interface{}) (err error) {
	_, qresp, err := c.con.Request(cmd, qrpc.NBFlag, payload)
	if err != nil {
		return
	}

	frame, err := qresp.GetFrame()
	if err != nil {
		return
	}

	err = bson.Unmarshal(frame.Payload, resp)
	return
}

// Assert makes the server side catalog contain exactly the desired
// indexes and constraints.
func (c *Client) Assert(indexes, constraints map[string][]schema.KeySpec, dropExisting bool) (results []schema.AssertResult, err error) {
	req := wire.AssertRequest{
		Indexes:      wire.SpecToWire(indexes),
		Constraints:  wire.SpecToWire(constraints),
		DropExisting: &dropExisting,
	}
	bytes, err := bson.Marshal(&req)
	if err != nil {
		return
	}

	var resp wire.AssertResponse
	err = c.request(server.AssertCmd, bytes, &resp)
	if err != nil {
		return
	}
	if resp.Code != server.CodeOK {
		err = codeError(resp.Code, resp.Msg)
		return
	}

	results = resp.Results
	return
}

// Nodes fetches the node schema introspection records.
func (c *Client) Nodes() (infos []schema.NodeInfo, err error) {
	var resp wire.NodesResponse
	err = c.request(server.NodesCmd, nil, &resp)
	if err != nil {
		return
	}
	if resp.Code != server.CodeOK {
		err = codeError(resp.Code, resp.Msg)
		return
	}

	infos = resp.Infos
	return
}

// Relationships fetches the relationship constraint introspection records.
func (c *Client) Relationships() (infos []schema.RelationshipConstraintInfo, err error) {
	var resp wire.RelationshipsResponse
	err = c.request(server.RelationshipsCmd, nil, &resp)
	if err != nil {
		return
	}
	if resp.Code != server.CodeOK {
		err = codeError(resp.Code, resp.Msg)
		return
	}

	infos = resp.Infos
	return
}

func (c *Client) exists(cmd qrpc.Cmd, subject string, properties []string) (exists bool, err error) {
	req := wire.ExistsRequest{Subject: subject, Properties: properties}
	bytes, err := bson.Marshal(&req)
	if err != nil {
		return
	}

	var resp wire.ExistsResponse
	err = c.request(cmd, bytes, &resp)
	if err != nil {
		return
	}
	if resp.Code != server.CodeOK {
		err = codeError(resp.Code, resp.Msg)
		return
	}

	exists = resp.Exists
	return
}

// IndexExistsOnNode checks whether an index exists on label for exactly
// this ordered property list.
func (c *Client) IndexExistsOnNode(label string, properties []string) (exists bool, err error) {
	return c.exists(server.NodeIndexExistsCmd, label, properties)
}

// ConstraintExistsOnNode checks whether a node constraint exists on
// label for exactly this ordered property list.
func (c *Client) ConstraintExistsOnNode(label string, properties []string) (exists bool, err error) {
	return c.exists(server.NodeConstraintExistsCmd, label, properties)
}

// ConstraintExistsOnRelationship checks whether a constraint exists on
// the relationship type for exactly this ordered property list.
func (c *Client) ConstraintExistsOnRelationship(typ string, properties []string) (exists bool, err error) {
	return c.exists(server.RelConstraintExistsCmd, typ, properties)
}
