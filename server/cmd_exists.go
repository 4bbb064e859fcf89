package server

import (
	"github.com/zhiqiangxu/graphis"
	"github.com/zhiqiangxu/graphis/graph/schema"
	"github.com/zhiqiangxu/graphis/util"
	"github.com/zhiqiangxu/graphis/wire"
	"github.com/zhiqiangxu/qrpc"
	"go.mongodb.org/mongo-driver/bson"
)

type existsFunc func(m *schema.Manager, req *wire.ExistsRequest) (bool, error)

func serveExists(s *Server, writer qrpc.FrameWriter, frame *qrpc.RequestFrame, respCmd qrpc.Cmd, fn existsFunc) {
	var (
		req  wire.ExistsRequest
		resp wire.ExistsResponse
	)

	err := bson.Unmarshal(frame.Payload, &req)
	if err != nil {
		resp.Code = CodeInvalidRequest
		resp.Msg = err.Error()
		writeResp(writer, frame, respCmd, &resp)
		frame.Close()
		return
	}

	err = util.RunInNewTxn(s.kvdb, func(txn graphis.ProviderTxn) (err error) {
		resp.Exists, err = fn(schema.NewManager(txn), &req)
		return
	})
	if err != nil {
		resp.Code = codeForErr(err)
		resp.Msg = err.Error()
	}

	writeResp(writer, frame, respCmd, &resp)
}

// CmdNodeIndexExists for node index existence check
type CmdNodeIndexExists struct {
	s *Server
}

// ServeQRPC implements qrpc.Handler
func (cmd *CmdNodeIndexExists) ServeQRPC(writer qrpc.FrameWriter, frame *qrpc.RequestFrame) {
	serveExists(cmd.s, writer, frame, NodeIndexExistsRespCmd, func(m *schema.Manager, req *wire.ExistsRequest) (bool, error) {
		return m.IndexExistsOnNode(req.Subject, req.Properties)
	})
}

// CmdNodeConstraintExists for node constraint existence check
type CmdNodeConstraintExists struct {
	s *Server
}

// ServeQRPC implements qrpc.Handler
func (cmd *CmdNodeConstraintExists) ServeQRPC(writer qrpc.FrameWriter, frame *qrpc.RequestFrame) {
	serveExists(cmd.s, writer, frame, NodeConstraintExistsRespCmd, func(m *schema.Manager, req *wire.ExistsRequest) (bool, error) {
		return m.ConstraintExistsOnNode(req.Subject, req.Properties)
	})
}

// CmdRelConstraintExists for relationship constraint existence check
type CmdRelConstraintExists struct {
	s *Server
}

// ServeQRPC implements qrpc.Handler
func (cmd *CmdRelConstraintExists) ServeQRPC(writer qrpc.FrameWriter, frame *qrpc.RequestFrame) {
	serveExists(cmd.s, writer, frame, RelConstraintExistsRespCmd, func(m *schema.Manager, req *wire.ExistsRequest) (bool, error) {
		return m.ConstraintExistsOnRelationship(req.Subject, req.Properties)
	})
}
