package server

import (
	"github.com/zhiqiangxu/graphis"
	"github.com/zhiqiangxu/graphis/graph/schema"
	"github.com/zhiqiangxu/graphis/util"
	"github.com/zhiqiangxu/graphis/wire"
	"github.com/zhiqiangxu/qrpc"
	"go.mongodb.org/mongo-driver/bson"
)

// CmdAssert for assert
type CmdAssert struct {
	s *Server
}

// ServeQRPC implements qrpc.Handler
func (cmd *CmdAssert) ServeQRPC(writer qrpc.FrameWriter, frame *qrpc.RequestFrame) {
	var (
		req  wire.AssertRequest
		resp wire.AssertResponse
	)

	err := bson.Unmarshal(frame.Payload, &req)
	if err != nil {
		resp.Code = CodeInvalidRequest
		resp.Msg = err.Error()
		writeResp(writer, frame, AssertRespCmd, &resp)
		frame.Close()
		return
	}

	indexes, err := schema.ParseSpec(req.Indexes)
	var constraints map[string][]schema.KeySpec
	if err == nil {
		constraints, err = schema.ParseSpec(req.Constraints)
	}
	if err != nil {
		resp.Code = codeForErr(err)
		resp.Msg = err.Error()
		writeResp(writer, frame, AssertRespCmd, &resp)
		return
	}

	dropExisting := true
	if req.DropExisting != nil {
		dropExisting = *req.DropExisting
	}

	err = util.RunInNewUpdateTxn(cmd.s.kvdb, func(txn graphis.ProviderTxn) (err error) {
		resp.Results, err = schema.NewManager(txn).Assert(indexes, constraints, dropExisting)
		return
	})
	if err != nil {
		resp.Code = codeForErr(err)
		resp.Msg = err.Error()
		resp.Results = nil
	}

	writeResp(writer, frame, AssertRespCmd, &resp)
}
