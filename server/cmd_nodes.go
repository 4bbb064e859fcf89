package server

import (
	"github.com/zhiqiangxu/graphis"
	"github.com/zhiqiangxu/graphis/graph/schema"
	"github.com/zhiqiangxu/graphis/util"
	"github.com/zhiqiangxu/graphis/wire"
	"github.com/zhiqiangxu/qrpc"
)

// CmdNodes for node schema introspection
type CmdNodes struct {
	s *Server
}

// ServeQRPC implements qrpc.Handler
func (cmd *CmdNodes) ServeQRPC(writer qrpc.FrameWriter, frame *qrpc.RequestFrame) {
	var resp wire.NodesResponse

	err := util.RunInNewTxn(cmd.s.kvdb, func(txn graphis.ProviderTxn) (err error) {
		resp.Infos, err = schema.NewManager(txn).Nodes()
		return
	})
	if err != nil {
		resp.Code = codeForErr(err)
		resp.Msg = err.Error()
		resp.Infos = nil
	}

	writeResp(writer, frame, NodesRespCmd, &resp)
}
