package server

import (
	"github.com/zhiqiangxu/graphis"
	"github.com/zhiqiangxu/graphis/graph/schema"
	"github.com/zhiqiangxu/graphis/util"
	"github.com/zhiqiangxu/graphis/wire"
	"github.com/zhiqiangxu/qrpc"
)

// CmdRelationships for relationship constraint introspection
type CmdRelationships struct {
	s *Server
}

// ServeQRPC implements qrpc.Handler
func (cmd *CmdRelationships) ServeQRPC(writer qrpc.FrameWriter, frame *qrpc.RequestFrame) {
	var resp wire.RelationshipsResponse

	err := util.RunInNewTxn(cmd.s.kvdb, func(txn graphis.ProviderTxn) (err error) {
		resp.Infos, err = schema.NewManager(txn).Relationships()
		return
	})
	if err != nil {
		resp.Code = codeForErr(err)
		resp.Msg = err.Error()
		resp.Infos = nil
	}

	writeResp(writer, frame, RelationshipsRespCmd, &resp)
}
