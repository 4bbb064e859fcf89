package server

import (
	"github.com/zhiqiangxu/graphis/graph/catalog"
	"github.com/zhiqiangxu/graphis/graph/schema"
	"github.com/zhiqiangxu/qrpc"
	"github.com/zhiqiangxu/util/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func codeForErr(err error) int32 {
	switch err {
	case schema.ErrLabelGivenNoKeys, schema.ErrBadKeySpec:
		return CodeInvalidArgument
	case catalog.ErrIndexAlreadyExists, catalog.ErrConstraintAlreadyExists:
		return CodeSchemaConflict
	default:
		return CodeInternalError
	}
}

func writeResp(writer qrpc.FrameWriter, frame *qrpc.RequestFrame, respCmd qrpc.Cmd, resp interface{}) {
	bytes, err := bson.Marshal(resp)
	if err != nil {
		logger.Instance().Error("bson.Marshal", zap.Error(err))
		return
	}

	err = writeRespBytes(writer, frame, respCmd, bytes)
	if err != nil {
		logger.Instance().Error("writeRespBytes", zap.Error(err))
	}
}

func writeRespBytes(writer qrpc.FrameWriter, frame *qrpc.RequestFrame, respCmd qrpc.Cmd, bytes []byte) (err error) {
	writer.StartWrite(frame.RequestID, respCmd, 0)
	writer.WriteBytes(bytes)

	err = writer.EndWrite()

	return
}
