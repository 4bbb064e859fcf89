package server

import (
	"github.com/zhiqiangxu/graphis"
	"github.com/zhiqiangxu/qrpc"
)

type (
	// Option for Server
	Option struct {
	}
	// Server exposes the schema procedures over qrpc
	Server struct {
		option   Option
		kvoption graphis.KVOption
		kvdb     graphis.KVDB
		qserver  *qrpc.Server
	}
	// SchemaServer is implemneted by Server
	SchemaServer interface {
		Start() error
		Stop() error
	}
)

// New is ctor for Server
func New(addr string, kvdb graphis.KVDB, option Option, kvoption graphis.KVOption) SchemaServer {
	s := &Server{option: option, kvoption: kvoption, kvdb: kvdb}

	mux := qrpc.NewServeMux()
	mux.Handle(AssertCmd, &CmdAssert{s})
	mux.Handle(NodesCmd, &CmdNodes{s})
	mux.Handle(RelationshipsCmd, &CmdRelationships{s})
	mux.Handle(NodeIndexExistsCmd, &CmdNodeIndexExists{s})
	mux.Handle(NodeConstraintExistsCmd, &CmdNodeConstraintExists{s})
	mux.Handle(RelConstraintExistsCmd, &CmdRelConstraintExists{s})
	bindings := []qrpc.ServerBinding{qrpc.ServerBinding{Addr: addr, Handler: mux}}
	qserver := qrpc.NewServer(bindings)

	s.qserver = qserver
	return s
}

// Start server
func (s *Server) Start() (err error) {
	err = s.kvdb.Open(s.kvoption)
	if err != nil {
		return
	}
	return s.qserver.ListenAndServe()
}

// Stop server
func (s *Server) Stop() (err error) {

	err = s.kvdb.Close()
	if err != nil {
		return
	}

	err = s.qserver.Shutdown()
	return
}
