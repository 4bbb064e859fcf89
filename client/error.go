package client

import "fmt"

type respError struct {
	Code int32
	Msg  string
}

func newRespError(code int32, msg string) *respError {
	return &respError{Code: code, Msg: msg}
}

func (re *respError) Error() string {
	return fmt.Sprintf("respError code:%d msg:%s", re.Code, re.Msg)
}
