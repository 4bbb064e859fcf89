package catalog

import "fmt"

// Catalog key space:
//	gs_m:nextID -> int64
//	gs_m:token:<ns>:<name> -> token id
//	gs_m:tokenName:<ns>:<id> -> token name
//	gs_m:index:<id> -> index descriptor []byte
//	gs_m:constraint:<id> -> constraint descriptor []byte
//	gs_m:indexRuntime:<id> -> index runtime []byte
//

const catalogPrefix = "gs_m:"

var (
	nextIDKey          = []byte(catalogPrefix + "nextID")
	indexPrefix        = []byte(catalogPrefix + "index:")
	constraintPrefix   = []byte(catalogPrefix + "constraint:")
	indexRuntimePrefix = []byte(catalogPrefix + "indexRuntime:")
)

func tokenKey(ns TokenNamespace, name string) []byte {
	return []byte(fmt.Sprintf("%stoken:%d:%s", catalogPrefix, ns, name))
}

func tokenNameKey(ns TokenNamespace, id int64) []byte {
	return []byte(fmt.Sprintf("%stokenName:%d:%d", catalogPrefix, ns, id))
}

// descriptor ids are zero padded so enumeration follows creation order
func indexKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", indexPrefix, id))
}

func constraintKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", constraintPrefix, id))
}

func indexRuntimeKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", indexRuntimePrefix, id))
}
