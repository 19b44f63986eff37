// Package opsv1 holds the ops.v1 protobuf messages and gRPC stubs generated
// from api/ops/v1/operations.proto.
package opsv1

//go:generate protoc -I ../../../api --go_out=../../.. --go_opt=module=github.com/pesio-ai/be-ops-workflow --go-grpc_out=../../.. --go-grpc_opt=module=github.com/pesio-ai/be-ops-workflow ops/v1/operations.proto
