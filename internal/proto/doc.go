// Package proto holds the wire contract of the memorylane.v1.MemoryLane gRPC
// service: request/response messages, a JSON codec registered under the
// "json" content subtype, the service descriptor and a typed client.
//
// Messages are plain Go structs with json tags, so no code generation step
// is needed to build the module.
package proto
