// Package mocks provides mock implementations for testing the carematch packages.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	kv := mocks.NewMockKVStore(ctrl)
//	kv.EXPECT().Update(gomock.Any(), "applicationStatusUpdates", gomock.Any()).Return(errBoom)
package mocks

// Generate mock for KVStore interface from internal/ports package.
// This creates MockKVStore with methods for all KVStore interface methods:
// Get, GetMany, SetMany, DeleteMany, Update
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=kv_store_mock.go github.com/target/carematch-ui/internal/ports KVStore

// Generate mock for Requester interface from internal/ports package.
// This creates MockRequester with methods for all Requester interface methods:
// Do
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=requester_mock.go github.com/target/carematch-ui/internal/ports Requester
